package archiver

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"GestorChoferes/internal/models"
)

// RowSource yields every record in ascending identity order.
type RowSource interface {
	ListAscending(ctx context.Context) ([]models.Record, error)
}

// CSVExporter rewrites the whole registros table to a CSV file on every call.
type CSVExporter struct {
	source RowSource
	path   string
}

func NewCSVExporter(source RowSource, path string) *CSVExporter {
	return &CSVExporter{source: source, path: path}
}

func (e *CSVExporter) Path() string {
	return e.path
}

// ExportAll writes a header row plus one row per record. The file is written
// next to the target and renamed over it, so readers never see a partial
// export; concurrent calls resolve as last writer wins.
func (e *CSVExporter) ExportAll(ctx context.Context) error {
	records, err := e.source.ListAscending(ctx)
	if err != nil {
		return fmt.Errorf("CSVExporter.ExportAll(): failed to read records: %w", err)
	}

	dir := filepath.Dir(e.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("CSVExporter.ExportAll(): failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".export-*.csv")
	if err != nil {
		return fmt.Errorf("CSVExporter.ExportAll(): %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	w := csv.NewWriter(tmp)
	if err := w.Write(models.Columns); err != nil {
		tmp.Close()
		return fmt.Errorf("CSVExporter.ExportAll(): failed to write header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(r.Row()); err != nil {
			tmp.Close()
			return fmt.Errorf("CSVExporter.ExportAll(): failed to write record %d: %w", r.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("CSVExporter.ExportAll(): %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("CSVExporter.ExportAll(): %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("CSVExporter.ExportAll(): %w", err)
	}
	if err := os.Rename(tmpPath, e.path); err != nil {
		return fmt.Errorf("CSVExporter.ExportAll(): failed to replace %s: %w", e.path, err)
	}
	return nil
}
