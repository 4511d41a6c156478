package archiver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"GestorChoferes/internal/clock"
)

// snapshot names carry second precision; a second call within the same
// second replaces the first file.
const snapshotStampLayout = "20060102_150405"

func snapshotStamp() string {
	return clock.Now().In(clock.Location()).Format(snapshotStampLayout)
}

// Vacuumer writes a consistent copy of a live database to a new file.
type Vacuumer interface {
	VacuumInto(ctx context.Context, dst string) error
}

// FileSnapshotter copies the SQLite database file into the snapshot directory.
// With a Vacuumer the copy goes through the open pool, so a write from
// another request cannot land halfway through it. Without one the file is
// copied byte for byte, which is only safe while nothing writes to it.
type FileSnapshotter struct {
	source Vacuumer
	dbPath string
	dir    string
}

func NewFileSnapshotter(source Vacuumer, dbPath, dir string) *FileSnapshotter {
	return &FileSnapshotter{source: source, dbPath: dbPath, dir: dir}
}

// Snapshot writes <dir>/<db name>_<stamp><ext> and returns its path.
func (s *FileSnapshotter) Snapshot(ctx context.Context) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("FileSnapshotter.Snapshot(): failed to create snapshot directory: %w", err)
	}

	base := filepath.Base(s.dbPath)
	ext := filepath.Ext(base)
	target := filepath.Join(s.dir, fmt.Sprintf("%s_%s%s", strings.TrimSuffix(base, ext), snapshotStamp(), ext))

	if s.source == nil {
		if err := copyFile(s.dbPath, target); err != nil {
			return "", fmt.Errorf("FileSnapshotter.Snapshot(): %w", err)
		}
		return target, nil
	}

	// VACUUM INTO refuses an existing file
	tmp := target + ".tmp"
	if err := os.Remove(tmp); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("FileSnapshotter.Snapshot(): %w", err)
	}
	if err := s.source.VacuumInto(ctx, tmp); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("FileSnapshotter.Snapshot(): %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("FileSnapshotter.Snapshot(): %w", err)
	}
	return target, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// DumpSnapshotter is used when the store is a networked database with no
// local file to copy: it writes every row as a JSON array instead.
type DumpSnapshotter struct {
	source RowSource
	dir    string
}

func NewDumpSnapshotter(source RowSource, dir string) *DumpSnapshotter {
	return &DumpSnapshotter{source: source, dir: dir}
}

func (s *DumpSnapshotter) Snapshot(ctx context.Context) (string, error) {
	records, err := s.source.ListAscending(ctx)
	if err != nil {
		return "", fmt.Errorf("DumpSnapshotter.Snapshot(): failed to read records: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("DumpSnapshotter.Snapshot(): failed to create snapshot directory: %w", err)
	}

	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("DumpSnapshotter.Snapshot(): %w", err)
	}

	target := filepath.Join(s.dir, fmt.Sprintf("registros_%s.json", snapshotStamp()))
	if err := os.WriteFile(target, payload, 0644); err != nil {
		return "", fmt.Errorf("DumpSnapshotter.Snapshot(): %w", err)
	}
	return target, nil
}
