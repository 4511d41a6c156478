package archiver

//go:generate mockgen -source=backup.go -destination=mocks/mock_backup.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"GestorChoferes/internal/metrics"
	"GestorChoferes/internal/models"

	"go.uber.org/zap"
)

type Exporter interface {
	ExportAll(ctx context.Context) error
	Path() string
}

type Snapshotter interface {
	Snapshot(ctx context.Context) (string, error)
}

type Mirror interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

const (
	StepExport   = "export"
	StepSnapshot = "snapshot"
	StepMirror   = "mirror"
)

// BackupError reports a failed backup step. The mutation that triggered the
// backup has already been committed when this is returned.
type BackupError struct {
	Step string
	Err  error
}

func (e *BackupError) Error() string {
	return fmt.Sprintf("backup %s: %v", e.Step, e.Err)
}

func (e *BackupError) Unwrap() error {
	return e.Err
}

// Result lists what a backup run produced.
type Result struct {
	ExportPath   string
	SnapshotPath string
	MirroredKeys []string
}

// Backup runs the export, then the snapshot, then the optional bucket mirror.
// Every step is attempted once; a failing step does not stop the next one.
type Backup struct {
	exporter    Exporter
	snapshotter Snapshotter
	mirror      Mirror
	log         *zap.Logger
	metrics     *metrics.Metrics
}

func NewBackup(exporter Exporter, snapshotter Snapshotter, log *zap.Logger, m *metrics.Metrics) *Backup {
	return &Backup{
		exporter:    exporter,
		snapshotter: snapshotter,
		log:         log,
		metrics:     m,
	}
}

// WithMirror enables uploading the export and the snapshot after each run.
func (b *Backup) WithMirror(mirror Mirror) *Backup {
	b.mirror = mirror
	return b
}

func (b *Backup) Name() string {
	return "backup"
}

// AfterCommit runs a full backup for a committed mutation.
func (b *Backup) AfterCommit(ctx context.Context, m models.Mutation) error {
	_, err := b.Run(ctx)
	if err != nil {
		b.log.Warn("Backup.AfterCommit(): backup incomplete",
			zap.String("action", string(m.Action)),
			zap.Int64("id", m.RecordID),
		)
	}
	return err
}

func (b *Backup) Run(ctx context.Context) (Result, error) {
	var (
		res  Result
		errs []error
	)

	if err := b.step(StepExport, func() error { return b.exporter.ExportAll(ctx) }); err != nil {
		errs = append(errs, err)
	} else {
		res.ExportPath = b.exporter.Path()
	}

	if err := b.step(StepSnapshot, func() error {
		p, err := b.snapshotter.Snapshot(ctx)
		res.SnapshotPath = p
		return err
	}); err != nil {
		errs = append(errs, err)
	}

	if b.mirror != nil {
		for _, p := range []string{res.ExportPath, res.SnapshotPath} {
			if p == "" {
				continue
			}
			if err := b.step(StepMirror, func() error {
				key, err := b.mirror.Upload(ctx, p)
				if err == nil {
					res.MirroredKeys = append(res.MirroredKeys, key)
				}
				return err
			}); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if len(errs) == 0 {
		b.log.Info("Backup.Run(): backup completed",
			zap.String("export", res.ExportPath),
			zap.String("snapshot", res.SnapshotPath),
			zap.Int("mirrored", len(res.MirroredKeys)),
		)
	}
	return res, errors.Join(errs...)
}

func (b *Backup) step(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	b.metrics.BackupDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		b.metrics.BackupFailures.WithLabelValues(name).Inc()
		b.log.Error("Backup.Run(): step failed", zap.String("step", name), zap.Error(err))
		return &BackupError{Step: name, Err: err}
	}
	return nil
}
