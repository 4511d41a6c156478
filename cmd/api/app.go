package main

import (
	"context"
	"database/sql"
	"fmt"

	"GestorChoferes/internal/archiver"
	"GestorChoferes/internal/clock"
	"GestorChoferes/internal/config"
	"GestorChoferes/internal/logger"
	"GestorChoferes/internal/metrics"
	"GestorChoferes/internal/storage"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// app holds the components shared by every subcommand.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	metrics *metrics.Metrics
	db      *sql.DB
	store   *storage.RecordStore
	backup  *archiver.Backup
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.App.LogLevel)
	if err != nil {
		return nil, err
	}

	if err := clock.SetLocation(cfg.App.Timezone); err != nil {
		return nil, err
	}

	db, err := storage.OpenDB(ctx, dbConfig(cfg.DB), log)
	if err != nil {
		return nil, err
	}

	dialect := storage.Dialect(cfg.DB.Driver)
	store := storage.NewRecordStore(db, dialect)
	if err := store.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("newApp(): %w", err)
	}

	m := metrics.New(prometheus.NewRegistry())
	backup, err := newBackup(ctx, cfg, store, log, m)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &app{
		cfg:     cfg,
		log:     log,
		metrics: m,
		db:      db,
		store:   store,
		backup:  backup,
	}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.log.Warn("app.Close(): failed to close database", zap.Error(err))
	}
	_ = a.log.Sync()
}

func dbConfig(c config.DBConfig) storage.DBConfig {
	return storage.DBConfig{
		Dialect:      storage.Dialect(c.Driver),
		Path:         c.Path,
		Host:         c.Host,
		Port:         c.Port,
		User:         c.User,
		Password:     c.Password,
		Name:         c.Name,
		SSLMode:      c.SSLMode,
		MaxOpenConns: c.MaxOpenConns,
	}
}

// newBackup picks the snapshot strategy for the dialect: VACUUM INTO for
// SQLite, a JSON dump for PostgreSQL.
func newBackup(ctx context.Context, cfg *config.Config, store *storage.RecordStore, log *zap.Logger, m *metrics.Metrics) (*archiver.Backup, error) {
	exporter := archiver.NewCSVExporter(store, cfg.Backup.CSVPath)

	var snapshotter archiver.Snapshotter
	if store.Dialect() == storage.DialectSQLite {
		snapshotter = archiver.NewFileSnapshotter(store, cfg.DB.Path, cfg.Backup.SnapshotDir)
	} else {
		snapshotter = archiver.NewDumpSnapshotter(store, cfg.Backup.SnapshotDir)
	}

	backup := archiver.NewBackup(exporter, snapshotter, log, m)
	if !cfg.Bucket.Enabled {
		return backup, nil
	}

	client, err := archiver.NewS3Client(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("newBackup(): %w", err)
	}
	log.Info("newBackup(): mirroring backups to bucket",
		zap.String("bucket", cfg.Bucket.Name),
		zap.String("prefix", cfg.Bucket.Prefix),
	)
	return backup.WithMirror(archiver.NewBucketMirror(cfg.Bucket.Name, cfg.Bucket.Prefix, client)), nil
}
