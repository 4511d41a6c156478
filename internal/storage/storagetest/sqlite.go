// Package storagetest opens throwaway SQLite record stores for tests.
package storagetest

import (
	"context"
	"path/filepath"
	"testing"

	"GestorChoferes/internal/storage"

	"go.uber.org/zap"
)

// NewSQLiteStore returns a store on a fresh file in t.TempDir() with the
// schema in place, plus the database file path.
func NewSQLiteStore(t testing.TB) (*storage.RecordStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "choferes_test.db")
	return OpenSQLiteStore(t, path), path
}

// OpenSQLiteStore opens the database at path, creating the schema if the
// file does not have it yet.
func OpenSQLiteStore(t testing.TB, path string) *storage.RecordStore {
	t.Helper()

	db, err := storage.OpenDB(context.Background(), storage.DBConfig{
		Dialect: storage.DialectSQLite,
		Path:    path,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("storagetest: open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := storage.NewRecordStore(db, storage.DialectSQLite)
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("storagetest: schema: %v", err)
	}
	return store
}
