//go:build integration

package storage_test

import (
	"context"
	"testing"
	"time"

	"GestorChoferes/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func startPostgres(t *testing.T) storage.DBConfig {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("docker.io/postgres:15.2-alpine"),
		postgres.WithDatabase("choferes"),
		postgres.WithUsername("choferes"),
		postgres.WithPassword("choferes"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return storage.DBConfig{
		Dialect:  storage.DialectPostgres,
		Host:     host,
		Port:     port.Int(),
		User:     "choferes",
		Password: "choferes",
		Name:     "choferes",
		SSLMode:  "disable",
	}
}

func TestRecordStore_Postgres(t *testing.T) {
	cfg := startPostgres(t)
	ctx := context.Background()

	db, err := storage.OpenDB(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	defer db.Close()

	store := storage.NewRecordStore(db, storage.DialectPostgres)
	require.NoError(t, store.EnsureSchema(ctx))
	require.NoError(t, store.EnsureSchema(ctx))

	first, err := store.Create(ctx, sampleRecord("Ana"))
	require.NoError(t, err)
	second, err := store.Create(ctx, sampleRecord("Luis"))
	require.NoError(t, err)
	assert.Greater(t, second, first)

	changed := sampleRecord("Ana")
	changed.Kind = "exit"
	changed.EventTimestamp = ""
	require.NoError(t, store.Update(ctx, first, changed))

	got, err := store.Get(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "exit", got.Kind)
	assert.Equal(t, "2025-01-15 10:00:00", got.EventTimestamp)
	assert.Equal(t, "2025-01-15 10:00:05", got.RecordedAt)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second, list[0].ID)

	require.NoError(t, store.Delete(ctx, second))
	assert.ErrorIs(t, store.Delete(ctx, second), storage.ErrNotFound)
	_, err = store.Get(ctx, second)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
