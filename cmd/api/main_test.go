package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"GestorChoferes/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupCommand(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "choferes.db")
	csvPath := filepath.Join(dir, "backup_choferes.csv")
	snapshotDir := filepath.Join(dir, "backups")

	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", dbPath)
	t.Setenv("BACKUP_CSV_PATH", csvPath)
	t.Setenv("BACKUP_SNAPSHOT_DIR", snapshotDir)
	t.Setenv("BUCKET_ENABLED", "false")
	t.Setenv("APP_LOG_LEVEL", "error")

	a, err := newApp(context.Background())
	require.NoError(t, err)
	_, err = a.store.Create(context.Background(), models.Record{
		DriverName: "Ana", Kind: "entry", Destination: "X", Errand: "Y",
		Justification: "Z", RequestReason: "W", ResponsibleParty: "Boss",
		EventTimestamp: "2025-01-15 10:00:00", RecordedAt: "2025-01-15 10:00:00",
	})
	require.NoError(t, err)
	a.Close()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"backup", "--env-file", ""})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "registros: 1")
	assert.Contains(t, out.String(), csvPath)

	csvBody, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(csvBody), "Ana")

	snapshots, err := os.ReadDir(snapshotDir)
	require.NoError(t, err)
	assert.Len(t, snapshots, 1)
}

func TestBackupCommand_BadConfig(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"backup", "--env-file", ""})
	assert.Error(t, rootCmd.Execute())
}
