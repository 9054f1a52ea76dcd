package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InboxService/internal/config"
)

func TestOpenSQLite_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "inbox.db")

	db, err := OpenSQLite(context.Background(), config.SQLiteConfig{Path: path})
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, "sqlite", db.DriverName())
	assert.FileExists(t, path)

	var mode string
	require.NoError(t, db.Get(&mode, "PRAGMA journal_mode"))
	assert.Equal(t, "wal", mode)
}

func TestOpenSQLite_Memory(t *testing.T) {
	db, err := OpenSQLite(context.Background(), config.SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.Ping())
}
