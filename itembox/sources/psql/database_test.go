package psql

import (
	"context"
	"itembox/itembox/config"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase_SQLiteMigrates(t *testing.T) {
	cfg := config.Config{
		DBDriver: "sqlite",
		DBPath:   filepath.Join(t.TempDir(), "itembox.db"),
	}

	db, err := NewDatabase(context.Background(), cfg)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Ping(context.Background()))
	for _, table := range []string{"users", "items", "tokens", "tokendatas"} {
		assert.True(t, db.DB.Migrator().HasTable(table), table)
	}
	assert.True(t, db.DB.Migrator().HasIndex("users", "idx_users_email"))
}

func TestNewDatabase_UnknownDriver(t *testing.T) {
	_, err := NewDatabase(context.Background(), config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}
