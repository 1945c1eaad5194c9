package database_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/blueprints-go/internal/infrastructure/config"
	"github.com/andrescamacho/blueprints-go/internal/infrastructure/database"
)

func TestOpen_SQLiteFileIsMigrated(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Type: "sqlite",
		Path: filepath.Join(t.TempDir(), "runs.db"),
	}

	db, err := database.Open(cfg)
	require.NoError(t, err)
	defer database.Close(db)

	assert.True(t, db.Migrator().HasTable("evaluation_runs"))
	assert.True(t, db.Migrator().HasTable("blueprint_results"))
}

func TestNewConnection_UnsupportedType(t *testing.T) {
	_, err := database.NewConnection(&config.DatabaseConfig{Type: "mysql"})

	assert.Error(t, err)
}
