package helpers

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/blueprints-go/internal/infrastructure/config"
	"github.com/andrescamacho/blueprints-go/internal/infrastructure/database"
)

// SharedTestDB is the singleton database instance used across BDD scenarios
var SharedTestDB *gorm.DB

// InitializeSharedTestDB creates and migrates the shared test database.
// Called once in TestMain before running any tests.
func InitializeSharedTestDB() error {
	db, err := database.Open(&config.DatabaseConfig{Type: "sqlite", Path: ":memory:"})
	if err != nil {
		return fmt.Errorf("failed to open shared test database: %w", err)
	}

	SharedTestDB = db
	return nil
}

// TruncateAllTables clears all data so each scenario starts empty
func TruncateAllTables() error {
	if SharedTestDB == nil {
		return fmt.Errorf("shared test database not initialized")
	}

	// Children first
	tables := []string{
		"blueprint_results",
		"evaluation_runs",
	}

	for _, table := range tables {
		if err := SharedTestDB.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}

	return nil
}

// CloseSharedTestDB closes the shared database connection.
// Called in TestMain after all tests complete.
func CloseSharedTestDB() error {
	if SharedTestDB == nil {
		return nil
	}
	return database.Close(SharedTestDB)
}
