// Package testutil provides an in-memory database, budget fixtures and
// assertions shared by the service, handler and server tests.
package testutil

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"playersbudget/internal/models"
)

// allModels lists every table the services touch, parents first.
var allModels = []interface{}{
	&models.Budget{},
	&models.Category{},
	&models.Scenario{},
	&models.LineItem{},
	&models.IncomeSource{},
	&models.BudgetSnapshot{},
	&models.AuditLog{},
}

// SetupTestDB opens a fresh, named in-memory SQLite database with all models
// migrated. Each call gets its own database, shared by the pool's connections
// until TeardownTestDB closes it.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:playersbudget_test_%d?mode=memory&cache=shared", nextID())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// TeardownTestDB closes the connection pool, which drops the database.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}
