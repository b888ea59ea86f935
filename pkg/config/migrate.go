package config

import (
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	logger "github.com/sirupsen/logrus"
)

func newMigrator() (*migrate.Migrate, error) {
	db, err := DB.DB()
	if err != nil {
		return nil, err
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, err
	}
	return migrate.NewWithDatabaseInstance(
		"file://"+filepath.Join("migrations"),
		"postgres",
		driver,
	)
}

// ExecuteMigrations runs all pending database migrations
func ExecuteMigrations() {
	m, err := newMigrator()
	if err != nil {
		logger.Fatal("Failed to create migrate instance: ", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		logger.Fatal("Failed to run migrations: ", err)
	}
	logger.Info("Database migrations completed successfully")
}

// RollbackMigration rolls back the last migration
func RollbackMigration() {
	m, err := newMigrator()
	if err != nil {
		logger.Fatal("Failed to create migrate instance: ", err)
	}
	if err := m.Steps(-1); err != nil {
		logger.Fatal("Failed to rollback migration: ", err)
	}
	logger.Info("Migration rolled back successfully")
}
