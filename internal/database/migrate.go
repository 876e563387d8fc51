package database

import (
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies all pending database migrations from ./migrations.
func RunMigrations() error {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable not set")
	}

	m, err := migrate.New("file://migrations", dbURL)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		log.Printf("could not get migration version: %v", err)
	}

	// A dirty version means a previous run died mid-migration; force-clean
	// before retrying so Up() is not rejected.
	if dirty {
		log.Printf("database dirty at version %d, forcing clean", version)
		if err := m.Force(int(version)); err != nil {
			return fmt.Errorf("failed to force version: %w", err)
		}
	}

	if err := m.Up(); err != nil {
		if err == migrate.ErrNoChange {
			log.Println("database schema is up to date")
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, _, _ = m.Version()
	log.Printf("migrations complete, current version: %d", version)
	return nil
}

// MigrationVersion returns the current migration version.
func MigrationVersion() (uint, bool, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return 0, false, fmt.Errorf("DATABASE_URL not set")
	}

	m, err := migrate.New("file://migrations", dbURL)
	if err != nil {
		return 0, false, err
	}
	defer m.Close()

	return m.Version()
}

// RollbackMigration rolls back the last migration.
func RollbackMigration() error {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL not set")
	}

	m, err := migrate.New("file://migrations", dbURL)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}
	defer m.Close()

	if err := m.Steps(-1); err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}

	version, _, _ := m.Version()
	log.Printf("rolled back to version: %d", version)
	return nil
}
