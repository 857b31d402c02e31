package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register file source driver
)

// RunMigrations applies every pending migration from sourceURL (a
// golang-migrate source such as "file://./migrations") against dsn.
// A database that is already up to date is not an error.
func RunMigrations(dsn, sourceURL string) error {
	return runMigration(dsn, sourceURL, "up", (*migrate.Migrate).Up)
}

// RunMigrationsDown rolls every applied migration back. Integration tests
// use it to return a shared database to a clean slate.
func RunMigrationsDown(dsn, sourceURL string) error {
	return runMigration(dsn, sourceURL, "down", (*migrate.Migrate).Down)
}

func runMigration(dsn, sourceURL, direction string, step func(*migrate.Migrate) error) error {
	m, err := migrate.New(sourceURL, dsn)
	if err != nil {
		return fmt.Errorf("postgres: open migrator: %w", err)
	}
	defer m.Close()

	if err := step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: migrate %s: %w", direction, err)
	}
	return nil
}
