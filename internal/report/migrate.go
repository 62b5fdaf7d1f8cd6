package report

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/clickhouse" // clickhouse driver for migrations
	_ "github.com/golang-migrate/migrate/v4/source/file"         // file source driver for migrations

	"github.com/shanmugaprathap/qa-enterprise-suite/internal/config"
)

// MigrateUp applies the reporting schema migrations from the migrations
// directory next to the binary.
func MigrateUp(cfg *config.Config) error {
	m, err := newMigrator(cfg)
	if err != nil {
		return err
	}
	defer closeMigrator(m)

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", upErr)
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		fmt.Println("ℹ️  No new migrations to apply")
		return nil
	}

	version, dirty, vErr := m.Version()
	if vErr != nil && !errors.Is(vErr, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get migration version: %w", vErr)
	}
	if !dirty {
		fmt.Printf("✅ Migrations applied successfully (current version: %d)\n", version)
	}

	return nil
}

// MigrateDrop tears down every reporting table in the configured database.
func MigrateDrop(cfg *config.Config) error {
	m, err := newMigrator(cfg)
	if err != nil {
		return err
	}
	defer closeMigrator(m)

	if err := m.Drop(); err != nil {
		return fmt.Errorf("failed to drop reporting schema: %w", err)
	}

	return nil
}

// MigrationStatus returns the current migration version and dirty state.
func MigrationStatus(cfg *config.Config) (version uint, dirty bool, err error) {
	m, mErr := newMigrator(cfg)
	if mErr != nil {
		return 0, false, mErr
	}
	defer closeMigrator(m)

	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		// No migrations applied yet
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	return version, dirty, nil
}

func newMigrator(cfg *config.Config) (*migrate.Migrate, error) {
	m, err := migrate.New("file://migrations", buildConnectionString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}
	return m, nil
}

func closeMigrator(m *migrate.Migrate) {
	if _, closeErr := m.Close(); closeErr != nil {
		fmt.Printf("Warning: failed to close migration instance: %v\n", closeErr)
	}
}

// buildConnectionString builds the ClickHouse connection string for golang-migrate
func buildConnectionString(cfg *config.Config) string {
	connStr := fmt.Sprintf("clickhouse://%s:%d?username=%s&database=%s&x-multi-statement=true&x-migrations-table-engine=MergeTree",
		cfg.ClickhouseHost,
		cfg.ClickhouseNativePort,
		cfg.ClickhouseUsername,
		cfg.ClickhouseDatabase,
	)

	if cfg.ClickhousePassword != "" {
		connStr += fmt.Sprintf("&password=%s", url.QueryEscape(cfg.ClickhousePassword))
	}

	return connStr
}
