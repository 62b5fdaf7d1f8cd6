package actions

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shanmugaprathap/qa-enterprise-suite/internal/config"
	"github.com/shanmugaprathap/qa-enterprise-suite/internal/report"
)

var (
	// ErrReportingNotConfigured is returned when no ClickHouse sink is configured
	ErrReportingNotConfigured = errors.New("reporting is not configured - set CLICKHOUSE_HOST to enable it")
	// ErrDatabaseNotSet is returned when the reporting database name is empty
	ErrDatabaseNotSet = errors.New("ClickHouse database is not set")
	// ErrUsernameNotSet is returned when the ClickHouse username is not configured
	ErrUsernameNotSet = errors.New("ClickHouse username is not set")
)

// Setup validates config and prepares the reporting database and schema.
// With skipConfirm false it only prints the target so the caller can ask
// for confirmation first.
func Setup(isInteractive, skipConfirm bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if valErr := validateReportingConfig(cfg); valErr != nil {
		return valErr
	}

	fmt.Println("\n📋 Setup Configuration:")
	fmt.Println("======================")
	fmt.Printf("ClickHouse Host: %s:%d\n", cfg.ClickhouseHost, cfg.ClickhouseNativePort)
	fmt.Printf("Username:        %s\n", cfg.ClickhouseUsername)
	fmt.Printf("Database Name:   %s\n", cfg.ClickhouseDatabase)
	fmt.Println()

	if !skipConfirm {
		if isInteractive {
			fmt.Printf("⚠️  You are about to setup the reporting database: %s\n", strings.ToUpper(cfg.ClickhouseDatabase))
			fmt.Println("This will create the database and the healing_events table if they don't exist.")
		}
		// Return here so the caller can handle confirmation
		return nil
	}

	fmt.Printf("📦 Creating database '%s' if it doesn't exist...\n", cfg.ClickhouseDatabase)
	if err := report.EnsureDatabase(cfg); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	fmt.Printf("✅ Database '%s' is ready!\n", cfg.ClickhouseDatabase)

	fmt.Println("\n🔄 Running database migrations...")
	if err := report.MigrateUp(cfg); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	fmt.Println("\n🎉 Setup completed successfully!")
	return nil
}

// validateReportingConfig checks if the configuration is valid for setup
func validateReportingConfig(cfg *config.Config) error {
	if !cfg.ReportingEnabled() {
		return ErrReportingNotConfigured
	}
	if cfg.ClickhouseDatabase == "" {
		return ErrDatabaseNotSet
	}
	if cfg.ClickhouseUsername == "" {
		return ErrUsernameNotSet
	}
	return nil
}
