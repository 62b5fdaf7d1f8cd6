package actions

import (
	"fmt"

	"github.com/shanmugaprathap/qa-enterprise-suite/internal/config"
	"github.com/shanmugaprathap/qa-enterprise-suite/internal/report"
)

// ShowConfig displays the current configuration
func ShowConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Println(cfg.String())
	return nil
}

// MigrationStatus prints the reporting schema migration state.
func MigrationStatus() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if valErr := validateReportingConfig(cfg); valErr != nil {
		return valErr
	}

	version, dirty, err := report.MigrationStatus(cfg)
	if err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}

	if version == 0 {
		fmt.Println("ℹ️  No migrations applied yet")
		return nil
	}

	state := "clean"
	if dirty {
		state = "dirty"
	}
	fmt.Printf("Current migration version: %d (%s)\n", version, state)
	return nil
}
