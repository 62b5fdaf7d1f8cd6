package actions

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/shanmugaprathap/qa-enterprise-suite/internal/config"
	"github.com/shanmugaprathap/qa-enterprise-suite/internal/report"
)

// ErrProductionTeardownBlocked is returned when a teardown targets the production environment.
var ErrProductionTeardownBlocked = errors.New("teardown blocked for production environment")

// Teardown validates config and drops the reporting schema.
func Teardown(isInteractive, skipConfirm bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if valErr := validateReportingConfig(cfg); valErr != nil {
		return valErr
	}

	fmt.Println("\n⚠️  Teardown Configuration:")
	fmt.Println("========================")
	fmt.Printf("Environment:     %s\n", cfg.Environment)
	fmt.Printf("ClickHouse Host: %s:%d\n", cfg.ClickhouseHost, cfg.ClickhouseNativePort)
	fmt.Printf("Username:        %s\n", cfg.ClickhouseUsername)
	fmt.Printf("Database Name:   %s\n", cfg.ClickhouseDatabase)
	fmt.Println()

	// Handle confirmation for both TUI and CLI modes
	if !skipConfirm {
		if isInteractive {
			fmt.Printf("🗑️  You are about to DROP all reporting tables in database: %s\n", strings.ToUpper(cfg.ClickhouseDatabase))
			fmt.Println("⚠️  WARNING: This will permanently delete ALL recorded audit history!")
		}
		// Return here so the caller can handle confirmation
		return nil
	}

	if cfg.Environment.IsProduction() {
		displayProductionBlock(cfg)
		return ErrProductionTeardownBlocked
	}

	fmt.Printf("\n🗑️  Dropping reporting schema in database '%s'...\n", cfg.ClickhouseDatabase)
	if err := report.MigrateDrop(cfg); err != nil {
		return fmt.Errorf("failed to drop reporting schema: %w", err)
	}

	fmt.Println("\n✅ Teardown completed successfully!")
	return nil
}

// displayProductionBlock displays a red warning box when a teardown targets production
func displayProductionBlock(cfg *config.Config) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()

	fmt.Println(red("╔════════════════════════════════════════════════╗"))
	fmt.Println(red("║      🚨  PRODUCTION TEARDOWN BLOCKED  🚨       ║"))
	fmt.Println(red("╚════════════════════════════════════════════════╝"))
	fmt.Println(red(""))
	fmt.Println(red("  ⚠️  TEST_ENV is set to 'prod'."))
	fmt.Println(red(""))
	fmt.Println(red("  Target Host: " + fmt.Sprintf("%s:%d", cfg.ClickhouseHost, cfg.ClickhouseNativePort)))
	fmt.Println(red(""))
	fmt.Println(red("  Audit history in production is never dropped by tooling."))
	fmt.Println(red("  Switch TEST_ENV to a non-production environment to proceed."))
	fmt.Println()
}
