// Package actions contains the core business logic for qa-suite operations
package actions

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/shanmugaprathap/qa-enterprise-suite/internal/audit"
	"github.com/shanmugaprathap/qa-enterprise-suite/internal/browser"
	"github.com/shanmugaprathap/qa-enterprise-suite/internal/config"
	"github.com/shanmugaprathap/qa-enterprise-suite/internal/report"
)

// Check runs a locator audit suite against the configured environment and
// prints the per-element outcome. Results are persisted to the reporting
// sink when one is configured, unless skipReport is set.
func Check(log logrus.FieldLogger, suitePath string, skipReport bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	suite, err := audit.LoadSuite(suitePath)
	if err != nil {
		return fmt.Errorf("failed to load suite: %w", err)
	}

	fmt.Printf("\n📋 Auditing suite: %s\n", suite.Name)
	fmt.Printf("Environment: %s\n", cfg.Environment)
	fmt.Printf("Self-Healing: %t\n\n", cfg.SelfHealingEnabled)

	runner := audit.NewRunner(log, cfg, func() (audit.Session, error) {
		return browser.NewSession(log, cfg)
	})

	result, err := runner.Run(context.Background(), suite)
	if err != nil {
		return fmt.Errorf("failed to run suite: %w", err)
	}

	audit.NewFormatter(os.Stdout).Print(result)

	if cfg.ReportingEnabled() && !skipReport {
		if persistErr := persist(log, cfg, result); persistErr != nil {
			// A broken sink should not mask the audit outcome.
			log.WithError(persistErr).Error("failed to persist report")
		}
	}

	if !result.Passed() {
		return fmt.Errorf("suite '%s' has failing elements", suite.Name)
	}

	return nil
}

func persist(log logrus.FieldLogger, cfg *config.Config, result *audit.Report) error {
	sink, err := report.NewSink(log, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect reporting sink: %w", err)
	}
	defer func() {
		if closeErr := sink.Close(); closeErr != nil {
			log.WithError(closeErr).Warn("failed to close reporting sink")
		}
	}()

	return sink.Write(context.Background(), string(cfg.Environment), result)
}
