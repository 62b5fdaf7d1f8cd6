package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shanmugaprathap/qa-enterprise-suite/internal/actions"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the reporting schema migration status",
	Long:  `Shows the current migration version and dirty state of the reporting database.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := actions.MigrationStatus(); err != nil {
			return fmt.Errorf("failed to get status: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
