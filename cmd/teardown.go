package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shanmugaprathap/qa-enterprise-suite/internal/actions"
)

var forceTeardown bool

var teardownCmd = &cobra.Command{
	Use:   "teardown",
	Short: "Drop the ClickHouse reporting schema",
	Long: `Validates configuration and drops the reporting tables.
This command will:
- Validate your configuration
- DROP the reporting tables and all recorded audit history

⚠️  WARNING: This will permanently delete all recorded audit history!`,
	RunE: func(_ *cobra.Command, _ []string) error {
		// For CLI mode, we pass skipConfirm=true if --force is used
		// Otherwise the action will just show the config and return
		if !forceTeardown {
			if err := actions.Teardown(false, false); err != nil {
				return err
			}
			fmt.Println("\n⚠️  WARNING: This will permanently delete all recorded audit history!")
			fmt.Println("Use --force flag to proceed with teardown")
			return nil
		}

		if err := actions.Teardown(false, true); err != nil {
			return fmt.Errorf("teardown failed: %w", err)
		}
		return nil
	},
}

func init() {
	teardownCmd.Flags().BoolVarP(&forceTeardown, "force", "f", false, "Skip confirmation and proceed with teardown")
	rootCmd.AddCommand(teardownCmd)
}
