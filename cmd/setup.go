package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shanmugaprathap/qa-enterprise-suite/internal/actions"
)

var forceSetup bool

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Setup the ClickHouse reporting database",
	Long: `Validates configuration and sets up the ClickHouse reporting database.
This command will:
- Validate your configuration
- Create the reporting database if it doesn't exist
- Run database migrations`,
	RunE: func(_ *cobra.Command, _ []string) error {
		// For CLI mode, we pass skipConfirm=true if --force is used
		// Otherwise the action will just show the config and return
		if !forceSetup {
			if err := actions.Setup(false, false); err != nil {
				return err
			}
			fmt.Println("\nUse --force flag to proceed with setup")
			return nil
		}

		if err := actions.Setup(false, true); err != nil {
			return fmt.Errorf("setup failed: %w", err)
		}
		return nil
	},
}

func init() {
	setupCmd.Flags().BoolVarP(&forceSetup, "force", "f", false, "Skip confirmation and proceed with setup")
	rootCmd.AddCommand(setupCmd)
}
