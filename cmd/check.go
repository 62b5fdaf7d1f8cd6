package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/shanmugaprathap/qa-enterprise-suite/internal/actions"
)

var (
	checkSkipReport bool
	checkVerbose    bool
)

var checkCmd = &cobra.Command{
	Use:   "check <suite-file>",
	Short: "Audit every element locator of a suite",
	Long: `Loads a YAML suite definition, resolves every element on every page with
self-healing enabled, and prints the per-element outcome. Exits non-zero
when any element fails to resolve.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if checkVerbose {
			Logger.SetLevel(logrus.DebugLevel)
		}
		return actions.Check(Logger, args[0], checkSkipReport)
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkSkipReport, "skip-report", false, "Do not persist results to the reporting sink")
	checkCmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(checkCmd)
}
