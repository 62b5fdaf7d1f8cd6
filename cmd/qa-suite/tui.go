package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/shanmugaprathap/qa-enterprise-suite/cmd"
	"github.com/shanmugaprathap/qa-enterprise-suite/internal/actions"
	"github.com/shanmugaprathap/qa-enterprise-suite/internal/interactive"
)

const defaultSuitePath = "suites/smoke.yaml"

func runInteractive() {
	fmt.Println("QA Suite - Interactive Mode")
	fmt.Println("===========================")
	fmt.Println()

	for {
		options := []interactive.MenuOption{
			{
				Name:        "🧪 Run Audit Suite",
				Description: "Audit every element locator of a suite definition",
				Action:      runSuiteAction,
			},
			{
				Name:        "🗄️  Reporting Management",
				Description: "Setup, teardown, and inspect the reporting database",
				Action:      showReportingMenu,
			},
			{
				Name:        "📋 Show Config",
				Description: "Display current environment configuration",
				Action: func() error {
					if err := actions.ShowConfig(); err != nil {
						fmt.Printf("\n❌ Error: %v\n", err)
					}
					interactive.PauseForEnter()
					return nil
				},
			},
		}

		if err := interactive.ShowMainMenu(options); err != nil {
			if errors.Is(err, interactive.ErrExit) {
				fmt.Println("Goodbye!")
				return
			}
			log.Fatal(err)
		}

		fmt.Println()
	}
}

func runSuiteAction() error {
	path, err := interactive.AskSuitePath(defaultSuitePath)
	if err != nil {
		// Cancelled prompt returns to the main menu
		return nil
	}

	if err := actions.Check(cmd.Logger, path, false); err != nil {
		fmt.Printf("\n❌ Error: %v\n", err)
	}
	interactive.PauseForEnter()
	return nil
}

func showReportingMenu() error {
	options := []interactive.MenuOption{
		{
			Name:        "Setup",
			Description: "Create the reporting database and run migrations (safe to run multiple times)",
			Action: func() error {
				if err := actions.Setup(true, false); err != nil {
					fmt.Printf("\n❌ Error: %v\n", err)
					interactive.PauseForEnter()
					return nil
				}

				if !interactive.Confirm("Do you want to proceed with the setup?") {
					fmt.Println("Setup canceled.")
					interactive.PauseForEnter()
					return nil
				}

				if err := actions.Setup(true, true); err != nil {
					fmt.Printf("\n❌ Error: %v\n", err)
				}
				interactive.PauseForEnter()
				return nil
			},
		},
		{
			Name:        "Teardown",
			Description: "Drop the reporting tables and all recorded audit history",
			Action: func() error {
				if err := actions.Teardown(true, false); err != nil {
					fmt.Printf("\n❌ Error: %v\n", err)
					interactive.PauseForEnter()
					return nil
				}

				if !interactive.Confirm("Do you want to proceed with the teardown?") {
					fmt.Println("Teardown canceled.")
					interactive.PauseForEnter()
					return nil
				}

				if err := actions.Teardown(true, true); err != nil {
					fmt.Printf("\n❌ Error: %v\n", err)
				}
				interactive.PauseForEnter()
				return nil
			},
		},
		{
			Name:        "Status",
			Description: "Show the reporting schema migration status",
			Action: func() error {
				if err := actions.MigrationStatus(); err != nil {
					fmt.Printf("\n❌ Error: %v\n", err)
				}
				interactive.PauseForEnter()
				return nil
			},
		},
	}

	if err := interactive.ShowMainMenu(options); err != nil && !errors.Is(err, interactive.ErrExit) {
		return err
	}
	return nil
}
