// Package interactive provides terminal user interface components
package interactive

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
)

// MenuOption represents a menu item with its associated action
type MenuOption struct {
	Name        string
	Description string
	Action      func() error
}

// ErrExit is returned when the user chooses to exit
var ErrExit = errors.New("exit")

// ShowMainMenu displays the main menu and runs the selected action.
func ShowMainMenu(options []MenuOption) error {
	choices := make([]string, 0, len(options)+1)
	for _, opt := range options {
		choices = append(choices, fmt.Sprintf("%s - %s", opt.Name, opt.Description))
	}
	choices = append(choices, "Exit")

	var selected int
	prompt := &survey.Select{
		Message: "What would you like to do?",
		Options: choices,
	}

	if err := survey.AskOne(prompt, &selected); err != nil {
		return ErrExit
	}

	if selected >= len(options) {
		return ErrExit
	}

	return options[selected].Action()
}

// AskSuitePath prompts for the path to an audit suite definition.
func AskSuitePath(defaultPath string) (string, error) {
	path := ""
	prompt := &survey.Input{
		Message: "Suite definition to run:",
		Default: defaultPath,
	}
	if err := survey.AskOne(prompt, &path, survey.WithValidator(survey.Required)); err != nil {
		return "", ErrExit
	}
	return path, nil
}

// PauseForEnter waits for the user to press Enter
func PauseForEnter() {
	fmt.Println("\nPress Enter to continue...")
	_, _ = fmt.Scanln()
}

// Confirm asks for user confirmation
func Confirm(message string) bool {
	confirmed := false
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}
	_ = survey.AskOne(prompt, &confirmed)
	return confirmed
}
