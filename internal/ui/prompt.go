package ui

import (
	"strings"

	"github.com/pterm/pterm"
)

// Ask returns current when it is set, otherwise prompts the user for a value
func Ask(question, current string) (string, error) {
	if current != "" {
		return current, nil
	}
	answer, err := pterm.DefaultInteractiveTextInput.Show(question)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}
