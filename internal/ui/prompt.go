package ui

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
)

// ConfirmPrompt asks a yes/no confirmation question
func ConfirmPrompt(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	result, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, fmt.Errorf("operation cancelled by user")
		}
		return false, err
	}

	// promptui returns "y" for yes
	return result == "y", nil
}
