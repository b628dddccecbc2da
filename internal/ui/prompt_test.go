package ui

import (
	"errors"
	"testing"

	"github.com/manifoldco/promptui"
)

func TestConfirmPromptAbortHandling(t *testing.T) {
	// ConfirmPrompt maps promptui.ErrAbort to a cancellation error.
	// Running the prompt itself needs an interactive terminal, so this
	// covers the error it translates.
	err := promptui.ErrAbort
	if err == nil {
		t.Error("promptui.ErrAbort should not be nil")
	}

	customErr := errors.New("custom error")
	if customErr == nil {
		t.Error("custom error should not be nil")
	}
}

func TestConfirmPrompt(t *testing.T) {
	// Verifies the function exists and has the right signature; actually
	// running it would require interactive input.
	_ = ConfirmPrompt
}
