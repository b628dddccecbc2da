package cmd

import (
	"bytes"
	"io"
	"testing"

	"github.com/quantmind-br/nodepm/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewRemoveCmd(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	log := zerolog.New(io.Discard)

	cmd := NewRemoveCmd(cfg, &log)

	assert.NotNil(t, cmd)
	assert.Equal(t, "remove [package]", cmd.Use)
	assert.Contains(t, cmd.Aliases, "rm")
	assert.Contains(t, cmd.Aliases, "uninstall")
}

func TestRemoveCmd_Flags(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	log := zerolog.New(io.Discard)
	cmd := NewRemoveCmd(cfg, &log)

	assert.NotNil(t, cmd.Flags().Lookup("dev"))
	assert.NotNil(t, cmd.Flags().Lookup("global"))
	assert.NotNil(t, cmd.Flags().Lookup("workspace"))
	assert.NotNil(t, cmd.Flags().Lookup("yes"))
}

func TestRemoveCmd_RequiresExactlyOnePackage(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	log := zerolog.New(io.Discard)

	for _, args := range [][]string{{}, {"a", "b"}} {
		cmd := NewRemoveCmd(cfg, &log)
		var buf bytes.Buffer
		cmd.SetOut(&buf)
		cmd.SetErr(&buf)
		cmd.SetArgs(args)
		assert.Error(t, cmd.Execute())
	}
}

func TestRemoveCmd_DeclinedConfirmationCancels(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	log := zerolog.New(io.Discard)
	cmd := NewRemoveCmd(cfg, &log)

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	// Without --yes the confirmation prompt runs first; with no terminal
	// attached it fails, which must read as a decline. A decline exits
	// cleanly before anything is delegated or detected, so the empty
	// project directory is never even inspected.
	cmd.SetArgs([]string{"--cwd", t.TempDir(), "left-pad"})
	assert.NoError(t, cmd.Execute())
}

func TestRemoveCmd_UnknownManager(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	log := zerolog.New(io.Discard)
	cmd := NewRemoveCmd(cfg, &log)

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	// --yes skips the prompt so the manager check is reached
	cmd.SetArgs([]string{"--yes", "--pm", "yran", "left-pad"})
	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown package manager")
}
