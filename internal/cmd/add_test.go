package cmd

import (
	"bytes"
	"io"
	"testing"

	"github.com/quantmind-br/nodepm/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewAddCmd(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	log := zerolog.New(io.Discard)

	cmd := NewAddCmd(cfg, &log)

	assert.NotNil(t, cmd)
	assert.Equal(t, "add [packages...]", cmd.Use)
}

func TestAddCmd_Flags(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	log := zerolog.New(io.Discard)
	cmd := NewAddCmd(cfg, &log)

	assert.NotNil(t, cmd.Flags().Lookup("dev"))
	assert.NotNil(t, cmd.Flags().Lookup("global"))
	assert.NotNil(t, cmd.Flags().Lookup("workspace"))
	assert.NotNil(t, cmd.Flags().Lookup("pm"))
}

func TestAddCmd_RequiresPackage(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	log := zerolog.New(io.Discard)
	cmd := NewAddCmd(cfg, &log)

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	cmd.SetArgs([]string{})
	err := cmd.Execute()
	assert.Error(t, err)
}

func TestAddCmd_UnknownManagerSuggestion(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	log := zerolog.New(io.Discard)
	cmd := NewAddCmd(cfg, &log)

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	cmd.SetArgs([]string{"--pm", "npn", "left-pad"})
	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "npm"`)
}
