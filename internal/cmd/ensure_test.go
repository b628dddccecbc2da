package cmd

import (
	"bytes"
	"io"
	"testing"

	"github.com/quantmind-br/nodepm/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewEnsureCmd(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	log := zerolog.New(io.Discard)

	cmd := NewEnsureCmd(cfg, &log)

	assert.NotNil(t, cmd)
	assert.Equal(t, "ensure [package]", cmd.Use)
}

func TestEnsureCmd_Flags(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	log := zerolog.New(io.Discard)
	cmd := NewEnsureCmd(cfg, &log)

	assert.NotNil(t, cmd.Flags().Lookup("dev"))
	assert.NotNil(t, cmd.Flags().Lookup("workspace"))
	assert.Nil(t, cmd.Flags().Lookup("global"))
}

func TestEnsureCmd_RequiresExactlyOnePackage(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	log := zerolog.New(io.Discard)

	for _, args := range [][]string{{}, {"a", "b"}} {
		cmd := NewEnsureCmd(cfg, &log)
		var buf bytes.Buffer
		cmd.SetOut(&buf)
		cmd.SetErr(&buf)
		cmd.SetArgs(args)
		assert.Error(t, cmd.Execute())
	}
}
