package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpinner(t *testing.T) {
	s := NewSpinner("working...")
	assert.NotNil(t, s)

	s.Describe("still working...")
	time.Sleep(150 * time.Millisecond)

	// Stop must not panic and must halt the refresh goroutine
	s.Stop()
}
