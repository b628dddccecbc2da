package ui

import (
	"time"

	"github.com/schollz/progressbar/v3"
)

// Spinner shows indeterminate progress while a delegated subprocess runs
// with suppressed stdio.
type Spinner struct {
	bar  *progressbar.ProgressBar
	done chan struct{}
}

// NewSpinner creates and starts a spinner with the given description
func NewSpinner(description string) *Spinner {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(10),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetRenderBlankState(true),
	)

	s := &Spinner{bar: bar, done: make(chan struct{})}

	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				s.bar.Add(1)
			}
		}
	}()

	return s
}

// Describe changes the spinner description
func (s *Spinner) Describe(description string) {
	s.bar.Describe(description)
}

// Stop halts the spinner and clears it from the terminal
func (s *Spinner) Stop() {
	close(s.done)
	s.bar.Clear()
}
