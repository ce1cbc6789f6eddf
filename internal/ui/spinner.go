package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner shows progress on stderr while a blocking call runs. It is purely
// cosmetic: quiet mode or a non-terminal stderr disables it entirely.
type Spinner struct {
	message string
	out     io.Writer
	enabled bool
	done    chan struct{}
	stopped chan struct{}
}

// NewSpinner creates a spinner for the given status message.
func NewSpinner(message string, quiet bool) *Spinner {
	return &Spinner{
		message: message,
		out:     os.Stderr,
		enabled: !quiet && isatty.IsTerminal(os.Stderr.Fd()),
	}
}

// Start begins the animation. Calling Start on a disabled spinner is a no-op.
func (s *Spinner) Start() {
	if !s.enabled || s.done != nil {
		return
	}
	s.done = make(chan struct{})
	s.stopped = make(chan struct{})

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		idx := 0
		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				fmt.Fprintf(s.out, "\r%s %s...", spinnerFrames[idx%len(spinnerFrames)], s.message)
				idx++
			}
		}
	}()
}

// Stop halts the animation and clears the line.
func (s *Spinner) Stop() {
	if s.done == nil {
		return
	}
	close(s.done)
	<-s.stopped
	s.done = nil
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.message)+10))
}
