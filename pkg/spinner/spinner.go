// Package spinner draws a single-line terminal activity indicator.
package spinner

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// DefaultInterval is the frame period used by Run.
const DefaultInterval = 100 * time.Millisecond

// Spinner struct holds the spinner state
type Spinner struct {
	out     io.Writer
	message string
	frames  []string
	index   int
	mu      sync.Mutex
}

// NewSpinner creates a new spinner writing to out, followed by message
func NewSpinner(out io.Writer, message string) *Spinner {
	// Define a new spinner sequence to create an effect of a braille arrow
	return &Spinner{
		out:     out,
		message: message,
		frames: []string{
			"⣀⣀ ",
			"⣄⣀ ",
			"⣤⣀ ",
			"⣦⣄ ",
			"⣶⣤ ",
			"⣿⣦ ",
			"⣿⣷ ",
			"⣿⣿ ",
			"⣿⣿ ",
			"⣷⣿ ",
			"⣦⣿ ",
			"⣤⣷ ",
			"⣄⣦ ",
			"⣀⣤ ",
			"⣀⣄ ",
			"⣀⣀ ",
		},
	}
}

// Update advances the spinner to the next frame and prints it.
func (s *Spinner) Update() {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Hide cursor
	_, _ = fmt.Fprint(s.out, "\033[?25l")

	// Print the current frame
	_, _ = fmt.Fprintf(s.out, "\r%s%s", s.frames[s.index], s.message)

	// Advance to the next frame
	s.index++
	if s.index >= len(s.frames) {
		s.index = 0
	}
}

// Cleanup clears the spinner line and shows the cursor
func (s *Spinner) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprint(s.out, "\r\033[2K") // Clear the line
	_, _ = fmt.Fprint(s.out, "\033[?25h") // Show cursor
}

// Run animates the spinner every interval until done is closed, then cleans up.
func (s *Spinner) Run(done <-chan struct{}, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer s.Cleanup()

	s.Update()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.Update()
		}
	}
}
