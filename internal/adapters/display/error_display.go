package display

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"

	"github.com/nigamshah29/TokenCrowdsale/internal/usecase"
)

// ErrorRegion is the terminal rendition of the page's error element. It keeps
// the current message and echoes replacements to its writer.
type ErrorRegion struct {
	mu      sync.Mutex
	out     io.Writer
	current string
	muted   bool
}

// NewErrorRegion creates an error region writing to stderr
func NewErrorRegion() *ErrorRegion {
	return &ErrorRegion{out: os.Stderr}
}

// NewErrorRegionWriter creates an error region writing to out
func NewErrorRegionWriter(out io.Writer) *ErrorRegion {
	return &ErrorRegion{out: out}
}

// Show replaces the region's content; an empty message clears it and prints nothing
func (r *ErrorRegion) Show(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = message
	if message == "" || r.muted {
		return
	}
	fmt.Fprintln(r.out, color.New(color.FgRed).Sprintf("❌ %s", message))
}

// Current returns the region's content
func (r *ErrorRegion) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Mute stops echoing, for front ends that draw the region themselves
func (r *ErrorRegion) Mute(muted bool) {
	r.mu.Lock()
	r.muted = muted
	r.mu.Unlock()
}

// Ensure ErrorRegion implements ErrorDisplay
var _ usecase.ErrorDisplay = (*ErrorRegion)(nil)
