// Package progress wraps schollz/progressbar for boo's --index-all
// mode: a spinner on stderr tracking the live discovered item count
// until the walker pool finishes. There is no upfront total to measure
// against, so this is an indeterminate spinner rather than a
// determinate bar.
package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
)

const updateInterval = 50 * time.Millisecond

// Spinner wraps a progressbar spinner. All methods are no-ops when
// disabled.
type Spinner struct {
	bar *progressbar.ProgressBar
}

// New creates a Spinner. If enabled is false, every method is a no-op.
func New(enabled bool) *Spinner {
	if !enabled {
		return &Spinner{}
	}
	return &Spinner{bar: progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(updateInterval),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetElapsedTime(true),
	)}
}

// Update sets the spinner's description to the current indexed count,
// comma-grouped via go-humanize.
func (s *Spinner) Update(indexed int) {
	if s.bar == nil {
		return
	}
	s.bar.Describe(fmt.Sprintf("indexing: %s items", humanize.Comma(int64(indexed))))
	_ = s.bar.Add(0)
}

// Finish completes the spinner and prints a final summary line.
func (s *Spinner) Finish(indexed int) {
	if s.bar == nil {
		return
	}
	_ = s.bar.Finish()
	fmt.Fprintf(os.Stderr, "indexed %s items\n", humanize.Comma(int64(indexed)))
}
