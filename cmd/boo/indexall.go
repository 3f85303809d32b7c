package main

import (
	"fmt"
	"time"

	"github.com/dl/boo/internal/engine"
	"github.com/dl/boo/internal/progress"
)

// pollInterval is how often index-all mode checks the walker pool's
// active_walkers counter and refreshes the spinner.
const pollInterval = 25 * time.Millisecond

// runIndexAll walks the tree to completion with no interaction,
// showing a spinner of the live discovered count, then exits cleanly.
// Exactly one placeholder line is printed to stdout, since index-all
// never makes a selection.
func runIndexAll(eng *engine.Engine) error {
	spin := progress.New(true)

	for eng.ActiveWalkers() > 0 {
		spin.Update(eng.IndexedCount())
		time.Sleep(pollInterval)
	}
	spin.Finish(eng.IndexedCount())

	eng.Stop()
	eng.Wait()

	fmt.Println(noSelectionMarker)
	return nil
}
