package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dl/boo/internal/cliconfig"
	"github.com/dl/boo/internal/engine"
	"github.com/dl/boo/internal/fpath"
	"github.com/dl/boo/internal/ui"
)

// noSelectionMarker is printed to stdout when the user cancels without
// picking a result.
const noSelectionMarker = "boo done :3"

// frameInterval is the UI redraw rate.
const frameInterval = time.Second / 30

// runInteractive drives the terminal UI event loop: raw-mode keyboard
// input typed into a query buffer, broadcast to the Engine on every
// change, with the Collector's current top-K snapshot rendered once
// per frame.
func runInteractive(eng *engine.Engine, cfg cliconfig.Config) error {
	term, err := ui.Open()
	if err != nil {
		return fmt.Errorf("terminal unavailable: %w", err)
	}
	defer term.Restore()
	if err := term.EnterRaw(); err != nil {
		return fmt.Errorf("terminal unavailable: %w", err)
	}

	styles := ui.NewStyles()

	keys := make(chan ui.Key)
	go func() {
		dec := ui.NewDecoder(term.ReadByte)
		for {
			k, err := dec.Next()
			if err != nil {
				close(keys)
				return
			}
			keys <- k
		}
	}()

	var query []rune
	selected := -1
	var picked *string

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

loop:
	for {
		select {
		case k, ok := <-keys:
			if !ok {
				break loop
			}
			switch k.Kind {
			case ui.KeyQuit:
				break loop
			case ui.KeyEnter:
				entries, _ := eng.Snapshot()
				if selected >= 0 && selected < len(entries) {
					picked = selectionText(entries[selected].Path, cfg.CdPath)
				}
				break loop
			case ui.KeyUp:
				if selected > -1 {
					selected--
				}
			case ui.KeyDown:
				selected++
			case ui.KeyBackspace:
				if len(query) > 0 {
					query = query[:len(query)-1]
					selected = -1
					eng.Search(string(query))
				}
			case ui.KeyDeleteWord:
				query = nil
				selected = -1
				eng.Search("")
			case ui.KeyRune:
				query = append(query, k.Rune)
				selected = -1
				eng.Search(string(query))
			}
		case <-ticker.C:
			render(term, styles, eng, query, selected)
		}
	}

	eng.Stop()

	if picked != nil {
		fmt.Println(*picked)
	} else {
		fmt.Println(noSelectionMarker)
	}
	return nil
}

// selectionText resolves what the final stdout line should be for a
// picked entry: the full path, or (with --cd-path) its containing
// folder — which requires one stat call to tell whether the picked
// path is itself a directory.
func selectionText(h fpath.Handle, cdPath bool) *string {
	if !cdPath {
		s := h.Path()
		return &s
	}
	info, err := os.Stat(h.Path())
	isDir := err == nil && info.IsDir()
	s := h.ContainingFolder(isDir)
	return &s
}

// render draws one frame: the query line, the status gauges, and the
// current top-K result list, one result per row, styled with
// lipgloss.
func render(term *ui.Terminal, styles ui.Styles, eng *engine.Engine, query []rune, selected int) {
	cols, _, err := term.Size()
	if err != nil || cols <= 0 {
		cols = 80
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s%s\n", styles.Prompt.Render("> "), styles.Query.Render(string(query)))

	status := fmt.Sprintf("items: %s  walkers: %d  searchers: %d",
		humanize.Comma(int64(eng.IndexedCount())), eng.ActiveWalkers(), eng.ActiveSearchers())
	if eng.IndexingComplete() {
		status += "  (done)"
	}
	fmt.Fprintln(&b, styles.Status.Render(status))

	entries, _ := eng.Snapshot()
	for i, e := range entries {
		path := e.Path.Path()
		if len(path) > cols-8 && cols > 8 {
			path = "…" + path[len(path)-(cols-9):]
		}
		row := fmt.Sprintf("%s  %s", styles.Score.Render(fmt.Sprintf("%6d", e.Score)), styles.Path.Render(path))
		if i == selected {
			row = styles.Selected.Render(row)
		}
		fmt.Fprintln(&b, row)
	}

	term.Write([]byte(b.String()))
}
