package main

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/dl/boo/internal/cliconfig"
	"github.com/dl/boo/internal/engine"
)

// runBoo validates cfg, starts the Engine, and dispatches to either the
// index-all spinner or the interactive finder. It returns a non-nil
// error only for a fatal startup error: every other exit, including a
// cancelled or completed search, returns nil and relies on the
// caller's os.Exit(0).
func runBoo(cfg cliconfig.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Both index-all's progress spinner and the interactive UI already
	// claim stderr; walker warnings share it rather than opening a
	// second output stream.
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "boo",
	})
	logger.SetLevel(log.WarnLevel)

	eng := engine.Start(engine.Options{
		Root:    cfg.Root,
		Workers: cfg.Workers,
		Globs:   cfg.Globs,
		OnWalkError: func(path string, err error) {
			logger.Warn("skipping unreadable directory", "path", path, "err", err)
		},
	})

	if cfg.IndexAll {
		return runIndexAll(eng)
	}
	return runInteractive(eng, cfg)
}
