package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/dl/boo/internal/cliconfig"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := cliconfig.Config{Workers: runtime.NumCPU()}

	root := &cobra.Command{
		Use:     "boo [root]",
		Short:   "Interactive fuzzy file finder",
		Version: version + " (" + commit + ")",
		Args:    cobra.MaximumNArgs(1),
		// Unknown flags are ignored rather than rejected, so future
		// releases can add flags without breaking older config files.
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE: func(_ *cobra.Command, args []string) error {
			opts.Root = "."
			if len(args) == 1 {
				opts.Root = args[0]
			}
			return runBoo(opts)
		},
	}

	root.Flags().BoolVar(&opts.IndexAll, "index-all", false, "Walk to completion and exit without interaction")
	root.Flags().BoolVar(&opts.CdPath, "cd-path", false, "On selection, print the containing folder instead of the full path")
	root.Flags().IntVar(&opts.Workers, "workers", opts.Workers, "Number of walker/search worker goroutines")
	root.Flags().StringArrayVar(&opts.Globs, "glob", nil, "Glob pattern to filter discovered paths (repeatable, ! prefix excludes)")

	root.SetArgs(append(cliconfig.LoadConfigArgs(), os.Args[1:]...))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "boo:", err)
		return 1
	}
	return 0
}
