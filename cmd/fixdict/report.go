package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fixdict/internal/diag"
	"fixdict/internal/diagfmt"
	"fixdict/internal/driver"
)

const cacheAppName = "fixdict"

// reportOpts resolves the persistent output flags into rendering options.
func reportOpts(cmd *cobra.Command) (diagfmt.Opts, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return diagfmt.Opts{}, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "auto", "on", "off":
	default:
		return diagfmt.Opts{}, fmt.Errorf("unknown color value: %s", colorFlag)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return diagfmt.Opts{}, fmt.Errorf("failed to get quiet flag: %w", err)
	}

	opts := diagfmt.Opts{
		Color: colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr)),
	}
	if quiet {
		opts.MinSeverity = diag.SevWarning
	}
	return opts, nil
}

func maxDiagnostics(cmd *cobra.Command) (int, error) {
	n, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return n, nil
}

// openCache returns the parsed dictionary cache, or nil when --no-cache is
// set. An unusable cache location degrades to no caching instead of failing
// the run.
func openCache(cmd *cobra.Command) (*driver.DictCache, error) {
	noCache, err := cmd.Root().PersistentFlags().GetBool("no-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if noCache {
		return nil, nil
	}
	cache, err := driver.OpenDictCache(cacheAppName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fixdict: cache unavailable: %v\n", err)
		return nil, nil
	}
	return cache, nil
}

// printBag renders the bag to stderr. Accumulated errors become a silent
// command failure: the diagnostics already printed are the error message.
func printBag(cmd *cobra.Command, bag *diag.Bag, opts diagfmt.Opts) error {
	bag.Sort()
	diagfmt.Print(os.Stderr, bag, opts)
	if bag.HasErrors() {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}
