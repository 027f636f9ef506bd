package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"fixdict/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "fixdict",
	Short: "FIX dictionary generator, merger and pruner",
	Long:  `fixdict builds FIX data dictionaries from tabular sources, merges overlays into base dictionaries and prunes them down to a message whitelist`,
}

// main wires the subcommands and persistent flags and executes the root
// command. Command failures exit with status code 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress informational diagnostics")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().Bool("no-cache", false, "bypass the parsed dictionary cache")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
