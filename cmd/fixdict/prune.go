package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fixdict/internal/config"
	"fixdict/internal/driver"
)

var pruneCmd = &cobra.Command{
	Use:   "prune [flags] <dict.xml>",
	Short: "Prune a dictionary down to a message whitelist",
	Long: `Prune a dictionary down to the messages named in a whitelist, keeping only
the fields and components still reachable from the retained messages, the
header and the trailer. The whitelist comes from a TOML config, repeated
--keep flags, or both.`,
	Args: cobra.ExactArgs(1),
	RunE: runPrune,
}

func init() {
	pruneCmd.Flags().StringP("output", "o", "pruned.xml", "output dictionary path")
	pruneCmd.Flags().String("config", "", "TOML file with a [prune] messages whitelist")
	pruneCmd.Flags().StringArray("keep", nil, "msgtype to keep (repeatable)")
}

func runPrune(cmd *cobra.Command, args []string) error {
	outPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	keepFlags, err := cmd.Flags().GetStringArray("keep")
	if err != nil {
		return fmt.Errorf("failed to get keep flag: %w", err)
	}

	// Demand an explicit whitelist source. An empty list in the config is a
	// deliberate "keep nothing beyond header and trailer"; forgetting both
	// flags is not.
	if configPath == "" && len(keepFlags) == 0 {
		return fmt.Errorf("no whitelist given: pass --config or at least one --keep")
	}

	var keep []string
	if configPath != "" {
		cfg, err := config.LoadPruneConfig(configPath)
		if err != nil {
			return err
		}
		keep = cfg.Messages()
	}
	keep = append(keep, keepFlags...)

	maxDiags, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}
	opts, err := reportOpts(cmd)
	if err != nil {
		return err
	}
	cache, err := openCache(cmd)
	if err != nil {
		return err
	}

	res, err := driver.Prune(args[0], outPath, keep, maxDiags, cache)
	if err != nil {
		return err
	}
	if err := printBag(cmd, res.Bag, opts); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d messages, %d components, %d fields retained\n",
		outPath, res.Retained.Messages, res.Retained.Components, res.Retained.Fields)
	return nil
}
