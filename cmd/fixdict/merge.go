package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fixdict/internal/driver"
	"fixdict/internal/merge"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [flags] <base.xml> <overlay.xml>",
	Short: "Merge an overlay dictionary into a base dictionary",
	Long: `Merge an overlay dictionary into a base dictionary. The base wins every
conflict: a tag defined in both with divergent name or type keeps its base
definition and the overlay's is dropped with a warning.`,
	Args: cobra.ExactArgs(2),
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringP("output", "o", "merged.xml", "output dictionary path")
	mergeCmd.Flags().Int("msgtype-tag", merge.DefaultMsgTypeTag, "tag carrying the message-type enum")
}

func runMerge(cmd *cobra.Command, args []string) error {
	outPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	msgTypeTag, err := cmd.Flags().GetInt("msgtype-tag")
	if err != nil {
		return fmt.Errorf("failed to get msgtype-tag flag: %w", err)
	}
	if msgTypeTag <= 0 {
		return fmt.Errorf("msgtype-tag must be positive, got %d", msgTypeTag)
	}

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

	res, err := driver.Merge(args[0], args[1], outPath, merge.Options{MsgTypeTag: msgTypeTag}, maxDiags, cache)
	if err != nil {
		return err
	}
	if err := printBag(cmd, res.Bag, opts); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: +%d fields, +%d messages, +%d components, +%d enum values\n",
		outPath, res.Stats.FieldsAdded, res.Stats.MessagesAdded, res.Stats.ComponentsAdded, res.Stats.EnumValuesAdded)
	return nil
}
