package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"fixdict/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the parsed dictionary cache",
	Long:  "Remove the on-disk cache of parsed dictionary documents.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(cmd *cobra.Command, _ []string) error {
	cache, err := driver.OpenDictCache(cacheAppName)
	if err != nil {
		return fmt.Errorf("failed to resolve cache directory: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to remove cache: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", filepath.Join(cache.Dir(), "dicts"))
	return nil
}
