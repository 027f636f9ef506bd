// Package config loads the small TOML files that drive fixdict runs.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// PruneConfig is the whitelist input of the prune stage:
//
//	[prune]
//	messages = ["D", "8", "G"]
type PruneConfig struct {
	Prune pruneSection `toml:"prune"`
}

type pruneSection struct {
	Messages []string `toml:"messages"`
}

// Messages returns the whitelisted message-type codes, trimmed, empty entries
// dropped.
func (c PruneConfig) Messages() []string {
	out := make([]string, 0, len(c.Prune.Messages))
	for _, m := range c.Prune.Messages {
		m = strings.TrimSpace(m)
		if m != "" {
			out = append(out, m)
		}
	}
	return out
}

// LoadPruneConfig reads and validates a prune whitelist file.
func LoadPruneConfig(path string) (PruneConfig, error) {
	var cfg PruneConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return PruneConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("prune") {
		return PruneConfig{}, fmt.Errorf("%s: missing [prune]", path)
	}
	if !meta.IsDefined("prune", "messages") {
		return PruneConfig{}, fmt.Errorf("%s: missing [prune].messages", path)
	}
	return cfg, nil
}
