package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keep.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadPruneConfig(t *testing.T) {
	path := writeConfig(t, "[prune]\nmessages = [\"D\", \"8\", \" G \"]\n")
	cfg, err := LoadPruneConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	got := cfg.Messages()
	want := []string{"D", "8", "G"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestLoadPruneConfigEmptyListIsValid(t *testing.T) {
	path := writeConfig(t, "[prune]\nmessages = []\n")
	cfg, err := LoadPruneConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(cfg.Messages()) != 0 {
		t.Fatalf("expected empty whitelist, got %v", cfg.Messages())
	}
}

func TestLoadPruneConfigMissingSection(t *testing.T) {
	path := writeConfig(t, "messages = [\"D\"]\n")
	if _, err := LoadPruneConfig(path); err == nil {
		t.Fatalf("expected error for missing [prune] section")
	}
}

func TestLoadPruneConfigMissingMessages(t *testing.T) {
	path := writeConfig(t, "[prune]\n")
	if _, err := LoadPruneConfig(path); err == nil {
		t.Fatalf("expected error for missing [prune].messages")
	}
}

func TestLoadPruneConfigMissingFile(t *testing.T) {
	if _, err := LoadPruneConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
