package main

import (
	"strings"
	"testing"
)

func TestRenderVersionPretty(t *testing.T) {
	info := versionInfo{Version: "1.2.3", GitCommit: "abc123", BuildDate: "2026-01-15"}

	var sb strings.Builder
	renderVersionPretty(&sb, info, false)
	if got := sb.String(); got != "fixdict 1.2.3\n" {
		t.Fatalf("unexpected short output: %q", got)
	}

	sb.Reset()
	renderVersionPretty(&sb, info, true)
	out := sb.String()
	if !strings.Contains(out, "commit: abc123") || !strings.Contains(out, "built:  2026-01-15") {
		t.Fatalf("full output missing build metadata: %q", out)
	}
}

func TestRenderVersionJSON(t *testing.T) {
	info := versionInfo{Version: "1.2.3"}

	var sb strings.Builder
	if err := renderVersionJSON(&sb, info, true); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, `"tool": "fixdict"`) {
		t.Fatalf("tool name missing: %q", out)
	}
	if !strings.Contains(out, `"git_commit": "unknown"`) {
		t.Fatalf("empty commit should render as unknown: %q", out)
	}

	sb.Reset()
	if err := renderVersionJSON(&sb, info, false); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(sb.String(), "git_commit") {
		t.Fatalf("short output should omit build metadata: %q", sb.String())
	}
}
