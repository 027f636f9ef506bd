package diagfmt

import (
	"strings"
	"testing"

	"fixdict/internal/diag"
)

func TestPrintPlain(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.MrgTagConflict,
		Subject:  "100",
		Message:  "tag 100 has a divergent definition, keeping the base one",
		Notes: []diag.Note{
			{Msg: "base:    name=Foo, type=STRING"},
			{Msg: "overlay: name=Bar, type=INT"},
		},
	})

	var sb strings.Builder
	Print(&sb, bag, Opts{})
	out := sb.String()

	if !strings.Contains(out, "WARNING [MRG2002] 100: tag 100") {
		t.Fatalf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "  -> base:    name=Foo, type=STRING") {
		t.Fatalf("notes missing: %q", out)
	}
}

func TestPrintMinSeverity(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{Severity: diag.SevInfo, Code: diag.MrgTagAlreadyDefined, Message: "info line"})
	bag.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.MrgTagConflict, Message: "warning line"})

	var sb strings.Builder
	Print(&sb, bag, Opts{MinSeverity: diag.SevWarning})
	out := sb.String()

	if strings.Contains(out, "info line") {
		t.Fatalf("info should be filtered: %q", out)
	}
	if !strings.Contains(out, "warning line") {
		t.Fatalf("warning should survive: %q", out)
	}
}
