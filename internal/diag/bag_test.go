package diag

import "testing"

func TestBagRespectsLimit(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(Diagnostic{Code: BldDuplicateField, Severity: SevInfo, Subject: "a"}) {
		t.Fatalf("first add should succeed")
	}
	if !bag.Add(Diagnostic{Code: BldDuplicateField, Severity: SevInfo, Subject: "b"}) {
		t.Fatalf("second add should succeed")
	}
	if bag.Add(Diagnostic{Code: BldDuplicateField, Severity: SevInfo, Subject: "c"}) {
		t.Fatalf("add beyond capacity should fail")
	}
	if bag.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", bag.Len())
	}
}

func TestBagSeverityQueries(t *testing.T) {
	bag := NewBag(10)
	bag.Add(Diagnostic{Code: MrgTagAlreadyDefined, Severity: SevInfo})
	if bag.HasWarnings() || bag.HasErrors() {
		t.Fatalf("info-only bag must report no warnings or errors")
	}
	bag.Add(Diagnostic{Code: MrgTagConflict, Severity: SevWarning})
	if !bag.HasWarnings() {
		t.Fatalf("expected warnings after warning added")
	}
	if bag.HasErrors() {
		t.Fatalf("no errors expected")
	}
	bag.Add(Diagnostic{Code: DocDanglingComponent, Severity: SevError})
	if !bag.HasErrors() {
		t.Fatalf("expected errors after error added")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	bag := NewBag(10)
	bag.Add(Diagnostic{Code: MrgTagConflict, Severity: SevWarning, Subject: "200", Message: "x"})
	bag.Add(Diagnostic{Code: BldBadEnumValue, Severity: SevWarning, Subject: "11", Message: "y"})
	bag.Add(Diagnostic{Code: MrgTagConflict, Severity: SevWarning, Subject: "200", Message: "x"})
	bag.Sort()
	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("expected 2 items after dedup, got %d", bag.Len())
	}
	if bag.Items()[0].Code != BldBadEnumValue {
		t.Fatalf("expected builder diagnostic first, got %v", bag.Items()[0].Code)
	}
}

func TestDedupReporterForwardsOnce(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	r.Report(MrgOverlayDuplicate, SevWarning, "100", "declared twice", nil)
	r.Report(MrgOverlayDuplicate, SevWarning, "100", "declared twice", nil)
	r.Report(MrgOverlayDuplicate, SevWarning, "101", "declared twice", nil)
	if bag.Len() != 2 {
		t.Fatalf("expected 2 forwarded diagnostics, got %d", bag.Len())
	}
}
