package build

import (
	"testing"

	"fixdict/internal/diag"
	"fixdict/internal/dict"
	"fixdict/internal/tabular"
)

var testProto = dict.Protocol{Type: "FIX", Major: "4", Minor: "4", ServicePack: "0"}

func row(msgType, msgName, tag, elem, kind, dataType, required, enums string) tabular.Row {
	return tabular.Row{
		MsgType:     msgType,
		MsgName:     msgName,
		TagNumber:   tag,
		ElementName: elem,
		ElementKind: kind,
		DataType:    dataType,
		Required:    required,
		EnumValues:  enums,
	}
}

func buildWithBag(t *testing.T, rows []tabular.Row) (*dict.Document, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(100)
	doc := Build(rows, testProto, diag.BagReporter{Bag: bag})
	if doc == nil {
		t.Fatalf("Build returned nil document")
	}
	return doc, bag
}

func TestBuildSingleRow(t *testing.T) {
	doc, bag := buildWithBag(t, []tabular.Row{
		row("D", "NewOrder", "11", "ClOrdID", "field", "string", "y", ""),
	})

	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %v", bag.Items())
	}
	if len(doc.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(doc.Messages))
	}
	msg := doc.Messages[0]
	if msg.MsgType != "D" || msg.Name != "NewOrder" || msg.MsgCat != "app" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if len(msg.Members) != 1 || msg.Members[0].Name != "ClOrdID" || !msg.Members[0].Required {
		t.Fatalf("unexpected members: %+v", msg.Members)
	}
	f := doc.FieldByTag(11)
	if f == nil || f.Name != "ClOrdID" || f.Type != "STRING" {
		t.Fatalf("unexpected field: %+v", f)
	}
}

func TestBuildEnumValues(t *testing.T) {
	doc, bag := buildWithBag(t, []tabular.Row{
		row("D", "NewOrder", "40", "OrdType", "field", "CHAR", "Y", "1:Market | 2:Limit"),
	})

	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %v", bag.Items())
	}
	f := doc.FieldByTag(40)
	if f == nil || len(f.Values) != 2 {
		t.Fatalf("unexpected field: %+v", f)
	}
	// spaces stripped, everything upper-cased
	if f.Values[0].Enum != "1" || f.Values[0].Description != "MARKET" {
		t.Fatalf("unexpected first value: %+v", f.Values[0])
	}
	if f.Values[1].Enum != "2" || f.Values[1].Description != "LIMIT" {
		t.Fatalf("unexpected second value: %+v", f.Values[1])
	}
}

func TestBuildBadEnumFragmentSkipped(t *testing.T) {
	doc, bag := buildWithBag(t, []tabular.Row{
		row("D", "NewOrder", "40", "OrdType", "field", "CHAR", "Y", "1:Market|bogus|2:Limit"),
	})

	f := doc.FieldByTag(40)
	if f == nil || len(f.Values) != 2 {
		t.Fatalf("expected bad fragment skipped, got %+v", f)
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.BldBadEnumValue {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected BldBadEnumValue diagnostic, got %v", bag.Items())
	}
}

func TestBuildConflictSkipsMembership(t *testing.T) {
	doc, bag := buildWithBag(t, []tabular.Row{
		row("D", "NewOrder", "11", "ClOrdID", "field", "STRING", "Y", ""),
		row("8", "ExecReport", "12", "ClOrdID", "field", "INT", "N", ""),
	})

	conflicts := 0
	for _, d := range bag.Items() {
		if d.Code == diag.BldFieldConflict {
			conflicts++
		}
	}
	if conflicts != 1 {
		t.Fatalf("expected exactly one conflict, got %d (%v)", conflicts, bag.Items())
	}

	// first occurrence wins
	f := doc.FieldByName("ClOrdID")
	if f == nil || f.Tag != 11 || f.Type != "STRING" {
		t.Fatalf("first-seen definition lost: %+v", f)
	}

	// skip-on-conflict: the losing row contributes no membership at all
	if exec := doc.MessageByType("8"); exec != nil {
		t.Fatalf("conflicting row must not contribute membership, got %+v", exec)
	}
}

func TestBuildBenignDuplicate(t *testing.T) {
	doc, bag := buildWithBag(t, []tabular.Row{
		row("D", "NewOrder", "11", "ClOrdID", "field", "STRING", "Y", ""),
		row("8", "ExecReport", "11", "ClOrdID", "field", "STRING", "N", ""),
	})

	if len(doc.Fields) != 1 {
		t.Fatalf("expected single field entry, got %d", len(doc.Fields))
	}
	exec := doc.MessageByType("8")
	if exec == nil || len(exec.Members) != 1 {
		t.Fatalf("benign duplicate must keep membership, got %+v", exec)
	}
	dup := false
	for _, d := range bag.Items() {
		if d.Code == diag.BldDuplicateField && d.Severity == diag.SevInfo {
			dup = true
		}
	}
	if !dup {
		t.Fatalf("expected benign duplicate info, got %v", bag.Items())
	}
}

func TestBuildDropsRepeatedMemberInMessage(t *testing.T) {
	doc, _ := buildWithBag(t, []tabular.Row{
		row("D", "NewOrder", "11", "ClOrdID", "field", "STRING", "Y", ""),
		row("D", "NewOrder", "11", "ClOrdID", "field", "STRING", "Y", ""),
	})

	msg := doc.MessageByType("D")
	if len(msg.Members) != 1 {
		t.Fatalf("expected second occurrence dropped, got %+v", msg.Members)
	}
	if len(doc.Fields) != 1 {
		t.Fatalf("field table must be unaffected, got %d entries", len(doc.Fields))
	}
}

func TestBuildComponentRow(t *testing.T) {
	doc, bag := buildWithBag(t, []tabular.Row{
		row("D", "NewOrder", "", "Instrument", "component", "", "Y", ""),
	})

	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %v", bag.Items())
	}
	comp := doc.ComponentByName("Instrument")
	if comp == nil {
		t.Fatalf("expected placeholder component definition")
	}
	msg := doc.MessageByType("D")
	if len(msg.Members) != 1 || msg.Members[0].Kind != dict.KindComponent {
		t.Fatalf("expected component member, got %+v", msg.Members)
	}
}

func TestBuildMessageOrderFollowsRows(t *testing.T) {
	doc, _ := buildWithBag(t, []tabular.Row{
		row("8", "ExecReport", "150", "ExecType", "field", "CHAR", "N", ""),
		row("D", "NewOrder", "11", "ClOrdID", "field", "STRING", "Y", ""),
		row("8", "ExecReport", "11", "ClOrdID", "field", "STRING", "N", ""),
	})

	if len(doc.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(doc.Messages))
	}
	if doc.Messages[0].MsgType != "8" || doc.Messages[1].MsgType != "D" {
		t.Fatalf("message order must follow row order: %+v", doc.Messages)
	}
}

func TestBuildBadTagNumber(t *testing.T) {
	doc, bag := buildWithBag(t, []tabular.Row{
		row("D", "NewOrder", "abc", "ClOrdID", "field", "STRING", "Y", ""),
	})

	if doc.FieldByName("ClOrdID") != nil {
		t.Fatalf("row with bad tag must not declare a field")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.BldBadTagNumber {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected BldBadTagNumber diagnostic, got %v", bag.Items())
	}
}
