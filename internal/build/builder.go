// Package build implements the definition builder: it turns the flat tabular
// source into a fresh dictionary document, deduplicating element declarations
// and grouping rows into messages.
package build

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"fixdict/internal/diag"
	"fixdict/internal/dict"
	"fixdict/internal/tabular"
)

var upper = cases.Upper(language.Und)

// elementDecl is the canonical first-seen declaration of an element name.
type elementDecl struct {
	kind     dict.MemberKind
	tag      int
	dataType string
	values   []dict.EnumValue
}

// builder owns the transient identity maps for the duration of one Build
// call. It is discarded after producing the immutable output document.
type builder struct {
	reporter diag.Reporter

	elements     map[string]*elementDecl
	elementOrder []string
	duplicates   map[string]bool

	messages     map[messageKey]*dict.Message
	messageOrder []messageKey
	seenMembers  map[messageKey]map[string]bool
}

type messageKey struct {
	msgType string
	msgName string
}

// Build assembles a document from source rows. First occurrence of an element
// name wins; a repeat with a different tag or data type is reported as a
// conflict and contributes no message membership. Non-fatal findings go to
// the reporter, the build itself always completes.
func Build(rows []tabular.Row, proto dict.Protocol, reporter diag.Reporter) *dict.Document {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	b := &builder{
		reporter:    reporter,
		elements:    make(map[string]*elementDecl),
		duplicates:  make(map[string]bool),
		messages:    make(map[messageKey]*dict.Message),
		seenMembers: make(map[messageKey]map[string]bool),
	}
	if len(rows) == 0 {
		reporter.Report(diag.BldEmptySource, diag.SevWarning, "", "source contains no rows", nil)
	}
	for _, row := range rows {
		b.addRow(row)
	}
	b.reportDuplicates()
	return b.document(proto)
}

func (b *builder) addRow(row tabular.Row) {
	kind, ok := memberKind(row.ElementKind)
	if !ok {
		b.reporter.Report(diag.BldUnknownKind, diag.SevWarning, row.ElementName,
			fmt.Sprintf("element %q has unknown kind %q (want field or component)", row.ElementName, row.ElementKind), nil)
		return
	}

	dataType := upper.String(row.DataType)
	required := upper.String(row.Required) == "Y"

	tag := 0
	if kind == dict.KindField {
		parsed, err := strconv.Atoi(row.TagNumber)
		if err != nil {
			b.reporter.Report(diag.BldBadTagNumber, diag.SevWarning, row.ElementName,
				fmt.Sprintf("element %q has non-numeric tag %q", row.ElementName, row.TagNumber), nil)
			return
		}
		tag = parsed
	}

	if existing, ok := b.elements[row.ElementName]; ok {
		if existing.tag != tag || existing.dataType != dataType {
			b.reporter.Report(diag.BldFieldConflict, diag.SevWarning, row.ElementName,
				fmt.Sprintf("element %q declared multiple times with different tag or type", row.ElementName),
				[]diag.Note{
					{Msg: fmt.Sprintf("first: tag=%d type=%s", existing.tag, existing.dataType)},
					{Msg: fmt.Sprintf("now:  tag=%d type=%s", tag, dataType)},
				})
			// skip-on-conflict: no message membership for the losing row
			return
		}
		b.duplicates[row.ElementName] = true
	} else {
		decl := &elementDecl{kind: kind, tag: tag, dataType: dataType}
		if kind == dict.KindField {
			decl.values = b.parseEnumValues(row.EnumValues, row.ElementName)
		}
		b.elements[row.ElementName] = decl
		b.elementOrder = append(b.elementOrder, row.ElementName)
	}

	b.addMembership(row, kind, required)
}

func (b *builder) addMembership(row tabular.Row, kind dict.MemberKind, required bool) {
	key := messageKey{msgType: row.MsgType, msgName: row.MsgName}
	msg, ok := b.messages[key]
	if !ok {
		msg = &dict.Message{Name: row.MsgName, MsgType: row.MsgType, MsgCat: "app"}
		b.messages[key] = msg
		b.messageOrder = append(b.messageOrder, key)
		b.seenMembers[key] = make(map[string]bool)
	}
	if b.seenMembers[key][row.ElementName] {
		// same element twice in one message: second occurrence dropped
		return
	}
	b.seenMembers[key][row.ElementName] = true
	msg.Members = append(msg.Members, dict.Member{
		Kind:     kind,
		Name:     row.ElementName,
		Required: required,
	})
}

// parseEnumValues splits the `|`-joined CODE:description list. The raw cell
// is space-stripped and upper-cased first, per the source format. A fragment
// without ':' is a parse defect: reported and skipped, never fatal.
func (b *builder) parseEnumValues(raw, elementName string) []dict.EnumValue {
	normalized := upper.String(strings.ReplaceAll(raw, " ", ""))
	if normalized == "" {
		return nil
	}
	var values []dict.EnumValue
	for _, part := range strings.Split(normalized, "|") {
		code, desc, found := strings.Cut(part, ":")
		if !found {
			b.reporter.Report(diag.BldBadEnumValue, diag.SevWarning, elementName,
				fmt.Sprintf("invalid enum format for %q: %q (missing ':')", elementName, part), nil)
			continue
		}
		values = append(values, dict.EnumValue{Enum: code, Description: desc})
	}
	return values
}

func (b *builder) reportDuplicates() {
	if len(b.duplicates) == 0 {
		return
	}
	names := make([]string, 0, len(b.duplicates))
	for name := range b.duplicates {
		names = append(names, name)
	}
	sort.Strings(names)
	b.reporter.Report(diag.BldDuplicateField, diag.SevInfo, "",
		fmt.Sprintf("duplicate declarations (same tag, same definition): %s", strings.Join(names, ", ")), nil)
}

func (b *builder) document(proto dict.Protocol) *dict.Document {
	doc := &dict.Document{Protocol: proto}
	for _, key := range b.messageOrder {
		doc.Messages = append(doc.Messages, b.messages[key])
	}
	for _, name := range b.elementOrder {
		decl := b.elements[name]
		switch decl.kind {
		case dict.KindField:
			doc.Fields = append(doc.Fields, &dict.Field{
				Tag:    decl.tag,
				Name:   name,
				Type:   decl.dataType,
				Values: decl.values,
			})
		case dict.KindComponent:
			// placeholder definition; real member lists arrive when merging
			// onto a base dictionary
			doc.Components = append(doc.Components, &dict.Component{Name: name})
		}
	}
	return doc
}

func memberKind(kind string) (dict.MemberKind, bool) {
	switch strings.ToLower(kind) {
	case "field":
		return dict.KindField, true
	case "component":
		return dict.KindComponent, true
	}
	return 0, false
}
