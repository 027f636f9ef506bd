// Package merge unifies a custom overlay dictionary into a base dictionary.
//
// The policy is deterministic and base-wins: a tag present in both documents
// keeps the base definition, and a divergent overlay definition is reported
// and discarded. Because of this (and the builder's first-occurrence-wins
// rule) merging is intentionally asymmetric: Merge(A, B) and Merge(B, A) are
// not the same document. That asymmetry is by contract, not a defect.
package merge

import (
	"fmt"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"fixdict/internal/diag"
	"fixdict/internal/dict"
)

// DefaultMsgTypeTag is the tag conventionally carrying the message-type enum.
const DefaultMsgTypeTag = 35

var upper = cases.Upper(language.Und)

// Options tunes a merge.
type Options struct {
	// MsgTypeTag is the tag whose enum list grows by one value per newly
	// merged message. Zero means DefaultMsgTypeTag.
	MsgTypeTag int
}

// Stats counts what the merge appended to the base document.
type Stats struct {
	FieldsAdded     int
	MessagesAdded   int
	ComponentsAdded int
	EnumValuesAdded int
}

// Merge grows base with everything in overlay that base does not already
// define. Neither conflicts nor duplicates halt the merge; all findings go to
// the reporter and the merged base is always usable afterwards. The overlay
// is never mutated and never aliased into base.
func Merge(base, overlay *dict.Document, opts Options, reporter diag.Reporter) Stats {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	msgTypeTag := opts.MsgTypeTag
	if msgTypeTag == 0 {
		msgTypeTag = DefaultMsgTypeTag
	}

	var stats Stats
	reportOverlayDuplicates(overlay, reporter)
	stats.FieldsAdded, stats.EnumValuesAdded = mergeFields(base, overlay, reporter)
	stats.ComponentsAdded = mergeComponents(base, overlay)
	var newMessages []*dict.Message
	stats.MessagesAdded, newMessages = mergeMessages(base, overlay)
	stats.EnumValuesAdded += maintainMsgTypeEnum(base, newMessages, msgTypeTag, reporter)
	return stats
}

// reportOverlayDuplicates flags tags the overlay itself declares more than
// once. The merge proceeds with the first declaration of each tag.
func reportOverlayDuplicates(overlay *dict.Document, reporter diag.Reporter) {
	byTag := make(map[int][]*dict.Field, len(overlay.Fields))
	for _, f := range overlay.Fields {
		byTag[f.Tag] = append(byTag[f.Tag], f)
	}
	seen := make(map[int]bool)
	for _, f := range overlay.Fields {
		dups := byTag[f.Tag]
		if len(dups) < 2 || seen[f.Tag] {
			continue
		}
		seen[f.Tag] = true
		notes := make([]diag.Note, 0, len(dups))
		for i, d := range dups {
			notes = append(notes, diag.Note{
				Msg: fmt.Sprintf("#%d: name=%s, type=%s", i+1, d.Name, d.Type),
			})
		}
		reporter.Report(diag.MrgOverlayDuplicate, diag.SevWarning, strconv.Itoa(f.Tag),
			fmt.Sprintf("tag %d is declared %d times in the overlay dictionary", f.Tag, len(dups)), notes)
	}
}

func mergeFields(base, overlay *dict.Document, reporter diag.Reporter) (fieldsAdded, valuesAdded int) {
	baseByTag := make(map[int]*dict.Field, len(base.Fields))
	for _, f := range base.Fields {
		baseByTag[f.Tag] = f
	}

	for _, of := range overlay.Fields {
		bf, ok := baseByTag[of.Tag]
		if !ok {
			clone := of.Clone()
			base.Fields = append(base.Fields, clone)
			baseByTag[of.Tag] = clone
			fieldsAdded++
			continue
		}
		if bf.Name != of.Name || bf.Type != of.Type {
			reporter.Report(diag.MrgTagConflict, diag.SevWarning, strconv.Itoa(of.Tag),
				fmt.Sprintf("tag %d has a divergent definition, keeping the base one", of.Tag),
				[]diag.Note{
					{Msg: fmt.Sprintf("base:    name=%s, type=%s", bf.Name, bf.Type)},
					{Msg: fmt.Sprintf("overlay: name=%s, type=%s", of.Name, of.Type)},
				})
			continue
		}
		reporter.Report(diag.MrgTagAlreadyDefined, diag.SevInfo, strconv.Itoa(of.Tag),
			fmt.Sprintf("tag %d exists in the base dictionary (same name and type)", of.Tag), nil)
		// enum sets grow monotonically: only unseen codes are appended
		for _, v := range of.Values {
			if !bf.HasValue(v.Enum) {
				bf.Values = append(bf.Values, v)
				valuesAdded++
			}
		}
	}
	return fieldsAdded, valuesAdded
}

func mergeComponents(base, overlay *dict.Document) int {
	existing := make(map[string]bool, len(base.Components))
	for _, c := range base.Components {
		existing[c.Name] = true
	}
	added := 0
	for _, oc := range overlay.Components {
		if existing[oc.Name] {
			continue
		}
		existing[oc.Name] = true
		base.Components = append(base.Components, oc.Clone())
		added++
	}
	return added
}

func mergeMessages(base, overlay *dict.Document) (int, []*dict.Message) {
	existing := make(map[string]bool, len(base.Messages))
	for _, m := range base.Messages {
		existing[m.Name] = true
	}
	var merged []*dict.Message
	for _, om := range overlay.Messages {
		if existing[om.Name] {
			continue
		}
		existing[om.Name] = true
		clone := om.Clone()
		base.Messages = append(base.Messages, clone)
		merged = append(merged, clone)
	}
	return len(merged), merged
}

// maintainMsgTypeEnum appends one enum value per newly merged message to the
// message-type tag, unless the code is already listed.
func maintainMsgTypeEnum(base *dict.Document, newMessages []*dict.Message, msgTypeTag int, reporter diag.Reporter) int {
	if len(newMessages) == 0 {
		return 0
	}
	field := base.FieldByTag(msgTypeTag)
	if field == nil {
		reporter.Report(diag.MrgNoMsgTypeField, diag.SevWarning, strconv.Itoa(msgTypeTag),
			fmt.Sprintf("base dictionary has no field with tag %d, message-type enum not maintained", msgTypeTag), nil)
		return 0
	}
	added := 0
	for _, msg := range newMessages {
		if field.HasValue(msg.MsgType) {
			continue
		}
		field.Values = append(field.Values, dict.EnumValue{
			Enum:        msg.MsgType,
			Description: upper.String(msg.Name),
		})
		added++
	}
	return added
}
