// Package prune reduces a merged dictionary to the minimal closure of
// elements reachable from a whitelist of message types.
//
// The closure walk carries an explicit visited set through every recursive
// call, so a component graph with cycles (A referencing B referencing A,
// including self-reference through a chain) terminates with each component
// expanded at most once. Cost is O(components + fields) regardless of cycle
// depth.
package prune

import (
	"fmt"

	"fixdict/internal/diag"
	"fixdict/internal/dict"
)

// Result counts what survived the prune, for the success summary.
type Result struct {
	Messages   int
	Fields     int
	Components int
}

// pruner holds the used-sets and the component index for one Prune call.
type pruner struct {
	reporter   diag.Reporter
	fieldNames map[string]bool
	components map[string]*dict.Component
	usedFields map[string]bool
	visited    map[string]bool
}

// Prune deletes every message outside keep, then every component and field
// not transitively reachable from the retained messages or from the
// header/trailer sections. A member referencing an unknown field or component
// is a structural defect and fails the whole prune: silently ignoring it
// would corrupt the closure.
//
// A keep entry matching no message is ineffective; an empty keep list yields
// a document whose fields and components are exactly the header/trailer
// closure.
func Prune(doc *dict.Document, keep []string, reporter diag.Reporter) (Result, error) {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}

	keepSet := make(map[string]bool, len(keep))
	for _, code := range keep {
		keepSet[code] = true
	}
	if len(keepSet) == 0 {
		reporter.Report(diag.PrnEmptyWhitelist, diag.SevInfo, "",
			"whitelist is empty, retaining only the header/trailer closure", nil)
	}

	p := &pruner{
		reporter:   reporter,
		fieldNames: make(map[string]bool, len(doc.Fields)),
		components: make(map[string]*dict.Component, len(doc.Components)),
		usedFields: make(map[string]bool),
		visited:    make(map[string]bool),
	}
	for _, f := range doc.Fields {
		p.fieldNames[f.Name] = true
	}
	for _, c := range doc.Components {
		p.components[c.Name] = c
	}

	// Phase 1: seed from retained messages.
	matched := make(map[string]bool, len(keepSet))
	retained := doc.Messages[:0:0]
	for _, msg := range doc.Messages {
		if !keepSet[msg.MsgType] {
			continue
		}
		matched[msg.MsgType] = true
		retained = append(retained, msg)
		if err := p.walkMembers(msg.Members, fmt.Sprintf("message %q", msg.MsgType)); err != nil {
			return Result{}, err
		}
	}
	for _, code := range keep {
		if !matched[code] {
			reporter.Report(diag.PrnUnmatchedKeep, diag.SevInfo, code,
				fmt.Sprintf("whitelist entry %q matches no message", code), nil)
		}
	}

	// Phase 3: header and trailer are implicit in every message and are
	// always part of the closure.
	if err := p.walkMembers(doc.Header, "header"); err != nil {
		return Result{}, err
	}
	if err := p.walkMembers(doc.Trailer, "trailer"); err != nil {
		return Result{}, err
	}

	// Phase 4: deletion against the fully computed used-sets.
	doc.Messages = retained
	components := doc.Components[:0:0]
	for _, c := range doc.Components {
		if p.visited[c.Name] {
			components = append(components, c)
		}
	}
	doc.Components = components
	fields := doc.Fields[:0:0]
	for _, f := range doc.Fields {
		if p.usedFields[f.Name] {
			fields = append(fields, f)
		}
	}
	doc.Fields = fields

	return Result{
		Messages:   len(doc.Messages),
		Fields:     len(doc.Fields),
		Components: len(doc.Components),
	}, nil
}

// walkMembers adds every field and group name to the used-fields set and
// recurses into groups and component references. where names the enclosing
// container for error messages.
func (p *pruner) walkMembers(members []dict.Member, where string) error {
	for _, m := range members {
		switch m.Kind {
		case dict.KindField:
			if !p.fieldNames[m.Name] {
				p.reporter.Report(diag.DocDanglingField, diag.SevError, m.Name,
					fmt.Sprintf("%s references unknown field %q", where, m.Name), nil)
				return fmt.Errorf("prune: %s references unknown field %q", where, m.Name)
			}
			p.usedFields[m.Name] = true
		case dict.KindGroup:
			// a group counts as a used field and is itself a member container
			if !p.fieldNames[m.Name] {
				p.reporter.Report(diag.DocDanglingGroup, diag.SevError, m.Name,
					fmt.Sprintf("%s references unknown group field %q", where, m.Name), nil)
				return fmt.Errorf("prune: %s references unknown group field %q", where, m.Name)
			}
			p.usedFields[m.Name] = true
			if err := p.walkMembers(m.Members, fmt.Sprintf("group %q", m.Name)); err != nil {
				return err
			}
		case dict.KindComponent:
			if err := p.visitComponent(m.Name, where); err != nil {
				return err
			}
		}
	}
	return nil
}

// visitComponent marks a component used and expands it exactly once; the
// visited set makes revisits (shared references, cycles) a no-op.
func (p *pruner) visitComponent(name, where string) error {
	if p.visited[name] {
		return nil
	}
	comp, ok := p.components[name]
	if !ok {
		p.reporter.Report(diag.DocDanglingComponent, diag.SevError, name,
			fmt.Sprintf("%s references unknown component %q", where, name), nil)
		return fmt.Errorf("prune: %s references unknown component %q", where, name)
	}
	p.visited[name] = true
	return p.walkMembers(comp.Members, fmt.Sprintf("component %q", name))
}
