// Package dict models the FIX dictionary document: an ordered tree of
// messages, components, fields and the shared header/trailer sections.
//
// The model is deliberately plain data. Lookup maps keyed by tag or name are
// built by the stage that needs them and discarded with it, so no transient
// index ever aliases between an input and an output tree.
package dict

// MemberKind discriminates the member variants of a message or component.
type MemberKind uint8

const (
	KindField MemberKind = iota
	KindGroup
	KindComponent
)

func (k MemberKind) String() string {
	switch k {
	case KindField:
		return "field"
	case KindGroup:
		return "group"
	case KindComponent:
		return "component"
	}
	return "unknown"
}

// Member is one entry of a message, component, group, header or trailer.
// Members is populated for groups only (the repeating block's own members).
type Member struct {
	Kind     MemberKind
	Name     string
	Required bool
	Members  []Member
}

// EnumValue is one (code, description) pair of an enumerated field.
type EnumValue struct {
	Enum        string
	Description string
}

// Field declares a tag: its unique number, document-unique name, data type
// token (STRING, INT, CHAR, ...) and ordered enum values.
type Field struct {
	Tag    int
	Name   string
	Type   string
	Values []EnumValue
}

// HasValue reports whether the field already carries an enum value with the
// given code.
func (f *Field) HasValue(code string) bool {
	for i := range f.Values {
		if f.Values[i].Enum == code {
			return true
		}
	}
	return false
}

// Component is a named, reusable member sequence shared by messages.
type Component struct {
	Name    string
	Members []Member
}

// Message is one protocol message keyed by its message-type code.
type Message struct {
	Name    string
	MsgType string
	MsgCat  string
	Members []Member
}

// Protocol identifies the dictionary's protocol version, carried on the
// document root.
type Protocol struct {
	Type        string
	Major       string
	Minor       string
	ServicePack string
}

// Document is the dictionary tree all three transformations consume and
// produce. Section slices preserve document order.
type Document struct {
	Protocol   Protocol
	Header     []Member
	Trailer    []Member
	Messages   []*Message
	Components []*Component
	Fields     []*Field
}

// FieldByTag returns the field declared with the given tag number, or nil.
func (d *Document) FieldByTag(tag int) *Field {
	for _, f := range d.Fields {
		if f.Tag == tag {
			return f
		}
	}
	return nil
}

// FieldByName returns the field declared with the given name, or nil.
func (d *Document) FieldByName(name string) *Field {
	for _, f := range d.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// ComponentByName returns the named component definition, or nil.
func (d *Document) ComponentByName(name string) *Component {
	for _, c := range d.Components {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// MessageByType returns the message with the given message-type code, or nil.
func (d *Document) MessageByType(msgType string) *Message {
	for _, m := range d.Messages {
		if m.MsgType == msgType {
			return m
		}
	}
	return nil
}
