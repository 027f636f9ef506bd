package dict

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// The codec speaks the QuickFIX-style dictionary layout: a <fix> root with
// protocol attributes and <header>, <trailer>, <messages>, <components>,
// <fields> children. Member order inside every sequence is significant and
// preserved on both directions, so it is implemented on the token level
// rather than with struct tags.

// ErrNoRoot is returned when the input contains no <fix> root element.
var ErrNoRoot = errors.New("dict: no <fix> root element")

// Decode parses one dictionary document from r.
func Decode(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, ErrNoRoot
		}
		if err != nil {
			return nil, fmt.Errorf("dict: decode: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local != "fix" {
			return nil, fmt.Errorf("dict: unexpected root element <%s>", se.Name.Local)
		}
		return decodeFix(dec, se)
	}
}

func decodeFix(dec *xml.Decoder, root xml.StartElement) (*Document, error) {
	doc := &Document{
		Protocol: Protocol{
			Type:        attrValue(root, "type"),
			Major:       attrValue(root, "major"),
			Minor:       attrValue(root, "minor"),
			ServicePack: attrValue(root, "servicepack"),
		},
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("dict: decode: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "header":
				doc.Header, err = decodeMembers(dec)
			case "trailer":
				doc.Trailer, err = decodeMembers(dec)
			case "messages":
				err = decodeMessages(dec, doc)
			case "components":
				err = decodeComponents(dec, doc)
			case "fields":
				err = decodeFields(dec, doc)
			default:
				err = dec.Skip()
			}
			if err != nil {
				return nil, err
			}
		case xml.EndElement:
			return doc, nil
		}
	}
}

// decodeMembers reads the member sequence of the already-opened element and
// consumes its end tag. Groups recurse; field and component references are
// leaves whose inner content (if any) is skipped.
func decodeMembers(dec *xml.Decoder) ([]Member, error) {
	var members []Member
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("dict: decode members: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			m := Member{
				Name:     attrValue(t, "name"),
				Required: attrValue(t, "required") == "Y",
			}
			switch t.Name.Local {
			case "field":
				m.Kind = KindField
				err = dec.Skip()
			case "component":
				m.Kind = KindComponent
				err = dec.Skip()
			case "group":
				m.Kind = KindGroup
				m.Members, err = decodeMembers(dec)
			default:
				err = dec.Skip()
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("dict: decode members: %w", err)
			}
			members = append(members, m)
		case xml.EndElement:
			return members, nil
		}
	}
}

func decodeMessages(dec *xml.Decoder, doc *Document) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("dict: decode messages: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "message" {
				if err := dec.Skip(); err != nil {
					return fmt.Errorf("dict: decode messages: %w", err)
				}
				continue
			}
			msg := &Message{
				Name:    attrValue(t, "name"),
				MsgType: attrValue(t, "msgtype"),
				MsgCat:  attrValue(t, "msgcat"),
			}
			msg.Members, err = decodeMembers(dec)
			if err != nil {
				return err
			}
			doc.Messages = append(doc.Messages, msg)
		case xml.EndElement:
			return nil
		}
	}
}

func decodeComponents(dec *xml.Decoder, doc *Document) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("dict: decode components: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "component" {
				if err := dec.Skip(); err != nil {
					return fmt.Errorf("dict: decode components: %w", err)
				}
				continue
			}
			comp := &Component{Name: attrValue(t, "name")}
			comp.Members, err = decodeMembers(dec)
			if err != nil {
				return err
			}
			doc.Components = append(doc.Components, comp)
		case xml.EndElement:
			return nil
		}
	}
}

func decodeFields(dec *xml.Decoder, doc *Document) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("dict: decode fields: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "field" {
				if err := dec.Skip(); err != nil {
					return fmt.Errorf("dict: decode fields: %w", err)
				}
				continue
			}
			field, err := decodeField(dec, t)
			if err != nil {
				return err
			}
			doc.Fields = append(doc.Fields, field)
		case xml.EndElement:
			return nil
		}
	}
}

func decodeField(dec *xml.Decoder, start xml.StartElement) (*Field, error) {
	number := attrValue(start, "number")
	tag, err := strconv.Atoi(number)
	if err != nil {
		return nil, fmt.Errorf("dict: field %q: invalid number %q", attrValue(start, "name"), number)
	}
	field := &Field{
		Tag:  tag,
		Name: attrValue(start, "name"),
		Type: attrValue(start, "type"),
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("dict: decode field %d: %w", tag, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "value" {
				field.Values = append(field.Values, EnumValue{
					Enum:        attrValue(t, "enum"),
					Description: attrValue(t, "description"),
				})
			}
			if err := dec.Skip(); err != nil {
				return nil, fmt.Errorf("dict: decode field %d: %w", tag, err)
			}
		case xml.EndElement:
			return field, nil
		}
	}
}

func attrValue(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// Encode writes doc to w as an indented document with an XML declaration.
func Encode(w io.Writer, doc *Document) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("dict: encode: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	root := startElement("fix",
		attr("type", doc.Protocol.Type),
		attr("major", doc.Protocol.Major),
		attr("minor", doc.Protocol.Minor),
		attr("servicepack", doc.Protocol.ServicePack),
	)
	if err := enc.EncodeToken(root); err != nil {
		return fmt.Errorf("dict: encode: %w", err)
	}

	if err := encodeSection(enc, "header", doc.Header); err != nil {
		return err
	}
	if err := encodeSection(enc, "trailer", doc.Trailer); err != nil {
		return err
	}
	if err := encodeMessages(enc, doc.Messages); err != nil {
		return err
	}
	if err := encodeComponents(enc, doc.Components); err != nil {
		return err
	}
	if err := encodeFields(enc, doc.Fields); err != nil {
		return err
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return fmt.Errorf("dict: encode: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return fmt.Errorf("dict: encode: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func encodeSection(enc *xml.Encoder, name string, members []Member) error {
	start := startElement(name)
	if err := enc.EncodeToken(start); err != nil {
		return fmt.Errorf("dict: encode <%s>: %w", name, err)
	}
	if err := encodeMembers(enc, members); err != nil {
		return fmt.Errorf("dict: encode <%s>: %w", name, err)
	}
	return enc.EncodeToken(start.End())
}

func encodeMembers(enc *xml.Encoder, members []Member) error {
	for _, m := range members {
		start := startElement(m.Kind.String(),
			attr("name", m.Name),
			attr("required", requiredFlag(m.Required)),
		)
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		if m.Kind == KindGroup {
			if err := encodeMembers(enc, m.Members); err != nil {
				return err
			}
		}
		if err := enc.EncodeToken(start.End()); err != nil {
			return err
		}
	}
	return nil
}

func encodeMessages(enc *xml.Encoder, messages []*Message) error {
	start := startElement("messages")
	if err := enc.EncodeToken(start); err != nil {
		return fmt.Errorf("dict: encode <messages>: %w", err)
	}
	for _, msg := range messages {
		attrs := []xml.Attr{
			attr("name", msg.Name),
			attr("msgtype", msg.MsgType),
		}
		if msg.MsgCat != "" {
			attrs = append(attrs, attr("msgcat", msg.MsgCat))
		}
		el := startElement("message", attrs...)
		if err := enc.EncodeToken(el); err != nil {
			return fmt.Errorf("dict: encode message %q: %w", msg.MsgType, err)
		}
		if err := encodeMembers(enc, msg.Members); err != nil {
			return fmt.Errorf("dict: encode message %q: %w", msg.MsgType, err)
		}
		if err := enc.EncodeToken(el.End()); err != nil {
			return fmt.Errorf("dict: encode message %q: %w", msg.MsgType, err)
		}
	}
	return enc.EncodeToken(start.End())
}

func encodeComponents(enc *xml.Encoder, components []*Component) error {
	start := startElement("components")
	if err := enc.EncodeToken(start); err != nil {
		return fmt.Errorf("dict: encode <components>: %w", err)
	}
	for _, comp := range components {
		el := startElement("component", attr("name", comp.Name))
		if err := enc.EncodeToken(el); err != nil {
			return fmt.Errorf("dict: encode component %q: %w", comp.Name, err)
		}
		if err := encodeMembers(enc, comp.Members); err != nil {
			return fmt.Errorf("dict: encode component %q: %w", comp.Name, err)
		}
		if err := enc.EncodeToken(el.End()); err != nil {
			return fmt.Errorf("dict: encode component %q: %w", comp.Name, err)
		}
	}
	return enc.EncodeToken(start.End())
}

func encodeFields(enc *xml.Encoder, fields []*Field) error {
	start := startElement("fields")
	if err := enc.EncodeToken(start); err != nil {
		return fmt.Errorf("dict: encode <fields>: %w", err)
	}
	for _, field := range fields {
		el := startElement("field",
			attr("number", strconv.Itoa(field.Tag)),
			attr("name", field.Name),
			attr("type", field.Type),
		)
		if err := enc.EncodeToken(el); err != nil {
			return fmt.Errorf("dict: encode field %d: %w", field.Tag, err)
		}
		for _, v := range field.Values {
			val := startElement("value",
				attr("enum", v.Enum),
				attr("description", v.Description),
			)
			if err := enc.EncodeToken(val); err != nil {
				return fmt.Errorf("dict: encode field %d: %w", field.Tag, err)
			}
			if err := enc.EncodeToken(val.End()); err != nil {
				return fmt.Errorf("dict: encode field %d: %w", field.Tag, err)
			}
		}
		if err := enc.EncodeToken(el.End()); err != nil {
			return fmt.Errorf("dict: encode field %d: %w", field.Tag, err)
		}
	}
	return enc.EncodeToken(start.End())
}

func startElement(name string, attrs ...xml.Attr) xml.StartElement {
	return xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs}
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func requiredFlag(required bool) string {
	if required {
		return "Y"
	}
	return "N"
}
