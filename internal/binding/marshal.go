package binding

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"aqwari.net/xml/xmltree"
	"github.com/samber/lo"

	"wrapper-generator/internal/model"
)

// Marshal writes in as a document rooted at the element of its class.
func Marshal(in *Instance) ([]byte, error) {
	if in.Class.Element == "" {
		return nil, fmt.Errorf("class %s has no root element", in.Class.QualifiedName())
	}

	var buf bytes.Buffer

	enc := xml.NewEncoder(&buf)
	name := xml.Name{Space: in.Class.Namespace, Local: in.Class.Element}

	err := writeElement(enc, name, in)
	if err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", in.Class.QualifiedName(), err)
	}

	err = enc.Flush()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func writeElement(enc *xml.Encoder, name xml.Name, in *Instance) error {
	start := xml.StartElement{Name: name, Attr: attributes(in)}

	err := enc.EncodeToken(start)
	if err != nil {
		return err
	}

	err = writeContent(enc, in)
	if err != nil {
		return err
	}

	return enc.EncodeToken(start.End())
}

// attributes collects the attribute values of in and of the wrapper
// instances inlined in it.
func attributes(in *Instance) []xml.Attr {
	var attrs []xml.Attr

	for _, p := range in.Class.Properties {
		switch {
		case p.Attribute:
			for _, v := range in.Values(p.Name) {
				attrs = append(attrs, xml.Attr{Name: xml.Name{Local: p.ElementName()}, Value: v.Text})
			}
		case p.Inline:
			if child := in.Child(p.Name); child != nil {
				attrs = append(attrs, attributes(child)...)
			}
		}
	}

	return attrs
}

func writeContent(enc *xml.Encoder, in *Instance) error {
	for _, p := range in.Class.Properties {
		var err error

		switch {
		case p.Attribute, p.OrderOf != "":
		case p.Inline:
			if child := in.Child(p.Name); child != nil {
				err = writeContent(enc, child)
			}
		case p.Kind == model.ContentText:
			if text := in.Text(p.Name); text != "" {
				err = enc.EncodeToken(xml.CharData(text))
			}
		default:
			err = writeValues(enc, in, p)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// writeValues writes the values of p, interleaved with the captured text of
// mixed content when the class has it.
func writeValues(enc *xml.Encoder, in *Instance, p *model.Property) error {
	var text []Value

	if q, ok := lo.Find(in.Class.Properties, func(q *model.Property) bool { return q.OrderOf == p.Name }); ok {
		text = in.Values(q.Name)
	}

	writeText := func(i int) error {
		if i < len(text) && text[i].Text != "" {
			return enc.EncodeToken(xml.CharData(text[i].Text))
		}

		return nil
	}

	values := in.Values(p.Name)
	for i, v := range values {
		err := writeText(i)
		if err != nil {
			return err
		}

		err = writeValue(enc, p, v)
		if err != nil {
			return err
		}
	}

	for i := len(values); i < len(text); i++ {
		err := writeText(i)
		if err != nil {
			return err
		}
	}

	return nil
}

func writeValue(enc *xml.Encoder, p *model.Property, v Value) error {
	name := v.Name
	if name.Local == "" {
		name = xml.Name{Space: p.Namespace, Local: p.ElementName()}
	}

	switch {
	case v.Instance != nil:
		return writeElement(enc, name, v.Instance)
	case v.Raw != nil:
		return writeRaw(enc, v.Raw)
	default:
		start := xml.StartElement{Name: name}
		return encodeAll(enc, start, xml.CharData(v.Text), start.End())
	}
}

// writeRaw writes a wildcard element as it was read.
func writeRaw(enc *xml.Encoder, el *xmltree.Element) error {
	chunks, err := textChunks(el.Content)
	if err != nil {
		return err
	}

	attrs := lo.Filter(el.StartElement.Attr, func(a xml.Attr, _ int) bool { return !isNamespaceDecl(a.Name) })
	start := xml.StartElement{Name: el.Name, Attr: attrs}

	err = enc.EncodeToken(start)
	if err != nil {
		return err
	}

	for i := range el.Children {
		if i < len(chunks) && chunks[i] != "" {
			err = enc.EncodeToken(xml.CharData(chunks[i]))
			if err != nil {
				return err
			}
		}

		err = writeRaw(enc, &el.Children[i])
		if err != nil {
			return err
		}
	}

	if last := chunks[len(chunks)-1]; len(chunks) > len(el.Children) && last != "" {
		err = enc.EncodeToken(xml.CharData(last))
		if err != nil {
			return err
		}
	}

	return enc.EncodeToken(start.End())
}

func encodeAll(enc *xml.Encoder, tokens ...xml.Token) error {
	for _, t := range tokens {
		err := enc.EncodeToken(t)
		if err != nil {
			return err
		}
	}

	return nil
}
