package binding

import (
	"fmt"
	"slices"
	"strings"

	"aqwari.net/xml/xmltree"
	"github.com/samber/lo"

	"wrapper-generator/internal/model"
)

// Unmarshal reads data as an instance of the class with the qualified name root.
func Unmarshal(m *model.Model, root string, data []byte) (*Instance, error) {
	c := m.Class(root)
	if c == nil {
		return nil, fmt.Errorf("unknown root class %q", root)
	}

	el, err := xmltree.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	if c.Element != "" && el.Name.Local != c.Element {
		return nil, fmt.Errorf("root element %q does not match class %s (want %q)", el.Name.Local, c.QualifiedName(), c.Element)
	}

	d := &decoder{m: m}

	return d.element(el, c)
}

type decoder struct {
	m *model.Model
}

// cursor walks the children of one element. Inline wrapper instances share
// the cursor of the element they are inlined in.
type cursor struct {
	children []xmltree.Element
	pos      int
}

func (cur *cursor) peek() *xmltree.Element {
	if cur.pos >= len(cur.children) {
		return nil
	}

	return &cur.children[cur.pos]
}

func (d *decoder) element(el *xmltree.Element, c *model.Class) (*Instance, error) {
	in := NewInstance(c)
	cur := &cursor{children: el.Children}

	err := d.content(el, cur, in)
	if err != nil {
		return nil, err
	}

	if next := cur.peek(); next != nil {
		return nil, fmt.Errorf("unexpected element %q in %s", next.Name.Local, c.QualifiedName())
	}

	return in, nil
}

func (d *decoder) content(el *xmltree.Element, cur *cursor, in *Instance) error {
	for _, p := range in.Class.Properties {
		var err error

		switch {
		case p.Attribute:
			err = bindAttribute(el, p, in)
		case p.Inline && p.Type.Class != nil:
			err = d.inline(el, cur, p, in)
		case p.Kind == model.ContentText:
			err = bindText(el, p, in)
		default:
			err = d.elements(cur, p, in)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func bindAttribute(el *xmltree.Element, p *model.Property, in *Instance) error {
	for _, a := range el.StartElement.Attr {
		if a.Name.Local == p.ElementName() && !isNamespaceDecl(a.Name) {
			return in.Set(p.Name, []Value{{Name: a.Name, Text: a.Value}})
		}
	}

	return nil
}

// inline binds a wrapper reference from the children of the owner element.
func (d *decoder) inline(el *xmltree.Element, cur *cursor, p *model.Property, in *Instance) error {
	nested := NewInstance(p.Type.Class)

	err := d.content(el, cur, nested)
	if err != nil {
		return err
	}

	if nested.IsEmpty() {
		return nil
	}

	return in.Set(p.Name, []Value{{Instance: nested}})
}

func bindText(el *xmltree.Element, p *model.Property, in *Instance) error {
	chunks, err := textChunks(el.Content)
	if err != nil {
		return fmt.Errorf("failed to read text of %s: %w", p.Path(), err)
	}

	if lo.EveryBy(chunks, isBlank) {
		return nil
	}

	if p.OrderOf != "" {
		return in.Set(p.Name, lo.Map(chunks, func(s string, _ int) Value { return Value{Text: s} }))
	}

	return in.Set(p.Name, []Value{{Text: strings.Join(chunks, "")}})
}

// elements consumes the children matching p, up to its maximum occurrence.
func (d *decoder) elements(cur *cursor, p *model.Property, in *Instance) error {
	for n := 0; p.Occurs.Max == model.Unbounded || n < p.Occurs.Max; n++ {
		child := cur.peek()
		if child == nil || !d.matches(p, child) {
			return nil
		}

		v, err := d.value(child, p)
		if err != nil {
			return err
		}

		err = in.Add(p.Name, v)
		if err != nil {
			return err
		}

		cur.pos++
	}

	return nil
}

func (d *decoder) value(child *xmltree.Element, p *model.Property) (Value, error) {
	v := Value{Name: child.Name}

	if c := d.classOf(child, p); c != nil {
		in, err := d.element(child, c)
		if err != nil {
			return Value{}, err
		}

		v.Instance = in

		return v, nil
	}

	if p.Kind == model.ContentAny {
		raw := *child
		v.Raw = &raw

		return v, nil
	}

	chunks, err := textChunks(child.Content)
	if err != nil {
		return Value{}, fmt.Errorf("failed to read text of %s: %w", p.Path(), err)
	}

	v.Text = strings.Join(chunks, "")

	return v, nil
}

// classOf returns the class a child is bound to. Members of a substitution
// group bind to the class declaring their element.
func (d *decoder) classOf(child *xmltree.Element, p *model.Property) *model.Class {
	if p.Substitution != nil && child.Name.Local != p.ElementName() {
		for _, c := range d.m.Classes {
			if c.Element == child.Name.Local {
				return c
			}
		}
	}

	return p.Type.Class
}

func (d *decoder) matches(p *model.Property, child *xmltree.Element) bool {
	if p.Kind == model.ContentAny {
		return !slices.Contains(siblingElements(p), child.Name.Local)
	}

	if p.Substitution != nil && slices.Contains(p.Substitution.Members, child.Name.Local) {
		return true
	}

	if child.Name.Local != p.ElementName() {
		return false
	}

	return p.Namespace == "" || child.Name.Space == "" || child.Name.Space == p.Namespace
}

// siblingElements lists the element names claimed by the other properties of
// the class holding p and, for wrapper classes, of the wrapper's owner.
func siblingElements(p *model.Property) []string {
	var names []string

	for c := p.Owner; c != nil; {
		names = append(names, classElements(c, p)...)

		if !c.IsWrapper() {
			break
		}

		c = c.Wrapper.Owner
	}

	return lo.Uniq(names)
}

func classElements(c *model.Class, skip *model.Property) []string {
	var names []string

	for _, q := range c.Properties {
		switch {
		case q == skip, q.Attribute, q.Kind == model.ContentAny, q.Kind == model.ContentText:
		case q.Inline && q.Type.Class != nil:
			names = append(names, classElements(q.Type.Class, skip)...)
		default:
			names = append(names, q.ElementName())
			if q.Substitution != nil {
				names = append(names, q.Substitution.Members...)
			}
		}
	}

	return names
}
