package model

import (
	"strconv"

	"wrapper-generator/internal/common"
)

// Unbounded is the Max value of an Occurs with no upper limit.
const Unbounded = -1

// ClassID identifies a class by its package and local name.
// For nested classes Name is the simple name; the qualified name is built
// from the nesting chain (see Class.QualifiedName).
type ClassID struct {
	Package string // e.g., "inner_element"
	Name    string // e.g., "Publisher"
}

// String returns a human-readable representation of the ClassID.
func (id ClassID) String() string {
	return common.Qualify(id.Package, id.Name)
}

// Occurs holds the multiplicity of a property.
type Occurs struct {
	Min int
	Max int // Unbounded for no upper limit
}

// IsRepeated returns true if more than one value is allowed.
func (o Occurs) IsRepeated() bool {
	return o.Max == Unbounded || o.Max > 1
}

// String renders the multiplicity as "min..max".
func (o Occurs) String() string {
	maxStr := "*"
	if o.Max != Unbounded {
		maxStr = strconv.Itoa(o.Max)
	}

	return strconv.Itoa(o.Min) + ".." + maxStr
}

//go:generate go tool stringer -type=ContentKind -trimprefix=Content -output=contentkind_string.go

// ContentKind is the closed set of content a property can carry.
type ContentKind int

const (
	ContentElement   ContentKind = iota // ordinary element
	ContentAny                          // wildcard or anyType content
	ContentMixed                        // text interleaved with elements
	ContentReference                    // element reference, possibly a substitution-group head
	ContentText                         // simple text content or captured mixed text
)

// TypeRef names the value type of a property. Class is set when the type is
// a class of the same model.
type TypeRef struct {
	Name  string
	Class *Class
}

// String returns the type name, preferring the linked class's qualified name.
func (t TypeRef) String() string {
	if t.Class != nil {
		return t.Class.QualifiedName()
	}

	return t.Name
}

// ValueObject describes an interface/implementation split of a generated type.
type ValueObject struct {
	Interface string
	Impl      string
}

// SubstitutionGroup describes a reference to a substitution-group head.
type SubstitutionGroup struct {
	Head     string   // head element type
	Abstract bool     // head element is abstract
	Members  []string // element names that may stand in for the head
}

// Property is one field-like member of a class.
type Property struct {
	Name         string             // field name
	Element      string             // XML element (or attribute) name
	Namespace    string             // XML namespace of the element
	Type         TypeRef            // declared value type
	Occurs       Occurs             // multiplicity
	Collection   CollectionType     // resolved collection, CollectionUnset until the pass decides
	Interface    string             // collection interface exposed by accessors
	Instantiate  InstantiationMode  // container allocation policy
	Nillable     bool               // xsi:nil allowed
	Required     bool               // must be present
	Attribute    bool               // bound to an XML attribute
	Kind         ContentKind        // content kind
	Lax          bool               // wildcard keeps loosely-typed values
	Adapter      string             // value-transform adapter type
	ValueObject  *ValueObject       // interface/impl split of the value type
	Substitution *SubstitutionGroup // set for substitution-group head references
	Inline       bool               // wrapper reference whose content is inlined in the owner element
	OrderOf      string             // captured-text property: name of the mixed property it orders
	Annotations  []string           // raw in-schema customization annotations
	Source       string             // schema component reference
	Owner        *Class             // exclusive owner
}

// Path returns the stable property path "<qualified class>.<property>".
func (p *Property) Path() string {
	if p.Owner == nil {
		return p.Name
	}

	return p.Owner.QualifiedName() + "." + p.Name
}

// ElementName returns the XML element name, falling back to the field name.
func (p *Property) ElementName() string {
	if p.Element != "" {
		return p.Element
	}

	return p.Name
}

// IsRepeated returns true if the property holds more than one value.
func (p *Property) IsRepeated() bool {
	return p.Occurs.IsRepeated()
}

// WrapperInfo describes a class synthesized to hold one repeated property.
type WrapperInfo struct {
	Owner       *Class            // class whose slot was replaced by a reference
	Field       string            // name of the wrapped field
	Collection  CollectionType    // collection the wrapped field uses
	Interface   string            // collection interface of the accessor
	Instantiate InstantiationMode // container allocation policy
}

// Class is one generated class.
type Class struct {
	ID          ClassID
	Outer       *Class       // nesting parent, nil for top-level classes
	Element     string       // root element name, empty for anonymous content
	Namespace   string       // XML namespace
	Properties  []*Property  // ordered members
	ValueObject *ValueObject // interface/impl split
	Wrapper     *WrapperInfo // non-nil for wrapper classes
	Annotations []string     // raw in-schema customization annotations
	Source      string       // schema component reference
}

// QualifiedName returns "<package>.<outer...>.<name>".
func (c *Class) QualifiedName() string {
	return common.Qualify(c.ID.Package, c.LocalName())
}

// LocalName returns the dotted name within the package ("Outer.Inner").
func (c *Class) LocalName() string {
	if c.Outer == nil {
		return c.ID.Name
	}

	return c.Outer.LocalName() + "." + c.ID.Name
}

// Property returns the property with the given name, or nil.
func (c *Class) Property(name string) *Property {
	for _, p := range c.Properties {
		if p.Name == name {
			return p
		}
	}

	return nil
}

// IndexOf returns the index of p in the property list, or -1.
func (c *Class) IndexOf(p *Property) int {
	for i, q := range c.Properties {
		if q == p {
			return i
		}
	}

	return -1
}

// IsWrapper returns true if the class was synthesized by the wrapper pass.
func (c *Class) IsWrapper() bool {
	return c.Wrapper != nil
}
