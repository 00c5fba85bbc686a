package model

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Description is the YAML form of a class model, used by the driver and by
// test fixtures in place of a schema compiler front end.
//
//	package: inner_element
//	classes:
//	  - name: Publisher
//	    element: publisher
//	    properties:
//	      - name: article
//	        type: Article
//	        min: 0
//	        max: unbounded
type Description struct {
	Package   string             `yaml:"package"`
	Namespace string             `yaml:"namespace,omitempty"`
	Classes   []ClassDescription `yaml:"classes"`
	// Episode lists reusable classes already registered by this compilation.
	Episode []string `yaml:"episode,omitempty"`
}

// ClassDescription describes one class.
type ClassDescription struct {
	Name        string                `yaml:"name"`
	Package     string                `yaml:"package,omitempty"`
	Outer       string                `yaml:"outer,omitempty"`
	Element     string                `yaml:"element,omitempty"`
	Namespace   string                `yaml:"namespace,omitempty"`
	ValueObject *ValueObjectDesc      `yaml:"valueObject,omitempty"`
	Annotations []string              `yaml:"annotations,omitempty"`
	Source      string                `yaml:"source,omitempty"`
	Properties  []PropertyDescription `yaml:"properties"`
}

// ValueObjectDesc describes an interface/impl split.
type ValueObjectDesc struct {
	Interface string `yaml:"interface"`
	Impl      string `yaml:"impl"`
}

// SubstitutionDesc describes a substitution-group head reference.
type SubstitutionDesc struct {
	Head     string   `yaml:"head"`
	Abstract bool     `yaml:"abstract,omitempty"`
	Members  []string `yaml:"members,omitempty"`
}

// PropertyDescription describes one property.
type PropertyDescription struct {
	Name         string            `yaml:"name"`
	Element      string            `yaml:"element,omitempty"`
	Namespace    string            `yaml:"namespace,omitempty"`
	Type         string            `yaml:"type,omitempty"`
	Min          *int              `yaml:"min,omitempty"`
	Max          MaxOccurs         `yaml:"max,omitempty"`
	Kind         string            `yaml:"kind,omitempty"`
	Nillable     bool              `yaml:"nillable,omitempty"`
	Required     bool              `yaml:"required,omitempty"`
	Attribute    bool              `yaml:"attribute,omitempty"`
	Lax          bool              `yaml:"lax,omitempty"`
	Adapter      string            `yaml:"adapter,omitempty"`
	ValueObject  *ValueObjectDesc  `yaml:"valueObject,omitempty"`
	Substitution *SubstitutionDesc `yaml:"substitution,omitempty"`
	Annotations  []string          `yaml:"annotations,omitempty"`
	Source       string            `yaml:"source,omitempty"`
}

// MaxOccurs is a maxOccurs value: a non-negative integer or "unbounded".
// The zero value means "not given" and defaults to 1.
type MaxOccurs struct {
	Value int
	Set   bool
}

// UnmarshalYAML implements custom YAML unmarshaling for MaxOccurs.
// Accepts an integer or the string "unbounded".
func (m *MaxOccurs) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: max must be an integer or \"unbounded\"", node.Line)
	}

	if strings.EqualFold(node.Value, "unbounded") || node.Value == "*" {
		*m = MaxOccurs{Value: Unbounded, Set: true}
		return nil
	}

	n, err := strconv.Atoi(node.Value)
	if err != nil || n < 0 {
		return fmt.Errorf("line %d: invalid max %q", node.Line, node.Value)
	}

	*m = MaxOccurs{Value: n, Set: true}

	return nil
}

// MarshalYAML implements custom YAML marshaling for MaxOccurs.
func (m MaxOccurs) MarshalYAML() (any, error) {
	if m.Value == Unbounded {
		return "unbounded", nil
	}

	return m.Value, nil
}

// IsZero reports whether the value was not given, for omitempty.
func (m MaxOccurs) IsZero() bool {
	return !m.Set
}

// LoadFile loads and builds a model from a YAML description file.
func LoadFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// Parse parses a YAML description and builds the model.
func Parse(data []byte) (*Model, error) {
	var d Description

	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse model YAML: %w", err)
	}

	return Build(&d)
}

// Build creates a model from a description. Type names and outer classes are
// resolved against the classes of the description.
func Build(d *Description) (*Model, error) {
	m := New()
	byName := make(map[string]*Class)
	outers := make([]string, len(d.Classes))

	for i := range d.Classes {
		cd := &d.Classes[i]
		if cd.Name == "" {
			return nil, fmt.Errorf("class #%d: name is required", i+1)
		}

		pkg := cd.Package
		if pkg == "" {
			pkg = d.Package
		}

		ns := cd.Namespace
		if ns == "" {
			ns = d.Namespace
		}

		c := &Class{
			ID:          ClassID{Package: pkg, Name: cd.Name},
			Element:     cd.Element,
			Namespace:   ns,
			ValueObject: cd.ValueObject.build(),
			Annotations: cd.Annotations,
			Source:      cd.Source,
		}

		for j := range cd.Properties {
			p, err := cd.Properties[j].build()
			if err != nil {
				return nil, fmt.Errorf("class %s: %w", cd.Name, err)
			}

			if p.Namespace == "" && !p.Attribute {
				p.Namespace = ns
			}

			p.Owner = c
			c.Properties = append(c.Properties, p)
		}

		if _, dup := byName[c.ID.String()]; !dup {
			byName[c.ID.String()] = c
		}

		outers[i] = cd.Outer
		m.Classes = append(m.Classes, c)
	}

	for _, ref := range d.Episode {
		m.Episode.Add(ref)
	}

	for i, c := range m.Classes {
		if outers[i] == "" {
			continue
		}

		o := byName[ClassID{Package: c.ID.Package, Name: outers[i]}.String()]
		if o == nil || o == c {
			return nil, fmt.Errorf("class %s: outer class %q not found", c.ID.Name, outers[i])
		}

		c.Outer = o
	}

	for _, c := range m.Classes {
		for _, p := range c.Properties {
			if p.Type.Name != "" {
				p.Type.Class = m.Lookup(c.ID.Package, p.Type.Name)
			}
		}

		if c.ValueObject != nil {
			m.AddFactoryMethod(c.ID.Package, FactoryMethod{
				Name:    "Create" + c.ID.Name,
				Returns: c.ValueObject.Interface,
				Impl:    c.ValueObject.Impl,
			})
		}
	}

	return m, nil
}

func (v *ValueObjectDesc) build() *ValueObject {
	if v == nil {
		return nil
	}

	return &ValueObject{Interface: v.Interface, Impl: v.Impl}
}

func (pd *PropertyDescription) build() (*Property, error) {
	if pd.Name == "" {
		return nil, fmt.Errorf("property: name is required")
	}

	kind, err := ParseContentKind(pd.Kind)
	if err != nil {
		return nil, fmt.Errorf("property %s: %w", pd.Name, err)
	}

	occurs := Occurs{Min: 1, Max: 1}
	if pd.Min != nil {
		occurs.Min = *pd.Min
	}

	if pd.Max.Set {
		occurs.Max = pd.Max.Value
	}

	if occurs.Max != Unbounded && occurs.Max < occurs.Min {
		return nil, fmt.Errorf("property %s: max %d is lower than min %d", pd.Name, occurs.Max, occurs.Min)
	}

	p := &Property{
		Name:        pd.Name,
		Element:     pd.Element,
		Namespace:   pd.Namespace,
		Type:        TypeRef{Name: pd.Type},
		Occurs:      occurs,
		Nillable:    pd.Nillable,
		Required:    pd.Required || occurs.Min > 0,
		Attribute:   pd.Attribute,
		Kind:        kind,
		Lax:         pd.Lax,
		Adapter:     pd.Adapter,
		ValueObject: pd.ValueObject.build(),
		Annotations: pd.Annotations,
		Source:      pd.Source,
	}

	if pd.Substitution != nil {
		p.Substitution = &SubstitutionGroup{
			Head:     pd.Substitution.Head,
			Abstract: pd.Substitution.Abstract,
			Members:  pd.Substitution.Members,
		}
	}

	if p.Element == "" {
		p.Element = p.Name
	}

	return p, nil
}
