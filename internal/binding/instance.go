package binding

import (
	"encoding/xml"
	"fmt"

	"aqwari.net/xml/xmltree"

	"wrapper-generator/internal/common"
	"wrapper-generator/internal/model"
)

// Value is one bound value: a nested instance, a raw wildcard element, or text.
type Value struct {
	Name     xml.Name         // element the value was read from or is written as
	Text     string           // text of simple values
	Instance *Instance        // nested class instance
	Raw      *xmltree.Element // wildcard content without a class
}

// field holds the values of one property.
type field struct {
	prop      *model.Property
	values    []Value
	allocated bool
}

// Instance is one object of a model class.
type Instance struct {
	Class  *model.Class
	fields map[string]*field
}

// NewInstance creates an instance of c. Containers of properties in eager
// mode are allocated at once; lazy ones on the first List call; ones in none
// mode only when a value is stored.
func NewInstance(c *model.Class) *Instance {
	in := &Instance{Class: c, fields: make(map[string]*field, len(c.Properties))}

	for _, p := range c.Properties {
		f := &field{prop: p}
		if p.IsRepeated() && instantiation(p) == model.InstantiateEager {
			f.values = make([]Value, 0)
			f.allocated = true
		}

		in.fields[p.Name] = f
	}

	return in
}

// instantiation returns the allocation policy of p. Properties the pass did
// not touch behave as eager.
func instantiation(p *model.Property) model.InstantiationMode {
	if p.Instantiate == model.InstantiateUnset {
		return model.InstantiateEager
	}

	return p.Instantiate
}

func (in *Instance) field(name string) (*field, error) {
	f, ok := in.fields[name]
	if !ok {
		return nil, fmt.Errorf("class %s has no property %q", in.Class.QualifiedName(), name)
	}

	return f, nil
}

// Allocated reports whether the container of property name exists.
func (in *Instance) Allocated(name string) bool {
	f, ok := in.fields[name]
	return ok && f.allocated
}

// List returns the values of property name. A lazy container is allocated by
// the first call; a container in none mode stays nil until a value is stored.
func (in *Instance) List(name string) []Value {
	f, ok := in.fields[name]
	if !ok {
		return nil
	}

	if !f.allocated && instantiation(f.prop) == model.InstantiateLazy {
		f.values = make([]Value, 0)
		f.allocated = true
	}

	return f.values
}

// Values returns the stored values of property name without allocating.
func (in *Instance) Values(name string) []Value {
	if f, ok := in.fields[name]; ok {
		return f.values
	}

	return nil
}

// Add appends v to property name.
func (in *Instance) Add(name string, v Value) error {
	f, err := in.field(name)
	if err != nil {
		return err
	}

	f.values = append(f.values, v)
	f.allocated = true

	return nil
}

// Set replaces the values of property name.
func (in *Instance) Set(name string, vs []Value) error {
	f, err := in.field(name)
	if err != nil {
		return err
	}

	f.values = append(make([]Value, 0, len(vs)), vs...)
	f.allocated = true

	return nil
}

// Text returns the text of the first value of property name.
func (in *Instance) Text(name string) string {
	v, _ := common.First(in.Values(name))
	return v.Text
}

// Child returns the instance of the first value of property name, or nil.
func (in *Instance) Child(name string) *Instance {
	v, _ := common.First(in.Values(name))
	return v.Instance
}

// IsEmpty reports whether no property holds a value.
func (in *Instance) IsEmpty() bool {
	for _, f := range in.fields {
		if !common.IsEmpty(f.values) {
			return false
		}
	}

	return true
}
