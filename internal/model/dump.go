package model

import (
	"sort"

	"github.com/davecgh/go-spew/spew"
)

// dumpConfig renders flat views without pointer addresses so that two dumps
// of equal models compare equal.
var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

type classView struct {
	Name        string
	Element     string
	Wrapper     string
	ValueObject string
	Properties  []propertyView
}

type propertyView struct {
	Name        string
	Type        string
	Occurs      string
	Kind        string
	Collection  string
	Instantiate string
	Flags       []string
}

// Dump returns a deterministic, human-readable dump of the model.
// Back-pointers are flattened to names so the output has no cycles.
func Dump(m *Model) string {
	views := make([]classView, 0, len(m.Classes))

	for _, c := range m.Classes {
		v := classView{Name: c.QualifiedName(), Element: c.Element}
		if c.Wrapper != nil {
			v.Wrapper = c.Wrapper.Field + " " + c.Wrapper.Collection.String() + " " + c.Wrapper.Instantiate.String()
		}

		if c.ValueObject != nil {
			v.ValueObject = c.ValueObject.Interface + "/" + c.ValueObject.Impl
		}

		for _, p := range c.Properties {
			v.Properties = append(v.Properties, viewOf(p))
		}

		views = append(views, v)
	}

	refs := m.Episode.Refs()

	factories := make([]Factory, 0, len(m.Factories))
	for _, f := range m.Factories {
		factories = append(factories, *f)
	}

	sort.Slice(factories, func(i, j int) bool { return factories[i].Package < factories[j].Package })

	return dumpConfig.Sdump(views, refs, factories)
}

func viewOf(p *Property) propertyView {
	v := propertyView{
		Name:   p.Name,
		Type:   p.Type.String(),
		Occurs: p.Occurs.String(),
		Kind:   p.Kind.String(),
	}

	if p.Collection.Kind != CollectionUnset {
		v.Collection = p.Collection.String()
	}

	if p.Instantiate != InstantiateUnset {
		v.Instantiate = p.Instantiate.String()
	}

	flag := func(on bool, name string) {
		if on {
			v.Flags = append(v.Flags, name)
		}
	}

	flag(p.Nillable, "nillable")
	flag(p.Required, "required")
	flag(p.Attribute, "attribute")
	flag(p.Inline, "inline")
	flag(p.Lax, "lax")
	flag(p.Adapter != "", "adapter="+p.Adapter)
	flag(p.Substitution != nil, "substitution")
	flag(p.OrderOf != "", "orders="+p.OrderOf)

	return v
}
