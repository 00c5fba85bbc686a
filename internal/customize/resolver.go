package customize

import (
	"fmt"

	"wrapper-generator/internal/control"
	"wrapper-generator/internal/diagnostic"
	"wrapper-generator/internal/model"
)

// Layer is one source of settings in lookup order.
type Layer struct {
	Origin   Origin
	Source   string // control file or "annotation", for errors
	Line     int
	Settings control.Settings
}

// Resolver computes directives for properties.
type Resolver struct {
	index   *control.Index
	options control.Settings
	classes map[*model.Class]*control.Settings
}

// NewResolver creates a resolver over a control index (may be nil) and the
// settings given as command-line options.
func NewResolver(index *control.Index, options control.Settings) *Resolver {
	if index == nil {
		index = control.NewIndex()
	}

	return &Resolver{
		index:   index,
		options: options,
		classes: make(map[*model.Class]*control.Settings),
	}
}

// Layers returns the settings layers that apply to p, highest precedence first.
func (r *Resolver) Layers(p *model.Property) ([]Layer, error) {
	var layers []Layer

	if e := r.index.Lookup(p); e != nil {
		layers = append(layers, Layer{Origin: OriginControl, Source: e.Source, Line: e.Line, Settings: e.Settings})
	}

	propSettings, found, err := ParseAnnotations(p.Path(), p.Annotations)
	if err != nil {
		return nil, err
	}

	if found {
		layers = append(layers, Layer{Origin: OriginPropertyAnnotation, Source: "annotation", Settings: propSettings})
	}

	if p.Owner != nil {
		classSettings, err := r.classLayer(p.Owner)
		if err != nil {
			return nil, err
		}

		if classSettings != nil {
			layers = append(layers, Layer{Origin: OriginClassAnnotation, Source: "annotation", Settings: *classSettings})
		}
	}

	layers = append(layers,
		Layer{Origin: OriginOption, Source: "options", Settings: r.options},
		Layer{Origin: OriginDefault, Source: "defaults", Settings: Defaults()},
	)

	return layers, nil
}

// classLayer parses and caches the annotations of a class.
func (r *Resolver) classLayer(c *model.Class) (*control.Settings, error) {
	if s, ok := r.classes[c]; ok {
		return s, nil
	}

	s, found, err := ParseAnnotations(c.QualifiedName(), c.Annotations)
	if err != nil {
		return nil, err
	}

	var out *control.Settings
	if found {
		out = &s
	}

	r.classes[c] = out

	return out, nil
}

// Resolve returns the directive for p.
func (r *Resolver) Resolve(p *model.Property) (*Directive, error) {
	layers, err := r.Layers(p)
	if err != nil {
		return nil, err
	}

	d := &Directive{origins: make(map[string]Origin)}

	pick := func(key string, set func(control.Settings) bool) *Layer {
		for i := range layers {
			if set(layers[i].Settings) {
				d.origins[key] = layers[i].Origin
				return &layers[i]
			}
		}

		return nil
	}

	d.Wrap = *pick(control.KeyWrap, func(s control.Settings) bool { return s.Wrap != nil }).Settings.Wrap
	d.Collection = *pick(control.KeyCollection, func(s control.Settings) bool { return s.Collection != nil }).Settings.Collection
	d.Instantiate = *pick(control.KeyInstantiate, func(s control.Settings) bool { return s.Instantiate != nil }).Settings.Instantiate
	d.Plural = *pick(control.KeyPlural, func(s control.Settings) bool { return s.Plural != nil }).Settings.Plural
	d.Nested = *pick(control.KeyNested, func(s control.Settings) bool { return s.Nested != nil }).Settings.Nested

	// An interface left at its default follows the resolved collection kind.
	ifaceLayer := pick(control.KeyInterface, func(s control.Settings) bool { return s.Interface != nil })
	if ifaceLayer.Origin == OriginDefault {
		d.Interface = model.DefaultInterface(d.Collection.Kind)
	} else {
		d.Interface = *ifaceLayer.Settings.Interface
	}

	if l := pick(control.KeyClassName, func(s control.Settings) bool { return s.ClassName != nil }); l != nil {
		d.ClassName = *l.Settings.ClassName
	}

	if l := pick(control.KeyFieldName, func(s control.Settings) bool { return s.FieldName != nil }); l != nil {
		d.FieldName = *l.Settings.FieldName
	}

	if l := pick(control.KeyProperty, func(s control.Settings) bool { return s.Property != nil }); l != nil {
		d.PropertyName = *l.Settings.Property
	}

	if !model.InterfaceAccepts(d.Interface, d.Collection.Kind) {
		return nil, &diagnostic.ConfigurationError{
			Source: ifaceLayer.Source,
			Line:   ifaceLayer.Line,
			Path:   p.Path(),
			Option: control.KeyInterface,
			Value:  d.Interface,
			Err:    fmt.Errorf("interface %s cannot expose a %s", d.Interface, d.Collection),
		}
	}

	return d, nil
}
