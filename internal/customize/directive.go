package customize

import (
	"wrapper-generator/internal/common"
	"wrapper-generator/internal/control"
	"wrapper-generator/internal/model"
)

// Origin is the layer that supplied a directive attribute.
type Origin int

const (
	OriginDefault Origin = iota
	OriginOption
	OriginClassAnnotation
	OriginPropertyAnnotation
	OriginControl
)

// String returns a human-readable origin name.
func (o Origin) String() string {
	switch o {
	case OriginDefault:
		return "default"
	case OriginOption:
		return "option"
	case OriginClassAnnotation:
		return "class annotation"
	case OriginPropertyAnnotation:
		return "property annotation"
	case OriginControl:
		return "control file"
	default:
		return common.UnknownStr
	}
}

// Directive is the fully resolved wrapping decision for one property.
type Directive struct {
	Wrap         bool
	Collection   model.CollectionType
	Interface    string
	Instantiate  model.InstantiationMode
	Plural       bool
	ClassName    string // explicit wrapper class name, empty to derive
	FieldName    string // explicit wrapped field name, empty to derive
	PropertyName string // explicit reference name, empty to derive
	Nested       bool   // nest the wrapper in the owner class

	origins map[string]Origin
}

// OriginOf returns the layer that supplied the attribute with the given
// control key (see control.KeyWrap and friends).
func (d *Directive) OriginOf(key string) Origin {
	return d.origins[key]
}

// Settings returns the directive as a fully populated settings layer.
func (d *Directive) Settings() control.Settings {
	s := control.Settings{
		Wrap:        &d.Wrap,
		Collection:  &d.Collection,
		Interface:   &d.Interface,
		Instantiate: &d.Instantiate,
		Plural:      &d.Plural,
		Nested:      &d.Nested,
	}

	if d.ClassName != "" {
		s.ClassName = &d.ClassName
	}

	if d.FieldName != "" {
		s.FieldName = &d.FieldName
	}

	if d.PropertyName != "" {
		s.Property = &d.PropertyName
	}

	return s
}

// Defaults returns the built-in layer: wrap eagerly into a top-level List
// wrapper without pluralization.
func Defaults() control.Settings {
	wrap, plural, nested := true, false, false
	collection := model.DefaultCollection()
	iface := model.DefaultInterface(collection.Kind)
	mode := model.InstantiateEager

	return control.Settings{
		Wrap:        &wrap,
		Collection:  &collection,
		Interface:   &iface,
		Instantiate: &mode,
		Plural:      &plural,
		Nested:      &nested,
	}
}
