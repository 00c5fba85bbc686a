package model

import "strings"

// PropertyPath builds a readable path to a property.
// Examples:
//   - "inner_element.Publisher.articles"
//   - "inner_element.Filesystem.Volume.entry" for a nested class
type PropertyPath struct {
	parts []string
}

// PathOf returns the path of p: package segments, class nesting chain, and
// the property name.
func PathOf(p *Property) PropertyPath {
	var parts []string

	if p.Owner != nil {
		if p.Owner.ID.Package != "" {
			parts = append(parts, strings.Split(p.Owner.ID.Package, ".")...)
		}

		parts = append(parts, strings.Split(p.Owner.LocalName(), ".")...)
	}

	return PropertyPath{parts: append(parts, p.Name)}
}

// Segments returns a copy of the path segments.
func (p PropertyPath) Segments() []string {
	return append([]string(nil), p.parts...)
}

// String returns the dotted path.
func (p PropertyPath) String() string {
	return strings.Join(p.parts, ".")
}
