package plan

import (
	"wrapper-generator/internal/customize"
	"wrapper-generator/internal/model"
)

// Classify returns why p is eligible for wrapping, or false when it is not.
// Attributes, text content, wrapper references, and properties already inside
// a wrapper class are never eligible.
func Classify(p *model.Property) (Reason, bool) {
	if p.Attribute || p.Inline || (p.Owner != nil && p.Owner.IsWrapper()) {
		return 0, false
	}

	switch p.Kind {
	case model.ContentMixed:
		return ReasonMixed, true
	case model.ContentAny:
		return ReasonWildcard, true
	case model.ContentReference:
		if p.Substitution != nil {
			return ReasonSubstitutionHead, true
		}

		return ReasonRepeated, p.IsRepeated()
	case model.ContentElement:
		return ReasonRepeated, p.IsRepeated()
	case model.ContentText:
		return 0, false
	default:
		return 0, false
	}
}

// Selector walks a model and resolves a directive for every eligible property.
type Selector struct {
	resolver *customize.Resolver
}

// NewSelector creates a selector resolving directives with r.
func NewSelector(r *customize.Resolver) *Selector {
	return &Selector{resolver: r}
}

// Select returns the candidates of m, classes in declaration order and
// properties in declaration order. It does not modify the model.
func (s *Selector) Select(m *model.Model) ([]*Candidate, error) {
	var out []*Candidate

	for _, c := range m.Classes {
		for _, p := range c.Properties {
			reason, ok := Classify(p)
			if !ok {
				continue
			}

			d, err := s.resolver.Resolve(p)
			if err != nil {
				return nil, err
			}

			out = append(out, &Candidate{
				Property:  p,
				Owner:     c,
				Path:      model.PathOf(p).String(),
				Reason:    reason,
				Directive: d,
				State:     StateSelected,
			})
		}
	}

	return out, nil
}
