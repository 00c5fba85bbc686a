package plan

import (
	"fmt"

	"go.uber.org/zap"

	"wrapper-generator/internal/common"
	"wrapper-generator/internal/diagnostic"
	"wrapper-generator/internal/model"
	"wrapper-generator/internal/naming"
)

// mixedTextName is the field that captures the text of mixed content.
const mixedTextName = "anyText"

// mergeKey identifies wrappers that later candidates with the same explicit
// class name join instead of creating a new class.
type mergeKey struct {
	owner  *model.Class
	name   string
	nested bool
}

// Synthesizer creates wrapper classes and relinks candidates through them.
type Synthesizer struct {
	m         *model.Model
	engine    *naming.Engine
	log       *zap.Logger
	result    *Result
	maxSuffix int
	merged    map[mergeKey]*Candidate
	fields    map[*model.Class]*naming.Scope
}

// NewSynthesizer creates a synthesizer recording into result.
func NewSynthesizer(m *model.Model, engine *naming.Engine, log *zap.Logger, result *Result, maxSuffix int) *Synthesizer {
	if log == nil {
		log = zap.NewNop()
	}

	return &Synthesizer{
		m:         m,
		engine:    engine,
		log:       log,
		result:    result,
		maxSuffix: maxSuffix,
		merged:    make(map[mergeKey]*Candidate),
		fields:    make(map[*model.Class]*naming.Scope),
	}
}

// Synthesize wraps one selected candidate. The model must be inside a
// transaction; on error the caller rolls it back.
func (s *Synthesizer) Synthesize(c *Candidate) error {
	if !c.Wrapped() {
		return &diagnostic.InvariantError{Path: c.Path, State: c.State.String(), Reason: "candidate is not selected for wrapping"}
	}

	if c.State != StateSelected {
		return &diagnostic.InvariantError{Path: c.Path, State: c.State.String(), Reason: "candidate already synthesized"}
	}

	d := c.Directive
	key := mergeKey{owner: c.Owner, name: d.ClassName, nested: d.Nested}

	if d.ClassName != "" {
		if first, ok := s.merged[key]; ok {
			return s.merge(c, first)
		}
	}

	err := s.createWrapper(c)
	if err != nil {
		return err
	}

	err = s.relink(c)
	if err != nil {
		return err
	}

	s.m.RegisterEpisode(c.Wrapper.QualifiedName())
	s.result.Wrappers = append(s.result.Wrappers, c.Wrapper)
	s.result.Summary.Modifications++

	if d.ClassName != "" {
		s.merged[key] = c
	}

	s.log.Debug("wrapping candidate",
		zap.String("path", c.Path),
		zap.Stringer("reason", c.Reason),
		zap.String("wrapper", c.Wrapper.QualifiedName()),
		zap.String("field", c.Property.Name),
		zap.String("reference", c.Reference.Name),
		zap.Stringer("collection", d.Collection),
		zap.Stringer("instantiate", d.Instantiate),
	)

	return c.advance(StateFinalized)
}

// createWrapper adds the wrapper class for c, nested in the owner or at the
// top level of the owner's package.
func (s *Synthesizer) createWrapper(c *Candidate) error {
	d := c.Directive
	owner := c.Owner
	pkg := owner.ID.Package

	var outer *model.Class
	if d.Nested {
		outer = owner
	}

	base := d.ClassName
	if base == "" {
		base = s.engine.WrapperClassName(c.Property.ElementName(), d.Plural)
	}

	scopeName := pkg
	if outer != nil {
		scopeName = outer.QualifiedName()
	}

	scope := naming.NewScope(scopeName, s.m.ScopeNames(pkg, outer), s.maxSuffix)

	name, err := scope.Claim(base)
	if err != nil {
		return fmt.Errorf("failed to name wrapper for %s: %w", c.Path, err)
	}

	if name != base {
		s.rename(common.Qualify(scopeName, base), common.Qualify(scopeName, name), "class name taken", c.Path)
	}

	field, err := s.fieldName(c, nil)
	if err != nil {
		return err
	}

	wrapper := &model.Class{
		ID:        model.ClassID{Package: pkg, Name: name},
		Outer:     outer,
		Namespace: owner.Namespace,
		Source:    c.Property.Source,
		Wrapper: &model.WrapperInfo{
			Owner:       owner,
			Field:       field,
			Collection:  d.Collection,
			Interface:   d.Interface,
			Instantiate: d.Instantiate,
		},
	}

	if owner.ValueObject != nil {
		wrapper.ValueObject = &model.ValueObject{
			Interface: name,
			Impl:      owner.ValueObject.ImplFor(owner.ID.Name, name),
		}

		s.m.AddFactoryMethod(pkg, model.FactoryMethod{
			Name:    "Create" + name,
			Returns: wrapper.ValueObject.Interface,
			Impl:    wrapper.ValueObject.Impl,
		})
	}

	s.m.AddClass(wrapper)
	s.fields[wrapper] = naming.NewScope(wrapper.QualifiedName(), []string{field}, s.maxSuffix)
	c.Wrapper = wrapper

	return c.advance(StateNewClassCreated)
}

// fieldName derives and, when scope is non-nil, claims the wrapped field name.
func (s *Synthesizer) fieldName(c *Candidate, scope *naming.Scope) (string, error) {
	d := c.Directive

	name := d.FieldName
	if name == "" {
		elem := c.Property.ElementName()
		name = s.engine.WrappedFieldName(elem, d.Plural)

		if !d.Plural && naming.NeedsEscape(elem) {
			s.result.Diagnostics.AddInfo(diagnostic.CodeReservedEscape,
				"element "+elem+" is not a usable identifier, field named "+name, "", c.Path)
		}
	} else {
		name = s.escape(name, "field", c.Path)
	}

	if scope == nil {
		return name, nil
	}

	claimed, err := scope.Claim(name)
	if err != nil {
		return "", fmt.Errorf("failed to name field for %s: %w", c.Path, err)
	}

	if claimed != name {
		s.rename(scope.Qualify(name), scope.Qualify(claimed), "field name taken", c.Path)
	}

	return claimed, nil
}

// relink moves the property into the wrapper and puts an inline reference in
// its original slot.
func (s *Synthesizer) relink(c *Candidate) error {
	p := c.Property
	owner := c.Owner
	wrapper := c.Wrapper
	d := c.Directive

	idx, err := s.moveIntoWrapper(c, wrapper.Wrapper.Field)
	if err != nil {
		return err
	}

	refBase := d.PropertyName
	if refBase == "" {
		refBase = s.engine.ReferenceName(wrapper.ID.Name)
	} else {
		refBase = s.escape(refBase, "property", c.Path)
	}

	names := make([]string, 0, len(owner.Properties))
	for _, q := range owner.Properties {
		names = append(names, q.Name)
	}

	refScope := naming.NewScope(owner.QualifiedName(), names, s.maxSuffix)

	refName, err := refScope.Claim(refBase)
	if err != nil {
		return fmt.Errorf("failed to name reference for %s: %w", c.Path, err)
	}

	if refName != refBase {
		s.rename(refScope.Qualify(refBase), refScope.Qualify(refName), "property name taken", c.Path)
	}

	ref := &model.Property{
		Name:        refName,
		Namespace:   p.Namespace,
		Type:        model.TypeRef{Name: wrapper.ID.Name, Class: wrapper},
		Occurs:      model.Occurs{Min: min(p.Occurs.Min, 1), Max: 1},
		Nillable:    p.Nillable,
		Required:    p.Occurs.Min > 0,
		Kind:        model.ContentElement,
		ValueObject: wrapper.ValueObject,
		Inline:      true,
		Source:      p.Source,
	}

	err = s.m.InsertProperty(owner, idx, ref)
	if err != nil {
		return fmt.Errorf("failed to relink %s: %w", c.Path, err)
	}

	c.Reference = ref

	return c.advance(StatePropertyRelinked)
}

// moveIntoWrapper moves the property to the end of the wrapper under the
// field name and applies the directive. Returns the vacated index.
func (s *Synthesizer) moveIntoWrapper(c *Candidate, field string) (int, error) {
	p := c.Property
	d := c.Directive

	idx, err := s.m.MoveProperty(p, c.Wrapper, field)
	if err != nil {
		return -1, fmt.Errorf("failed to move %s: %w", c.Path, err)
	}

	s.m.UpdateProperty(p, func(p *model.Property) {
		p.Collection = d.Collection
		p.Interface = d.Interface
		p.Instantiate = d.Instantiate
	})

	switch c.Reason {
	case ReasonSubstitutionHead:
		head := p.Substitution.Head
		s.m.UpdateProperty(p, func(p *model.Property) {
			p.Type = model.TypeRef{Name: head, Class: s.m.Lookup(c.Owner.ID.Package, head)}
		})
		s.result.Diagnostics.AddInfo(diagnostic.CodeSubstitution,
			"wrapped values typed as substitution head "+head, c.Wrapper.QualifiedName(), c.Path)
	case ReasonWildcard:
		s.result.Diagnostics.AddInfo(diagnostic.CodeLooseValue,
			"wildcard values keep their loose type", c.Wrapper.QualifiedName(), c.Path)
	case ReasonMixed, ReasonRepeated:
	}

	if c.Reason == ReasonMixed {
		err = s.addMixedText(c, field)
		if err != nil {
			return -1, err
		}
	}

	return idx, nil
}

// addMixedText adds the ordered text-capturing property for mixed content.
func (s *Synthesizer) addMixedText(c *Candidate, field string) error {
	d := c.Directive
	scope := s.fields[c.Wrapper]

	name, err := scope.Claim(mixedTextName)
	if err != nil {
		return fmt.Errorf("failed to name text field for %s: %w", c.Path, err)
	}

	text := &model.Property{
		Name:        name,
		Type:        model.TypeRef{Name: "string"},
		Occurs:      model.Occurs{Min: 0, Max: model.Unbounded},
		Kind:        model.ContentText,
		Collection:  d.Collection,
		Interface:   d.Interface,
		Instantiate: d.Instantiate,
		OrderOf:     field,
		Source:      c.Property.Source,
	}

	s.result.Diagnostics.AddInfo(diagnostic.CodeMixedText,
		"text of mixed content captured in "+name, c.Wrapper.QualifiedName(), c.Path)

	return s.m.InsertProperty(c.Wrapper, len(c.Wrapper.Properties), text)
}

// merge moves c into the wrapper created for first and removes its slot.
func (s *Synthesizer) merge(c, first *Candidate) error {
	c.Wrapper = first.Wrapper

	err := c.advance(StateNewClassCreated)
	if err != nil {
		return err
	}

	field, err := s.fieldName(c, s.fields[c.Wrapper])
	if err != nil {
		return err
	}

	_, err = s.moveIntoWrapper(c, field)
	if err != nil {
		return err
	}

	c.Reference = first.Reference
	c.Merged = true

	err = c.advance(StatePropertyRelinked)
	if err != nil {
		return err
	}

	s.result.Summary.Deletions++
	s.result.Diagnostics.AddInfo(diagnostic.CodeMerged,
		"merged into "+c.Wrapper.QualifiedName(), c.Owner.QualifiedName(), c.Path)

	s.log.Debug("merging candidate",
		zap.String("path", c.Path),
		zap.String("wrapper", c.Wrapper.QualifiedName()),
		zap.String("field", field),
	)

	return c.advance(StateFinalized)
}

// escape makes an explicitly configured name usable and reports the change.
func (s *Synthesizer) escape(name, what, path string) string {
	escaped, changed := naming.Escape(name)
	if changed {
		s.result.Diagnostics.AddInfo(diagnostic.CodeReservedEscape,
			what+" name "+name+" is not a usable identifier, escaped to "+escaped, "", path)
	}

	return escaped
}

func (s *Synthesizer) rename(from, to, reason, path string) {
	s.result.Summary.AddRename(from, to, reason)
	s.result.Diagnostics.AddWarning(diagnostic.CodeRenamed,
		fmt.Sprintf("%s renamed to %s: %s", from, to, reason), "", path)
}
