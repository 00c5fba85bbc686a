package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// FactoryMethod is one creation method of a package object factory.
type FactoryMethod struct {
	Name    string // e.g., "CreateArticles"
	Returns string // interface or class name returned
	Impl    string // implementation instantiated, empty when Returns is concrete
}

// Factory is the object factory of one package.
type Factory struct {
	Package string
	Methods []FactoryMethod
}

// Method returns the method with the given name, or nil.
func (f *Factory) Method(name string) *FactoryMethod {
	for i := range f.Methods {
		if f.Methods[i].Name == name {
			return &f.Methods[i]
		}
	}

	return nil
}

// Model is the mutable class graph of one generation run.
type Model struct {
	// Classes in declaration order; classes added by a rewrite are appended.
	Classes []*Class
	// Episode lists classes reusable by later runs.
	Episode *Episode
	// Imported lists classes of other compilations. Their names are taken,
	// but they are never written to Episode.
	Imported []string
	// Factories maps package names to their object factory.
	Factories map[string]*Factory

	journal []func()
	open    bool
}

// New creates an empty model.
func New() *Model {
	return &Model{
		Episode:   NewEpisode(),
		Factories: make(map[string]*Factory),
	}
}

// --- lookup ---

// Class returns the class with the given qualified name, or nil.
// When several classes share the name the first one wins.
func (m *Model) Class(qualified string) *Class {
	for _, c := range m.Classes {
		if c.QualifiedName() == qualified {
			return c
		}
	}

	return nil
}

// Lookup resolves a type name relative to a package: a qualified name, or a
// local name in pkg.
func (m *Model) Lookup(pkg, name string) *Class {
	if c := m.Class(name); c != nil {
		return c
	}

	if pkg != "" {
		return m.Class(pkg + "." + name)
	}

	return nil
}

// TopLevel returns the top-level classes of a package in declaration order.
func (m *Model) TopLevel(pkg string) []*Class {
	var out []*Class

	for _, c := range m.Classes {
		if c.Outer == nil && c.ID.Package == pkg {
			out = append(out, c)
		}
	}

	return out
}

// NestedIn returns the classes nested directly in outer.
func (m *Model) NestedIn(outer *Class) []*Class {
	var out []*Class

	for _, c := range m.Classes {
		if c.Outer == outer {
			out = append(out, c)
		}
	}

	return out
}

// Siblings returns the simple names taken in the scope a class would be placed
// in: the top level of pkg when outer is nil, otherwise outer's nested classes
// plus the outer chain itself.
func (m *Model) Siblings(pkg string, outer *Class) []string {
	var names []string

	if outer == nil {
		for _, c := range m.TopLevel(pkg) {
			names = append(names, c.ID.Name)
		}

		return names
	}

	for _, c := range m.NestedIn(outer) {
		names = append(names, c.ID.Name)
	}

	for o := outer; o != nil; o = o.Outer {
		names = append(names, o.ID.Name)
	}

	return names
}

// Properties returns every property of the model, classes in declaration
// order and properties in declaration order.
func (m *Model) Properties() []*Property {
	var out []*Property

	for _, c := range m.Classes {
		out = append(out, c.Properties...)
	}

	return out
}

// Factory returns the object factory of pkg, or nil.
func (m *Model) Factory(pkg string) *Factory {
	return m.Factories[pkg]
}

// --- transactions ---

// Begin opens a transaction. Mutations are journaled until Commit or Rollback.
func (m *Model) Begin() error {
	if m.open {
		return errors.New("transaction already open")
	}

	m.open = true
	m.journal = m.journal[:0]

	return nil
}

// Commit closes the transaction and keeps all mutations.
func (m *Model) Commit() {
	m.open = false
	m.journal = nil
}

// Rollback undoes every mutation made since Begin, newest first.
func (m *Model) Rollback() {
	for i := len(m.journal) - 1; i >= 0; i-- {
		m.journal[i]()
	}

	m.open = false
	m.journal = nil
}

func (m *Model) record(undo func()) {
	if m.open {
		m.journal = append(m.journal, undo)
	}
}

// --- mutations ---

// AddClass appends a class to the model.
func (m *Model) AddClass(c *Class) {
	m.Classes = append(m.Classes, c)
	m.record(func() {
		m.Classes = slices.DeleteFunc(m.Classes, func(x *Class) bool { return x == c })
	})
}

// RenameClass changes the simple name of a class.
func (m *Model) RenameClass(c *Class, name string) {
	old := c.ID.Name
	c.ID.Name = name
	m.record(func() { c.ID.Name = old })
}

// InsertProperty inserts p into c at index and makes c its owner.
func (m *Model) InsertProperty(c *Class, index int, p *Property) error {
	if index < 0 || index > len(c.Properties) {
		return fmt.Errorf("insert %s into %s: index %d out of range", p.Name, c.QualifiedName(), index)
	}

	prevOwner := p.Owner
	c.Properties = slices.Insert(c.Properties, index, p)
	p.Owner = c

	m.record(func() {
		c.Properties = slices.DeleteFunc(c.Properties, func(x *Property) bool { return x == p })
		p.Owner = prevOwner
	})

	return nil
}

// RemoveProperty removes p from its owner and returns its former index.
// The property itself stays valid; only the owner's list changes.
func (m *Model) RemoveProperty(p *Property) (int, error) {
	owner := p.Owner
	if owner == nil {
		return -1, fmt.Errorf("remove %s: property has no owner", p.Name)
	}

	idx := owner.IndexOf(p)
	if idx < 0 {
		return -1, fmt.Errorf("remove %s: not a member of %s", p.Name, owner.QualifiedName())
	}

	owner.Properties = slices.Delete(owner.Properties, idx, idx+1)
	p.Owner = nil

	m.record(func() {
		owner.Properties = slices.Insert(owner.Properties, idx, p)
		p.Owner = owner
	})

	return idx, nil
}

// MoveProperty moves p to the end of target's property list under a new name
// and returns the index it vacated in its former owner.
func (m *Model) MoveProperty(p *Property, target *Class, name string) (int, error) {
	idx, err := m.RemoveProperty(p)
	if err != nil {
		return -1, err
	}

	m.UpdateProperty(p, func(p *Property) { p.Name = name })

	err = m.InsertProperty(target, len(target.Properties), p)
	if err != nil {
		return -1, err
	}

	return idx, nil
}

// UpdateProperty applies fn to p and journals the previous field values.
func (m *Model) UpdateProperty(p *Property, fn func(*Property)) {
	saved := *p
	fn(p)
	m.record(func() {
		owner := p.Owner
		*p = saved
		p.Owner = owner
	})
}

// UpdateClass applies fn to c and journals the previous field values.
// The property list is restored by the journal entries of the property
// operations, not by this snapshot.
func (m *Model) UpdateClass(c *Class, fn func(*Class)) {
	saved := *c
	fn(c)
	m.record(func() {
		props := c.Properties
		*c = saved
		c.Properties = props
	})
}

// RegisterEpisode adds a class reference to the episode.
func (m *Model) RegisterEpisode(ref string) {
	if m.Episode.Add(ref) {
		m.record(func() { m.Episode.Remove(ref) })
	}
}

// RenameEpisode replaces oldRef by newRef, keeping its position.
func (m *Model) RenameEpisode(oldRef, newRef string) {
	idx := m.Episode.index(oldRef)
	if idx < 0 {
		m.RegisterEpisode(newRef)
		return
	}

	m.Episode.refs[idx] = newRef
	m.record(func() { m.Episode.refs[idx] = oldRef })
}

// ScopeNames returns the simple names a new class in pkg (nested in outer
// when non-nil) must not take: its siblings in the model plus classes of the
// same scope known only from the episode or from imported episodes.
func (m *Model) ScopeNames(pkg string, outer *Class) []string {
	names := m.Siblings(pkg, outer)

	prefix := pkg
	if outer != nil {
		prefix = outer.QualifiedName()
	}

	for _, ref := range slices.Concat(m.Episode.refs, m.Imported) {
		rest, ok := strings.CutPrefix(ref, prefix+".")
		if !ok || strings.Contains(rest, ".") {
			continue
		}

		if !slices.Contains(names, rest) {
			names = append(names, rest)
		}
	}

	return names
}

// AddFactoryMethod appends a method to the factory of pkg, creating the
// factory when needed.
func (m *Model) AddFactoryMethod(pkg string, fm FactoryMethod) {
	f, ok := m.Factories[pkg]
	if !ok {
		f = &Factory{Package: pkg}
		m.Factories[pkg] = f
	}

	f.Methods = append(f.Methods, fm)

	m.record(func() {
		f.Methods = f.Methods[:len(f.Methods)-1]
		if !ok {
			delete(m.Factories, pkg)
		}
	})
}

// RenameFactoryMethod updates the factory entry that returns class from
// oldName to newName.
func (m *Model) RenameFactoryMethod(pkg, oldName, newName string) {
	f := m.Factories[pkg]
	if f == nil {
		return
	}

	fm := f.Method("Create" + oldName)
	if fm == nil {
		return
	}

	saved := *fm
	fm.Name = "Create" + newName
	fm.Returns = newName

	if fm.Impl != "" {
		fm.Impl = implName(fm.Impl, oldName, newName)
	}

	m.record(func() { *fm = saved })
}
