package naming

import (
	"strconv"

	"wrapper-generator/internal/diagnostic"
)

// DefaultMaxSuffix bounds the numeric suffixes tried by Claim.
const DefaultMaxSuffix = 1000

// Scope is a set of names taken in one namespace: a package top level, the
// nested classes of one class, or the fields of one class.
type Scope struct {
	name      string
	taken     map[string]bool
	maxSuffix int
}

// NewScope creates a scope named for error messages, pre-populated with taken.
// A maxSuffix of zero means DefaultMaxSuffix.
func NewScope(name string, taken []string, maxSuffix int) *Scope {
	if maxSuffix <= 0 {
		maxSuffix = DefaultMaxSuffix
	}

	s := &Scope{name: name, taken: make(map[string]bool, len(taken)), maxSuffix: maxSuffix}
	for _, t := range taken {
		s.taken[t] = true
	}

	return s
}

// Has reports whether name is taken.
func (s *Scope) Has(name string) bool {
	return s.taken[name]
}

// Reserve marks name as taken without checking it.
func (s *Scope) Reserve(name string) {
	s.taken[name] = true
}

// Release frees name.
func (s *Scope) Release(name string) {
	delete(s.taken, name)
}

// Claim takes name, or name+N with the smallest free N >= 1 when name is
// already taken. It fails with a PlacementError after maxSuffix attempts.
func (s *Scope) Claim(name string) (string, error) {
	if !s.taken[name] {
		s.taken[name] = true
		return name, nil
	}

	for n := 1; n <= s.maxSuffix; n++ {
		candidate := name + strconv.Itoa(n)
		if !s.taken[candidate] {
			s.taken[candidate] = true
			return candidate, nil
		}
	}

	return "", &diagnostic.PlacementError{
		Class:    qualify(s.name, name),
		Attempts: s.maxSuffix,
		Reason:   "no free numeric suffix",
	}
}

func qualify(scope, name string) string {
	if scope == "" {
		return name
	}

	return scope + "." + name
}

// Qualify prefixes name with the scope name.
func (s *Scope) Qualify(name string) string {
	return qualify(s.name, name)
}
