package control

import (
	"strings"

	"github.com/samber/lo"

	"wrapper-generator/internal/diagnostic"
	"wrapper-generator/internal/model"
	"wrapper-generator/internal/naming"
)

// Index answers which control entry applies to a property.
type Index struct {
	entries []*Entry
	used    map[*Entry]bool
}

// NewIndex indexes the entries of the given files in order. Nil files are skipped.
func NewIndex(files ...*File) *Index {
	idx := &Index{used: make(map[*Entry]bool)}

	for _, f := range files {
		if f == nil {
			continue
		}

		for i := range f.Entries {
			idx.entries = append(idx.entries, &f.Entries[i])
		}
	}

	return idx
}

// Len returns the number of entries.
func (x *Index) Len() int {
	return len(x.entries)
}

// Lookup returns the entry that applies to p, or nil.
// Exact paths beat patterns, longer exact paths beat shorter ones, and the
// first declared pattern wins among patterns.
func (x *Index) Lookup(p *model.Property) *Entry {
	segments := model.PathOf(p).Segments()

	var exact, pattern *Entry

	for _, e := range x.entries {
		if !e.Pattern.Match(segments) {
			continue
		}

		if e.Pattern.IsExact() {
			if exact == nil || e.Pattern.Len() > exact.Pattern.Len() {
				exact = e
			}

			continue
		}

		if pattern == nil {
			pattern = e
		}
	}

	found := exact
	if found == nil {
		found = pattern
	}

	if found != nil {
		x.used[found] = true
	}

	return found
}

// Validate checks that every entry matches at least one of props.
// The first entry without a match is reported as a ConfigurationError.
func (x *Index) Validate(props []*model.Property) error {
	paths := lo.Map(props, func(p *model.Property, _ int) []string {
		return model.PathOf(p).Segments()
	})

	for _, e := range x.entries {
		matched := lo.ContainsBy(paths, func(segments []string) bool {
			return e.Pattern.Match(segments)
		})

		if !matched {
			known := lo.Map(paths, func(segments []string, _ int) string {
				return strings.Join(segments[max(0, len(segments)-e.Pattern.Len()):], ".")
			})

			return &diagnostic.ConfigurationError{
				Source: e.Source,
				Line:   e.Line,
				Path:   e.Pattern.String(),
				Reason: "path matches no property" + naming.DidYouMean(e.Pattern.String(), known),
			}
		}
	}

	return nil
}

// Unused returns the entries never returned by Lookup.
func (x *Index) Unused() []*Entry {
	return lo.Filter(x.entries, func(e *Entry, _ int) bool { return !x.used[e] })
}
