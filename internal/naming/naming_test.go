package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wrapper-generator/internal/diagnostic"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"article", []string{"article"}},
		{"publisherArticle", []string{"publisher", "Article"}},
		{"XMLEntry", []string{"XML", "Entry"}},
		{"vol-entry", []string{"vol", "entry"}},
		{"order_ID", []string{"order", "ID"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.input))
		})
	}
}

func TestCasing(t *testing.T) {
	assert.Equal(t, "Article", Capitalize("article"))
	assert.Equal(t, "VolEntry", Capitalize("vol-entry"))
	assert.Equal(t, "articles", LowerCamel("Articles"))
	assert.Equal(t, "xmlEntries", LowerCamel("XMLEntries"))
	assert.Equal(t, "articles1", LowerCamel("Articles1"))
	assert.Empty(t, LowerCamel(""))
}

func TestPluralize(t *testing.T) {
	p := NewPluralizer(DefaultPluralRules())

	tests := []struct {
		input    string
		expected string
	}{
		{"Article", "Articles"},
		{"Entry", "Entries"},
		{"Key", "Keys"},
		{"Box", "Boxes"},
		{"Match", "Matches"},
		{"Class", "Classes"},
		{"Status", "Statuses"},
		{"Child", "Children"},
		{"Hero", "Heroes"},
		{"Photo", "Photos"},
		{"Leaf", "Leaves"},
		{"Knife", "Knives"},
		{"Roof", "Roofs"},
		{"News", "News"},
		{"VolumeEntry", "VolumeEntries"},
		{"UserID", "UserIDs"},
		{"entry", "entries"},
		// plural input is a fixed point
		{"Entries", "Entries"},
		{"Articles", "Articles"},
		{"Children", "Children"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := p.Pluralize(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, got, p.Pluralize(got), "pluralizing twice must not change the result")
		})
	}
}

func TestPluralRulesMerge(t *testing.T) {
	defaults := DefaultPluralRules()
	merged := defaults.Merge(PluralRules{
		Irregular:   map[string]string{"Cactus": "Cacti"},
		Uncountable: []string{"Feedback"},
	})

	p := NewPluralizer(merged)
	assert.Equal(t, "Cacti", p.Pluralize("Cactus"))
	assert.Equal(t, "Feedback", p.Pluralize("Feedback"))
	assert.Equal(t, "Cacti", p.Pluralize("Cacti"))

	_, ok := defaults.Irregular["cactus"]
	assert.False(t, ok, "merge must not modify the receiver")
}

func TestEscape(t *testing.T) {
	name, changed := Escape("class")
	assert.True(t, changed)
	assert.Equal(t, "clazz", name)

	name, changed = Escape("return")
	assert.True(t, changed)
	assert.Equal(t, "_return", name)

	name, changed = Escape("article")
	assert.False(t, changed)
	assert.Equal(t, "article", name)

	name, changed = Escape("1st")
	assert.True(t, changed)
	assert.Equal(t, "_1st", name)

	assert.True(t, IsReserved("interface"))
	assert.True(t, NeedsEscape("2nd"))
	assert.False(t, NeedsEscape("second"))
}

func TestEngineNames(t *testing.T) {
	e := NewEngine(DefaultPluralRules())

	assert.Equal(t, "Articles", e.WrapperClassName("article", false))
	assert.Equal(t, "StatusList", e.WrapperClassName("status", false))
	assert.Equal(t, "Entries", e.WrapperClassName("entry", true))
	assert.Equal(t, "Entries", e.WrapperClassName("entries", true))
	assert.Empty(t, e.WrapperClassName("", true))

	assert.Equal(t, "article", e.WrappedFieldName("article", false))
	assert.Equal(t, "volEntry", e.WrappedFieldName("vol-entry", false))
	assert.Equal(t, "clazz", e.WrappedFieldName("class", false))
	assert.Equal(t, "entries", e.WrappedFieldName("entry", true))

	assert.Equal(t, "articles", e.ReferenceName("Articles"))
	assert.Equal(t, "clazz", e.ReferenceName("Class"))
	assert.Equal(t, "_return", e.ReferenceName("Return"))

	assert.Equal(t, "_1sts", e.WrapperClassName("1st", false))
	assert.Equal(t, "_1st", e.WrappedFieldName("1st", false))
	assert.Equal(t, "_1sts", e.ReferenceName("_1sts"))
}

func TestScopeClaim(t *testing.T) {
	s := NewScope("inner_element", []string{"Articles", "Articles1"}, 0)

	name, err := s.Claim("Articles")
	require.NoError(t, err)
	assert.Equal(t, "Articles2", name)

	name, err = s.Claim("Publisher")
	require.NoError(t, err)
	assert.Equal(t, "Publisher", name)
	assert.True(t, s.Has("Publisher"))

	s.Release("Publisher")
	assert.False(t, s.Has("Publisher"))
}

func TestScopeClaimIsDeterministic(t *testing.T) {
	claim := func() []string {
		s := NewScope("p", []string{"Articles"}, 0)

		var out []string

		for range 3 {
			name, err := s.Claim("Articles")
			require.NoError(t, err)

			out = append(out, name)
		}

		return out
	}

	first := claim()
	assert.Equal(t, []string{"Articles1", "Articles2", "Articles3"}, first)
	assert.Equal(t, first, claim())
}

func TestScopeClaimExhausted(t *testing.T) {
	s := NewScope("p", []string{"A", "A1", "A2"}, 2)

	_, err := s.Claim("A")
	require.Error(t, err)

	var pe *diagnostic.PlacementError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "p.A", pe.Class)
	assert.Equal(t, 2, pe.Attempts)
}
