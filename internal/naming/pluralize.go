package naming

import (
	"maps"
	"strings"
	"unicode"

	"github.com/samber/lo"
)

// PluralRules are the tables a Pluralizer consults before the suffix rules.
// Keys and entries are lower case.
type PluralRules struct {
	// Irregular maps singular to plural ("child" -> "children").
	Irregular map[string]string `yaml:"irregular,omitempty"`
	// Uncountable words are their own plural.
	Uncountable []string `yaml:"uncountable,omitempty"`
	// PlainF lists words ending in f/fe that take a plain "s".
	PlainF []string `yaml:"plainF,omitempty"`
	// OEs lists words ending in o that take "es".
	OEs []string `yaml:"oEs,omitempty"`
}

// DefaultPluralRules returns a fresh copy of the built-in English tables.
func DefaultPluralRules() PluralRules {
	return PluralRules{
		Irregular: map[string]string{
			"person":     "people",
			"child":      "children",
			"man":        "men",
			"woman":      "women",
			"foot":       "feet",
			"tooth":      "teeth",
			"goose":      "geese",
			"mouse":      "mice",
			"ox":         "oxen",
			"datum":      "data",
			"medium":     "media",
			"criterion":  "criteria",
			"phenomenon": "phenomena",
			"analysis":   "analyses",
			"basis":      "bases",
			"crisis":     "crises",
			"thesis":     "theses",
			"axis":       "axes",
			"appendix":   "appendices",
			"index":      "indices",
			"matrix":     "matrices",
			"vertex":     "vertices",
			"radius":     "radii",
			"alias":      "aliases",
			"status":     "statuses",
			"quiz":       "quizzes",
			"bus":        "buses",
		},
		Uncountable: []string{
			"equipment", "information", "money", "species", "series", "news",
			"sheep", "deer", "fish", "offspring", "data", "metadata", "content",
			"contents", "settings",
		},
		PlainF: []string{
			"roof", "chief", "belief", "proof", "cliff", "brief", "chef", "safe",
		},
		OEs: []string{
			"hero", "potato", "tomato", "echo", "veto", "torpedo", "embargo",
		},
	}
}

// Merge returns r with the entries of extra added. Entries of extra win.
func (r PluralRules) Merge(extra PluralRules) PluralRules {
	out := PluralRules{
		Irregular:   maps.Clone(r.Irregular),
		Uncountable: lo.Uniq(append(append([]string(nil), r.Uncountable...), lowerAll(extra.Uncountable)...)),
		PlainF:      lo.Uniq(append(append([]string(nil), r.PlainF...), lowerAll(extra.PlainF)...)),
		OEs:         lo.Uniq(append(append([]string(nil), r.OEs...), lowerAll(extra.OEs)...)),
	}

	if out.Irregular == nil {
		out.Irregular = make(map[string]string, len(extra.Irregular))
	}

	for k, v := range extra.Irregular {
		out.Irregular[strings.ToLower(k)] = strings.ToLower(v)
	}

	return out
}

func lowerAll(words []string) []string {
	return lo.Map(words, func(w string, _ int) string { return strings.ToLower(w) })
}

// Pluralizer turns singular English words into plurals.
// Plural input is a fixed point: Pluralize("Entries") == "Entries".
type Pluralizer struct {
	irregular   map[string]string
	plurals     map[string]bool
	uncountable map[string]bool
	plainF      map[string]bool
	oEs         map[string]bool
}

// NewPluralizer creates a Pluralizer for the given tables.
func NewPluralizer(rules PluralRules) *Pluralizer {
	return &Pluralizer{
		irregular:   rules.Irregular,
		plurals:     lo.SliceToMap(lo.Values(rules.Irregular), func(v string) (string, bool) { return v, true }),
		uncountable: lo.SliceToMap(rules.Uncountable, func(v string) (string, bool) { return v, true }),
		plainF:      lo.SliceToMap(rules.PlainF, func(v string) (string, bool) { return v, true }),
		oEs:         lo.SliceToMap(rules.OEs, func(v string) (string, bool) { return v, true }),
	}
}

// Pluralize pluralizes the last word of a compound identifier:
// "VolumeEntry" -> "VolumeEntries", "UserID" -> "UserIDs".
func (p *Pluralizer) Pluralize(word string) string {
	parts := Tokenize(word)
	if len(parts) == 0 {
		return word
	}

	last := parts[len(parts)-1]
	prefix := word[:strings.LastIndex(word, last)]

	return prefix + p.pluralizeWord(last)
}

func (p *Pluralizer) pluralizeWord(word string) string {
	lower := strings.ToLower(word)

	if plural, ok := p.irregular[lower]; ok {
		return matchCase(word, plural)
	}

	if p.uncountable[lower] || p.isPlural(lower) {
		return word
	}

	return matchCase(word, p.applyRules(lower))
}

func (p *Pluralizer) isPlural(lower string) bool {
	if p.plurals[lower] || p.uncountable[lower] {
		return true
	}

	for _, suffix := range []string{"ies", "ves", "oes", "ses", "xes", "zes", "ches", "shes"} {
		if strings.HasSuffix(lower, suffix) && len(lower) > len(suffix) {
			return true
		}
	}

	if len(lower) < 2 || !strings.HasSuffix(lower, "s") {
		return false
	}

	return !strings.HasSuffix(lower, "ss") && !strings.HasSuffix(lower, "us") && !strings.HasSuffix(lower, "is")
}

func (p *Pluralizer) applyRules(word string) string {
	last := word[len(word)-1]

	var prev byte
	if len(word) > 1 {
		prev = word[len(word)-2]
	}

	switch {
	case last == 's' || last == 'x' || last == 'z':
		return word + "es"
	case strings.HasSuffix(word, "ch") || strings.HasSuffix(word, "sh"):
		return word + "es"
	case last == 'y' && !isVowel(prev):
		return word[:len(word)-1] + "ies"
	case last == 'o':
		if p.oEs[word] {
			return word + "es"
		}

		return word + "s"
	case last == 'f':
		if p.plainF[word] {
			return word + "s"
		}

		return word[:len(word)-1] + "ves"
	case strings.HasSuffix(word, "fe"):
		if p.plainF[word] {
			return word + "s"
		}

		return word[:len(word)-2] + "ves"
	default:
		return word + "s"
	}
}

func isVowel(c byte) bool {
	return c == 'a' || c == 'e' || c == 'i' || c == 'o' || c == 'u'
}

// matchCase carries the case pattern of original over to result.
func matchCase(original, result string) string {
	if original == "" || result == "" {
		return result
	}

	// Acronyms keep their case and take a lower-case suffix: "ID" -> "IDs".
	if isAllUpper(original) {
		if strings.HasPrefix(strings.ToLower(result), strings.ToLower(original)) {
			return original + result[len(original):]
		}

		return strings.ToUpper(result)
	}

	if unicode.IsUpper([]rune(original)[0]) {
		return upperFirst(result)
	}

	return result
}
