package naming

import (
	"strings"
	"unicode"
)

// Engine derives wrapper-related names from element names.
type Engine struct {
	plural *Pluralizer
}

// NewEngine creates an engine using the given plural tables.
func NewEngine(rules PluralRules) *Engine {
	return &Engine{plural: NewPluralizer(rules)}
}

// WrapperClassName derives the wrapper class name for a repeated element.
// Without pluralization: "article" -> "Articles", "status" -> "StatusList".
// With pluralization: "entry" -> "Entries", "entries" -> "Entries".
// A leading digit gets a "_" prefix: "1st" -> "_1sts".
func (e *Engine) WrapperClassName(element string, plural bool) string {
	base := Capitalize(element)
	if base == "" {
		return ""
	}

	if startsWithDigit(base) {
		base = "_" + base
	}

	if plural {
		return e.plural.Pluralize(base)
	}

	if strings.HasSuffix(base, "s") {
		return base + "List"
	}

	return base + "s"
}

// WrappedFieldName derives the name of the moved field inside the wrapper.
// Without pluralization the element name is kept as is when it is a valid
// identifier ("article" -> "article"); with pluralization the field is named
// after the plural ("entry" -> "entries"). Reserved words are escaped.
func (e *Engine) WrappedFieldName(element string, plural bool) string {
	name := element
	if plural {
		name = LowerCamel(e.plural.Pluralize(Capitalize(element)))
	} else if !isIdentifier(name) {
		name = LowerCamel(name)
	}

	name, _ = Escape(name)

	return name
}

// ReferenceName derives the name of the owner's reference to a wrapper class:
// "Articles" -> "articles", "Class" -> "clazz".
func (e *Engine) ReferenceName(wrapperClass string) string {
	name, _ := Escape(LowerCamel(wrapperClass))
	return name
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}

		return false
	}

	return true
}
