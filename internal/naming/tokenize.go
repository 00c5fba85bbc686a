package naming

import (
	"strings"
	"unicode"
)

// Tokenize splits a CamelCase, camelCase, or separated identifier into tokens.
// Examples:
//   - "publisherArticle" -> ["publisher", "Article"]
//   - "XMLEntry" -> ["XML", "Entry"]
//   - "vol-entry" -> ["vol", "entry"]
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i := range runes {
		r := runes[i]

		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// isSeparator returns true for characters that are not valid in identifiers
// but separate words in XML names.
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// shouldStartNewToken determines if a new token should start at position i.
func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]
	isUpper := unicode.IsUpper(r)
	isPrevUpper := unicode.IsUpper(prev)

	// "orderID" -> split before 'I'
	if isUpper && !isPrevUpper && !isSeparator(prev) {
		return true
	}

	// "XMLParser" -> split before 'P'
	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

	return isUpper && isPrevUpper && hasNextLower
}

// Capitalize upper-cases the first rune and joins separated words in
// CamelCase: "vol-entry" -> "VolEntry".
func Capitalize(s string) string {
	tokens := Tokenize(s)
	for i, t := range tokens {
		tokens[i] = upperFirst(t)
	}

	return strings.Join(tokens, "")
}

// LowerCamel lower-cases the leading word: "Articles" -> "articles",
// "XMLEntries" -> "xmlEntries".
func LowerCamel(s string) string {
	tokens := Tokenize(s)
	if len(tokens) == 0 {
		return ""
	}

	if isAllUpper(tokens[0]) {
		tokens[0] = strings.ToLower(tokens[0])
	} else {
		tokens[0] = lowerFirst(tokens[0])
	}

	for i := 1; i < len(tokens); i++ {
		tokens[i] = upperFirst(tokens[i])
	}

	return strings.Join(tokens, "")
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])

	return string(runes)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])

	return string(runes)
}

func isAllUpper(s string) bool {
	return strings.ToUpper(s) == s && strings.ToLower(s) != s
}
