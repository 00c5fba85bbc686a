package naming

// escapes maps reserved words of the generated code to their replacement.
// Words missing from the map but present in reserved get a "_" prefix.
var escapes = map[string]string{
	"class": "clazz",
}

var reserved = map[string]bool{
	// Go keywords.
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
	// Java keywords and literals used by bound classes.
	"abstract": true, "assert": true, "boolean": true, "byte": true, "catch": true,
	"char": true, "class": true, "do": true, "double": true, "enum": true,
	"extends": true, "final": true, "finally": true, "float": true, "implements": true,
	"instanceof": true, "int": true, "long": true, "native": true, "new": true,
	"private": true, "protected": true, "public": true, "short": true, "static": true,
	"strictfp": true, "super": true, "synchronized": true, "this": true, "throw": true,
	"throws": true, "transient": true, "try": true, "void": true, "volatile": true,
	"while": true, "true": true, "false": true, "null": true,
}

// IsReserved reports whether name is a keyword of the generated code.
func IsReserved(name string) bool {
	return reserved[name]
}

// NeedsEscape reports whether Escape would change name.
func NeedsEscape(name string) bool {
	return reserved[name] || startsWithDigit(name)
}

// Escape returns a usable identifier for name and whether it was changed:
// "class" -> "clazz", "return" -> "_return", "1st" -> "_1st".
func Escape(name string) (string, bool) {
	if !NeedsEscape(name) {
		return name, false
	}

	if e, ok := escapes[name]; ok {
		return e, true
	}

	return "_" + name, true
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}
