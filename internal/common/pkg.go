package common

import "strings"

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// PkgAlias returns the last dot-separated element of a package name.
// Returns empty string if pkg is empty.
func PkgAlias(pkg string) string {
	if pkg == "" {
		return ""
	}

	if idx := strings.LastIndex(pkg, "."); idx != -1 {
		return pkg[idx+1:]
	}

	return pkg
}

// Qualify joins a package and a dotted local name.
func Qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}

	return pkg + "." + name
}
