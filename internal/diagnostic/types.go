package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"wrapper-generator/internal/common"
)

// Diagnostic codes reported by the pass.
const (
	CodeRenamed        = "renamed"         // class renamed to avoid a collision
	CodeNotWrapped     = "not_wrapped"     // candidate left alone by a nowrap directive
	CodeLooseValue     = "loose_value"     // wildcard keeps its loosely-typed values
	CodeSubstitution   = "substitution"    // wrapped value typed as the substitution head
	CodeMerged         = "merged"          // property merged into an existing wrapper
	CodeMixedText      = "mixed_text"      // text-capturing property added to a wrapper
	CodeUnusedControl  = "unused_control"  // control entry matched only excluded properties
	CodeReservedEscape = "reserved_escape" // name escaped to a usable identifier
	CodeDuplicateClass = "duplicate_class" // original classes share a qualified name; the later is renamed
)

// Diagnostics holds all diagnostic information from one pass.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Class is the qualified class name this relates to (if any).
	Class string
	// Path is the property path this relates to (if any).
	Path string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, class, path string) {
	d.add(DiagnosticError, code, message, class, path)
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, class, path string) {
	d.add(DiagnosticWarning, code, message, class, path)
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, class, path string) {
	d.add(DiagnosticInfo, code, message, class, path)
}

func (d *Diagnostics) add(sev DiagnosticSeverity, code, message, class, path string) {
	diag := Diagnostic{Severity: sev, Code: code, Message: message, Class: class, Path: path}

	switch sev {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns errors, warnings, and infos in that order.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Class != "" {
		prefix = append(prefix, "["+d.Class+"]")
	}

	if d.Path != "" {
		prefix = append(prefix, d.Path)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
