package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfiguration matches every ConfigurationError with errors.Is.
var ErrConfiguration = errors.New("configuration error")

// ConfigurationError reports a bad control file entry, annotation, or option.
// It is raised before the model is touched.
type ConfigurationError struct {
	Source string // file name, "annotation", or "options"
	Line   int    // 1-based line in Source, 0 when unknown
	Path   string // property path or pattern involved
	Option string // option or attribute name
	Value  string // offending value
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder

	b.WriteString("configuration error")

	if e.Source != "" {
		b.WriteString(" in ")
		b.WriteString(e.Source)

		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
	}

	if e.Path != "" {
		fmt.Fprintf(&b, " at %s", e.Path)
	}

	b.WriteString(": ")

	if e.Option != "" {
		fmt.Fprintf(&b, "%s=%q: ", e.Option, e.Value)
	}

	b.WriteString(e.Reason)

	if e.Err != nil {
		if e.Reason != "" {
			b.WriteString(": ")
		}

		b.WriteString(e.Err.Error())
	}

	return b.String()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// PlacementError reports that no unique name could be found for a wrapper class.
type PlacementError struct {
	Class    string // qualified name that collided
	Attempts int    // suffixes tried
	Reason   string
}

func (e *PlacementError) Error() string {
	msg := fmt.Sprintf("placement error for %s after %d attempts", e.Class, e.Attempts)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	return msg
}

// InvariantError reports an internal state-machine violation of the pass.
type InvariantError struct {
	Path   string // candidate property path
	State  string // state the candidate was in
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("internal invariant violated for %s in state %s: %s", e.Path, e.State, e.Reason)
}
