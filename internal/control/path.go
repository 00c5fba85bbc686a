package control

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Pattern is a dotted property path, possibly with glob segments.
// Examples:
//   - "inner_element.Publisher.article"
//   - "Publisher.article" (matches in any package)
//   - "*.Volume.entr*"
type Pattern struct {
	raw      string
	segments []string
	glob     bool
}

// ParsePattern parses a property path or pattern.
func ParsePattern(s string) (Pattern, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Pattern{}, errors.New("empty path")
	}

	segments := strings.Split(s, ".")
	glob := false

	for _, seg := range segments {
		if seg == "" {
			return Pattern{}, fmt.Errorf("invalid path %q: empty segment", s)
		}

		if strings.ContainsAny(seg, "*?[") {
			if _, err := path.Match(seg, ""); err != nil {
				return Pattern{}, fmt.Errorf("invalid path %q: bad pattern %q", s, seg)
			}

			glob = true

			continue
		}

		if !isValidSegment(seg) {
			return Pattern{}, fmt.Errorf("invalid path %q: invalid segment %q", s, seg)
		}
	}

	return Pattern{raw: s, segments: segments, glob: glob}, nil
}

// String returns the pattern as written.
func (p Pattern) String() string {
	return p.raw
}

// IsExact returns true if the pattern has no glob segments.
func (p Pattern) IsExact() bool {
	return !p.glob
}

// Len returns the number of segments.
func (p Pattern) Len() int {
	return len(p.segments)
}

// Match reports whether the pattern matches the tail of a property path
// given as segments.
func (p Pattern) Match(segments []string) bool {
	if len(p.segments) == 0 || len(p.segments) > len(segments) {
		return false
	}

	tail := segments[len(segments)-len(p.segments):]
	for i, seg := range p.segments {
		if !p.glob {
			if seg != tail[i] {
				return false
			}

			continue
		}

		ok, err := path.Match(seg, tail[i])
		if err != nil || !ok {
			return false
		}
	}

	return true
}

// isValidSegment accepts identifiers plus the '-' found in XML names.
func isValidSegment(s string) bool {
	return isValidIdent(strings.ReplaceAll(s, "-", "_"))
}
