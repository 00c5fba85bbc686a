// Package control loads control files: per-property wrapping directives
// keyed by property path or path pattern.
//
// Two formats are accepted. The line format:
//
//	# comment
//	inner_element.Publisher.article = wrap collection=LinkedList instantiate=lazy
//	*.Volume.entry = nowrap
//
// and YAML (selected by a .yaml or .yml extension):
//
//	version: "1"
//	properties:
//	  - path: inner_element.Publisher.article
//	    action: wrap
//	    collection: LinkedList
//	plurals:
//	  irregular: {cactus: cacti}
//
// Paths are dotted: package segments, class nesting chain, property name.
// A path matches any property whose full path ends with it. Segments may use
// glob syntax ("*", "?", "[a-z]"). When several entries match one property, an
// exact path beats a pattern, the longer exact path beats the shorter one, and
// among patterns the first declared wins.
//
// Every entry must match at least one property; see Index.Validate.
package control
