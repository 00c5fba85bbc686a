// Package options parses the global "-Xxew:" options of the wrapper pass.
//
// Each option is one token "-Xxew:name value", "-Xxew:name=value", or the
// pair "-Xxew:name" "value". Boolean options (plural, nested) take no
// separate value token; a bare "-Xxew:plural" enables them.
package options

import (
	"strings"

	"wrapper-generator/internal/control"
	"wrapper-generator/internal/diagnostic"
	"wrapper-generator/internal/naming"
)

// Prefix starts every option token. A bare "-Xxew" token enables the pass
// and is accepted without effect.
const Prefix = "-Xxew"

// Names of the accepted options.
const (
	OptCollection  = "collection"
	OptInstantiate = "instantiate"
	OptPlural      = "plural"
	OptInterface   = "collectionInterface"
	OptSummary     = "summary"
	OptControl     = "control"
	OptNested      = "nested"
)

var booleanOptions = map[string]bool{
	OptPlural: true,
	OptNested: true,
}

var settingOptions = map[string]bool{
	OptCollection:  true,
	OptInstantiate: true,
	OptPlural:      true,
	OptInterface:   true,
	OptNested:      true,
}

// Options are the global defaults of one run.
type Options struct {
	// Settings holds the directive defaults given on the command line.
	// Only Collection, Interface, Instantiate, Plural and Nested are set here.
	control.Settings
	// Summary is the file the summary is written to, empty for none.
	Summary string
	// Control is the control file path, empty for none.
	Control string
}

// Parse consumes the "-Xxew" tokens of args and returns the options plus the
// remaining arguments in order.
func Parse(args []string) (*Options, []string, error) {
	opts := &Options{}

	var rest []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == Prefix {
			continue
		}

		if !strings.HasPrefix(arg, Prefix+":") {
			rest = append(rest, arg)
			continue
		}

		name, value, hasValue := splitOption(strings.TrimPrefix(arg, Prefix+":"))

		if !hasValue && !booleanOptions[name] && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			value, hasValue = args[i], true
		}

		err := opts.set(name, value, hasValue)
		if err != nil {
			return nil, nil, err
		}
	}

	return opts, rest, nil
}

// splitOption splits "name value" or "name=value".
func splitOption(s string) (string, string, bool) {
	s = strings.TrimSpace(s)
	if idx := strings.IndexAny(s, " \t="); idx >= 0 {
		return s[:idx], strings.TrimSpace(s[idx+1:]), true
	}

	return s, "", false
}

func (o *Options) set(name, value string, hasValue bool) error {
	fail := func(reason string, err error) error {
		return &diagnostic.ConfigurationError{
			Source: "options",
			Option: Prefix + ":" + name,
			Value:  value,
			Reason: reason,
			Err:    err,
		}
	}

	switch {
	case name == OptSummary || name == OptControl:
		if !hasValue || value == "" {
			return fail("missing file name", nil)
		}

		if name == OptSummary {
			o.Summary = value
		} else {
			o.Control = value
		}

		return nil
	case settingOptions[name]:
		if !hasValue && !booleanOptions[name] {
			return fail("missing value", nil)
		}

		err := o.Settings.Set(name, value)
		if err != nil {
			return fail("", err)
		}

		return nil
	default:
		known := []string{OptCollection, OptInstantiate, OptPlural, OptInterface, OptSummary, OptControl, OptNested}
		return fail("unknown option"+naming.DidYouMean(name, known), nil)
	}
}

// Args renders the options back into "-Xxew:" tokens.
func (o *Options) Args() []string {
	var out []string

	for _, kv := range o.Settings.Pairs() {
		out = append(out, Prefix+":"+kv[0]+" "+kv[1])
	}

	if o.Control != "" {
		out = append(out, Prefix+":"+OptControl+" "+o.Control)
	}

	if o.Summary != "" {
		out = append(out, Prefix+":"+OptSummary+" "+o.Summary)
	}

	return out
}
