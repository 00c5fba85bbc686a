package plan

import (
	"go.uber.org/zap"

	"wrapper-generator/internal/common"
	"wrapper-generator/internal/customize"
	"wrapper-generator/internal/diagnostic"
	"wrapper-generator/internal/model"
	"wrapper-generator/internal/naming"
)

// Reason tells why a property is structurally eligible for wrapping.
type Reason int

const (
	// ReasonRepeated - more than one value allowed.
	ReasonRepeated Reason = iota
	// ReasonWildcard - wildcard or anyType content.
	ReasonWildcard
	// ReasonSubstitutionHead - reference to a substitution-group head.
	ReasonSubstitutionHead
	// ReasonMixed - text interleaved with elements.
	ReasonMixed
)

// String returns a human-readable reason name.
func (r Reason) String() string {
	switch r {
	case ReasonRepeated:
		return "repeated"
	case ReasonWildcard:
		return "wildcard"
	case ReasonSubstitutionHead:
		return "substitution-head"
	case ReasonMixed:
		return "mixed"
	default:
		return common.UnknownStr
	}
}

// State is the progress of one candidate through synthesis.
type State int

const (
	StateSelected State = iota
	StateNewClassCreated
	StatePropertyRelinked
	StateFinalized
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateSelected:
		return "Selected"
	case StateNewClassCreated:
		return "NewClassCreated"
	case StatePropertyRelinked:
		return "PropertyRelinked"
	case StateFinalized:
		return "Finalized"
	default:
		return common.UnknownStr
	}
}

// Candidate is one structurally eligible property.
type Candidate struct {
	// Property is the candidate; after synthesis it lives in Wrapper.
	Property *model.Property
	// Owner is the class the property was declared in.
	Owner *model.Class
	// Path is the property path before the rewrite.
	Path string
	// Reason is why the property is eligible.
	Reason Reason
	// Directive is the resolved wrapping decision.
	Directive *customize.Directive
	// State is the synthesis progress. Candidates not wrapped stay Selected.
	State State
	// Wrapper is the class holding the property after synthesis.
	Wrapper *model.Class
	// Reference is the owner's property pointing at Wrapper.
	Reference *model.Property
	// Merged is true if the property joined a wrapper created for an
	// earlier candidate of the same owner.
	Merged bool
}

// Wrapped returns true if the directive asks for wrapping.
func (c *Candidate) Wrapped() bool {
	return c.Directive != nil && c.Directive.Wrap
}

// advance moves the candidate to the next state. Skipping or repeating a
// state is an invariant violation.
func (c *Candidate) advance(to State) error {
	if to != c.State+1 {
		return &diagnostic.InvariantError{
			Path:   c.Path,
			State:  c.State.String(),
			Reason: "illegal transition to " + to.String(),
		}
	}

	c.State = to

	return nil
}

// Config holds configuration for the pass.
type Config struct {
	// Logger receives debug output per candidate. Nil means no logging.
	Logger *zap.Logger
	// PluralRules are the pluralization tables; the control file may extend them.
	PluralRules naming.PluralRules
	// MaxSuffix bounds the numeric suffixes tried on name collisions.
	MaxSuffix int
}

// DefaultConfig returns the default pass configuration.
func DefaultConfig() Config {
	return Config{
		Logger:      zap.NewNop(),
		PluralRules: naming.DefaultPluralRules(),
		MaxSuffix:   naming.DefaultMaxSuffix,
	}
}

// Result is the outcome of one pass.
type Result struct {
	// Candidates in selection order, wrapped or not.
	Candidates []*Candidate
	// Wrappers are the classes created, in creation order.
	Wrappers []*model.Class
	// Summary holds the run counters.
	Summary diagnostic.Summary
	// Diagnostics contains warnings and infos of the run.
	Diagnostics diagnostic.Diagnostics
}

// Candidate returns the candidate with the given original path, or nil.
func (r *Result) Candidate(path string) *Candidate {
	for _, c := range r.Candidates {
		if c.Path == path {
			return c
		}
	}

	return nil
}
