package plan

import (
	"fmt"

	"go.uber.org/zap"

	"wrapper-generator/internal/control"
	"wrapper-generator/internal/customize"
	"wrapper-generator/internal/diagnostic"
	"wrapper-generator/internal/model"
	"wrapper-generator/internal/naming"
	"wrapper-generator/options"
)

// Pass is one run of the wrapper pass over a model.
type Pass struct {
	m    *model.Model
	ctl  *control.File
	opts *options.Options
	cfg  Config
}

// NewPass creates a pass. ctl and opts may be nil.
func NewPass(m *model.Model, ctl *control.File, opts *options.Options, cfg Config) *Pass {
	if opts == nil {
		opts = &options.Options{}
	}

	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	if cfg.PluralRules.Irregular == nil {
		cfg.PluralRules = naming.DefaultPluralRules()
	}

	return &Pass{m: m, ctl: ctl, opts: opts, cfg: cfg}
}

// Run executes the pass. On error the model is left exactly as it was.
func (p *Pass) Run() (*Result, error) {
	log := p.cfg.Logger
	result := &Result{}

	rules := p.cfg.PluralRules
	if p.ctl != nil && p.ctl.Plurals != nil {
		rules = rules.Merge(*p.ctl.Plurals)
	}

	index := control.NewIndex(p.ctl)

	err := index.Validate(p.m.Properties())
	if err != nil {
		return nil, err
	}

	err = customize.ValidateAnnotations(p.m)
	if err != nil {
		return nil, err
	}

	selector := NewSelector(customize.NewResolver(index, p.opts.Settings))

	candidates, err := selector.Select(p.m)
	if err != nil {
		return nil, err
	}

	result.Candidates = candidates
	result.Summary.Candidates = len(candidates)

	for _, e := range index.Unused() {
		result.Diagnostics.AddWarning(diagnostic.CodeUnusedControl,
			fmt.Sprintf("control entry at %s:%d is shadowed or matches no candidate", e.Source, e.Line), "", e.Pattern.String())
	}

	err = p.m.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start rewrite: %w", err)
	}

	err = p.rewrite(result, naming.NewEngine(rules))
	if err != nil {
		p.m.Rollback()
		return nil, err
	}

	if p.opts.Summary != "" {
		err = diagnostic.WriteSummary(p.opts.Summary, &result.Summary)
		if err != nil {
			p.m.Rollback()
			return nil, err
		}
	}

	p.m.Commit()

	for _, line := range result.Summary.Lines() {
		log.Info(line)
	}

	return result, nil
}

func (p *Pass) rewrite(result *Result, engine *naming.Engine) error {
	synth := NewSynthesizer(p.m, engine, p.cfg.Logger, result, p.cfg.MaxSuffix)

	for _, c := range result.Candidates {
		if !c.Wrapped() {
			result.Diagnostics.AddInfo(diagnostic.CodeNotWrapped,
				"left unwrapped by "+c.Directive.OriginOf(control.KeyWrap).String(), c.Owner.QualifiedName(), c.Path)

			continue
		}

		err := synth.Synthesize(c)
		if err != nil {
			return err
		}
	}

	err := NewPlacement(p.m, p.cfg.Logger, result, p.cfg.MaxSuffix).Resolve()
	if err != nil {
		return err
	}

	for _, c := range result.Candidates {
		if c.Wrapped() && c.State != StateFinalized {
			return &diagnostic.InvariantError{Path: c.Path, State: c.State.String(), Reason: "candidate not finalized"}
		}
	}

	return nil
}
