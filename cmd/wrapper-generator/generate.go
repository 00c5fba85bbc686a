package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"

	"wrapper-generator/internal/binding"
	"wrapper-generator/internal/control"
	"wrapper-generator/internal/model"
	"wrapper-generator/internal/plan"
	"wrapper-generator/options"
)

// job is one configured run of the pass.
type job struct {
	modelPath   string
	opts        *options.Options
	log         *zap.Logger
	out         io.Writer
	dump        bool
	diff        bool
	episodePath string
	previous    string
	exportPath  string
	samplePath  string
	sampleRoot  string
}

// errRoundTrip is returned when the rewritten model does not reproduce the
// sample document.
var errRoundTrip = errors.New("sample document changed by the pass")

// inputs returns the files the job reads, for the watch command.
func (j *job) inputs() []string {
	files := []string{j.modelPath}

	for _, f := range []string{j.opts.Control, j.previous, j.samplePath} {
		if f != "" {
			files = append(files, f)
		}
	}

	return files
}

// run loads the inputs, runs the pass and writes the requested outputs.
// Each run builds a fresh model.
func (j *job) run() error {
	m, err := model.LoadFile(j.modelPath)
	if err != nil {
		return err
	}

	if j.previous != "" {
		m.Imported, err = model.ReadEpisode(j.previous)
		if err != nil {
			return err
		}
	}

	var ctl *control.File

	if j.opts.Control != "" {
		ctl, err = control.LoadFile(j.opts.Control)
		if err != nil {
			return err
		}
	}

	var (
		sample   []byte
		original string
	)

	if j.samplePath != "" {
		sample, err = os.ReadFile(j.samplePath)
		if err != nil {
			return fmt.Errorf("failed to read sample: %w", err)
		}

		original, err = binding.Canonical(sample)
		if err != nil {
			return fmt.Errorf("failed to parse sample %s: %w", j.samplePath, err)
		}
	}

	before := model.Dump(m)

	cfg := plan.DefaultConfig()
	cfg.Logger = j.log

	result, err := plan.NewPass(m, ctl, j.opts, cfg).Run()
	if err != nil {
		return err
	}

	j.report(result)

	if j.dump {
		fmt.Fprint(j.out, model.Dump(m))
	}

	if j.diff {
		err = j.writeDiff(before, model.Dump(m))
		if err != nil {
			return err
		}
	}

	err = j.writeOutputs(m, result)
	if err != nil {
		return err
	}

	if j.samplePath != "" {
		after, err := j.roundTrip(m, sample)
		if err != nil {
			return fmt.Errorf("failed to read sample after the pass: %w", err)
		}

		if after != original {
			return fmt.Errorf("%w: %s", errRoundTrip, j.samplePath)
		}

		j.log.Info("sample document reproduced", zap.String("sample", j.samplePath))
	}

	return nil
}

func (j *job) report(result *plan.Result) {
	for _, d := range result.Diagnostics.Warnings {
		j.log.Warn(d.Message, zap.String("code", d.Code), zap.String("class", d.Class), zap.String("path", d.Path))
	}

	for _, d := range result.Diagnostics.Infos {
		j.log.Debug(d.Message, zap.String("code", d.Code), zap.String("class", d.Class), zap.String("path", d.Path))
	}

	fmt.Fprint(j.out, result.Summary.String())
}

func (j *job) writeDiff(before, after string) error {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: j.modelPath,
		ToFile:   j.modelPath + " (wrapped)",
		Context:  3,
	})
	if err != nil {
		return fmt.Errorf("failed to diff model: %w", err)
	}

	fmt.Fprint(j.out, diff)

	return nil
}

func (j *job) writeOutputs(m *model.Model, result *plan.Result) error {
	if j.episodePath != "" {
		err := model.WriteEpisode(j.episodePath, m.Episode)
		if err != nil {
			return err
		}
	}

	if j.exportPath != "" {
		data, err := plan.ExportControlYAML(result)
		if err != nil {
			return fmt.Errorf("failed to export control file: %w", err)
		}

		err = os.WriteFile(j.exportPath, data, 0o644)
		if err != nil {
			return fmt.Errorf("failed to write control file: %w", err)
		}
	}

	return nil
}

// roundTrip reads data through m and returns the canonical form of the
// written document.
func (j *job) roundTrip(m *model.Model, data []byte) (string, error) {
	in, err := binding.Unmarshal(m, j.sampleRoot, data)
	if err != nil {
		return "", err
	}

	out, err := binding.Marshal(in)
	if err != nil {
		return "", err
	}

	return binding.Canonical(out)
}
