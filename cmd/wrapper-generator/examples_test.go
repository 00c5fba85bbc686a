package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gopkg.in/yaml.v3"

	"wrapper-generator/internal/model"
	"wrapper-generator/options"
)

// example is the manifest of one directory under examples/.
type example struct {
	Root    string   `yaml:"root"`
	Sample  string   `yaml:"sample"`
	Control string   `yaml:"control"`
	Options []string `yaml:"options"`
	Summary string   `yaml:"summary"`
	Episode []string `yaml:"episode"`
}

func loadExample(t *testing.T, dir string) example {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, "example.yaml"))
	require.NoError(t, err)

	var ex example
	require.NoError(t, yaml.Unmarshal(data, &ex))

	return ex
}

func TestExamples(t *testing.T) {
	manifests, err := filepath.Glob(filepath.Join("..", "..", "examples", "*", "example.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, manifests)

	for _, manifest := range manifests {
		dir := filepath.Dir(manifest)

		t.Run(filepath.Base(dir), func(t *testing.T) {
			ex := loadExample(t, dir)

			args := ex.Options
			if ex.Control != "" {
				args = append(args, "-Xxew:control", filepath.Join(dir, ex.Control))
			}

			opts, rest, err := options.Parse(args)
			require.NoError(t, err)
			require.Empty(t, rest)

			var out bytes.Buffer

			tmp := t.TempDir()
			j := &job{
				modelPath:   filepath.Join(dir, "model.yaml"),
				opts:        opts,
				log:         zaptest.NewLogger(t),
				out:         &out,
				episodePath: filepath.Join(tmp, "episode.yaml"),
				exportPath:  filepath.Join(tmp, "control.yaml"),
				samplePath:  filepath.Join(dir, ex.Sample),
				sampleRoot:  ex.Root,
			}

			require.NoError(t, j.run())
			assert.Equal(t, ex.Summary, out.String())

			if ex.Episode != nil {
				refs, err := model.ReadEpisode(j.episodePath)
				require.NoError(t, err)
				assert.Equal(t, ex.Episode, refs)
			}

			// The exported directives reproduce the run without any options.
			again := *j
			again.opts = &options.Options{Control: j.exportPath}
			again.out = &bytes.Buffer{}
			again.exportPath = ""
			again.episodePath = filepath.Join(tmp, "episode-again.yaml")

			require.NoError(t, again.run())

			if ex.Episode != nil {
				refs, err := model.ReadEpisode(again.episodePath)
				require.NoError(t, err)
				assert.Equal(t, ex.Episode, refs)
			}
		})
	}
}

func TestRunDiffAndDump(t *testing.T) {
	dir := filepath.Join("..", "..", "examples", "inner-element")

	var out bytes.Buffer

	j := &job{
		modelPath: filepath.Join(dir, "model.yaml"),
		opts:      &options.Options{},
		log:       zaptest.NewLogger(t),
		out:       &out,
		dump:      true,
		diff:      true,
	}

	require.NoError(t, j.run())
	assert.Contains(t, out.String(), "2 modification(s) to original code")
	assert.Contains(t, out.String(), "--- "+j.modelPath)
	assert.Contains(t, out.String(), "+++ "+j.modelPath+" (wrapped)")
	assert.Contains(t, out.String(), "inner_element.Articles")
}

func TestRunFailsOnBadInputs(t *testing.T) {
	dir := filepath.Join("..", "..", "examples", "inner-element")
	tmp := t.TempDir()

	badControl := filepath.Join(tmp, "bad.ctl")
	require.NoError(t, os.WriteFile(badControl, []byte("Publisher.article = sometimes\n"), 0o644))

	tests := []struct {
		name string
		job  job
	}{
		{name: "missing model", job: job{modelPath: filepath.Join(tmp, "missing.yaml")}},
		{name: "bad control", job: job{modelPath: filepath.Join(dir, "model.yaml"), opts: &options.Options{Control: badControl}}},
		{name: "missing previous episode", job: job{modelPath: filepath.Join(dir, "model.yaml"), previous: filepath.Join(tmp, "none.yaml")}},
		{name: "bad sample root", job: job{modelPath: filepath.Join(dir, "model.yaml"), samplePath: filepath.Join(dir, "sample.xml"), sampleRoot: "inner_element.Article"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := tt.job
			if j.opts == nil {
				j.opts = &options.Options{}
			}

			j.log = zaptest.NewLogger(t)
			j.out = &bytes.Buffer{}

			require.Error(t, j.run())
		})
	}
}

func TestRunComparesWithOriginalSample(t *testing.T) {
	mixed := filepath.Join("..", "..", "examples", "element-mixed")

	j := &job{
		modelPath:  filepath.Join(mixed, "model.yaml"),
		opts:       &options.Options{},
		log:        zaptest.NewLogger(t),
		out:        &bytes.Buffer{},
		samplePath: filepath.Join(mixed, "sample.xml"),
		sampleRoot: "element_mixed.Paragraph",
	}

	require.NoError(t, j.run(), "wrapped mixed content reproduces its text")

	// Text the model has no place for is lost and must be reported.
	inner := filepath.Join("..", "..", "examples", "inner-element")
	sample := filepath.Join(t.TempDir(), "sample.xml")
	require.NoError(t, os.WriteFile(sample, []byte("<publisher>stray<name>Acme</name></publisher>"), 0o644))

	j = &job{
		modelPath:  filepath.Join(inner, "model.yaml"),
		opts:       &options.Options{},
		log:        zaptest.NewLogger(t),
		out:        &bytes.Buffer{},
		samplePath: sample,
		sampleRoot: "inner_element.Publisher",
	}

	require.ErrorIs(t, j.run(), errRoundTrip)
}

func TestPreviousEpisodeKeepsNames(t *testing.T) {
	dir := filepath.Join("..", "..", "examples", "inner-element")
	tmp := t.TempDir()

	previous := filepath.Join(tmp, "previous.yaml")
	e := model.NewEpisode()
	e.Add("inner_element.Articles")
	require.NoError(t, model.WriteEpisode(previous, e))

	var out bytes.Buffer

	j := &job{
		modelPath:   filepath.Join(dir, "model.yaml"),
		opts:        &options.Options{},
		log:         zaptest.NewLogger(t),
		out:         &out,
		previous:    previous,
		episodePath: filepath.Join(tmp, "episode.yaml"),
	}

	require.NoError(t, j.run())
	assert.Contains(t, out.String(), "renamed inner_element.Articles to inner_element.Articles1 (class name taken)")

	refs, err := model.ReadEpisode(j.episodePath)
	require.NoError(t, err)
	assert.Equal(t, []string{"inner_element.Articles1", "inner_element.Authors"}, refs)
}
