package plan

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"wrapper-generator/internal/control"
	"wrapper-generator/internal/model"
	"wrapper-generator/options"
)

const articleModel = `
package: inner_element
classes:
  - name: Publisher
    element: publisher
    properties:
      - name: name
        type: string
      - name: article
        type: Article
        min: 0
        max: unbounded
  - name: Article
    properties:
      - name: title
        type: string
`

func parseModel(t *testing.T, yaml string) *model.Model {
	t.Helper()

	m, err := model.Parse([]byte(yaml))
	require.NoError(t, err)

	return m
}

func parseControl(t *testing.T, lines string) *control.File {
	t.Helper()

	f, err := control.ParseLines("test.ctl", []byte(lines))
	require.NoError(t, err)

	return f
}

func parseOptions(t *testing.T, args ...string) *options.Options {
	t.Helper()

	opts, rest, err := options.Parse(args)
	require.NoError(t, err)
	require.Empty(t, rest)

	return opts
}

func testConfig(t *testing.T) Config {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Logger = zaptest.NewLogger(t)

	return cfg
}

func run(t *testing.T, m *model.Model, ctl *control.File, opts *options.Options) *Result {
	t.Helper()

	result, err := NewPass(m, ctl, opts, testConfig(t)).Run()
	require.NoError(t, err)

	return result
}
