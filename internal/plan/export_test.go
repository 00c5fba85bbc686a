package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wrapper-generator/internal/control"
	"wrapper-generator/internal/model"
)

const libraryModel = `
package: lib
classes:
  - name: Library
    properties:
      - name: book
        max: unbounded
      - name: magazine
        max: unbounded
      - name: owner
        type: string
  - name: Shop
    properties:
      - name: book
        max: unbounded
      - name: poster
        max: unbounded
  - name: Books
    properties: []
`

func TestExportControl(t *testing.T) {
	m := parseModel(t, articleModel)
	result := run(t, m, nil, nil)

	f, err := ExportControl(result)
	require.NoError(t, err)
	require.Len(t, f.Entries, 1)

	e := f.Entries[0]
	assert.Equal(t, "inner_element.Publisher.article", e.Pattern.String())
	assert.Equal(t, control.ActionWrap, e.Action)
	require.NotNil(t, e.Settings.ClassName)
	assert.Equal(t, "Articles", *e.Settings.ClassName)
	assert.Equal(t, "article", *e.Settings.FieldName)
	assert.Equal(t, "articles", *e.Settings.Property)
}

func TestExportControlReproducesRun(t *testing.T) {
	ctl := parseControl(t, "Library.magazine = wrap class=Items\nShop.poster = nowrap\nLibrary.book = wrap class=Items\n")

	first := parseModel(t, libraryModel)
	result := run(t, first, ctl, nil)
	assert.Equal(t, 1, result.Summary.Deletions)

	data, err := ExportControlYAML(result)
	require.NoError(t, err)

	exported, err := control.ParseYAML("exported.yaml", data)
	require.NoError(t, err)
	require.Len(t, exported.Entries, 4)

	second := parseModel(t, libraryModel)
	again := run(t, second, exported, nil)

	assert.Equal(t, model.Dump(first), model.Dump(second))
	assert.Equal(t, first.Episode.Refs(), second.Episode.Refs())
	assert.Equal(t, result.Summary.Lines()[:3], again.Summary.Lines()[:3])
	assert.Empty(t, again.Summary.Renames)
}

func TestExportNoWrap(t *testing.T) {
	m := parseModel(t, articleModel)
	result := run(t, m, parseControl(t, "Publisher.article = nowrap\n"), nil)

	f, err := ExportControl(result)
	require.NoError(t, err)
	require.Len(t, f.Entries, 1)
	assert.Equal(t, control.ActionNoWrap, f.Entries[0].Action)
	assert.True(t, f.Entries[0].Settings.IsEmpty())
}
