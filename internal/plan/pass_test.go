package plan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wrapper-generator/internal/diagnostic"
	"wrapper-generator/internal/model"
)

func TestDefaultWrapping(t *testing.T) {
	m := parseModel(t, articleModel)
	article := m.Class("inner_element.Publisher").Property("article")

	result := run(t, m, nil, nil)

	require.Len(t, m.Classes, 3)

	pub := m.Class("inner_element.Publisher")
	require.Len(t, pub.Properties, 2)

	ref := pub.Properties[1]
	assert.Equal(t, "articles", ref.Name)
	assert.True(t, ref.Inline)
	assert.Equal(t, model.Occurs{Min: 0, Max: 1}, ref.Occurs)
	assert.False(t, ref.Required)

	wrapper := m.Class("inner_element.Articles")
	require.NotNil(t, wrapper)
	assert.Same(t, wrapper, ref.Type.Class)
	assert.Nil(t, wrapper.Outer)
	assert.Same(t, pub, wrapper.Wrapper.Owner)
	require.Len(t, wrapper.Properties, 1)

	assert.Same(t, article, wrapper.Properties[0])
	assert.Equal(t, "article", article.Name)
	assert.Equal(t, model.DefaultCollection(), article.Collection)
	assert.Equal(t, "List", article.Interface)
	assert.Equal(t, model.InstantiateEager, article.Instantiate)
	assert.Equal(t, model.Occurs{Min: 0, Max: model.Unbounded}, article.Occurs)
	assert.Same(t, m.Class("inner_element.Article"), article.Type.Class)

	assert.Equal(t, []string{"inner_element.Articles"}, m.Episode.Refs())
	assert.Equal(t, []string{
		"1 candidate(s) being considered",
		"1 modification(s) to original code",
		"0 deletion(s) from original code",
	}, result.Summary.Lines())

	c := result.Candidate("inner_element.Publisher.article")
	require.NotNil(t, c)
	assert.Equal(t, StateFinalized, c.State)
	assert.Same(t, ref, c.Reference)
}

func TestRequiredRepetitionMakesRequiredReference(t *testing.T) {
	m := parseModel(t, `
package: p
classes:
  - name: Family
    properties:
      - name: member
        min: 2
        max: unbounded
        nillable: true
`)

	run(t, m, nil, nil)

	ref := m.Class("p.Family").Property("members")
	require.NotNil(t, ref)
	assert.True(t, ref.Required)
	assert.True(t, ref.Nillable)
	assert.Equal(t, model.Occurs{Min: 1, Max: 1}, ref.Occurs)
}

func TestNoWrapCountsCandidateOnly(t *testing.T) {
	m := parseModel(t, articleModel)
	before := model.Dump(m)

	result := run(t, m, parseControl(t, "Publisher.article = nowrap\n"), nil)

	assert.Equal(t, before, model.Dump(m))
	assert.Equal(t, 1, result.Summary.Candidates)
	assert.Equal(t, 0, result.Summary.Modifications)
	assert.Equal(t, 0, result.Summary.Deletions)
	require.Len(t, result.Diagnostics.Infos, 1)
	assert.Equal(t, diagnostic.CodeNotWrapped, result.Diagnostics.Infos[0].Code)
}

func TestOptionsShapeWrapper(t *testing.T) {
	m := parseModel(t, `
package: fs
classes:
  - name: Volume
    properties:
      - name: entry
        type: string
        min: 0
        max: unbounded
`)

	run(t, m, nil, parseOptions(t,
		"-Xxew:plural", "-Xxew:instantiate lazy", "-Xxew:collection java.util.LinkedList", "-Xxew:nested"))

	wrapper := m.Class("fs.Volume.Entries")
	require.NotNil(t, wrapper)
	assert.Same(t, m.Class("fs.Volume"), wrapper.Outer)

	entries := wrapper.Property("entries")
	require.NotNil(t, entries)
	assert.Equal(t, "entry", entries.ElementName())
	assert.Equal(t, "LinkedList", entries.Collection.Impl)
	assert.Equal(t, model.InstantiateLazy, entries.Instantiate)

	assert.NotNil(t, m.Class("fs.Volume").Property("entries"))
	assert.Equal(t, []string{"fs.Volume.Entries"}, m.Episode.Refs())
}

func TestCollisionIsDeterministic(t *testing.T) {
	const yaml = `
package: p
classes:
  - name: Publisher
    properties:
      - name: article
        max: unbounded
  - name: Magazine
    properties:
      - name: article
        max: unbounded
  - name: Articles
    properties: []
`

	runOnce := func() (string, *Result) {
		m := parseModel(t, yaml)
		result := run(t, m, nil, nil)

		return model.Dump(m), result
	}

	dump, result := runOnce()
	again, _ := runOnce()
	assert.Equal(t, dump, again)

	assert.Equal(t, []diagnostic.Rename{
		{From: "p.Articles", To: "p.Articles1", Reason: "class name taken"},
		{From: "p.Articles", To: "p.Articles2", Reason: "class name taken"},
	}, result.Summary.Renames)

	pub := result.Candidate("p.Publisher.article")
	mag := result.Candidate("p.Magazine.article")
	assert.Equal(t, "p.Articles1", pub.Wrapper.QualifiedName())
	assert.Equal(t, "p.Articles2", mag.Wrapper.QualifiedName())
	assert.Equal(t, "articles1", pub.Reference.Name)
}

func TestEpisodeNamesAreAvoided(t *testing.T) {
	m := parseModel(t, articleModel+"episode: [inner_element.Articles]\n")

	result := run(t, m, nil, nil)

	c := result.Candidate("inner_element.Publisher.article")
	assert.Equal(t, "inner_element.Articles1", c.Wrapper.QualifiedName())
	assert.Equal(t, []string{"inner_element.Articles", "inner_element.Articles1"}, m.Episode.Refs())
}

func TestReferenceNameCollision(t *testing.T) {
	m := parseModel(t, `
package: p
classes:
  - name: Shelf
    properties:
      - name: books
        type: string
      - name: book
        max: unbounded
`)

	result := run(t, m, nil, nil)

	shelf := m.Class("p.Shelf")
	assert.Equal(t, []string{"books", "books1"}, []string{shelf.Properties[0].Name, shelf.Properties[1].Name})
	require.Len(t, result.Summary.Renames, 1)
	assert.Equal(t, "property name taken", result.Summary.Renames[0].Reason)
}

func TestMergeSharedClassName(t *testing.T) {
	m := parseModel(t, `
package: lib
classes:
  - name: Library
    properties:
      - name: book
        max: unbounded
      - name: magazine
        max: unbounded
`)

	ctl := parseControl(t, "Library.book = wrap class=Items\nLibrary.magazine = wrap class=Items\n")
	result := run(t, m, ctl, nil)

	library := m.Class("lib.Library")
	require.Len(t, library.Properties, 1)
	assert.Equal(t, "items", library.Properties[0].Name)

	items := m.Class("lib.Items")
	require.NotNil(t, items)
	require.Len(t, items.Properties, 2)
	assert.Equal(t, "book", items.Properties[0].Name)
	assert.Equal(t, "magazine", items.Properties[1].Name)

	assert.Equal(t, 2, result.Summary.Candidates)
	assert.Equal(t, 1, result.Summary.Modifications)
	assert.Equal(t, 1, result.Summary.Deletions)
	assert.True(t, result.Candidate("lib.Library.magazine").Merged)
	assert.Equal(t, StateFinalized, result.Candidate("lib.Library.magazine").State)
}

func TestSubstitutionHeadAndAdapter(t *testing.T) {
	m := parseModel(t, `
package: crm
classes:
  - name: Customer
    properties:
      - name: contactInfo
        kind: reference
        type: Address
        min: 0
        max: unbounded
        substitution:
          head: ContactInfo
          abstract: true
          members: [address, phoneNumber]
      - name: since
        type: string
        max: unbounded
        adapter: DateAdapter
  - name: ContactInfo
    properties: []
  - name: Address
    properties: []
`)

	result := run(t, m, nil, nil)

	c := result.Candidate("crm.Customer.contactInfo")
	require.NotNil(t, c)
	assert.Equal(t, ReasonSubstitutionHead, c.Reason)
	assert.Equal(t, "crm.ContactInfos", c.Wrapper.QualifiedName())
	assert.Same(t, m.Class("crm.ContactInfo"), c.Property.Type.Class)

	since := result.Candidate("crm.Customer.since").Property
	assert.Equal(t, "DateAdapter", since.Adapter)
	assert.Equal(t, "crm.Sinces", since.Owner.QualifiedName())
}

func TestWildcardAndMixed(t *testing.T) {
	m := parseModel(t, `
package: doc
classes:
  - name: Message
    properties:
      - name: any
        kind: any
        lax: true
  - name: Paragraph
    properties:
      - name: content
        kind: mixed
        min: 0
        max: unbounded
`)

	result := run(t, m, nil, nil)

	anyProp := result.Candidate("doc.Message.any").Property
	assert.True(t, anyProp.Lax)
	assert.Equal(t, model.ContentAny, anyProp.Kind)
	assert.Equal(t, "doc.Anys", anyProp.Owner.QualifiedName())

	contents := m.Class("doc.Contents")
	require.NotNil(t, contents)
	require.Len(t, contents.Properties, 2)

	text := contents.Properties[1]
	assert.Equal(t, "anyText", text.Name)
	assert.Equal(t, model.ContentText, text.Kind)
	assert.Equal(t, "content", text.OrderOf)

	assert.Equal(t, 2, result.Summary.Modifications)
}

func TestValueObjectsAndFactory(t *testing.T) {
	m := parseModel(t, `
package: inner_element_value_objects
classes:
  - name: Publisher
    valueObject: {interface: Publisher, impl: impl.PublisherImpl}
    properties:
      - name: article
        type: Article
        max: unbounded
        valueObject: {interface: Article, impl: impl.ArticleImpl}
  - name: Article
    valueObject: {interface: Article, impl: impl.ArticleImpl}
    properties: []
`)

	run(t, m, nil, nil)

	wrapper := m.Class("inner_element_value_objects.Articles")
	require.NotNil(t, wrapper)
	assert.Equal(t, &model.ValueObject{Interface: "Articles", Impl: "impl.ArticlesImpl"}, wrapper.ValueObject)
	assert.Equal(t, "impl.ArticleImpl", wrapper.Property("article").ValueObject.Impl)

	f := m.Factory("inner_element_value_objects")
	require.NotNil(t, f)

	fm := f.Method("CreateArticles")
	require.NotNil(t, fm)
	assert.Equal(t, "impl.ArticlesImpl", fm.Impl)
}

func TestReservedWordElement(t *testing.T) {
	m := parseModel(t, `
package: rw
classes:
  - name: Method
    properties:
      - name: class
        max: unbounded
`)

	result := run(t, m, nil, nil)

	wrapper := m.Class("rw.ClassList")
	require.NotNil(t, wrapper)
	assert.NotNil(t, wrapper.Property("clazz"))
	assert.Equal(t, "class", wrapper.Property("clazz").ElementName())
	assert.NotNil(t, m.Class("rw.Method").Property("classList"))

	codes := make([]string, 0, len(result.Diagnostics.Infos))
	for _, d := range result.Diagnostics.Infos {
		codes = append(codes, d.Code)
	}

	assert.Contains(t, codes, diagnostic.CodeReservedEscape)
}

func TestPlacementErrorRollsBack(t *testing.T) {
	m := parseModel(t, articleModel+`
  - name: Articles
    properties: []
  - name: Articles1
    properties: []
`)
	before := model.Dump(m)

	cfg := testConfig(t)
	cfg.MaxSuffix = 1

	_, err := NewPass(m, nil, nil, cfg).Run()
	require.Error(t, err)

	var pe *diagnostic.PlacementError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "inner_element.Articles", pe.Class)

	assert.Equal(t, before, model.Dump(m))
	require.NoError(t, m.Begin(), "transaction must be closed after rollback")
}

func TestConfigurationErrorsLeaveModelUntouched(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		ctl  string
	}{
		{
			name: "control path matches nothing",
			yaml: articleModel,
			ctl:  "Publisher.missing = wrap\n",
		},
		{
			name: "bad annotation",
			yaml: `
package: p
classes:
  - name: A
    properties:
      - name: x
        max: unbounded
        annotations: ['<xew:xew instantiate="invalid"/>']
`,
		},
		{
			name: "bad class annotation without candidates",
			yaml: `
package: p
classes:
  - name: A
    annotations: ['<xew:xew wrap="maybe"/>']
    properties:
      - name: x
        type: string
`,
		},
		{
			name: "bad annotation on a single-valued element",
			yaml: `
package: p
classes:
  - name: A
    properties:
      - name: x
        type: string
        annotations: ['<xew:xew collection="Bogus"/>']
      - name: y
        max: unbounded
`,
		},
		{
			name: "incompatible interface",
			yaml: articleModel,
			ctl:  "Publisher.article = wrap collection=Set collectionInterface=List\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := parseModel(t, tt.yaml)
			before := model.Dump(m)

			_, err := NewPass(m, parseControl(t, tt.ctl), nil, testConfig(t)).Run()
			require.ErrorIs(t, err, diagnostic.ErrConfiguration)
			assert.Equal(t, before, model.Dump(m))
		})
	}
}

func TestSynthesizeRejectsBadState(t *testing.T) {
	m := parseModel(t, articleModel)
	result := run(t, m, nil, nil)

	synth := NewSynthesizer(m, nil, nil, &Result{}, 0)

	var ie *diagnostic.InvariantError

	err := synth.Synthesize(result.Candidates[0])
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "Finalized", ie.State)

	c := &Candidate{Path: "p.A.x"}
	require.ErrorAs(t, synth.Synthesize(c), &ie)
}

func TestSummaryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.txt")
	m := parseModel(t, articleModel)

	run(t, m, parseControl(t, "Publisher.article = nowrap\n"), parseOptions(t, "-Xxew:summary "+path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "1 candidate(s) being considered")
	assert.Contains(t, string(data), "0 modification(s) to original code")
	assert.Contains(t, string(data), "0 deletion(s) from original code")
}

func TestPlacementRenamesDuplicateWrapper(t *testing.T) {
	m := parseModel(t, articleModel)
	result := &Result{}

	require.NoError(t, m.Begin())

	dup := &model.Class{
		ID:      model.ClassID{Package: "inner_element", Name: "Publisher"},
		Wrapper: &model.WrapperInfo{},
	}
	m.AddClass(dup)
	m.RegisterEpisode(dup.QualifiedName())

	ref := &model.Property{Name: "ref", Type: model.TypeRef{Name: "Publisher", Class: dup}, Inline: true}
	require.NoError(t, m.InsertProperty(m.Class("inner_element.Article"), 0, ref))

	require.NoError(t, NewPlacement(m, nil, result, 0).Resolve())
	m.Commit()

	assert.Equal(t, "inner_element.Publisher1", dup.QualifiedName())
	assert.Equal(t, "Publisher1", ref.Type.Name)
	assert.Equal(t, []string{"inner_element.Publisher1"}, m.Episode.Refs())
	require.Len(t, result.Summary.Renames, 1)
	assert.Equal(t, "duplicate qualified name", result.Summary.Renames[0].Reason)
}

func TestExplicitNamesAreEscaped(t *testing.T) {
	m := parseModel(t, articleModel)

	result := run(t, m, parseControl(t, "Publisher.article = wrap field=class property=return\n"), nil)

	c := result.Candidate("inner_element.Publisher.article")
	require.NotNil(t, c.Wrapper)
	assert.NotNil(t, c.Wrapper.Property("clazz"))
	assert.Nil(t, c.Wrapper.Property("class"))
	assert.Equal(t, "_return", c.Reference.Name)
	assert.NotNil(t, m.Class("inner_element.Publisher").Property("_return"))

	escapes := lo.Filter(result.Diagnostics.Infos, func(d diagnostic.Diagnostic, _ int) bool {
		return d.Code == diagnostic.CodeReservedEscape
	})
	assert.Len(t, escapes, 2)
}

func TestDigitLeadingElement(t *testing.T) {
	m := parseModel(t, `
package: ord
classes:
  - name: Race
    properties:
      - name: 1st
        type: string
        max: unbounded
`)

	run(t, m, nil, nil)

	wrapper := m.Class("ord._1sts")
	require.NotNil(t, wrapper)
	assert.NotNil(t, wrapper.Property("_1st"))
	assert.Equal(t, "1st", wrapper.Property("_1st").ElementName())
	assert.NotNil(t, m.Class("ord.Race").Property("_1sts"))
}

func TestSummaryWriteFailureRollsBack(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	m := parseModel(t, articleModel)
	before := model.Dump(m)

	_, err := NewPass(m, nil, parseOptions(t, "-Xxew:summary "+filepath.Join(blocker, "x", "summary.txt")), testConfig(t)).Run()
	require.Error(t, err)
	assert.Equal(t, before, model.Dump(m))
	assert.Nil(t, m.Class("inner_element.Articles"))
	require.NoError(t, m.Begin())
}

func TestDuplicateOriginalClassIsRenamed(t *testing.T) {
	m := parseModel(t, `
package: p
classes:
  - name: A
    properties:
      - name: x
        type: string
  - name: A
    properties:
      - name: y
        type: string
`)

	result := run(t, m, nil, nil)

	require.Len(t, m.Classes, 2)
	assert.Equal(t, "p.A", m.Classes[0].QualifiedName())
	assert.Equal(t, "p.A1", m.Classes[1].QualifiedName())
	assert.NotNil(t, m.Classes[1].Property("y"))
	assert.Nil(t, m.Episode.Refs())

	require.Len(t, result.Summary.Renames, 1)
	assert.Equal(t, "p.A", result.Summary.Renames[0].From)
	assert.Equal(t, "p.A1", result.Summary.Renames[0].To)

	codes := lo.Map(result.Diagnostics.Warnings, func(d diagnostic.Diagnostic, _ int) string { return d.Code })
	assert.Contains(t, codes, diagnostic.CodeDuplicateClass)
}
