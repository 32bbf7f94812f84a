package compiler

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	q "github.com/evitadb/evitago/internal/query"
	"github.com/evitadb/evitago/internal/value"
)

var czech = language.MustParse("cs-CZ")

func compileOne(t *testing.T, doc string) *q.Query {
	t.Helper()
	docs, err := ParseYAML([]byte(doc), "test.yaml")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	return docs[0].Query
}

func TestParseYAML(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
		want *q.Query
	}{
		{
			name: "query with every part",
			doc: `
query:
  - collection: product
  - filterBy:
      and:
        - attributeEquals: [code, abc]
        - entityLocaleEquals: !locale cs-CZ
  - orderBy:
      attributeNatural: [name, DESC]
  - require:
      - entityFetch: [attributeContentAll]
      - page: [1, 20]
`,
			want: q.MustNew(
				q.Collection("product"),
				q.FilterBy(q.And(q.AttributeEquals("code", "abc"), q.EntityLocaleEquals(czech))),
				q.OrderBy(q.AttributeNatural("name", q.Desc)),
				q.Require(q.EntityFetch(q.AttributeContentAll()), q.Page(1, 20)),
			),
		},
		{
			name: "top level list",
			doc: `
- collection: product
- filterBy:
    entityPrimaryKeyInSet: [1, 2, 3]
`,
			want: q.MustNew(q.Collection("product"), q.FilterBy(q.EntityPrimaryKeyInSet(1, 2, 3))),
		},
		{
			name: "reference content with additional filter",
			doc: `
- collection: product
- require:
    entityFetch:
      referenceContent:
        - brand
        - filterBy: {attributeEquals: [visible, true]}
        - entityFetch: [attributeContentAll]
`,
			want: q.MustNew(
				q.Collection("product"),
				q.Require(q.EntityFetch(q.ReferenceContent("brand",
					q.FilterBy(q.AttributeEquals("visible", true)),
					q.EntityFetch(q.AttributeContentAll()),
				))),
			),
		},
		{
			name: "implicit arguments restored",
			doc: `
- collection: product
- require:
    entityFetch:
      - priceContentRespectingFilter: [reference]
      - priceContentAll
`,
			want: q.MustNew(
				q.Collection("product"),
				q.Require(q.EntityFetch(q.PriceContentRespectingFilter("reference"), q.PriceContentAll())),
			),
		},
		{
			name: "typed arguments",
			doc: `
- collection: product
- filterBy:
    and:
      - priceInCurrency: {currency: CZK}
      - priceBetween: [100.50, null]
      - attributeInRange: [validity, 2024-03-01T10:00:00Z]
      - attributeEquals: [status, 'ASC']
`,
			want: q.MustNew(
				q.Collection("product"),
				q.FilterBy(q.And(
					q.PriceInCurrency(currency.MustParseISO("CZK")),
					q.PriceBetween(value.MustDecimal("100.50"), nil),
					q.AttributeInRange("validity", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)),
					q.AttributeEquals("status", "ASC"),
				)),
			),
		},
		{
			name: "hierarchy within with bare specification",
			doc: `
- collection: product
- filterBy:
    hierarchyWithin:
      - category
      - entityPrimaryKeyInSet: [1]
      - directRelation
`,
			want: q.MustNew(
				q.Collection("product"),
				q.FilterBy(q.HierarchyWithin("category", q.EntityPrimaryKeyInSet(1), q.DirectRelation())),
			),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := compileOne(t, tc.doc)
			assert.True(t, tc.want.Equal(got), "want %s\n got %s", tc.want, got)
		})
	}
}

func TestParseYAML_Stream(t *testing.T) {
	docs, err := ParseYAML([]byte(`
name: by code
query:
  - collection: product
---
queries:
  brands:
    - collection: brand
  categories:
    - collection: category
`), "stream.yaml")
	require.NoError(t, err)
	require.Len(t, docs, 3)

	assert.Equal(t, "by code", docs[0].Name)
	assert.Equal(t, "brands", docs[1].Name)
	assert.Equal(t, "brand", docs[1].Query.EntityType())
	assert.Equal(t, "categories", docs[2].Name)
	assert.Equal(t, 4, docs[0].Pos.Line)
}

func TestParseYAML_Empty(t *testing.T) {
	docs, err := ParseYAML(nil, "empty.yaml")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestParseYAML_Errors(t *testing.T) {
	testCases := []struct {
		name      string
		doc       string
		wantField string
		wantErr   error
		wantLine  int
	}{
		{
			name:      "unknown constraint",
			doc:       "- collection: product\n- filterBy:\n    attributeLike: [code, abc]\n",
			wantField: "query[1].filterBy.attributeLike",
			wantLine:  3,
		},
		{
			name:      "leaf holding a constraint",
			doc:       "- collection: product\n- filterBy:\n    attributeEquals: [code, {directRelation: null}]\n",
			wantField: "query[1].filterBy.attributeEquals",
			wantErr:   q.ErrLeafNesting,
		},
		{
			name:      "construction error",
			doc:       "- collection: product\n- require:\n    page: [1]\n",
			wantField: "query[1].require.page",
			wantErr:   q.ErrArity,
		},
		{
			name:      "bad locale",
			doc:       "- collection: product\n- filterBy:\n    entityLocaleEquals: {locale: '!!'}\n",
			wantField: "query[1].filterBy.entityLocaleEquals",
		},
		{
			name:      "unknown argument type",
			doc:       "- collection: product\n- filterBy:\n    entityLocaleEquals: !language cs\n",
			wantField: "query[1].filterBy.entityLocaleEquals",
		},
		{
			name:      "unknown document key",
			doc:       "querry:\n  - collection: product\n",
			wantField: "document",
		},
		{
			name:      "query is not a list",
			doc:       "query: product\n",
			wantField: "query",
		},
		{
			name:      "duplicate part",
			doc:       "- collection: product\n- filterBy: {entityPrimaryKeyInSet: [1]}\n- filterBy: {entityPrimaryKeyInSet: [2]}\n",
			wantField: "query",
			wantErr:   q.ErrInvalidChild,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tc.doc), "bad.yaml")
			require.Error(t, err)
			assert.True(t, IsCompileError(err))

			var ce *CompileError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tc.wantField, ce.Field)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
			if tc.wantLine > 0 {
				assert.Equal(t, tc.wantLine, ce.Pos.Line)
				assert.Contains(t, err.Error(), "bad.yaml:3:")
			}
		})
	}
}

func TestParseCUE(t *testing.T) {
	docs, err := ParseCUE([]byte(`
queries: {
	byCode: [
		{collection: "product"},
		{filterBy: {and: [
			{attributeEquals: ["code", "abc"]},
			{entityLocaleEquals: {locale: "cs-CZ"}},
		]}},
		{orderBy: {attributeNatural: ["name", {enum: "ASC"}]}},
		{require: {entityFetch: [{attributeContent: ["code", "name"]}]}},
	]
}
`), "queries.cue")
	require.NoError(t, err)
	require.Len(t, docs, 1)

	want := q.MustNew(
		q.Collection("product"),
		q.FilterBy(q.And(q.AttributeEquals("code", "abc"), q.EntityLocaleEquals(czech))),
		q.OrderBy(q.AttributeNatural("name", q.Asc)),
		q.Require(q.EntityFetch(q.AttributeContent("code", "name"))),
	)
	assert.Equal(t, "byCode", docs[0].Name)
	assert.True(t, want.Equal(docs[0].Query), "got %s", docs[0].Query)
}

func TestParseCUE_Errors(t *testing.T) {
	_, err := ParseCUE([]byte(`query: [{collection: string}]`), "open.cue")
	require.Error(t, err)
	assert.True(t, IsCompileError(err))

	_, err = ParseCUE([]byte(`query: [`), "broken.cue")
	require.Error(t, err)
	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "cue", ce.Field)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "query.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("- collection: product\n"), 0o600))
	docs, err := LoadFile(yamlPath)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "product", docs[0].Query.EntityType())

	cuePath := filepath.Join(dir, "query.cue")
	require.NoError(t, os.WriteFile(cuePath, []byte(`query: [{collection: "brand"}]`), 0o600))
	docs, err = LoadFile(cuePath)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "brand", docs[0].Query.EntityType())

	txtPath := filepath.Join(dir, "query.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("query(collection('product'))"), 0o600))
	_, err = LoadFile(txtPath)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestArgument_Typed(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
		want value.Value
	}{
		{name: "int", doc: "42", want: value.Int(42)},
		{name: "decimal", doc: "1.50", want: value.MustDecimal("1.50")},
		{name: "bool", doc: "true", want: value.Bool(true)},
		{name: "string", doc: "abc", want: value.String("abc")},
		{name: "quoted enum name", doc: "'DESC'", want: value.String("DESC")},
		{name: "plain enum name", doc: "DESC", want: value.NewEnum(q.Desc)},
		{name: "explicit string", doc: "{string: 42}", want: value.String("42")},
		{name: "char", doc: "!char x", want: value.Char('x')},
		{name: "locale", doc: "{locale: en}", want: value.Locale(language.English)},
		{name: "int range", doc: "{intRange: [1, null]}", want: func() value.Value {
			from := int64(1)
			return value.IntRange{From: &from}
		}()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			docs, err := ParseYAML([]byte("- collection: product\n- filterBy:\n    attributeEquals: [a, "+tc.doc+"]\n"), "arg.yaml")
			require.NoError(t, err)
			require.Len(t, docs, 1)
			c, ok := q.Find(docs[0].Query.FilterBy(), q.KindAttributeEquals)
			require.True(t, ok)
			assert.True(t, value.Equal(tc.want, c.Arguments()[1]), "got %#v", c.Arguments()[1])
		})
	}
}
