package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evitadb/evitago/internal/value"
)

func TestNew(t *testing.T) {
	q, err := New(
		Collection("product"),
		FilterBy(AttributeEquals("code", "abc")),
		nil,
		Require(Page(1, 20)),
	)
	require.NoError(t, err)

	assert.Equal(t, "product", q.EntityType())
	assert.NotNil(t, q.FilterBy())
	assert.Nil(t, q.OrderBy())
	assert.NotNil(t, q.Require())
	assert.Len(t, q.Parts(), 3)
	assert.Equal(t, "query(collection('product'),filterBy(attributeEquals('code','abc')),require(page(1,20)))", q.String())
}

func TestNew_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		parts []Constraint
	}{
		{name: "duplicate collection", parts: []Constraint{Collection("a"), Collection("b")}},
		{name: "duplicate filter", parts: []Constraint{FilterBy(DirectRelation()), FilterBy(ExcludingRoot())}},
		{name: "bare filter leaf", parts: []Constraint{AttributeEquals("a", 1)}},
		{name: "bare require container", parts: []Constraint{EntityFetch()}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := New(tc.parts...)
			require.Error(t, err)
			assert.Nil(t, q)
			assert.ErrorIs(t, err, ErrInvalidChild)
		})
	}
}

func TestQuery_EmptyQuery(t *testing.T) {
	q := MustNew()

	out, err := q.PrettyPrint(WithIndent("  "))
	require.NoError(t, err)
	assert.Equal(t, "query()", out)
	assert.Equal(t, "", q.EntityType())
}

func TestQuery_PrettyPrintParameterized(t *testing.T) {
	build := func(code string, page int) *Query {
		return MustNew(
			Collection("product"),
			FilterBy(AttributeEquals("code", code)),
			Require(Page(page, 20)),
		)
	}

	a, aParams, err := build("abc", 1).PrettyPrintParameterized()
	require.NoError(t, err)
	b, bParams, err := build("def", 3).PrettyPrintParameterized()
	require.NoError(t, err)

	assert.Equal(t, "query(collection('product'),filterBy(attributeEquals('code',?)),require(page(?,?)))", a)
	assert.Equal(t, a, b)
	assert.Equal(t, []value.Value{value.String("abc"), value.Int(1), value.Int(20)}, aParams)
	assert.Equal(t, []value.Value{value.String("def"), value.Int(3), value.Int(20)}, bParams)
}

func TestQuery_Normalized(t *testing.T) {
	q := MustNew(
		Collection("product"),
		FilterBy(And(AttributeEquals("code", "abc"), AttributeEquals("url", nil))),
		OrderBy(),
		Require(EntityFetch(AttributeContent("name"))),
	)

	n := q.Normalized()

	assert.Equal(t, "query(collection('product'),filterBy(attributeEquals('code','abc')),require(entityFetch(attributeContent('name'))))", n.String())
	assert.Nil(t, n.OrderBy())
	assert.False(t, q.Equal(n))
	assert.True(t, n.Equal(n.Normalized()))
}

func TestQuery_MustNewPanics(t *testing.T) {
	_, err := Try(func() *Query {
		return MustNew(Collection("a"), Collection("b"))
	})
	require.Error(t, err)
	assert.True(t, IsConstructionError(err))
}
