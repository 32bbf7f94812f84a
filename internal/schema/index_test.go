package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type element struct {
	name string
}

func elementName(e *element) string { return e.name }

func TestNewNameIndex_Empty(t *testing.T) {
	idx, err := NewNameIndex(nil, elementName)
	require.NoError(t, err)

	assert.Equal(t, 0, idx.Len())
	assert.Empty(t, idx.Elements())
	_, ok := idx.Lookup("code", CamelCase)
	assert.False(t, ok)
	_, _, ok = idx.Find("code")
	assert.False(t, ok)
}

func TestNameIndex_LookupIdentity(t *testing.T) {
	elements := []*element{{name: "code"}, {name: "productName"}, {name: "URLSlug"}, {name: "valid_from"}}
	idx, err := NewNameIndex(elements, elementName)
	require.NoError(t, err)
	assert.Equal(t, len(elements), idx.Len())

	for _, el := range elements {
		for _, c := range Conventions() {
			got, ok := idx.Lookup(c.Apply(el.name), c)
			require.True(t, ok, "%s in %s", el.name, c)
			assert.Same(t, el, got)
		}
	}
}

func TestNameIndex_ConventionSlots(t *testing.T) {
	product := &element{name: "productName"}
	idx, err := NewNameIndex([]*element{product}, elementName)
	require.NoError(t, err)

	_, ok := idx.Lookup("product_name", CamelCase)
	assert.False(t, ok, "rendering is only found under its own convention")

	got, ok := idx.Lookup("product_name", SnakeCase)
	require.True(t, ok)
	assert.Same(t, product, got)

	got, c, ok := idx.Find("product-name")
	require.True(t, ok)
	assert.Same(t, product, got)
	assert.Equal(t, KebabCase, c)

	_, ok = idx.Lookup("productName", NamingConvention(42))
	assert.False(t, ok)
}

func TestNewNameIndex_Collision(t *testing.T) {
	testCases := []struct {
		name     string
		elements []*element
	}{
		{name: "different spelling same words", elements: []*element{{name: "productCode"}, {name: "product_code"}}},
		{name: "duplicate name", elements: []*element{{name: "code"}, {name: "code"}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			idx, err := NewNameIndex(tc.elements, elementName)
			assert.Nil(t, idx)
			assert.ErrorIs(t, err, ErrNameCollision)
		})
	}
}

func TestNameIndex_Nil(t *testing.T) {
	var idx *NameIndex[*element]
	assert.Equal(t, 0, idx.Len())
	assert.Nil(t, idx.Elements())
	_, ok := idx.Lookup("code", CamelCase)
	assert.False(t, ok)
}
