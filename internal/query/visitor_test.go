package query

import (
	"testing"

	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type categoryCounter struct {
	head, filter, order, require int
}

func (c *categoryCounter) VisitHead(HeadConstraint)       { c.head++ }
func (c *categoryCounter) VisitFilter(FilterConstraint)   { c.filter++ }
func (c *categoryCounter) VisitOrder(OrderConstraint)     { c.order++ }
func (c *categoryCounter) VisitRequire(RequireConstraint) { c.require++ }

func TestAcceptDispatchesByCategory(t *testing.T) {
	testCases := []struct {
		name string
		c    Constraint
		want categoryCounter
	}{
		{name: "head leaf", c: Collection("product"), want: categoryCounter{head: 1}},
		{name: "filter leaf", c: DirectRelation(), want: categoryCounter{filter: 1}},
		{name: "filter container", c: And(DirectRelation()), want: categoryCounter{filter: 1}},
		{name: "order leaf", c: Random(), want: categoryCounter{order: 1}},
		{name: "order container", c: OrderBy(Random()), want: categoryCounter{order: 1}},
		{name: "require leaf", c: Page(1, 20), want: categoryCounter{require: 1}},
		{name: "require container", c: EntityFetch(), want: categoryCounter{require: 1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got categoryCounter
			tc.c.Accept(&got)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWalkWithVisitorFunc(t *testing.T) {
	c := Require(
		ReferenceContent("brand",
			EntityFetch(AttributeContent("name")),
			FilterBy(AttributeEquals("visible", true)),
			OrderBy(AttributeNatural("order", Asc)),
		),
		Page(1, 20),
	)

	var counter categoryCounter
	var names []string
	Walk(c, func(n Constraint) bool {
		n.Accept(&counter)
		n.Accept(VisitorFunc(func(v Constraint) { names = append(names, v.Name()) }))
		return true
	})

	assert.Equal(t, []string{
		"require",
		"referenceContent",
		"filterBy", "attributeEquals",
		"orderBy", "attributeNatural",
		"entityFetch", "attributeContent",
		"page",
	}, names)
	assert.Equal(t, categoryCounter{filter: 2, order: 2, require: 5}, counter)
}

func TestWalkSkipsDescendants(t *testing.T) {
	c := And(Not(AttributeEquals("a", 1)), AttributeEquals("b", 2))

	var names []string
	Walk(c, func(n Constraint) bool {
		names = append(names, n.Name())
		return n.Kind() != KindNot
	})

	assert.Equal(t, []string{"and", "not", "attributeEquals"}, names)
}

func TestFind(t *testing.T) {
	c := FilterBy(And(
		EntityLocaleEquals(language.Czech),
		Or(AttributeEquals("a", 1), AttributeEquals("b", 2)),
	))

	found, ok := Find(c, KindAttributeEquals)
	require.True(t, ok)
	assert.Equal(t, "attributeEquals('a',1)", found.String())

	all := FindAll(c, KindAttributeEquals)
	assert.Len(t, all, 2)

	_, ok = Find(c, KindPriceInCurrency)
	assert.False(t, ok)
}

func TestConcurrentPrinting(t *testing.T) {
	q := MustNew(
		Collection("product"),
		FilterBy(And(AttributeEquals("code", "abc"), AttributeBetween("price", 10, nil))),
		Require(EntityFetch(AttributeContent("name")), Page(1, 20)),
	)
	want, err := q.PrettyPrint()
	require.NoError(t, err)

	results := make([]string, 64)
	var wg conc.WaitGroup
	for i := range results {
		wg.Go(func() {
			out, _, err := q.PrettyPrintParameterized()
			if err == nil {
				out, err = q.PrettyPrint()
			}
			if err != nil {
				out = err.Error()
			}
			results[i] = out
		})
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
