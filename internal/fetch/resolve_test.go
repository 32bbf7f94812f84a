package fetch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	q "github.com/evitadb/evitago/internal/query"
	"github.com/evitadb/evitago/internal/testutil"
)

var (
	czech   = language.MustParse("cs-CZ")
	english = language.English
	czk     = currency.MustParseISO("CZK")
)

func TestResolve_NilQuery(t *testing.T) {
	req, err := Resolve(nil)
	assert.Nil(t, req)
	assert.ErrorIs(t, err, ErrNilQuery)
}

func TestResolve_NothingRequested(t *testing.T) {
	req, err := Resolve(q.MustNew(q.Collection("product")))
	require.NoError(t, err)

	assert.Equal(t, "product", req.EntityType)
	assert.False(t, req.Body)
	assert.False(t, req.Attributes.Requested())
	assert.False(t, req.AssociatedData.Requested())
	assert.False(t, req.References.Requested())
	assert.False(t, req.Locales.Requested())
	assert.False(t, req.Hierarchy)
	assert.Equal(t, q.PriceContentModeNone, req.Prices.Mode)
	assert.Equal(t, language.Und, req.ImplicitLocale)
}

func TestResolve_Content(t *testing.T) {
	testCases := []struct {
		name    string
		require q.RequireConstraint
		check   func(t *testing.T, req *Request)
	}{
		{
			name:    "explicit attributes",
			require: q.Require(q.EntityFetch(q.AttributeContent("code", "name"))),
			check: func(t *testing.T, req *Request) {
				assert.True(t, req.Body)
				assert.Equal(t, []string{"code", "name"}, req.Attributes.Names())
				assert.False(t, req.Attributes.Contains("url"))
			},
		},
		{
			name:    "all attributes",
			require: q.Require(q.EntityFetch(q.AttributeContentAll())),
			check: func(t *testing.T, req *Request) {
				assert.True(t, req.Attributes.IsWildcard())
				assert.True(t, req.Attributes.Contains("url"))
			},
		},
		{
			name:    "repeated attribute content merged",
			require: q.Require(q.EntityFetch(q.AttributeContent("code"), q.AttributeContent("name"))),
			check: func(t *testing.T, req *Request) {
				assert.Equal(t, []string{"code", "name"}, req.Attributes.Names())
			},
		},
		{
			name:    "associated data",
			require: q.Require(q.EntityFetch(q.AssociatedDataContent("gallery"))),
			check: func(t *testing.T, req *Request) {
				assert.True(t, req.AssociatedData.Contains("gallery"))
				assert.False(t, req.AssociatedData.Contains("manual"))
				assert.False(t, req.Attributes.Requested())
			},
		},
		{
			name:    "locales",
			require: q.Require(q.EntityFetch(q.DataInLocales(czech, english))),
			check: func(t *testing.T, req *Request) {
				assert.True(t, req.Locales.Contains(czech))
				assert.False(t, req.Locales.Contains(language.German))
				_, ok := req.ResolvedLocale()
				assert.False(t, ok)
			},
		},
		{
			name:    "single locale resolves",
			require: q.Require(q.EntityFetch(q.DataInLocales(czech))),
			check: func(t *testing.T, req *Request) {
				locale, ok := req.ResolvedLocale()
				require.True(t, ok)
				assert.Equal(t, czech, locale)
			},
		},
		{
			name:    "all locales",
			require: q.Require(q.EntityFetch(q.DataInLocalesAll())),
			check: func(t *testing.T, req *Request) {
				assert.True(t, req.Locales.IsWildcard())
			},
		},
		{
			name:    "hierarchy",
			require: q.Require(q.EntityFetch(q.HierarchyContent())),
			check: func(t *testing.T, req *Request) {
				assert.True(t, req.Hierarchy)
			},
		},
		{
			name:    "price content",
			require: q.Require(q.EntityFetch(q.PriceContentRespectingFilter("reference"))),
			check: func(t *testing.T, req *Request) {
				assert.Equal(t, q.PriceContentModeRespectingFilter, req.Prices.Mode)
				assert.Equal(t, []string{"reference"}, req.Prices.AdditionalPriceLists)
			},
		},
		{
			name:    "first price content wins",
			require: q.Require(q.EntityFetch(q.PriceContentAll(), q.PriceContent(q.PriceContentModeNone))),
			check: func(t *testing.T, req *Request) {
				assert.Equal(t, q.PriceContentModeAll, req.Prices.Mode)
			},
		},
		{
			name:    "fetch nested in reference does not describe the entity",
			require: q.Require(q.EntityFetch(q.ReferenceContent("brand", q.EntityFetch(q.AttributeContent("logo"))))),
			check: func(t *testing.T, req *Request) {
				assert.False(t, req.Attributes.Requested())
				rr, ok := req.Reference("brand")
				require.True(t, ok)
				require.NotNil(t, rr.Entity)
				assert.True(t, rr.Entity.Attributes.Contains("logo"))
				assert.Nil(t, rr.Group)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := Resolve(q.MustNew(q.Collection("product"), tc.require))
			require.NoError(t, err)
			tc.check(t, req)
		})
	}
}

func TestResolve_References(t *testing.T) {
	query := q.MustNew(
		q.Collection("product"),
		q.Require(q.EntityFetch(
			q.ReferenceContent("brand",
				q.FilterBy(q.AttributeEquals("visible", true)),
				q.AttributeContent("order"),
				q.EntityGroupFetch(q.AttributeContent("name")),
			),
			q.ReferenceContents([]string{"tags", "stocks"}),
			q.DataInLocales(czech),
		)),
	)

	req, err := Resolve(query)
	require.NoError(t, err)

	assert.Equal(t, []string{"brand", "stocks", "tags"}, req.References.Names())
	assert.False(t, req.References.Contains("category"))

	brand, ok := req.Reference("brand")
	require.True(t, ok)
	assert.Equal(t, "brand", brand.Name)
	assert.True(t, brand.Attributes.Contains("order"))
	require.NotNil(t, brand.Group)
	assert.True(t, brand.Group.Attributes.Contains("name"))
	assert.True(t, brand.Group.Locales.Contains(czech), "nested fetch inherits locales declared later")

	tags, ok := req.Reference("tags")
	require.True(t, ok)
	assert.False(t, tags.Attributes.Requested())
	assert.Nil(t, tags.Entity)

	_, ok = req.Reference("category")
	assert.False(t, ok)
}

func TestResolve_AllReferences(t *testing.T) {
	query := q.MustNew(
		q.Collection("product"),
		q.Require(q.EntityFetch(q.ReferenceContentAll(q.EntityFetch()))),
	)

	req, err := Resolve(query)
	require.NoError(t, err)

	assert.True(t, req.References.IsWildcard())
	rr, ok := req.Reference("anything")
	require.True(t, ok)
	assert.NotNil(t, rr.Entity)
}

func TestResolve_Filter(t *testing.T) {
	validIn := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	query := q.MustNew(
		q.Collection("product"),
		q.FilterBy(q.And(
			q.EntityLocaleEquals(czech),
			q.PriceInCurrency(czk),
			q.PriceInPriceLists("vip", "basic"),
			q.PriceValidIn(validIn),
			q.ReferenceHaving("brand", q.EntityHaving(q.EntityLocaleEquals(english))),
		)),
		q.Require(q.EntityFetch(q.PriceContentRespectingFilter("reference"))),
	)

	req, err := Resolve(query)
	require.NoError(t, err)

	assert.Equal(t, czech, req.ImplicitLocale)
	locale, ok := req.ResolvedLocale()
	require.True(t, ok)
	assert.Equal(t, czech, locale)

	require.NotNil(t, req.Prices.Currency)
	assert.Equal(t, czk, *req.Prices.Currency)
	assert.Equal(t, []string{"vip", "basic"}, req.Prices.PriceLists)
	require.NotNil(t, req.Prices.ValidIn)
	assert.True(t, validIn.Equal(*req.Prices.ValidIn))

	assert.Equal(t, []string{"vip", "basic", "reference"}, req.Prices.FetchedPriceLists())
	assert.True(t, req.Prices.PriceListSet().Contains("reference"))
	assert.False(t, req.Prices.PriceListSet().Contains("employee"))
}

func TestResolve_FirstScalarWins(t *testing.T) {
	query := q.MustNew(
		q.Collection("product"),
		q.FilterBy(q.Or(
			q.And(q.EntityLocaleEquals(czech), q.PriceInCurrency(czk)),
			q.And(q.EntityLocaleEquals(english), q.PriceInCurrency(currency.EUR)),
		)),
	)

	req, err := Resolve(query)
	require.NoError(t, err)

	assert.Equal(t, czech, req.ImplicitLocale)
	assert.Equal(t, czk, *req.Prices.Currency)
}

func TestResolve_ValidInNowUsesClock(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := testutil.NewFixedClock(now)

	query := q.MustNew(
		q.Collection("product"),
		q.FilterBy(q.PriceValidInNow()),
	)

	req, err := Resolve(query, WithClock(clock))
	require.NoError(t, err)
	require.NotNil(t, req.Prices.ValidIn)
	assert.Equal(t, now, *req.Prices.ValidIn)
}

func TestResolve_PriceListWildcard(t *testing.T) {
	req, err := Resolve(q.MustNew(
		q.Collection("product"),
		q.Require(q.EntityFetch(q.PriceContentRespectingFilter("reference"))),
	))
	require.NoError(t, err)

	assert.True(t, req.Prices.PriceListSet().IsWildcard())
}

func TestResolve_UnexpectedArgument(t *testing.T) {
	content, err := q.NewRequire(q.KindAttributeContent, []any{42}, nil, nil)
	require.NoError(t, err)
	fetch, err := q.NewRequire(q.KindEntityFetch, nil, []q.Constraint{content}, nil)
	require.NoError(t, err)
	root, err := q.NewRequire(q.KindRequire, nil, []q.Constraint{fetch}, nil)
	require.NoError(t, err)

	_, err = Resolve(q.MustNew(q.Collection("product"), root))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedArgument)
}
