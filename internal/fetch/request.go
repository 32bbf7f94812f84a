package fetch

import (
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/evitadb/evitago/internal/query"
)

// Request records which facets of an entity a query asked to materialize.
// It is the only input of the fetch-context predicates.
//
// A Request is built once by Resolve and never modified afterwards.
type Request struct {
	// EntityType is the collection the entity belongs to ("" when unknown).
	EntityType string

	// Body reports whether entity bodies were fetched at all (entityFetch).
	Body bool

	// ImplicitLocale is the locale the filter restricted entities to
	// (entityLocaleEquals), language.Und when none.
	ImplicitLocale language.Tag

	// Locales lists the locales of fetched localized data.
	Locales LocaleSet

	Attributes     NameSet
	AssociatedData NameSet

	// References lists the fetched references. Per-reference content is in
	// ReferenceContent, or in AllReferences for referenceContentAll.
	References       NameSet
	ReferenceContent map[string]*ReferenceRequest
	AllReferences    *ReferenceRequest

	Prices PriceRequest

	// Hierarchy reports whether the placement in the hierarchy was fetched.
	Hierarchy bool
}

// ReferenceRequest is the content fetched for one reference.
type ReferenceRequest struct {
	Name string

	// Attributes of the reference itself.
	Attributes NameSet

	// Entity and Group are the nested requests of the referenced entity and
	// its group, nil when not fetched.
	Entity *Request
	Group  *Request
}

// PriceRequest is the price configuration of a query.
type PriceRequest struct {
	// Mode comes from the price content requirement; PriceContentModeNone
	// when absent.
	Mode query.PriceContentMode

	// AdditionalPriceLists are fetched on top of the filtered ones.
	AdditionalPriceLists []string

	// Currency is the priceInCurrency of the filter, nil when absent.
	Currency *currency.Unit

	// PriceLists are the priceInPriceLists of the filter in priority order.
	PriceLists []string

	// ValidIn is the priceValidIn instant of the filter, nil when absent.
	ValidIn *time.Time
}

// PriceListSet returns the price lists visible in RespectingFilter mode. It
// is a wildcard when the filter names no price list.
func (p PriceRequest) PriceListSet() NameSet {
	if len(p.PriceLists) == 0 {
		return Wildcard()
	}
	return NamesOf(append(append([]string(nil), p.PriceLists...), p.AdditionalPriceLists...)...)
}

// FetchedPriceLists returns every price list named by the filter or the
// price content, in priority order without duplicates.
func (p PriceRequest) FetchedPriceLists() []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range append(append([]string(nil), p.PriceLists...), p.AdditionalPriceLists...) {
		if !seen[list] {
			seen[list] = true
			out = append(out, list)
		}
	}
	return out
}

// ResolvedLocale returns the single locale localized data is read in: the
// implicit locale, or the only requested locale. The second result is false
// when the locale is ambiguous.
func (r *Request) ResolvedLocale() (language.Tag, bool) {
	if r.ImplicitLocale != language.Und {
		return r.ImplicitLocale, true
	}
	if r.Locales.Len() == 1 {
		return r.Locales.Locales()[0], true
	}
	return language.Und, false
}

// Reference returns the content fetched for the reference name.
func (r *Request) Reference(name string) (*ReferenceRequest, bool) {
	if !r.References.Contains(name) {
		return nil, false
	}
	if rr, ok := r.ReferenceContent[name]; ok {
		return rr, true
	}
	if r.AllReferences != nil {
		return r.AllReferences, true
	}
	return &ReferenceRequest{Name: name}, true
}
