package predicate

import (
	"fmt"
	"time"

	"golang.org/x/text/currency"

	"github.com/evitadb/evitago/internal/fetch"
	"github.com/evitadb/evitago/internal/query"
	"github.com/evitadb/evitago/internal/value"
)

// EntityPrice is a price of an entity as the predicates see it.
type EntityPrice struct {
	ID        int64
	PriceList string
	Currency  currency.Unit

	PriceWithoutTax value.Decimal
	PriceWithTax    value.Decimal
	TaxRate         value.Decimal

	// Validity is nil for prices valid at any time.
	Validity *value.DateTimeRange

	// Dropped marks a price removed from the entity but not yet purged.
	Dropped bool
}

// Price guards reads of entity prices.
type Price struct {
	mode       query.PriceContentMode
	currency   *currency.Unit
	priceLists fetch.NameSet
	fetched    []string
	validIn    *time.Time
}

// NewPrice creates the price predicate of req.
func NewPrice(req *fetch.Request) *Price {
	return &Price{
		mode:       req.Prices.Mode,
		currency:   req.Prices.Currency,
		priceLists: req.Prices.PriceListSet(),
		fetched:    req.Prices.FetchedPriceLists(),
		validIn:    req.Prices.ValidIn,
	}
}

// Mode returns the price content mode of the query.
func (p *Price) Mode() query.PriceContentMode { return p.mode }

// Currency returns the currency prices were filtered by.
func (p *Price) Currency() (currency.Unit, bool) {
	if p.currency == nil {
		return currency.Unit{}, false
	}
	return *p.currency, true
}

// PriceLists returns the fetched price lists in priority order.
func (p *Price) PriceLists() []string {
	return append([]string(nil), p.fetched...)
}

// ValidIn returns the instant prices were filtered by.
func (p *Price) ValidIn() (time.Time, bool) {
	if p.validIn == nil {
		return time.Time{}, false
	}
	return *p.validIn, true
}

// WasFetched reports whether any prices were fetched.
func (p *Price) WasFetched() bool {
	return p.mode != query.PriceContentModeNone
}

// Test reports whether price may be exposed.
func (p *Price) Test(price EntityPrice) bool {
	switch p.mode {
	case query.PriceContentModeAll:
		return !price.Dropped
	case query.PriceContentModeRespectingFilter:
		if price.Dropped {
			return false
		}
		if p.currency != nil && *p.currency != price.Currency {
			return false
		}
		if !p.priceLists.Contains(price.PriceList) {
			return false
		}
		if p.validIn != nil && price.Validity != nil && !price.Validity.Contains(*p.validIn) {
			return false
		}
		return true
	default:
		return false
	}
}

// CheckFetched returns a ContextMissingError unless prices were fetched.
func (p *Price) CheckFetched() error {
	if p.WasFetched() {
		return nil
	}
	return &ContextMissingError{
		Code:    ErrCodePricesNotFetched,
		Message: "prices were not fetched, add priceContent to the query",
	}
}

// CheckFetchedFor returns a ContextMissingError unless prices in unit and
// all of priceLists were fetched. A nil unit skips the currency check.
//
// With PriceContentModeAll every currency and price list is fetched, so only
// the RespectingFilter mode can fail on them.
func (p *Price) CheckFetchedFor(unit *currency.Unit, priceLists ...string) error {
	if err := p.CheckFetched(); err != nil {
		return err
	}
	if p.mode != query.PriceContentModeRespectingFilter {
		return nil
	}
	if unit != nil && p.currency != nil && *unit != *p.currency {
		return &ContextMissingError{
			Code:     ErrCodePriceCurrencyNotFetched,
			Currency: unit.String(),
			Message:  fmt.Sprintf("prices were fetched in %s, not in %s", p.currency, unit),
			Fetched:  []string{p.currency.String()},
		}
	}
	for _, list := range priceLists {
		if !p.priceLists.Contains(list) {
			return &ContextMissingError{
				Code:      ErrCodePriceListNotFetched,
				PriceList: list,
				Message:   fmt.Sprintf("price list %q was not fetched", list),
				Fetched:   p.PriceLists(),
			}
		}
	}
	return nil
}
