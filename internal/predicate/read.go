package predicate

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// ErrMalformedRead is returned by ParseRead for unparsable specifications.
var ErrMalformedRead = errors.New("malformed read")

// Read is a read of an entity facet, checked against a Set. Its textual
// form is one of:
//
//	attributes | attribute:NAME | attribute:NAME@LOCALE
//	associatedData | associatedData:NAME | associatedData:NAME@LOCALE
//	references | reference:NAME
//	prices | price:CURRENCY | price:CURRENCY/LIST,LIST | price:/LIST
//	hierarchy
//	locales | locale:LOCALE
type Read struct {
	Facet      string
	Name       string
	Locale     language.Tag
	Currency   *currency.Unit
	PriceLists []string

	text string
}

func (r Read) String() string { return r.text }

// ParseRead parses a read specification.
func ParseRead(s string) (Read, error) {
	r := Read{text: s, Locale: language.Und}
	facet, arg, hasArg := strings.Cut(s, ":")
	r.Facet = facet
	if hasArg && arg == "" {
		return Read{}, fmt.Errorf("%w %q: empty argument", ErrMalformedRead, s)
	}

	switch facet {
	case "attributes", "references", "prices", "hierarchy", "locales":
		if hasArg {
			return Read{}, fmt.Errorf("%w %q: %s takes no argument", ErrMalformedRead, s, facet)
		}
	case "associatedData", "attribute", "reference":
		if !hasArg {
			if facet == "associatedData" {
				return r, nil
			}
			return Read{}, fmt.Errorf("%w %q: %s needs a name", ErrMalformedRead, s, facet)
		}
		name, locale, localized := strings.Cut(arg, "@")
		r.Name = name
		if localized {
			if facet == "reference" {
				return Read{}, fmt.Errorf("%w %q: references are not localized", ErrMalformedRead, s)
			}
			tag, err := language.Parse(locale)
			if err != nil {
				return Read{}, fmt.Errorf("%w %q: %v", ErrMalformedRead, s, err)
			}
			r.Locale = tag
		}
	case "price":
		if !hasArg {
			return Read{}, fmt.Errorf("%w %q: price needs a currency or price lists", ErrMalformedRead, s)
		}
		code, lists, _ := strings.Cut(arg, "/")
		if code != "" {
			unit, err := currency.ParseISO(code)
			if err != nil {
				return Read{}, fmt.Errorf("%w %q: %v", ErrMalformedRead, s, err)
			}
			r.Currency = &unit
		}
		if lists != "" {
			r.PriceLists = strings.Split(lists, ",")
		}
	case "locale":
		if !hasArg {
			return Read{}, fmt.Errorf("%w %q: locale needs a locale", ErrMalformedRead, s)
		}
		tag, err := language.Parse(arg)
		if err != nil {
			return Read{}, fmt.Errorf("%w %q: %v", ErrMalformedRead, s, err)
		}
		r.Locale = tag
	default:
		return Read{}, fmt.Errorf("%w %q: unknown facet %q", ErrMalformedRead, s, facet)
	}
	return r, nil
}

// Check runs the read against the predicates of set. A nil error means
// the facet was fetched.
func (r Read) Check(set *Set) error {
	localized := r.Locale != language.Und
	switch r.Facet {
	case "attributes":
		return set.Attribute.CheckFetched()
	case "attribute":
		if localized {
			return set.Attribute.CheckFetchedLocalized(r.Name, r.Locale)
		}
		return set.Attribute.CheckFetchedName(r.Name)
	case "associatedData":
		if r.Name == "" {
			return set.AssociatedData.CheckFetched()
		}
		if localized {
			return set.AssociatedData.CheckFetchedLocalized(r.Name, r.Locale)
		}
		return set.AssociatedData.CheckFetchedName(r.Name)
	case "references":
		return set.Reference.CheckFetched()
	case "reference":
		return set.Reference.CheckFetchedName(r.Name)
	case "prices":
		return set.Price.CheckFetched()
	case "price":
		return set.Price.CheckFetchedFor(r.Currency, r.PriceLists...)
	case "hierarchy":
		return set.Hierarchy.CheckFetched()
	case "locales":
		return set.Locale.CheckFetched()
	case "locale":
		return set.Locale.CheckFetchedLocale(r.Locale)
	default:
		return fmt.Errorf("%w: unknown facet %q", ErrMalformedRead, r.Facet)
	}
}
