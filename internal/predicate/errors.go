package predicate

import (
	"errors"
	"fmt"
	"strings"
)

// ContextMissingError reports a read of an entity facet the query did not
// fetch.
//
// It is recoverable: the caller is expected to widen the query (add the
// missing content requirement, locale or price list) and fetch again. The
// structured fields carry what was missing and what was fetched instead.
type ContextMissingError struct {
	// Code identifies the missing facet.
	Code ContextMissingCode

	// Message is a human-readable description.
	Message string

	// Name is the attribute, associated data or reference name, if any.
	Name string

	// Locale is the requested locale in BCP 47 form, if any.
	Locale string

	// Currency is the requested currency code, if any.
	Currency string

	// PriceList is the requested price list, if any.
	PriceList string

	// Fetched lists what the query did fetch for the facet (names, locales,
	// currencies or price lists). Empty when nothing was fetched.
	Fetched []string
}

// ContextMissingCode categorizes context-missing errors.
type ContextMissingCode string

const (
	// ErrCodeAttributeNotFetched indicates attributes, or the named attribute,
	// were not fetched.
	ErrCodeAttributeNotFetched ContextMissingCode = "ATTRIBUTE_NOT_FETCHED"

	// ErrCodeAttributeLocaleNotFetched indicates the attribute was fetched but
	// not in the requested locale.
	ErrCodeAttributeLocaleNotFetched ContextMissingCode = "ATTRIBUTE_LOCALE_NOT_FETCHED"

	// ErrCodeAssociatedDataNotFetched indicates associated data, or the named
	// associated data, were not fetched.
	ErrCodeAssociatedDataNotFetched ContextMissingCode = "ASSOCIATED_DATA_NOT_FETCHED"

	// ErrCodeAssociatedDataLocaleNotFetched indicates the associated data was
	// fetched but not in the requested locale.
	ErrCodeAssociatedDataLocaleNotFetched ContextMissingCode = "ASSOCIATED_DATA_LOCALE_NOT_FETCHED"

	// ErrCodeReferenceNotFetched indicates references, or the named reference,
	// were not fetched.
	ErrCodeReferenceNotFetched ContextMissingCode = "REFERENCE_NOT_FETCHED"

	// ErrCodePricesNotFetched indicates prices were not fetched at all.
	ErrCodePricesNotFetched ContextMissingCode = "PRICES_NOT_FETCHED"

	// ErrCodePriceCurrencyNotFetched indicates prices were fetched in another
	// currency.
	ErrCodePriceCurrencyNotFetched ContextMissingCode = "PRICE_CURRENCY_NOT_FETCHED"

	// ErrCodePriceListNotFetched indicates the price list is outside the
	// fetched price lists.
	ErrCodePriceListNotFetched ContextMissingCode = "PRICE_LIST_NOT_FETCHED"

	// ErrCodeHierarchyNotFetched indicates the hierarchy placement was not
	// fetched.
	ErrCodeHierarchyNotFetched ContextMissingCode = "HIERARCHY_NOT_FETCHED"

	// ErrCodeLocaleNotFetched indicates localized data were not fetched in the
	// requested locale.
	ErrCodeLocaleNotFetched ContextMissingCode = "LOCALE_NOT_FETCHED"
)

// Error implements the error interface.
func (e *ContextMissingError) Error() string {
	if len(e.Fetched) > 0 {
		return fmt.Sprintf("%s: %s (fetched: %s)", e.Code, e.Message, strings.Join(e.Fetched, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsContextMissing returns true if err is or wraps a ContextMissingError.
func IsContextMissing(err error) bool {
	var cme *ContextMissingError
	return errors.As(err, &cme)
}

// IsContextMissingCode returns true if err is or wraps a ContextMissingError
// with the given code.
func IsContextMissingCode(err error, code ContextMissingCode) bool {
	var cme *ContextMissingError
	if errors.As(err, &cme) {
		return cme.Code == code
	}
	return false
}

// AsContextMissing extracts the ContextMissingError from err.
func AsContextMissing(err error) (*ContextMissingError, bool) {
	var cme *ContextMissingError
	if errors.As(err, &cme) {
		return cme, true
	}
	return nil, false
}
