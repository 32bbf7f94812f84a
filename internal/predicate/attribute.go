package predicate

import (
	"golang.org/x/text/language"

	"github.com/evitadb/evitago/internal/fetch"
)

// Attribute guards reads of entity attributes.
type Attribute struct {
	localized
}

// NewAttribute creates the attribute predicate of req.
func NewAttribute(req *fetch.Request) *Attribute {
	return &Attribute{newLocalized(
		"attribute", "attributes", "attributeContent",
		ErrCodeAttributeNotFetched, ErrCodeAttributeLocaleNotFetched,
		req.Attributes, req,
	)}
}

// newReferenceAttribute guards the attributes of a reference. They share
// locales with the owning entity.
func newReferenceAttribute(names fetch.NameSet, req *fetch.Request) *Attribute {
	return &Attribute{newLocalized(
		"reference attribute", "reference attributes", "attributeContent inside referenceContent",
		ErrCodeAttributeNotFetched, ErrCodeAttributeLocaleNotFetched,
		names, req,
	)}
}

// WasFetched reports whether any attributes were fetched.
func (p *Attribute) WasFetched() bool { return p.wasFetched() }

// WasFetchedName reports whether the attribute name was fetched.
func (p *Attribute) WasFetchedName(name string) bool { return p.wasFetchedName(name) }

// WasFetchedLocalized reports whether the attribute name was fetched in locale.
func (p *Attribute) WasFetchedLocalized(name string, locale language.Tag) bool {
	return p.wasFetchedLocalized(name, locale)
}

// CheckFetched returns a ContextMissingError unless attributes were fetched.
func (p *Attribute) CheckFetched() error { return p.checkFetched() }

// CheckFetchedName returns a ContextMissingError unless the attribute name
// was fetched.
func (p *Attribute) CheckFetchedName(name string) error { return p.checkFetchedName(name) }

// CheckFetchedLocalized returns a ContextMissingError unless the attribute
// name was fetched in locale.
func (p *Attribute) CheckFetchedLocalized(name string, locale language.Tag) error {
	return p.checkFetchedLocalized(name, locale)
}

// Test reports whether the attribute value under key may be exposed.
func (p *Attribute) Test(key AttributeKey) bool { return p.test(key.Name, key.Locale) }

// AssociatedData guards reads of entity associated data.
type AssociatedData struct {
	localized
}

// NewAssociatedData creates the associated data predicate of req.
func NewAssociatedData(req *fetch.Request) *AssociatedData {
	return &AssociatedData{newLocalized(
		"associated data", "associated data", "associatedDataContent",
		ErrCodeAssociatedDataNotFetched, ErrCodeAssociatedDataLocaleNotFetched,
		req.AssociatedData, req,
	)}
}

func (p *AssociatedData) WasFetched() bool                { return p.wasFetched() }
func (p *AssociatedData) WasFetchedName(name string) bool { return p.wasFetchedName(name) }

func (p *AssociatedData) WasFetchedLocalized(name string, locale language.Tag) bool {
	return p.wasFetchedLocalized(name, locale)
}

func (p *AssociatedData) CheckFetched() error                { return p.checkFetched() }
func (p *AssociatedData) CheckFetchedName(name string) error { return p.checkFetchedName(name) }

func (p *AssociatedData) CheckFetchedLocalized(name string, locale language.Tag) error {
	return p.checkFetchedLocalized(name, locale)
}

// Test reports whether the associated data value under key may be exposed.
func (p *AssociatedData) Test(key AssociatedDataKey) bool { return p.test(key.Name, key.Locale) }
