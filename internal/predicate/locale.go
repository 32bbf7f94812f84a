package predicate

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/evitadb/evitago/internal/fetch"
)

// Locale guards which locales localized data of an entity were fetched in.
type Locale struct {
	implicit language.Tag
	locales  fetch.LocaleSet
}

func NewLocale(req *fetch.Request) *Locale {
	return &Locale{implicit: req.ImplicitLocale, locales: req.Locales}
}

// WasFetched reports whether localized data were fetched in any locale.
func (p *Locale) WasFetched() bool {
	return p.implicit != language.Und || p.locales.Requested()
}

// WasFetchedLocale reports whether localized data were fetched in locale.
func (p *Locale) WasFetchedLocale(locale language.Tag) bool {
	if p.implicit != language.Und && p.implicit.String() == locale.String() {
		return true
	}
	return p.locales.Contains(locale)
}

// CheckFetched returns a ContextMissingError unless localized data were
// fetched in some locale.
func (p *Locale) CheckFetched() error {
	if p.WasFetched() {
		return nil
	}
	return &ContextMissingError{
		Code:    ErrCodeLocaleNotFetched,
		Message: "no locale was fetched, add dataInLocales or entityLocaleEquals to the query",
	}
}

// CheckFetchedLocale returns a ContextMissingError unless localized data
// were fetched in locale.
func (p *Locale) CheckFetchedLocale(locale language.Tag) error {
	if p.WasFetchedLocale(locale) {
		return nil
	}
	return &ContextMissingError{
		Code:    ErrCodeLocaleNotFetched,
		Locale:  locale.String(),
		Message: fmt.Sprintf("localized data were not fetched in locale %s", locale),
		Fetched: p.fetched(),
	}
}

func (p *Locale) fetched() []string {
	names := p.locales.Names()
	if p.implicit != language.Und && !p.locales.Contains(p.implicit) {
		names = append([]string{p.implicit.String()}, names...)
	}
	return names
}
