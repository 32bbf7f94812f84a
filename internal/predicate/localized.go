package predicate

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/evitadb/evitago/internal/fetch"
)

// localized is the shared logic of the attribute and associated data
// predicates: a name set plus the locales localized values are visible in.
type localized struct {
	facet       string // singular, e.g. "attribute"
	plural      string
	requirement string // content requirement that fetches the facet
	notFetched  ContextMissingCode
	noLocale    ContextMissingCode

	names   fetch.NameSet
	locales fetch.LocaleSet

	// resolved is the implicit locale, or the only requested locale;
	// language.Und when ambiguous.
	resolved language.Tag
}

func newLocalized(facet, plural, requirement string, notFetched, noLocale ContextMissingCode, names fetch.NameSet, req *fetch.Request) localized {
	resolved, ok := req.ResolvedLocale()
	if !ok {
		resolved = language.Und
	}
	return localized{
		facet:       facet,
		plural:      plural,
		requirement: requirement,
		notFetched:  notFetched,
		noLocale:    noLocale,
		names:       names,
		locales:     req.Locales,
		resolved:    resolved,
	}
}

func (p *localized) wasFetched() bool {
	return p.names.Requested()
}

func (p *localized) wasFetchedName(name string) bool {
	return p.names.Contains(name)
}

func (p *localized) wasFetchedLocalized(name string, locale language.Tag) bool {
	return p.names.Contains(name) && p.localeVisible(locale)
}

// localeVisible checks the resolved locale first and falls back to
// membership in the requested locale set.
func (p *localized) localeVisible(locale language.Tag) bool {
	if p.resolved != language.Und && p.resolved.String() == locale.String() {
		return true
	}
	return p.locales.Contains(locale)
}

// test reports whether a value with the given key may be exposed.
// Non-localized values only need the name to be visible.
func (p *localized) test(name, locale string) bool {
	if !p.names.Contains(name) {
		return false
	}
	if locale == "" {
		return true
	}
	return p.localeVisible(language.Make(locale))
}

func (p *localized) checkFetched() error {
	if p.names.Requested() {
		return nil
	}
	return &ContextMissingError{
		Code:    p.notFetched,
		Message: fmt.Sprintf("%s were not fetched, add %s to the query", p.plural, p.requirement),
	}
}

func (p *localized) checkFetchedName(name string) error {
	if p.names.Contains(name) {
		return nil
	}
	if !p.names.Requested() {
		return &ContextMissingError{
			Code:    p.notFetched,
			Name:    name,
			Message: fmt.Sprintf("%s were not fetched, cannot read %q", p.plural, name),
		}
	}
	return &ContextMissingError{
		Code:    p.notFetched,
		Name:    name,
		Message: fmt.Sprintf("%s %q was not fetched", p.facet, name),
		Fetched: p.names.Names(),
	}
}

func (p *localized) checkFetchedLocalized(name string, locale language.Tag) error {
	if err := p.checkFetchedName(name); err != nil {
		return err
	}
	if p.localeVisible(locale) {
		return nil
	}
	fetched := p.locales.Names()
	if p.resolved != language.Und && !p.locales.Contains(p.resolved) {
		fetched = append([]string{p.resolved.String()}, fetched...)
	}
	return &ContextMissingError{
		Code:    p.noLocale,
		Name:    name,
		Locale:  locale.String(),
		Message: fmt.Sprintf("%s %q was not fetched in locale %s", p.facet, name, locale),
		Fetched: fetched,
	}
}
