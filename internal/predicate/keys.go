package predicate

import "golang.org/x/text/language"

// AttributeKey identifies an attribute value: its name and, for localized
// attributes, its locale. Keys are comparable and can be used as map keys.
type AttributeKey struct {
	Name string

	// Locale is the BCP 47 form of the locale, "" for global attributes.
	Locale string
}

// GlobalAttribute returns the key of a non-localized attribute.
func GlobalAttribute(name string) AttributeKey {
	return AttributeKey{Name: name}
}

// LocalizedAttribute returns the key of an attribute in locale.
func LocalizedAttribute(name string, locale language.Tag) AttributeKey {
	return AttributeKey{Name: name, Locale: locale.String()}
}

// Localized reports whether the key carries a locale.
func (k AttributeKey) Localized() bool { return k.Locale != "" }

// Tag returns the locale of the key, language.Und for global attributes.
func (k AttributeKey) Tag() language.Tag { return tagOf(k.Locale) }

func (k AttributeKey) String() string { return keyString(k.Name, k.Locale) }

// AssociatedDataKey identifies an associated data value.
type AssociatedDataKey struct {
	Name   string
	Locale string
}

func GlobalAssociatedData(name string) AssociatedDataKey {
	return AssociatedDataKey{Name: name}
}

func LocalizedAssociatedData(name string, locale language.Tag) AssociatedDataKey {
	return AssociatedDataKey{Name: name, Locale: locale.String()}
}

func (k AssociatedDataKey) Localized() bool   { return k.Locale != "" }
func (k AssociatedDataKey) Tag() language.Tag { return tagOf(k.Locale) }
func (k AssociatedDataKey) String() string    { return keyString(k.Name, k.Locale) }

func tagOf(locale string) language.Tag {
	if locale == "" {
		return language.Und
	}
	return language.Make(locale)
}

func keyString(name, locale string) string {
	if locale == "" {
		return name
	}
	return name + ":" + locale
}
