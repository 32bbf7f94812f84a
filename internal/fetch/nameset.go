package fetch

import (
	"strings"

	"github.com/tidwall/btree"
	"golang.org/x/text/language"
)

// NameSet is the set of names requested for one facet.
//
// It has three states:
//   - not requested: the facet was not asked for, nothing is visible
//   - wildcard: requested without names, everything is visible
//   - restricted: requested with names, only those are visible
//
// The zero NameSet is "not requested". NameSet is immutable.
type NameSet struct {
	requested bool
	names     *btree.Set[string]
}

// NotRequested returns the set of a facet that was not asked for.
func NotRequested() NameSet {
	return NameSet{}
}

// Wildcard returns the set of a facet requested without names.
func Wildcard() NameSet {
	return NameSet{requested: true}
}

// NamesOf returns a restricted set. Without names it is a wildcard.
func NamesOf(names ...string) NameSet {
	if len(names) == 0 {
		return Wildcard()
	}
	set := &btree.Set[string]{}
	for _, name := range names {
		set.Insert(name)
	}
	return NameSet{requested: true, names: set}
}

// Requested reports whether the facet was asked for at all.
func (s NameSet) Requested() bool {
	return s.requested
}

// IsWildcard reports whether the facet was requested without restriction.
// An empty requested set means everything, never nothing.
func (s NameSet) IsWildcard() bool {
	return s.requested && s.Len() == 0
}

// Contains reports whether name is visible: the facet was requested and the
// set is a wildcard or holds name.
func (s NameSet) Contains(name string) bool {
	if !s.requested {
		return false
	}
	if s.names == nil || s.names.Len() == 0 {
		return true
	}
	return s.names.Contains(name)
}

// Len returns the number of explicit names.
func (s NameSet) Len() int {
	if s.names == nil {
		return 0
	}
	return s.names.Len()
}

// Names returns the explicit names in ascending order.
func (s NameSet) Names() []string {
	if s.names == nil {
		return nil
	}
	out := make([]string, 0, s.names.Len())
	s.names.Scan(func(name string) bool {
		out = append(out, name)
		return true
	})
	return out
}

// Union merges two sets. A wildcard absorbs any restricted set.
func (s NameSet) Union(other NameSet) NameSet {
	switch {
	case !s.requested:
		return other
	case !other.requested:
		return s
	case s.IsWildcard() || other.IsWildcard():
		return Wildcard()
	default:
		return NamesOf(append(s.Names(), other.Names()...)...)
	}
}

func (s NameSet) String() string {
	switch {
	case !s.requested:
		return "none"
	case s.IsWildcard():
		return "*"
	default:
		return "[" + strings.Join(s.Names(), ",") + "]"
	}
}

// LocaleSet is a NameSet of locales keyed by their BCP 47 form.
type LocaleSet struct {
	set NameSet
}

// LocalesOf returns a restricted locale set, a wildcard without locales.
func LocalesOf(locales ...language.Tag) LocaleSet {
	names := make([]string, len(locales))
	for i, l := range locales {
		names[i] = l.String()
	}
	return LocaleSet{set: NamesOf(names...)}
}

// AllLocales returns the wildcard locale set.
func AllLocales() LocaleSet {
	return LocaleSet{set: Wildcard()}
}

func (s LocaleSet) Requested() bool  { return s.set.Requested() }
func (s LocaleSet) IsWildcard() bool { return s.set.IsWildcard() }
func (s LocaleSet) Len() int         { return s.set.Len() }

// Contains reports whether data localized in locale is visible.
func (s LocaleSet) Contains(locale language.Tag) bool {
	return s.set.Contains(locale.String())
}

// Locales returns the explicit locales ordered by their BCP 47 form.
func (s LocaleSet) Locales() []language.Tag {
	names := s.set.Names()
	out := make([]language.Tag, 0, len(names))
	for _, name := range names {
		out = append(out, language.Make(name))
	}
	return out
}

// Names returns the explicit locales in BCP 47 form.
func (s LocaleSet) Names() []string { return s.set.Names() }

func (s LocaleSet) Union(other LocaleSet) LocaleSet {
	return LocaleSet{set: s.set.Union(other.set)}
}

func (s LocaleSet) String() string { return s.set.String() }
