// Package fetch resolves a query into the record of what it asked an entity
// to materialize.
//
// The record (Request) answers, per facet, whether it was requested and with
// which names: attributes, associated data and references as NameSets,
// localized data as a LocaleSet, plus the price configuration and the
// hierarchy flag. Predicates in package predicate are built from it.
//
// WILDCARDS:
//
// A facet requested without names (attributeContentAll, dataInLocalesAll,
// or attributeContent with no arguments) is a wildcard: everything is
// visible. An empty requested set never means "nothing".
//
//	attributeContent('code')   -> [code]
//	attributeContentAll()      -> *
//	(no attributeContent)      -> none
package fetch
