// Package predicate guards reads of fetched entities.
//
// A query fetches only the facets its require constraints ask for. The
// predicates of this package are built from the resolved fetch.Request and
// answer whether a facet, name, locale or price was fetched. The Check
// methods turn a read of something that was not fetched into a
// *ContextMissingError the caller can act on by widening the query.
//
// Predicates are immutable and safe for concurrent use.
package predicate
