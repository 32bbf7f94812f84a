package query

import (
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

func filterLeaf(kind Kind, args ...any) FilterConstraint {
	return must(NewFilter(kind, args, nil, nil))
}

func filterContainer(kind Kind, args []any, children []FilterConstraint) FilterConstraint {
	return must(NewFilter(kind, args, constraints(children), nil))
}

// FilterBy is the root of the filter part.
func FilterBy(children ...FilterConstraint) FilterConstraint {
	return filterContainer(KindFilterBy, nil, children)
}

// And matches entities matching every child.
func And(children ...FilterConstraint) FilterConstraint {
	return filterContainer(KindAnd, nil, children)
}

// Or matches entities matching at least one child.
func Or(children ...FilterConstraint) FilterConstraint {
	return filterContainer(KindOr, nil, children)
}

// Not negates its single child.
func Not(child FilterConstraint) FilterConstraint {
	return filterContainer(KindNot, nil, []FilterConstraint{child})
}

// UserFilter marks the part of the filter driven by the end user, the base
// for facet and histogram computation. It rejects price, locale and
// hierarchy scoping constraints.
func UserFilter(children ...FilterConstraint) FilterConstraint {
	return filterContainer(KindUserFilter, nil, children)
}

func ReferenceHaving(referenceName string, child FilterConstraint) FilterConstraint {
	return filterContainer(KindReferenceHaving, []any{referenceName}, []FilterConstraint{child})
}

func FacetHaving(referenceName string, children ...FilterConstraint) FilterConstraint {
	return filterContainer(KindFacetHaving, []any{referenceName}, children)
}

func EntityHaving(child FilterConstraint) FilterConstraint {
	return filterContainer(KindEntityHaving, nil, []FilterConstraint{child})
}

// HierarchyWithin matches entities referencing a node of the hierarchical
// entity referenceName that lies within the nodes matched by parent.
// Specifications (DirectRelation, Having, Excluding, ExcludingRoot) follow.
func HierarchyWithin(referenceName string, parent FilterConstraint, specifications ...FilterConstraint) FilterConstraint {
	return filterContainer(KindHierarchyWithin, []any{referenceName}, append([]FilterConstraint{parent}, specifications...))
}

// HierarchyWithinSelf is HierarchyWithin over the queried collection itself.
func HierarchyWithinSelf(parent FilterConstraint, specifications ...FilterConstraint) FilterConstraint {
	return filterContainer(KindHierarchyWithinSelf, nil, append([]FilterConstraint{parent}, specifications...))
}

func HierarchyWithinRoot(referenceName string, specifications ...FilterConstraint) FilterConstraint {
	return filterContainer(KindHierarchyWithinRoot, []any{referenceName}, specifications)
}

func HierarchyWithinRootSelf(specifications ...FilterConstraint) FilterConstraint {
	return filterContainer(KindHierarchyWithinRootSelf, nil, specifications)
}

func Having(children ...FilterConstraint) FilterConstraint {
	return filterContainer(KindHaving, nil, children)
}

func Excluding(children ...FilterConstraint) FilterConstraint {
	return filterContainer(KindExcluding, nil, children)
}

func DirectRelation() FilterConstraint { return filterLeaf(KindDirectRelation) }

func ExcludingRoot() FilterConstraint { return filterLeaf(KindExcludingRoot) }

func AttributeEquals(name string, v any) FilterConstraint {
	return filterLeaf(KindAttributeEquals, name, v)
}

func AttributeGreaterThan(name string, v any) FilterConstraint {
	return filterLeaf(KindAttributeGreaterThan, name, v)
}

func AttributeGreaterThanEquals(name string, v any) FilterConstraint {
	return filterLeaf(KindAttributeGreaterThanEquals, name, v)
}

func AttributeLessThan(name string, v any) FilterConstraint {
	return filterLeaf(KindAttributeLessThan, name, v)
}

func AttributeLessThanEquals(name string, v any) FilterConstraint {
	return filterLeaf(KindAttributeLessThanEquals, name, v)
}

// AttributeBetween matches values within [from, to]. Either bound may be nil
// for an open interval; with both nil the constraint is not applicable.
func AttributeBetween(name string, from, to any) FilterConstraint {
	return filterLeaf(KindAttributeBetween, name, from, to)
}

func AttributeInSet(name string, values ...any) FilterConstraint {
	return filterLeaf(KindAttributeInSet, prepend(name, values)...)
}

func AttributeContains(name, text string) FilterConstraint {
	return filterLeaf(KindAttributeContains, name, text)
}

func AttributeStartsWith(name, text string) FilterConstraint {
	return filterLeaf(KindAttributeStartsWith, name, text)
}

func AttributeEndsWith(name, text string) FilterConstraint {
	return filterLeaf(KindAttributeEndsWith, name, text)
}

func AttributeIs(name string, special AttributeSpecialValue) FilterConstraint {
	return filterLeaf(KindAttributeIs, name, special)
}

func AttributeIsNull(name string) FilterConstraint { return AttributeIs(name, Null) }

func AttributeIsNotNull(name string) FilterConstraint { return AttributeIs(name, NotNull) }

// AttributeInRange matches range attributes containing v (a time or number).
func AttributeInRange(name string, v any) FilterConstraint {
	return filterLeaf(KindAttributeInRange, name, v)
}

func AttributeInRangeNow(name string) FilterConstraint {
	return filterLeaf(KindAttributeInRangeNow, name)
}

func EntityPrimaryKeyInSet(primaryKeys ...int) FilterConstraint {
	return filterLeaf(KindEntityPrimaryKeyInSet, anySlice(primaryKeys)...)
}

// EntityLocaleEquals restricts entities to those localized in locale. It also
// becomes the implicit locale of fetched localized data.
func EntityLocaleEquals(locale language.Tag) FilterConstraint {
	return filterLeaf(KindEntityLocaleEquals, locale)
}

func PriceInCurrency(unit currency.Unit) FilterConstraint {
	return filterLeaf(KindPriceInCurrency, unit)
}

// PriceInPriceLists lists the price lists to consider, in priority order.
func PriceInPriceLists(priceLists ...string) FilterConstraint {
	return filterLeaf(KindPriceInPriceLists, anySlice(priceLists)...)
}

func PriceValidIn(moment time.Time) FilterConstraint {
	return filterLeaf(KindPriceValidIn, moment)
}

func PriceValidInNow() FilterConstraint { return filterLeaf(KindPriceValidInNow) }

// PriceBetween matches selling prices within [from, to]; nil leaves a side
// open.
func PriceBetween(from, to any) FilterConstraint {
	return filterLeaf(KindPriceBetween, from, to)
}
