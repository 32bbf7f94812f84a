package query

import "golang.org/x/text/language"

func requireLeaf(kind Kind, args ...any) RequireConstraint {
	return must(NewRequire(kind, args, nil, nil))
}

func requireContainer(kind Kind, args []any, children []RequireConstraint) RequireConstraint {
	return must(NewRequire(kind, args, constraints(children), nil))
}

// requireMixed builds a require container from parts of any category: require
// constraints become children, filterBy and orderBy additional children.
func requireMixed(kind Kind, args []any, parts []Constraint) RequireConstraint {
	children, additional := splitParts(CategoryRequire, parts)
	return must(NewRequire(kind, args, children, additional))
}

// Require is the root of the require part.
func Require(children ...RequireConstraint) RequireConstraint {
	return requireContainer(KindRequire, nil, children)
}

// EntityFetch asks for entity bodies with the listed content. Without
// content only the primary keys and the entity body are returned.
func EntityFetch(content ...RequireConstraint) RequireConstraint {
	return requireContainer(KindEntityFetch, nil, content)
}

// EntityGroupFetch is EntityFetch for the group entity of a reference.
func EntityGroupFetch(content ...RequireConstraint) RequireConstraint {
	return requireContainer(KindEntityGroupFetch, nil, content)
}

// AttributeContent fetches the named attributes, or every attribute when no
// name is given.
func AttributeContent(names ...string) RequireConstraint {
	if len(names) == 0 {
		return AttributeContentAll()
	}
	return requireLeaf(KindAttributeContent, anySlice(names)...)
}

func AttributeContentAll() RequireConstraint { return requireLeaf(KindAttributeContentAll) }

// AssociatedDataContent fetches the named associated data, or all of them
// when no name is given.
func AssociatedDataContent(names ...string) RequireConstraint {
	if len(names) == 0 {
		return AssociatedDataContentAll()
	}
	return requireLeaf(KindAssociatedDataContent, anySlice(names)...)
}

func AssociatedDataContentAll() RequireConstraint { return requireLeaf(KindAssociatedDataContentAll) }

// PriceContent fetches prices in the given mode. Additional price lists are
// fetched on top of the ones named by the filter. The suffixed forms are
// chosen when the mode alone determines them.
func PriceContent(mode PriceContentMode, priceLists ...string) RequireConstraint {
	switch {
	case mode == PriceContentModeAll && len(priceLists) == 0:
		return PriceContentAll()
	case mode == PriceContentModeRespectingFilter:
		return PriceContentRespectingFilter(priceLists...)
	default:
		return requireLeaf(KindPriceContent, prepend(mode, anySlice(priceLists))...)
	}
}

func PriceContentAll() RequireConstraint {
	return requireLeaf(KindPriceContentAll, PriceContentModeAll)
}

func PriceContentRespectingFilter(priceLists ...string) RequireConstraint {
	return requireLeaf(KindPriceContentRespectingFilter, prepend(PriceContentModeRespectingFilter, anySlice(priceLists))...)
}

// ReferenceContent fetches the reference referenceName. Parts may be
// EntityFetch, EntityGroupFetch and AttributeContent, plus FilterBy and
// OrderBy applied to the references themselves.
func ReferenceContent(referenceName string, parts ...Constraint) RequireConstraint {
	return requireMixed(KindReferenceContent, []any{referenceName}, parts)
}

// ReferenceContents fetches several references sharing the same content.
// Filtering and ordering need a single reference; use ReferenceContent.
func ReferenceContents(referenceNames []string, content ...RequireConstraint) RequireConstraint {
	if len(referenceNames) == 0 {
		return ReferenceContentAll(content...)
	}
	return requireContainer(KindReferenceContent, anySlice(referenceNames), content)
}

// ReferenceContentAll fetches every reference.
func ReferenceContentAll(content ...RequireConstraint) RequireConstraint {
	return requireContainer(KindReferenceContentAll, nil, content)
}

// HierarchyContent fetches the placement of the entity in its hierarchy, up
// to the root or to StopAt.
func HierarchyContent(content ...RequireConstraint) RequireConstraint {
	return requireContainer(KindHierarchyContent, nil, content)
}

// DataInLocales fetches localized data in the given locales, or in all
// locales when none is given.
func DataInLocales(locales ...language.Tag) RequireConstraint {
	if len(locales) == 0 {
		return DataInLocalesAll()
	}
	return requireLeaf(KindDataInLocales, anySlice(locales)...)
}

func DataInLocalesAll() RequireConstraint { return requireLeaf(KindDataInLocalesAll) }

// Page requests the page number (1-based) of the given size.
func Page(number, size int) RequireConstraint {
	return requireLeaf(KindPage, number, size)
}

// Strip requests limit records starting at offset.
func Strip(offset, limit int) RequireConstraint {
	return requireLeaf(KindStrip, offset, limit)
}

// FacetSummary computes facet statistics for every faceted reference.
// Parts may be EntityFetch, EntityGroupFetch, FilterBy and OrderBy.
func FacetSummary(depth FacetStatisticsDepth, parts ...Constraint) RequireConstraint {
	return requireMixed(KindFacetSummary, []any{depth}, parts)
}

// FacetSummaryOfReference is FacetSummary for a single reference.
func FacetSummaryOfReference(referenceName string, depth FacetStatisticsDepth, parts ...Constraint) RequireConstraint {
	return requireMixed(KindFacetSummaryOfReference, []any{referenceName, depth}, parts)
}

func PriceType(mode QueryPriceMode) RequireConstraint {
	return requireLeaf(KindPriceType, mode)
}

// PriceHistogram computes a selling-price histogram with at most buckets
// columns.
func PriceHistogram(buckets int, behavior ...HistogramBehavior) RequireConstraint {
	args := []any{buckets}
	if len(behavior) > 0 {
		args = append(args, behavior[0])
	}
	return requireLeaf(KindPriceHistogram, args...)
}

func AttributeHistogram(buckets int, names ...string) RequireConstraint {
	return requireLeaf(KindAttributeHistogram, prepend(buckets, anySlice(names))...)
}

func QueryTelemetry() RequireConstraint { return requireLeaf(KindQueryTelemetry) }

// HierarchyOfSelf computes hierarchy trees of the queried collection. Parts
// are the hierarchy requirements (FromRoot, FromNode, Children, Siblings,
// Parents) and an optional OrderBy.
func HierarchyOfSelf(parts ...Constraint) RequireConstraint {
	return requireMixed(KindHierarchyOfSelf, nil, parts)
}

// HierarchyOfReference computes hierarchy trees of the entity referenced by
// referenceName.
func HierarchyOfReference(referenceName string, behaviour EmptyHierarchicalEntityBehaviour, parts ...Constraint) RequireConstraint {
	return requireMixed(KindHierarchyOfReference, []any{referenceName, behaviour}, parts)
}

func FromRoot(outputName string, content ...RequireConstraint) RequireConstraint {
	return requireContainer(KindFromRoot, []any{outputName}, content)
}

// FromNode computes the hierarchy below the single node selected by node.
func FromNode(outputName string, node RequireConstraint, content ...RequireConstraint) RequireConstraint {
	return requireContainer(KindFromNode, []any{outputName}, append([]RequireConstraint{node}, content...))
}

func Children(outputName string, content ...RequireConstraint) RequireConstraint {
	return requireContainer(KindChildren, []any{outputName}, content)
}

func Siblings(outputName string, content ...RequireConstraint) RequireConstraint {
	return requireContainer(KindSiblings, []any{outputName}, content)
}

func Parents(outputName string, content ...RequireConstraint) RequireConstraint {
	return requireContainer(KindParents, []any{outputName}, content)
}

// Node selects hierarchy nodes by filter, which must be a FilterBy.
func Node(filter FilterConstraint) RequireConstraint {
	var additional []Constraint
	if present(filter) {
		additional = append(additional, filter)
	}
	return must(NewRequire(KindNode, nil, nil, additional))
}

func StopAt(condition RequireConstraint) RequireConstraint {
	return requireContainer(KindStopAt, nil, []RequireConstraint{condition})
}

func Distance(distance int) RequireConstraint { return requireLeaf(KindDistance, distance) }

func Level(level int) RequireConstraint { return requireLeaf(KindLevel, level) }

// Statistics asks hierarchy requirements to compute the given statistics
// over base.
func Statistics(base StatisticsBase, types ...StatisticsType) RequireConstraint {
	return requireLeaf(KindStatistics, prepend(base, anySlice(types))...)
}
