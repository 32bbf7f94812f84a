package query

import "github.com/evitadb/evitago/internal/value"

// OrderDirection is the direction of an ordering constraint.
type OrderDirection int

const (
	Asc OrderDirection = iota
	Desc
)

// EnumName implements value.Enumerable.
func (d OrderDirection) EnumName() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

func (d OrderDirection) String() string { return d.EnumName() }

// AttributeSpecialValue is the operand of attributeIs.
type AttributeSpecialValue int

const (
	Null AttributeSpecialValue = iota
	NotNull
)

// EnumName implements value.Enumerable.
func (v AttributeSpecialValue) EnumName() string {
	if v == NotNull {
		return "NOT_NULL"
	}
	return "NULL"
}

func (v AttributeSpecialValue) String() string { return v.EnumName() }

// PriceContentMode controls which prices of an entity are exposed.
type PriceContentMode int

const (
	// PriceContentModeNone exposes no prices.
	PriceContentModeNone PriceContentMode = iota
	// PriceContentModeRespectingFilter exposes prices matching the price filter.
	PriceContentModeRespectingFilter
	// PriceContentModeAll exposes every price.
	PriceContentModeAll
)

// EnumName implements value.Enumerable.
func (m PriceContentMode) EnumName() string {
	switch m {
	case PriceContentModeRespectingFilter:
		return "RESPECTING_FILTER"
	case PriceContentModeAll:
		return "ALL"
	default:
		return "NONE"
	}
}

func (m PriceContentMode) String() string { return m.EnumName() }

// FacetStatisticsDepth controls how much a facet summary computes.
type FacetStatisticsDepth int

const (
	Counts FacetStatisticsDepth = iota
	Impact
)

// EnumName implements value.Enumerable.
func (d FacetStatisticsDepth) EnumName() string {
	if d == Impact {
		return "IMPACT"
	}
	return "COUNTS"
}

// QueryPriceMode selects the price amount used for filtering and sorting.
type QueryPriceMode int

const (
	WithTax QueryPriceMode = iota
	WithoutTax
)

// EnumName implements value.Enumerable.
func (m QueryPriceMode) EnumName() string {
	if m == WithoutTax {
		return "WITHOUT_TAX"
	}
	return "WITH_TAX"
}

// EmptyHierarchicalEntityBehaviour decides whether hierarchy nodes without
// matching entities are reported.
type EmptyHierarchicalEntityBehaviour int

const (
	LeaveEmpty EmptyHierarchicalEntityBehaviour = iota
	RemoveEmpty
)

// EnumName implements value.Enumerable.
func (b EmptyHierarchicalEntityBehaviour) EnumName() string {
	if b == RemoveEmpty {
		return "REMOVE_EMPTY"
	}
	return "LEAVE_EMPTY"
}

// StatisticsBase selects the filter the hierarchy statistics are computed on.
type StatisticsBase int

const (
	CompleteFilter StatisticsBase = iota
	WithoutUserFilter
)

// EnumName implements value.Enumerable.
func (b StatisticsBase) EnumName() string {
	if b == WithoutUserFilter {
		return "WITHOUT_USER_FILTER"
	}
	return "COMPLETE_FILTER"
}

// StatisticsType selects a hierarchy statistic.
type StatisticsType int

const (
	ChildrenCount StatisticsType = iota
	QueriedEntityCount
)

// EnumName implements value.Enumerable.
func (t StatisticsType) EnumName() string {
	if t == QueriedEntityCount {
		return "QUERIED_ENTITY_COUNT"
	}
	return "CHILDREN_COUNT"
}

// HistogramBehavior selects how histogram buckets are laid out.
type HistogramBehavior int

const (
	Standard HistogramBehavior = iota
	Optimized
)

// EnumName implements value.Enumerable.
func (b HistogramBehavior) EnumName() string {
	if b == Optimized {
		return "OPTIMIZED"
	}
	return "STANDARD"
}

// enumsByName lists every enumeration member by its symbolic name. The names
// are unique across all enumerations of the language.
var enumsByName = func() map[string]value.Enumerable {
	members := []value.Enumerable{
		Asc, Desc,
		Null, NotNull,
		PriceContentModeNone, PriceContentModeRespectingFilter, PriceContentModeAll,
		Counts, Impact,
		WithTax, WithoutTax,
		LeaveEmpty, RemoveEmpty,
		CompleteFilter, WithoutUserFilter,
		ChildrenCount, QueriedEntityCount,
		Standard, Optimized,
	}
	out := make(map[string]value.Enumerable, len(members))
	for _, m := range members {
		out[m.EnumName()] = m
	}
	return out
}()

// LookupEnum returns the enumeration member with the given symbolic name.
func LookupEnum(name string) (value.Enumerable, bool) {
	e, ok := enumsByName[name]
	return e, ok
}
