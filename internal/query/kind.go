package query

import (
	"fmt"
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/evitadb/evitago/internal/value"
)

// Category is the coarse type of a constraint.
type Category uint8

const (
	CategoryHead Category = iota + 1
	CategoryFilter
	CategoryOrder
	CategoryRequire
)

func (c Category) String() string {
	switch c {
	case CategoryHead:
		return "head"
	case CategoryFilter:
		return "filter"
	case CategoryOrder:
		return "order"
	case CategoryRequire:
		return "require"
	default:
		return fmt.Sprintf("category(%d)", uint8(c))
	}
}

// Kind identifies one constraint of the query language. The set is closed:
// code switching over Kind can be checked for exhaustiveness.
type Kind uint8

const (
	KindCollection Kind = iota + 1

	// filter containers
	KindFilterBy
	KindAnd
	KindOr
	KindNot
	KindUserFilter
	KindReferenceHaving
	KindFacetHaving
	KindEntityHaving
	KindHierarchyWithin
	KindHierarchyWithinSelf
	KindHierarchyWithinRoot
	KindHierarchyWithinRootSelf
	KindHaving
	KindExcluding

	// filter leaves
	KindDirectRelation
	KindExcludingRoot
	KindAttributeEquals
	KindAttributeGreaterThan
	KindAttributeGreaterThanEquals
	KindAttributeLessThan
	KindAttributeLessThanEquals
	KindAttributeBetween
	KindAttributeInSet
	KindAttributeContains
	KindAttributeStartsWith
	KindAttributeEndsWith
	KindAttributeIs
	KindAttributeInRange
	KindAttributeInRangeNow
	KindEntityPrimaryKeyInSet
	KindEntityLocaleEquals
	KindPriceInCurrency
	KindPriceInPriceLists
	KindPriceValidIn
	KindPriceValidInNow
	KindPriceBetween

	// order
	KindOrderBy
	KindAttributeNatural
	KindAttributeSetExact
	KindAttributeSetInFilter
	KindPriceNatural
	KindRandom
	KindEntityPrimaryKeyNatural
	KindEntityPrimaryKeyExact
	KindEntityPrimaryKeyInFilter
	KindReferenceProperty
	KindEntityProperty
	KindEntityGroupProperty

	// require
	KindRequire
	KindEntityFetch
	KindEntityGroupFetch
	KindAttributeContent
	KindAttributeContentAll
	KindAssociatedDataContent
	KindAssociatedDataContentAll
	KindPriceContent
	KindPriceContentAll
	KindPriceContentRespectingFilter
	KindReferenceContent
	KindReferenceContentAll
	KindHierarchyContent
	KindDataInLocales
	KindDataInLocalesAll
	KindPage
	KindStrip
	KindFacetSummary
	KindFacetSummaryOfReference
	KindPriceType
	KindPriceHistogram
	KindAttributeHistogram
	KindQueryTelemetry
	KindHierarchyOfSelf
	KindHierarchyOfReference
	KindFromRoot
	KindFromNode
	KindChildren
	KindSiblings
	KindParents
	KindNode
	KindStopAt
	KindDistance
	KindLevel
	KindStatistics

	kindCount
)

const unbounded = -1

// kindInfo describes the static shape of one kind.
type kindInfo struct {
	name   string // base name
	suffix string // suffix token appended capitalized, "" for none

	category  Category
	container bool

	minArgs int
	maxArgs int // unbounded = variadic

	// implicit is the number of leading arguments implied by the suffix;
	// they stay in Arguments but are never printed.
	implicit int

	// identifier marks argument positions naming schema elements; the
	// parameterized printer keeps them inline.
	identifier func(i int) bool

	// nullable marks argument positions that may hold Null.
	nullable func(i int) bool

	childCategory Category // category of children; defaults to category
	allowed       []Kind   // when non-empty, the only kinds accepted as children
	forbidden     []Kind   // kinds rejected as children
	maxChildren   int      // unbounded = no limit
	additional    []Kind   // kinds accepted as additional children

	applicable func(args []value.Value, children, additional []Constraint) bool
	necessary  func(args []value.Value, children, additional []Constraint) bool
	validate   func(args []value.Value, children, additional []Constraint) error

	printed string // computed: name + capitalized suffix
}

// specification kinds may follow the parent filter inside hierarchyWithin.
var hierarchySpecifications = []Kind{KindDirectRelation, KindHaving, KindExcluding, KindExcludingRoot}

// logicalKinds are searched through for forbidden descendants.
var logicalKinds = []Kind{KindAnd, KindOr, KindNot}

// userFilterForbidden lists the kinds a user filter may not contain: the
// price, locale and hierarchy scoping constraints and user filters themselves.
var userFilterForbidden = []Kind{
	KindUserFilter,
	KindEntityLocaleEquals,
	KindPriceInCurrency,
	KindPriceInPriceLists,
	KindPriceValidIn,
	KindPriceValidInNow,
	KindHierarchyWithin,
	KindHierarchyWithinSelf,
	KindHierarchyWithinRoot,
	KindHierarchyWithinRootSelf,
}

// entityContent lists the requirements accepted inside entityFetch.
var entityContent = []Kind{
	KindAttributeContent, KindAttributeContentAll,
	KindAssociatedDataContent, KindAssociatedDataContentAll,
	KindPriceContent, KindPriceContentAll, KindPriceContentRespectingFilter,
	KindReferenceContent, KindReferenceContentAll,
	KindHierarchyContent,
	KindDataInLocales, KindDataInLocalesAll,
}

var referenceContentChildren = []Kind{KindEntityFetch, KindEntityGroupFetch, KindAttributeContent, KindAttributeContentAll}

var hierarchyRequirements = []Kind{KindFromRoot, KindFromNode, KindChildren, KindSiblings, KindParents}

var hierarchyRequirementContent = []Kind{KindEntityFetch, KindStopAt, KindStatistics, KindSiblings}

var kinds = [kindCount]kindInfo{
	KindCollection: {name: "collection", category: CategoryHead, minArgs: 1, maxArgs: 1, identifier: firstArgs(1)},

	KindFilterBy:   {name: "filterBy", category: CategoryFilter, container: true},
	KindAnd:        {name: "and", category: CategoryFilter, container: true, necessary: moreThanOneChild},
	KindOr:         {name: "or", category: CategoryFilter, container: true, necessary: moreThanOneChild},
	KindNot:        {name: "not", category: CategoryFilter, container: true, maxChildren: 1},
	KindUserFilter: {name: "userFilter", category: CategoryFilter, container: true, forbidden: userFilterForbidden},
	KindReferenceHaving: {
		name: "referenceHaving", category: CategoryFilter, container: true,
		minArgs: 1, maxArgs: 1, identifier: firstArgs(1), maxChildren: 1, applicable: argsPresent,
	},
	KindFacetHaving: {
		name: "facetHaving", category: CategoryFilter, container: true,
		minArgs: 1, maxArgs: 1, identifier: firstArgs(1),
	},
	KindEntityHaving: {name: "entityHaving", category: CategoryFilter, container: true, maxChildren: 1},
	KindHierarchyWithin: {
		name: "hierarchyWithin", category: CategoryFilter, container: true,
		minArgs: 1, maxArgs: 1, identifier: firstArgs(1), validate: parentThenSpecifications,
	},
	KindHierarchyWithinSelf: {
		name: "hierarchyWithin", suffix: "self", category: CategoryFilter, container: true,
		validate: parentThenSpecifications,
	},
	KindHierarchyWithinRoot: {
		name: "hierarchyWithinRoot", category: CategoryFilter, container: true,
		minArgs: 1, maxArgs: 1, identifier: firstArgs(1),
		allowed: []Kind{KindDirectRelation, KindHaving, KindExcluding}, applicable: argsPresent,
	},
	KindHierarchyWithinRootSelf: {
		name: "hierarchyWithinRoot", suffix: "self", category: CategoryFilter, container: true,
		allowed: []Kind{KindDirectRelation, KindHaving, KindExcluding}, applicable: always,
	},
	KindHaving:    {name: "having", category: CategoryFilter, container: true},
	KindExcluding: {name: "excluding", category: CategoryFilter, container: true},

	KindDirectRelation:             {name: "directRelation", category: CategoryFilter},
	KindExcludingRoot:              {name: "excludingRoot", category: CategoryFilter},
	KindAttributeEquals:            attributeComparison("attributeEquals"),
	KindAttributeGreaterThan:       attributeComparison("attributeGreaterThan"),
	KindAttributeGreaterThanEquals: attributeComparison("attributeGreaterThanEquals"),
	KindAttributeLessThan:          attributeComparison("attributeLessThan"),
	KindAttributeLessThanEquals:    attributeComparison("attributeLessThanEquals"),
	KindAttributeBetween: {
		name: "attributeBetween", category: CategoryFilter, minArgs: 3, maxArgs: 3,
		identifier: firstArgs(1), nullable: positions(1, 2), applicable: nameAndEitherBound,
	},
	KindAttributeInSet: {
		name: "attributeInSet", category: CategoryFilter, minArgs: 1, maxArgs: unbounded,
		identifier: firstArgs(1), applicable: argsAtLeast(2),
	},
	KindAttributeContains:   attributeComparison("attributeContains"),
	KindAttributeStartsWith: attributeComparison("attributeStartsWith"),
	KindAttributeEndsWith:   attributeComparison("attributeEndsWith"),
	KindAttributeIs:         attributeComparison("attributeIs"),
	KindAttributeInRange:    attributeComparison("attributeInRange"),
	KindAttributeInRangeNow: {
		name: "attributeInRangeNow", category: CategoryFilter, minArgs: 1, maxArgs: 1, identifier: firstArgs(1),
	},
	KindEntityPrimaryKeyInSet: {
		name: "entityPrimaryKeyInSet", category: CategoryFilter, maxArgs: unbounded, applicable: argsAtLeast(1),
	},
	KindEntityLocaleEquals: {name: "entityLocaleEquals", category: CategoryFilter, minArgs: 1, maxArgs: 1},
	KindPriceInCurrency:    {name: "priceInCurrency", category: CategoryFilter, minArgs: 1, maxArgs: 1},
	KindPriceInPriceLists: {
		name: "priceInPriceLists", category: CategoryFilter, maxArgs: unbounded, applicable: argsAtLeast(1),
	},
	KindPriceValidIn:    {name: "priceValidIn", category: CategoryFilter, minArgs: 1, maxArgs: 1},
	KindPriceValidInNow: {name: "priceValidInNow", category: CategoryFilter},
	KindPriceBetween: {
		name: "priceBetween", category: CategoryFilter, minArgs: 2, maxArgs: 2,
		nullable: positions(0, 1), applicable: eitherBound,
	},

	KindOrderBy:              {name: "orderBy", category: CategoryOrder, container: true},
	KindAttributeNatural:     {name: "attributeNatural", category: CategoryOrder, minArgs: 2, maxArgs: 2, identifier: firstArgs(1)},
	KindAttributeSetExact:    {name: "attributeSetExact", category: CategoryOrder, minArgs: 1, maxArgs: unbounded, identifier: firstArgs(1), applicable: argsAtLeast(2)},
	KindAttributeSetInFilter: {name: "attributeSetInFilter", category: CategoryOrder, minArgs: 1, maxArgs: 1, identifier: firstArgs(1)},
	KindPriceNatural:         {name: "priceNatural", category: CategoryOrder, minArgs: 1, maxArgs: 1},
	KindRandom:               {name: "random", category: CategoryOrder},
	KindEntityPrimaryKeyNatural: {
		name: "entityPrimaryKeyNatural", category: CategoryOrder, minArgs: 1, maxArgs: 1,
	},
	KindEntityPrimaryKeyExact: {
		name: "entityPrimaryKeyExact", category: CategoryOrder, maxArgs: unbounded, applicable: argsAtLeast(1),
	},
	KindEntityPrimaryKeyInFilter: {name: "entityPrimaryKeyInFilter", category: CategoryOrder},
	KindReferenceProperty: {
		name: "referenceProperty", category: CategoryOrder, container: true,
		minArgs: 1, maxArgs: 1, identifier: firstArgs(1),
	},
	KindEntityProperty:      {name: "entityProperty", category: CategoryOrder, container: true},
	KindEntityGroupProperty: {name: "entityGroupProperty", category: CategoryOrder, container: true},

	KindRequire: {name: "require", category: CategoryRequire, container: true},
	KindEntityFetch: {
		name: "entityFetch", category: CategoryRequire, container: true,
		allowed: entityContent, applicable: always,
	},
	KindEntityGroupFetch: {
		name: "entityGroupFetch", category: CategoryRequire, container: true,
		allowed: entityContent, applicable: always,
	},
	KindAttributeContent: {
		name: "attributeContent", category: CategoryRequire, maxArgs: unbounded, identifier: everyArg,
	},
	KindAttributeContentAll: {name: "attributeContent", suffix: "all", category: CategoryRequire},
	KindAssociatedDataContent: {
		name: "associatedDataContent", category: CategoryRequire, maxArgs: unbounded, identifier: everyArg,
	},
	KindAssociatedDataContentAll: {name: "associatedDataContent", suffix: "all", category: CategoryRequire},
	KindPriceContent: {
		name: "priceContent", category: CategoryRequire, minArgs: 1, maxArgs: unbounded,
		validate: firstArgIsPriceContentMode,
	},
	KindPriceContentAll: {
		name: "priceContent", suffix: "all", category: CategoryRequire,
		minArgs: 1, maxArgs: 1, implicit: 1, validate: firstArgIsPriceContentMode,
	},
	KindPriceContentRespectingFilter: {
		name: "priceContent", suffix: "respectingFilter", category: CategoryRequire,
		minArgs: 1, maxArgs: unbounded, implicit: 1, validate: firstArgIsPriceContentMode,
	},
	KindReferenceContent: {
		name: "referenceContent", category: CategoryRequire, container: true,
		minArgs: 1, maxArgs: unbounded, identifier: everyArg,
		allowed: referenceContentChildren, additional: []Kind{KindFilterBy, KindOrderBy},
		applicable: argsPresent, validate: additionalNeedsSingleReference,
	},
	KindReferenceContentAll: {
		name: "referenceContent", suffix: "all", category: CategoryRequire, container: true,
		allowed: referenceContentChildren, applicable: always,
	},
	KindHierarchyContent: {
		name: "hierarchyContent", category: CategoryRequire, container: true,
		allowed: []Kind{KindStopAt, KindEntityFetch}, maxChildren: 2, applicable: always, validate: distinctChildKinds,
	},
	KindDataInLocales: {
		name: "dataInLocales", category: CategoryRequire, maxArgs: unbounded, applicable: argsAtLeast(1),
	},
	KindDataInLocalesAll: {name: "dataInLocales", suffix: "all", category: CategoryRequire},
	KindPage:             {name: "page", category: CategoryRequire, minArgs: 2, maxArgs: 2},
	KindStrip:            {name: "strip", category: CategoryRequire, minArgs: 2, maxArgs: 2},
	KindFacetSummary: {
		name: "facetSummary", category: CategoryRequire, container: true,
		minArgs: 1, maxArgs: 1, allowed: []Kind{KindEntityFetch, KindEntityGroupFetch},
		additional: []Kind{KindFilterBy, KindOrderBy}, applicable: argsPresent,
	},
	KindFacetSummaryOfReference: {
		name: "facetSummaryOfReference", category: CategoryRequire, container: true,
		minArgs: 2, maxArgs: 2, identifier: firstArgs(1), allowed: []Kind{KindEntityFetch, KindEntityGroupFetch},
		additional: []Kind{KindFilterBy, KindOrderBy}, applicable: argsPresent,
	},
	KindPriceType:          {name: "priceType", category: CategoryRequire, minArgs: 1, maxArgs: 1},
	KindPriceHistogram:     {name: "priceHistogram", category: CategoryRequire, minArgs: 1, maxArgs: 2},
	KindAttributeHistogram: {name: "attributeHistogram", category: CategoryRequire, minArgs: 1, maxArgs: unbounded, identifier: fromArg(1), applicable: argsAtLeast(2)},
	KindQueryTelemetry:     {name: "queryTelemetry", category: CategoryRequire},
	KindHierarchyOfSelf: {
		name: "hierarchyOfSelf", category: CategoryRequire, container: true,
		allowed: hierarchyRequirements, additional: []Kind{KindOrderBy},
	},
	KindHierarchyOfReference: {
		name: "hierarchyOfReference", category: CategoryRequire, container: true,
		minArgs: 2, maxArgs: 2, identifier: firstArgs(1),
		allowed: hierarchyRequirements, additional: []Kind{KindOrderBy},
	},
	KindFromRoot: hierarchyRequirement("fromRoot"),
	KindFromNode: {
		name: "fromNode", category: CategoryRequire, container: true,
		minArgs: 1, maxArgs: 1, identifier: firstArgs(1),
		allowed: append([]Kind{KindNode}, hierarchyRequirementContent...), validate: exactlyOneNode,
	},
	KindChildren: hierarchyRequirement("children"),
	KindSiblings: hierarchyRequirement("siblings"),
	KindParents:  hierarchyRequirement("parents"),
	KindNode: {
		name: "node", category: CategoryRequire, container: true, maxChildren: 0,
		additional: []Kind{KindFilterBy}, applicable: hasAdditional,
	},
	KindStopAt: {
		name: "stopAt", category: CategoryRequire, container: true,
		allowed: []Kind{KindDistance, KindLevel, KindNode}, maxChildren: 1,
	},
	KindDistance:   {name: "distance", category: CategoryRequire, minArgs: 1, maxArgs: 1},
	KindLevel:      {name: "level", category: CategoryRequire, minArgs: 1, maxArgs: 1},
	KindStatistics: {name: "statistics", category: CategoryRequire, minArgs: 1, maxArgs: unbounded},
}

func init() {
	title := cases.Title(language.Und, cases.NoLower)
	for k := Kind(1); k < kindCount; k++ {
		info := &kinds[k]
		info.printed = info.name + title.String(info.suffix)
		if info.childCategory == 0 {
			info.childCategory = info.category
		}
		if info.maxChildren == 0 && info.container && k != KindNode {
			info.maxChildren = unbounded
		}
	}
}

func attributeComparison(name string) kindInfo {
	return kindInfo{name: name, category: CategoryFilter, minArgs: 2, maxArgs: 2, identifier: firstArgs(1)}
}

func hierarchyRequirement(name string) kindInfo {
	return kindInfo{
		name: name, category: CategoryRequire, container: true,
		minArgs: 1, maxArgs: 1, identifier: firstArgs(1),
		allowed: hierarchyRequirementContent, applicable: argsPresent,
	}
}

func (k Kind) info() *kindInfo {
	if k == 0 || k >= kindCount {
		panic(fmt.Sprintf("query: unknown kind %d", uint8(k)))
	}
	return &kinds[k]
}

// Valid reports whether k is a member of the catalog.
func (k Kind) Valid() bool {
	return k > 0 && k < kindCount
}

// String returns the printed name of the kind, suffix included.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kinds[k].printed
}

// Category returns the category of the kind.
func (k Kind) Category() Category {
	return k.info().category
}

// IsContainer reports whether constraints of this kind carry children.
func (k Kind) IsContainer() bool {
	return k.info().container
}

// Suffix returns the suffix token of the kind, "" when it has none.
func (k Kind) Suffix() string {
	return k.info().suffix
}

// KindByName returns the kind printed under the given name.
func KindByName(name string) (Kind, bool) {
	for k := Kind(1); k < kindCount; k++ {
		if kinds[k].printed == name {
			return k, true
		}
	}
	return 0, false
}

// ImplicitArgs returns the leading arguments implied by the suffix of k.
// They are not printed, so a reader of the printed form must restore them.
func (k Kind) ImplicitArgs() []any {
	switch k {
	case KindPriceContentAll:
		return []any{PriceContentModeAll}
	case KindPriceContentRespectingFilter:
		return []any{PriceContentModeRespectingFilter}
	default:
		return nil
	}
}

// AcceptsAdditional reports whether constraints of kind child are held by k
// as additional children rather than as regular children.
func (k Kind) AcceptsAdditional(child Kind) bool {
	return slices.Contains(k.info().additional, child)
}

func (info *kindInfo) isIdentifier(i int) bool {
	return info.identifier != nil && info.identifier(i)
}

func (info *kindInfo) isNullable(i int) bool {
	return info.nullable != nil && info.nullable(i)
}

func (k Kind) isApplicable(args []value.Value, children, additional []Constraint) bool {
	info := k.info()
	if info.applicable != nil {
		return info.applicable(args, children, additional)
	}
	if !requiredArgsPresent(info, args) {
		return false
	}
	if info.container {
		return len(children) > 0
	}
	return true
}

func (k Kind) isNecessary(args []value.Value, children, additional []Constraint) bool {
	if !k.isApplicable(args, children, additional) {
		return false
	}
	info := k.info()
	if info.necessary != nil {
		return info.necessary(args, children, additional)
	}
	return true
}

func requiredArgsPresent(info *kindInfo, args []value.Value) bool {
	if len(args) < info.minArgs {
		return false
	}
	for i, a := range args {
		if value.IsNull(a) && !info.isNullable(i) {
			return false
		}
	}
	return true
}

// argument position helpers

func firstArgs(n int) func(int) bool {
	return func(i int) bool { return i < n }
}

func fromArg(n int) func(int) bool {
	return func(i int) bool { return i >= n }
}

func everyArg(int) bool { return true }

func positions(p ...int) func(int) bool {
	return func(i int) bool { return slices.Contains(p, i) }
}

// applicability helpers

func always([]value.Value, []Constraint, []Constraint) bool { return true }

func argsPresent(args []value.Value, _, _ []Constraint) bool {
	if len(args) == 0 {
		return false
	}
	for _, a := range args {
		if value.IsNull(a) {
			return false
		}
	}
	return true
}

func argsAtLeast(n int) func([]value.Value, []Constraint, []Constraint) bool {
	return func(args []value.Value, children, additional []Constraint) bool {
		return len(args) >= n && argsPresent(args, children, additional)
	}
}

func nameAndEitherBound(args []value.Value, _, _ []Constraint) bool {
	return len(args) == 3 && !value.IsNull(args[0]) && (!value.IsNull(args[1]) || !value.IsNull(args[2]))
}

func eitherBound(args []value.Value, _, _ []Constraint) bool {
	return len(args) == 2 && (!value.IsNull(args[0]) || !value.IsNull(args[1]))
}

func hasAdditional(_ []value.Value, _, additional []Constraint) bool {
	return len(additional) > 0
}

func moreThanOneChild(_ []value.Value, children, _ []Constraint) bool {
	return len(children) > 1
}

// validation helpers

func parentThenSpecifications(_ []value.Value, children, _ []Constraint) error {
	for i, c := range children {
		isSpec := slices.Contains(hierarchySpecifications, c.Kind())
		if i == 0 && isSpec {
			return fmt.Errorf("%w: first child must be the parent filter, got %s", ErrInvalidChild, c.Kind())
		}
		if i > 0 && !isSpec {
			return fmt.Errorf("%w: %s is not a hierarchy specification", ErrInvalidChild, c.Kind())
		}
	}
	return nil
}

func additionalNeedsSingleReference(args []value.Value, _, additional []Constraint) error {
	if len(additional) > 0 && len(args) != 1 {
		return fmt.Errorf("%w: filterBy/orderBy require exactly one reference name, got %d", ErrInvalidChild, len(args))
	}
	return nil
}

func distinctChildKinds(_ []value.Value, children, _ []Constraint) error {
	seen := make(map[Kind]bool, len(children))
	for _, c := range children {
		if seen[c.Kind()] {
			return fmt.Errorf("%w: duplicate %s", ErrInvalidChild, c.Kind())
		}
		seen[c.Kind()] = true
	}
	return nil
}

func exactlyOneNode(_ []value.Value, children, _ []Constraint) error {
	count := 0
	for _, c := range children {
		if c.Kind() == KindNode {
			count++
		}
	}
	if count != 1 {
		return fmt.Errorf("%w: expected exactly one node, got %d", ErrInvalidChild, count)
	}
	return nil
}

func firstArgIsPriceContentMode(args []value.Value, _, _ []Constraint) error {
	if len(args) == 0 {
		return nil
	}
	e, ok := args[0].(value.Enum)
	if !ok {
		return fmt.Errorf("%w: first argument must be a price content mode, got %T", ErrInvalidArgument, args[0])
	}
	if _, ok := e.Raw().(PriceContentMode); !ok {
		return fmt.Errorf("%w: first argument must be a price content mode, got %s", ErrInvalidArgument, e.Name())
	}
	for _, a := range args[1:] {
		if _, ok := a.(value.String); !ok {
			return fmt.Errorf("%w: price list names must be strings, got %T", ErrInvalidArgument, a)
		}
	}
	return nil
}
