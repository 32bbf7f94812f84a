// Package query provides the constraint model of the evitaDB query language.
//
// A query is a tree of constraints. Each constraint belongs to exactly one
// category (head, filter, order, require) and is either a leaf, carrying only
// arguments, or a container, carrying arguments plus ordered children.
//
// ARCHITECTURE:
//
//	Query
//	  ├── collection('product')          head leaf
//	  ├── filterBy(...)                  filter container
//	  ├── orderBy(...)                   order container
//	  └── require(...)                   require container
//
// SEALED INTERFACES:
//
// Constraint and its category interfaces (HeadConstraint, FilterConstraint,
// OrderConstraint, RequireConstraint) are sealed with marker methods. Every
// node is one of seven concrete types (HeadLeaf, FilterLeaf, FilterContainer,
// OrderLeaf, OrderContainer, RequireLeaf, RequireContainer) and carries a Kind,
// a closed enumeration with one member per constraint of the language. Code
// that needs per-constraint behaviour switches over Kind.
//
// IMMUTABILITY:
//
// Nodes are never mutated after construction. Rewriting produces new nodes
// through Container.CopyWithNewChildren, which re-validates the children, so
// trees can be shared freely between goroutines and between queries.
//
// SUFFIX VARIANTS:
//
// Constraints whose printed name depends on an optional argument are separate
// kinds with separate constructors (hierarchyWithin vs hierarchyWithinSelf,
// priceContent vs priceContentAll, ...). The printed name is decided by the
// kind alone; arguments implied by the suffix are kept but not printed.
//
// CONSTRUCTION:
//
// The New* functions return errors. The fluent functions named after the
// constraints (And, AttributeEquals, EntityFetch, ...) panic with a
// *ConstructionError on programmer error, mirroring regexp.MustCompile; Try
// turns such a panic back into an error.
//
// PRINTING:
//
// PrettyPrint renders the canonical query-language text. PrettyPrintParameterized
// renders the same text with literal arguments replaced by '?' and returns them
// in order, so structurally identical queries share one string.
package query
