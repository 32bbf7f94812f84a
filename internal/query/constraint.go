package query

import (
	"slices"

	"github.com/evitadb/evitago/internal/value"
)

// Constraint is one node of the query tree.
//
// This is a sealed interface - only the node types of this package implement
// it. Use Kind to tell constraints apart and Category for the coarse type.
type Constraint interface {
	// Kind identifies the constraint within the catalog.
	Kind() Kind

	// Name is the printed name, suffix included (e.g. "hierarchyWithinSelf").
	Name() string

	// Category is the coarse type: head, filter, order or require.
	Category() Category

	// Arguments returns a copy of the normalized arguments, including those
	// implied by the suffix.
	Arguments() []value.Value

	// Applicable reports whether arguments and children are sufficient for
	// the constraint to mean anything.
	Applicable() bool

	// Accept dispatches to the visitor method of the constraint's category.
	Accept(v Visitor)

	// String returns the canonical form; nulls in non-nullable positions are
	// rendered as the <NULL> sentinel instead of failing.
	String() string

	isConstraint() // Marker method - seals interface to this package
}

// HeadConstraint is a constraint of the query header.
type HeadConstraint interface {
	Constraint
	headConstraint()
}

// FilterConstraint is a constraint of the filter part.
type FilterConstraint interface {
	Constraint
	filterConstraint()
}

// OrderConstraint is a constraint of the order part.
type OrderConstraint interface {
	Constraint
	orderConstraint()
}

// RequireConstraint is a constraint of the require part.
type RequireConstraint interface {
	Constraint
	requireConstraint()
}

// Container is a constraint with nested constraints.
//
// Children share the container's accepted category. AdditionalChildren are
// constraints of another category nested for cross-referencing, e.g. a
// filterBy inside referenceContent.
type Container interface {
	Constraint

	// Children returns a copy of the primary children.
	Children() []Constraint

	// AdditionalChildren returns a copy of the cross-category children.
	AdditionalChildren() []Constraint

	// Necessary reports whether omitting the container would change the
	// meaning of the tree (an "and" with one child is not necessary).
	Necessary() bool

	// CopyWithNewChildren builds a new container of the same kind and
	// arguments with the given children. The receiver is never modified.
	// Children outside the accepted categories or kinds are rejected.
	CopyWithNewChildren(children, additional []Constraint) (Container, error)
}

// node is the state shared by every constraint.
type node struct {
	kind Kind
	args []value.Value
}

func (n *node) Kind() Kind               { return n.kind }
func (n *node) Name() string             { return n.kind.String() }
func (n *node) Category() Category       { return n.kind.Category() }
func (n *node) Arguments() []value.Value { return slices.Clone(n.args) }
func (n *node) Applicable() bool         { return n.kind.isApplicable(n.args, nil, nil) }
func (n *node) isConstraint()            {}

// arg returns the argument at i or Null when out of range.
func (n *node) arg(i int) value.Value {
	if i < 0 || i >= len(n.args) {
		return value.Null{}
	}
	return n.args[i]
}

// branch is the state shared by every container.
type branch struct {
	node
	children   []Constraint
	additional []Constraint
}

func (b *branch) Children() []Constraint           { return slices.Clone(b.children) }
func (b *branch) AdditionalChildren() []Constraint { return slices.Clone(b.additional) }

func (b *branch) Applicable() bool {
	return b.kind.isApplicable(b.args, b.children, b.additional)
}

func (b *branch) Necessary() bool {
	return b.kind.isNecessary(b.args, b.children, b.additional)
}

// HeadLeaf is a header constraint (collection).
type HeadLeaf struct{ node }

func (c *HeadLeaf) headConstraint()  {}
func (c *HeadLeaf) Accept(v Visitor) { v.VisitHead(c) }
func (c *HeadLeaf) String() string   { return lenientString(c) }

// FilterLeaf is a filter constraint without children.
type FilterLeaf struct{ node }

func (c *FilterLeaf) filterConstraint() {}
func (c *FilterLeaf) Accept(v Visitor)  { v.VisitFilter(c) }
func (c *FilterLeaf) String() string    { return lenientString(c) }

// FilterContainer is a filter constraint with children.
type FilterContainer struct{ branch }

func (c *FilterContainer) filterConstraint() {}
func (c *FilterContainer) Accept(v Visitor)  { v.VisitFilter(c) }
func (c *FilterContainer) String() string    { return lenientString(c) }

// CopyWithNewChildren implements Container.
func (c *FilterContainer) CopyWithNewChildren(children, additional []Constraint) (Container, error) {
	b, err := newBranch(c.kind, c.args, children, additional)
	if err != nil {
		return nil, err
	}
	return &FilterContainer{b}, nil
}

// OrderLeaf is an order constraint without children.
type OrderLeaf struct{ node }

func (c *OrderLeaf) orderConstraint() {}
func (c *OrderLeaf) Accept(v Visitor) { v.VisitOrder(c) }
func (c *OrderLeaf) String() string   { return lenientString(c) }

// OrderContainer is an order constraint with children.
type OrderContainer struct{ branch }

func (c *OrderContainer) orderConstraint() {}
func (c *OrderContainer) Accept(v Visitor) { v.VisitOrder(c) }
func (c *OrderContainer) String() string   { return lenientString(c) }

// CopyWithNewChildren implements Container.
func (c *OrderContainer) CopyWithNewChildren(children, additional []Constraint) (Container, error) {
	b, err := newBranch(c.kind, c.args, children, additional)
	if err != nil {
		return nil, err
	}
	return &OrderContainer{b}, nil
}

// RequireLeaf is a require constraint without children.
type RequireLeaf struct{ node }

func (c *RequireLeaf) requireConstraint() {}
func (c *RequireLeaf) Accept(v Visitor)   { v.VisitRequire(c) }
func (c *RequireLeaf) String() string     { return lenientString(c) }

// RequireContainer is a require constraint with children.
type RequireContainer struct{ branch }

func (c *RequireContainer) requireConstraint() {}
func (c *RequireContainer) Accept(v Visitor)   { v.VisitRequire(c) }
func (c *RequireContainer) String() string     { return lenientString(c) }

// CopyWithNewChildren implements Container.
func (c *RequireContainer) CopyWithNewChildren(children, additional []Constraint) (Container, error) {
	b, err := newBranch(c.kind, c.args, children, additional)
	if err != nil {
		return nil, err
	}
	return &RequireContainer{b}, nil
}

// present reports whether c holds a node, treating typed nil pointers as
// absent so optional children can be passed straight through.
func present(c Constraint) bool {
	switch n := c.(type) {
	case nil:
		return false
	case *HeadLeaf:
		return n != nil
	case *FilterLeaf:
		return n != nil
	case *FilterContainer:
		return n != nil
	case *OrderLeaf:
		return n != nil
	case *OrderContainer:
		return n != nil
	case *RequireLeaf:
		return n != nil
	case *RequireContainer:
		return n != nil
	default:
		return true
	}
}
