package query

import (
	"fmt"
	"slices"

	"github.com/evitadb/evitago/internal/value"
)

// NewHead builds a header constraint of the given kind.
func NewHead(kind Kind, args ...any) (HeadConstraint, error) {
	if err := checkKind(kind, CategoryHead); err != nil {
		return nil, err
	}
	n, err := newNode(kind, args)
	if err != nil {
		return nil, err
	}
	return &HeadLeaf{n}, nil
}

// NewFilter builds a filter constraint of the given kind. Leaf kinds reject
// children.
func NewFilter(kind Kind, args []any, children, additional []Constraint) (FilterConstraint, error) {
	if err := checkKind(kind, CategoryFilter); err != nil {
		return nil, err
	}
	if !kind.IsContainer() {
		n, err := newLeaf(kind, args, children, additional)
		if err != nil {
			return nil, err
		}
		return &FilterLeaf{n}, nil
	}
	b, err := newBranchFromAny(kind, args, children, additional)
	if err != nil {
		return nil, err
	}
	return &FilterContainer{b}, nil
}

// NewOrder builds an order constraint of the given kind.
func NewOrder(kind Kind, args []any, children, additional []Constraint) (OrderConstraint, error) {
	if err := checkKind(kind, CategoryOrder); err != nil {
		return nil, err
	}
	if !kind.IsContainer() {
		n, err := newLeaf(kind, args, children, additional)
		if err != nil {
			return nil, err
		}
		return &OrderLeaf{n}, nil
	}
	b, err := newBranchFromAny(kind, args, children, additional)
	if err != nil {
		return nil, err
	}
	return &OrderContainer{b}, nil
}

// NewRequire builds a require constraint of the given kind.
func NewRequire(kind Kind, args []any, children, additional []Constraint) (RequireConstraint, error) {
	if err := checkKind(kind, CategoryRequire); err != nil {
		return nil, err
	}
	if !kind.IsContainer() {
		n, err := newLeaf(kind, args, children, additional)
		if err != nil {
			return nil, err
		}
		return &RequireLeaf{n}, nil
	}
	b, err := newBranchFromAny(kind, args, children, additional)
	if err != nil {
		return nil, err
	}
	return &RequireContainer{b}, nil
}

// NewConstraint builds a constraint of any kind, dispatching on the kind's
// category.
func NewConstraint(kind Kind, args []any, children, additional []Constraint) (Constraint, error) {
	if !kind.Valid() {
		return nil, &ConstructionError{Constraint: kind.String(), Err: fmt.Errorf("%w: unknown kind", ErrCategory)}
	}
	switch kind.Category() {
	case CategoryHead:
		if len(children)+len(additional) > 0 {
			return nil, constructionError(kind, "%w: header constraints have no children", ErrLeafNesting)
		}
		return NewHead(kind, args...)
	case CategoryFilter:
		return NewFilter(kind, args, children, additional)
	case CategoryOrder:
		return NewOrder(kind, args, children, additional)
	default:
		return NewRequire(kind, args, children, additional)
	}
}

func checkKind(kind Kind, want Category) error {
	if !kind.Valid() {
		return &ConstructionError{Constraint: kind.String(), Err: fmt.Errorf("%w: unknown kind", ErrCategory)}
	}
	if kind.Category() != want {
		return constructionError(kind, "%w: %s is a %s constraint, not %s", ErrCategory, kind, kind.Category(), want)
	}
	return nil
}

func newLeaf(kind Kind, args []any, children, additional []Constraint) (node, error) {
	if len(children)+len(additional) > 0 {
		return node{}, constructionError(kind, "%w: %s is a leaf and cannot hold children", ErrLeafNesting, kind)
	}
	return newNode(kind, args)
}

// newNode normalizes the arguments and checks them against the kind.
func newNode(kind Kind, args []any) (node, error) {
	for i, a := range args {
		if _, ok := a.(Constraint); ok {
			return node{}, constructionError(kind, "%w: argument %d is a constraint", ErrLeafNesting, i)
		}
	}
	normalized, err := value.Normalize(args)
	if err != nil {
		return node{}, &ConstructionError{Constraint: kind.String(), Err: err}
	}
	if err := checkArgs(kind, normalized); err != nil {
		return node{}, err
	}
	return node{kind: kind, args: normalized}, nil
}

func checkArgs(kind Kind, args []value.Value) error {
	info := kind.info()
	if len(args) < info.minArgs || (info.maxArgs != unbounded && len(args) > info.maxArgs) {
		return constructionError(kind, "%w: got %d, want %s", ErrArity, len(args), arityText(info))
	}
	if err := checkImplicitArgs(kind, args); err != nil {
		return err
	}
	if !info.container && info.validate != nil {
		if err := info.validate(args, nil, nil); err != nil {
			return &ConstructionError{Constraint: kind.String(), Err: err}
		}
	}
	return nil
}

// checkImplicitArgs rejects leading arguments that contradict the suffix of
// the kind, e.g. priceContentAll holding mode NONE.
func checkImplicitArgs(kind Kind, args []value.Value) error {
	implied, err := value.Normalize(kind.ImplicitArgs())
	if err != nil {
		return &ConstructionError{Constraint: kind.String(), Err: err}
	}
	for i, want := range implied {
		if i < len(args) && value.Equal(args[i], want) {
			continue
		}
		text, _ := value.Format(want)
		return constructionError(kind, "%w: argument %d of %s must be %s", ErrInvalidArgument, i, kind, text)
	}
	return nil
}

func arityText(info *kindInfo) string {
	switch {
	case info.maxArgs == unbounded:
		return fmt.Sprintf("at least %d", info.minArgs)
	case info.minArgs == info.maxArgs:
		return fmt.Sprintf("%d", info.minArgs)
	default:
		return fmt.Sprintf("%d..%d", info.minArgs, info.maxArgs)
	}
}

func newBranchFromAny(kind Kind, args []any, children, additional []Constraint) (branch, error) {
	n, err := newNode(kind, args)
	if err != nil {
		return branch{}, err
	}
	return newBranch(kind, n.args, children, additional)
}

// newBranch validates children against the kind and copies both slices, so
// later changes to the caller's slices never reach the node.
func newBranch(kind Kind, args []value.Value, children, additional []Constraint) (branch, error) {
	info := kind.info()
	for i, c := range children {
		if !present(c) {
			return branch{}, constructionError(kind, "%w: child %d is nil", ErrInvalidChild, i)
		}
		if c.Category() != info.childCategory {
			return branch{}, constructionError(kind, "%w: %s accepts %s children, got %s constraint %s",
				ErrInvalidChild, kind, info.childCategory, c.Category(), c.Name())
		}
		if bad := forbiddenWithin(info.forbidden, c); bad != nil {
			return branch{}, constructionError(kind, "%w: %s may not contain %s", ErrForbiddenChild, kind, bad.Name())
		}
		if len(info.allowed) > 0 && !slices.Contains(info.allowed, c.Kind()) {
			return branch{}, constructionError(kind, "%w: %s may not contain %s", ErrInvalidChild, kind, c.Name())
		}
	}
	if info.maxChildren != unbounded && len(children) > info.maxChildren {
		return branch{}, constructionError(kind, "%w: %s accepts at most %d children, got %d",
			ErrInvalidChild, kind, info.maxChildren, len(children))
	}

	seen := make(map[Kind]bool, len(additional))
	for i, c := range additional {
		if !present(c) {
			return branch{}, constructionError(kind, "%w: additional child %d is nil", ErrInvalidChild, i)
		}
		if !slices.Contains(info.additional, c.Kind()) {
			return branch{}, constructionError(kind, "%w: %s does not accept %s as additional child", ErrInvalidChild, kind, c.Name())
		}
		if seen[c.Kind()] {
			return branch{}, constructionError(kind, "%w: duplicate additional child %s", ErrInvalidChild, c.Name())
		}
		seen[c.Kind()] = true
	}

	if info.validate != nil {
		if err := info.validate(args, children, additional); err != nil {
			return branch{}, &ConstructionError{Constraint: kind.String(), Err: err}
		}
	}

	return branch{
		node:       node{kind: kind, args: args},
		children:   slices.Clone(children),
		additional: slices.Clone(additional),
	}, nil
}

// forbiddenWithin returns the first constraint of a forbidden kind found in c
// or, through and/or/not, in its descendants.
func forbiddenWithin(forbidden []Kind, c Constraint) Constraint {
	if len(forbidden) == 0 {
		return nil
	}
	if slices.Contains(forbidden, c.Kind()) {
		return c
	}
	if !slices.Contains(logicalKinds, c.Kind()) {
		return nil
	}
	for _, child := range c.(Container).Children() {
		if bad := forbiddenWithin(forbidden, child); bad != nil {
			return bad
		}
	}
	return nil
}
