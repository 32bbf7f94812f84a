package query

// Visitor receives constraints by category. Accept on a constraint calls
// exactly one of the methods; containers do not descend on their own.
type Visitor interface {
	VisitHead(c HeadConstraint)
	VisitFilter(c FilterConstraint)
	VisitOrder(c OrderConstraint)
	VisitRequire(c RequireConstraint)
}

// VisitorFunc adapts a single function to Visitor for callers that do not
// care about the category.
type VisitorFunc func(c Constraint)

func (f VisitorFunc) VisitHead(c HeadConstraint)       { f(c) }
func (f VisitorFunc) VisitFilter(c FilterConstraint)   { f(c) }
func (f VisitorFunc) VisitOrder(c OrderConstraint)     { f(c) }
func (f VisitorFunc) VisitRequire(c RequireConstraint) { f(c) }

// Walk traverses c depth-first in printing order: the node itself, then its
// additional children, then its children. Returning false from fn skips the
// descendants of that node.
func Walk(c Constraint, fn func(Constraint) bool) {
	if !present(c) || !fn(c) {
		return
	}
	container, ok := c.(Container)
	if !ok {
		return
	}
	for _, child := range container.AdditionalChildren() {
		Walk(child, fn)
	}
	for _, child := range container.Children() {
		Walk(child, fn)
	}
}

// Find returns the first constraint of the given kind in c, in Walk order.
func Find(c Constraint, kind Kind) (Constraint, bool) {
	var found Constraint
	Walk(c, func(n Constraint) bool {
		if found != nil {
			return false
		}
		if n.Kind() == kind {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}

// FindAll returns every constraint of the given kind in c, in Walk order.
// Matches are not searched for nested matches.
func FindAll(c Constraint, kind Kind) []Constraint {
	var found []Constraint
	Walk(c, func(n Constraint) bool {
		if n.Kind() == kind {
			found = append(found, n)
			return false
		}
		return true
	})
	return found
}
