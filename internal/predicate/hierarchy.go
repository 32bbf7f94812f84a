package predicate

import "github.com/evitadb/evitago/internal/fetch"

// Hierarchy guards reads of the placement of an entity in its hierarchy.
type Hierarchy struct {
	fetched bool
}

func NewHierarchy(req *fetch.Request) *Hierarchy {
	return &Hierarchy{fetched: req.Hierarchy}
}

// WasFetched reports whether the parent of the entity was fetched.
func (p *Hierarchy) WasFetched() bool {
	return p.fetched
}

// CheckFetched returns a ContextMissingError unless the hierarchy placement
// was fetched.
func (p *Hierarchy) CheckFetched() error {
	if p.fetched {
		return nil
	}
	return &ContextMissingError{
		Code:    ErrCodeHierarchyNotFetched,
		Message: "hierarchy placement was not fetched, add hierarchyContent to the query",
	}
}
