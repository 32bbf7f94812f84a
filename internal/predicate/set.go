package predicate

import "github.com/evitadb/evitago/internal/fetch"

// Set holds one predicate of each kind for an entity fetched by a request.
type Set struct {
	Attribute      *Attribute
	AssociatedData *AssociatedData
	Reference      *Reference
	Price          *Price
	Hierarchy      *Hierarchy
	Locale         *Locale
}

// NewSet builds all predicates of req. A nil request fetched nothing.
func NewSet(req *fetch.Request) *Set {
	if req == nil {
		req = &fetch.Request{}
	}
	return &Set{
		Attribute:      NewAttribute(req),
		AssociatedData: NewAssociatedData(req),
		Reference:      NewReference(req),
		Price:          NewPrice(req),
		Hierarchy:      NewHierarchy(req),
		Locale:         NewLocale(req),
	}
}
