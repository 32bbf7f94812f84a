package predicate

import (
	"fmt"

	"github.com/evitadb/evitago/internal/fetch"
)

// Reference guards reads of entity references and gives access to the
// predicates of the fetched reference content.
type Reference struct {
	req *fetch.Request
}

// NewReference creates the reference predicate of req.
func NewReference(req *fetch.Request) *Reference {
	return &Reference{req: req}
}

// WasFetched reports whether any references were fetched.
func (p *Reference) WasFetched() bool {
	return p.req.References.Requested()
}

// WasFetchedName reports whether the reference name was fetched.
func (p *Reference) WasFetchedName(name string) bool {
	return p.req.References.Contains(name)
}

// CheckFetched returns a ContextMissingError unless references were fetched.
func (p *Reference) CheckFetched() error {
	if p.WasFetched() {
		return nil
	}
	return &ContextMissingError{
		Code:    ErrCodeReferenceNotFetched,
		Message: "references were not fetched, add referenceContent to the query",
	}
}

// CheckFetchedName returns a ContextMissingError unless the reference name
// was fetched.
func (p *Reference) CheckFetchedName(name string) error {
	if p.WasFetchedName(name) {
		return nil
	}
	err := &ContextMissingError{
		Code:    ErrCodeReferenceNotFetched,
		Name:    name,
		Message: fmt.Sprintf("reference %q was not fetched", name),
	}
	if p.WasFetched() {
		err.Fetched = p.req.References.Names()
	}
	return err
}

// Attributes returns the predicate of the attributes of reference name.
// Nothing is visible when the reference was not fetched.
func (p *Reference) Attributes(name string) *Attribute {
	rr, ok := p.req.Reference(name)
	if !ok {
		return newReferenceAttribute(fetch.NotRequested(), p.req)
	}
	return newReferenceAttribute(rr.Attributes, p.req)
}

// Entity returns the predicates of the entity referenced by name, or false
// when its body was not fetched.
func (p *Reference) Entity(name string) (*Set, bool) {
	rr, ok := p.req.Reference(name)
	if !ok || rr.Entity == nil {
		return nil, false
	}
	return NewSet(rr.Entity), true
}

// Group returns the predicates of the group entity of reference name, or
// false when its body was not fetched.
func (p *Reference) Group(name string) (*Set, bool) {
	rr, ok := p.req.Reference(name)
	if !ok || rr.Group == nil {
		return nil, false
	}
	return NewSet(rr.Group), true
}
