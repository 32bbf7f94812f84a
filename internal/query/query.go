package query

import (
	"fmt"

	"github.com/evitadb/evitago/internal/value"
)

// Query is the root of a request: target collection plus the filter, order
// and require parts. Every part is optional.
type Query struct {
	collection HeadConstraint
	filterBy   FilterConstraint
	orderBy    OrderConstraint
	require    RequireConstraint
}

// New assembles a query from its parts. Each part must be the kind of its
// slot (collection, filterBy, orderBy, require) and may appear once. Nil
// parts are skipped.
func New(parts ...Constraint) (*Query, error) {
	q := &Query{}
	for _, part := range parts {
		if !present(part) {
			continue
		}
		var taken bool
		switch part.Kind() {
		case KindCollection:
			taken = q.collection != nil
			q.collection = part.(HeadConstraint)
		case KindFilterBy:
			taken = q.filterBy != nil
			q.filterBy = part.(FilterConstraint)
		case KindOrderBy:
			taken = q.orderBy != nil
			q.orderBy = part.(OrderConstraint)
		case KindRequire:
			taken = q.require != nil
			q.require = part.(RequireConstraint)
		default:
			return nil, &ConstructionError{
				Constraint: "query",
				Err:        fmt.Errorf("%w: %s is not a query part", ErrInvalidChild, part.Name()),
			}
		}
		if taken {
			return nil, &ConstructionError{
				Constraint: "query",
				Err:        fmt.Errorf("%w: duplicate %s", ErrInvalidChild, part.Name()),
			}
		}
	}
	return q, nil
}

// MustNew is New for the fluent DSL: it panics with a *ConstructionError.
func MustNew(parts ...Constraint) *Query {
	return must(New(parts...))
}

// Collection returns the collection part or nil.
func (q *Query) Collection() HeadConstraint { return q.collection }

// FilterBy returns the filter part or nil.
func (q *Query) FilterBy() FilterConstraint { return q.filterBy }

// OrderBy returns the order part or nil.
func (q *Query) OrderBy() OrderConstraint { return q.orderBy }

// Require returns the require part or nil.
func (q *Query) Require() RequireConstraint { return q.require }

// EntityType returns the collection name, "" when the query has none.
func (q *Query) EntityType() string {
	if q.collection == nil {
		return ""
	}
	if s, ok := q.collection.Arguments()[0].(value.String); ok {
		return string(s)
	}
	return ""
}

// Parts returns the present parts in printing order.
func (q *Query) Parts() []Constraint {
	var out []Constraint
	if q.collection != nil {
		out = append(out, q.collection)
	}
	if q.filterBy != nil {
		out = append(out, q.filterBy)
	}
	if q.orderBy != nil {
		out = append(out, q.orderBy)
	}
	if q.require != nil {
		out = append(out, q.require)
	}
	return out
}

// PrettyPrint renders the query in its canonical form,
// query(collection('product'),filterBy(...),...).
func (q *Query) PrettyPrint(opts ...PrintOption) (string, error) {
	p := newPrinter(opts)
	if err := p.query(q); err != nil {
		return "", err
	}
	return p.b.String(), nil
}

// PrettyPrintParameterized renders the query with literal arguments replaced
// by placeholders. See PrettyPrintParameterized.
func (q *Query) PrettyPrintParameterized(opts ...PrintOption) (string, []value.Value, error) {
	p := newPrinter(opts)
	p.parameterized = true
	if err := p.query(q); err != nil {
		return "", nil, err
	}
	return p.b.String(), p.params, nil
}

func (q *Query) String() string {
	p := newPrinter(nil)
	p.lenient = true
	if err := p.query(q); err != nil {
		return "query(" + err.Error() + ")"
	}
	return p.b.String()
}

// Normalized returns a copy of the query with every part normalized. Parts
// left without meaning are removed.
func (q *Query) Normalized() *Query {
	out := &Query{collection: q.collection}
	if c, ok := Normalize(q.filterBy); ok {
		out.filterBy, _ = c.(FilterConstraint)
	}
	if c, ok := Normalize(q.orderBy); ok {
		out.orderBy, _ = c.(OrderConstraint)
	}
	if c, ok := Normalize(q.require); ok {
		out.require, _ = c.(RequireConstraint)
	}
	return out
}

// Equal reports whether both queries hold structurally equal parts.
func (q *Query) Equal(other *Query) bool {
	if q == nil || other == nil {
		return q == other
	}
	return Equal(q.collection, other.collection) &&
		Equal(q.filterBy, other.filterBy) &&
		Equal(q.orderBy, other.orderBy) &&
		Equal(q.require, other.require)
}

func (p *printer) query(q *Query) error {
	parts := q.Parts()
	items := make([]item, 0, len(parts))
	for _, part := range parts {
		items = append(items, func(p *printer, depth int) error {
			return p.constraint(part, depth)
		})
	}
	return p.group("query", len(parts) > 0, items, 0)
}
