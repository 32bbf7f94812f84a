package schema

import (
	"errors"
	"fmt"
)

// ErrNameCollision is returned when two different elements render to the
// same name under one convention.
var ErrNameCollision = errors.New("name collision")

// NameIndex finds schema elements by their name in any naming convention.
//
// Every rendering of every element name maps to a fixed-size slot array
// indexed by convention ordinal; the slot holds the element owning that
// rendering in that convention. A NameIndex is immutable.
type NameIndex[T any] struct {
	byName map[string]*slots[T]
	order  []T
}

type slots[T any] struct {
	elements [conventionCount]T
	set      [conventionCount]bool
}

// NewNameIndex indexes elements by nameOf. It fails with ErrNameCollision
// when two elements claim the same rendering under one convention. An empty
// input yields an empty index.
func NewNameIndex[T any](elements []T, nameOf func(T) string) (*NameIndex[T], error) {
	idx := &NameIndex[T]{
		byName: make(map[string]*slots[T], len(elements)*conventionCount),
		order:  append([]T(nil), elements...),
	}
	owners := make(map[string][conventionCount]int, len(elements)*conventionCount)

	for i, el := range elements {
		name := nameOf(el)
		for _, c := range Conventions() {
			rendered := c.Apply(name)
			s, ok := idx.byName[rendered]
			if !ok {
				s = &slots[T]{}
				idx.byName[rendered] = s
			}
			if s.set[c] {
				other := nameOf(elements[owners[rendered][c]])
				return nil, fmt.Errorf("%w: %q and %q are both %q in %s", ErrNameCollision, other, name, rendered, c)
			}
			s.elements[c] = el
			s.set[c] = true

			o := owners[rendered]
			o[c] = i
			owners[rendered] = o
		}
	}
	return idx, nil
}

// Lookup returns the element whose name renders to name in convention c.
func (x *NameIndex[T]) Lookup(name string, c NamingConvention) (T, bool) {
	var zero T
	if x == nil || !c.valid() {
		return zero, false
	}
	s, ok := x.byName[name]
	if !ok || !s.set[c] {
		return zero, false
	}
	return s.elements[c], true
}

// Find returns the element whose name renders to name in any convention,
// trying conventions in ordinal order.
func (x *NameIndex[T]) Find(name string) (T, NamingConvention, bool) {
	for _, c := range Conventions() {
		if el, ok := x.Lookup(name, c); ok {
			return el, c, true
		}
	}
	var zero T
	return zero, 0, false
}

// Len returns the number of indexed elements.
func (x *NameIndex[T]) Len() int {
	if x == nil {
		return 0
	}
	return len(x.order)
}

// Elements returns the indexed elements in input order.
func (x *NameIndex[T]) Elements() []T {
	if x == nil {
		return nil
	}
	return append([]T(nil), x.order...)
}
