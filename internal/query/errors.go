package query

import (
	"errors"
	"fmt"
)

var (
	// ErrLeafNesting is returned when a constraint is passed as an argument, or
	// when children are given to a leaf kind.
	ErrLeafNesting = errors.New("leaf constraints cannot nest constraints")

	// ErrInvalidChild is returned when a child does not belong to the categories
	// or kinds a container accepts.
	ErrInvalidChild = errors.New("invalid child constraint")

	// ErrForbiddenChild is returned when a container explicitly excludes a kind.
	ErrForbiddenChild = errors.New("forbidden child constraint")

	// ErrArity is returned when the number of arguments does not fit the kind.
	ErrArity = errors.New("invalid number of arguments")

	// ErrInvalidArgument is returned when an argument does not fit its position.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCategory is returned when a kind is built through the constructor of
	// another category.
	ErrCategory = errors.New("constraint category mismatch")
)

// ConstructionError reports a constraint that could not be built.
//
// It is the panic value of the fluent constructors and the error returned by
// the New* constructors; in both cases the malformed node never exists.
type ConstructionError struct {
	// Constraint is the printed name of the constraint being built.
	Constraint string

	// Err is the underlying cause (one of the Err* sentinels, possibly wrapped).
	Err error
}

// Error implements the error interface.
func (e *ConstructionError) Error() string {
	return fmt.Sprintf("cannot construct %s: %v", e.Constraint, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// IsConstructionError returns true if err is or wraps a ConstructionError.
func IsConstructionError(err error) bool {
	var ce *ConstructionError
	return errors.As(err, &ce)
}

func constructionError(k Kind, format string, args ...any) *ConstructionError {
	return &ConstructionError{Constraint: k.String(), Err: fmt.Errorf(format, args...)}
}

// Try runs build and converts a ConstructionError panic raised by the fluent
// constructors into an error. Any other panic is propagated.
//
// Example:
//
//	q, err := query.Try(func() *query.Query {
//	    return query.MustNew(query.Collection("product"), query.FilterBy(...))
//	})
func Try[T any](build func() T) (result T, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(error); ok {
			var ce *ConstructionError
			if errors.As(e, &ce) {
				err = e
				return
			}
		}
		panic(r)
	}()
	return build(), nil
}

func must[T any](c T, err error) T {
	if err != nil {
		panic(err)
	}
	return c
}
