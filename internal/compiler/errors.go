package compiler

import (
	"errors"
	"fmt"

	cueerrors "cuelang.org/go/cue/errors"
)

// Pos is a position in a query document.
type Pos struct {
	File   string
	Line   int
	Column int
}

// IsValid reports whether the position points into a document.
func (p Pos) IsValid() bool { return p.Line > 0 }

func (p Pos) String() string {
	if !p.IsValid() {
		return p.File
	}
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// CompileError reports a document that does not describe a valid query.
type CompileError struct {
	// Field is the path of the offending node, e.g. "query[1].filterBy[0]".
	Field   string
	Message string
	Pos     Pos

	// Err is the underlying error, typically a *query.ConstructionError.
	Err error
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", e.Pos, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *CompileError) Unwrap() error { return e.Err }

// IsCompileError returns true if err is or wraps a CompileError.
func IsCompileError(err error) bool {
	var ce *CompileError
	return errors.As(err, &ce)
}

func errorf(n *node, field, format string, args ...any) *CompileError {
	return &CompileError{Field: field, Message: fmt.Sprintf(format, args...), Pos: n.pos}
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error, file string) error {
	if err == nil {
		return nil
	}
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	positions := cueerrors.Positions(first)
	if len(positions) > 0 && positions[0].IsValid() {
		p := positions[0]
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     Pos{File: file, Line: p.Line(), Column: p.Column()},
			Err:     err,
		}
	}
	return &CompileError{Field: "cue", Message: first.Error(), Pos: Pos{File: file}, Err: err}
}
