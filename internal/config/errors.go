package config

import (
	"errors"
	"fmt"

	"cuelang.org/go/cue/token"
)

// Error codes of LoadError.
const (
	ErrCodeSyntax  = "CONFIG_SYNTAX"
	ErrCodeSchema  = "CONFIG_SCHEMA"
	ErrCodeDecode  = "CONFIG_DECODE"
	ErrCodeInvalid = "CONFIG_INVALID"
)

// LoadError reports a configuration file that cannot be used.
type LoadError struct {
	Code    string
	Message string
	File    string
	Pos     token.Pos // position inside File, if known
	Err     error
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.File, e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s: %s", e.File, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error { return e.Err }

// IsLoadError returns true if err is or wraps a LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
