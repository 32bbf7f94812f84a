package config

import (
	_ "embed"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaSource string

// validateSchema checks a YAML document against the #Config definition.
func validateSchema(data []byte, file string) error {
	ctx := cuecontext.New()
	def := ctx.CompileString(schemaSource, cue.Filename("schema.cue")).LookupPath(cue.ParsePath("#Config"))
	if err := def.Err(); err != nil {
		return &LoadError{Code: ErrCodeSchema, Message: err.Error(), Err: err}
	}

	f, err := cueyaml.Extract(file, data)
	if err != nil {
		return schemaError(ErrCodeSyntax, err, file)
	}
	v := ctx.BuildFile(f)
	if err := v.Err(); err != nil {
		return schemaError(ErrCodeSyntax, err, file)
	}
	// An empty document, or one holding only comments, is null in CUE.
	if v.IsNull() {
		v = ctx.CompileString("{}")
	}
	if err := def.Unify(v).Validate(cue.Concrete(true)); err != nil {
		return schemaError(ErrCodeSchema, err, file)
	}
	return nil
}

// schemaError reports the first CUE error, positioned inside file when
// CUE knows where it came from.
func schemaError(code string, err error, file string) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: code, Message: err.Error(), File: file, Err: err}
	}
	first := errs[0]
	le := &LoadError{Code: code, Message: first.Error(), File: file, Err: err}
	for _, p := range cueerrors.Positions(first) {
		if p.IsValid() && p.Filename() == file {
			le.Pos = p
			break
		}
	}
	return le
}
