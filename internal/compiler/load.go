package compiler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files that are neither YAML nor CUE.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ParseYAML compiles a YAML stream. Every YAML document of the stream
// contributes its queries in order.
func ParseYAML(data []byte, file string) ([]Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var docs []Document
	for {
		var y yaml.Node
		err := dec.Decode(&y)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &CompileError{Field: "yaml", Message: err.Error(), Pos: Pos{File: file}, Err: err}
		}
		root, err := fromYAML(&y, file)
		if err != nil {
			return nil, err
		}
		more, err := compileDocuments(root)
		if err != nil {
			return nil, err
		}
		docs = append(docs, more...)
	}
	return docs, nil
}

// ParseCUE compiles a CUE document. The value must be concrete.
func ParseCUE(data []byte, file string) ([]Document, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(file))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err, file)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err, file)
	}
	root, err := fromCUE(v, file)
	if err != nil {
		return nil, err
	}
	return compileDocuments(root)
}

// LoadFile reads and compiles a query document, choosing the format by
// extension: .yaml, .yml or .json for YAML, .cue for CUE.
func LoadFile(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return ParseYAML(data, path)
	case ".cue":
		return ParseCUE(data, path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}
