package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/evitadb/evitago/internal/compiler"
)

// LoadMode controls how errors are handled while loading documents.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// documentExtensions lists the extensions compiler.LoadFile understands.
var documentExtensions = []string{".yaml", ".yml", ".json", ".cue"}

// LoadedFile is a compiled query document file.
type LoadedFile struct {
	Path      string
	Documents []compiler.Document
}

// LoadResult contains the documents loaded from a file or directory.
type LoadResult struct {
	Files     []LoadedFile
	FileCount int // Number of document files found
}

// QueryCount returns the number of compiled queries.
func (r *LoadResult) QueryCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Documents)
	}
	return n
}

// LoadError represents an error that occurred while loading documents.
type LoadError struct {
	Code    string
	Message string
	Pos     compiler.Pos // document position if available
}

func (e *LoadError) Error() string {
	if e.Pos.File != "" || e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", e.Pos, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadDocumentsDir compiles the query document at path, or every query
// document below path when it is a directory.
// If mode is LoadModeFailFast, returns on first error.
// If mode is LoadModeCollectAll, collects all errors.
func LoadDocumentsDir(path string, mode LoadMode) (*LoadResult, []error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("path not found: %s", path)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing path: %v", err)}}
	}

	files := []string{path}
	if info.IsDir() {
		files, err = FindDocumentFiles(path)
		if err != nil {
			return nil, []error{&LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("error scanning directory: %v", err)}}
		}
	}
	if len(files) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no query documents found in %s", path)}}
	}

	var errs []error
	result := &LoadResult{FileCount: len(files)}
	for _, file := range files {
		docs, err := compiler.LoadFile(file)
		if err != nil {
			errs = append(errs, convertCompileError(err, file))
			if mode == LoadModeFailFast {
				return result, errs
			}
			continue
		}
		result.Files = append(result.Files, LoadedFile{Path: file, Documents: docs})
	}

	return result, errs
}

// FindDocumentFiles walks the directory and returns all query document
// paths in lexical order.
func FindDocumentFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isDocumentFile(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func isDocumentFile(path string) bool {
	return slices.Contains(documentExtensions, strings.ToLower(filepath.Ext(path)))
}

// convertCompileError converts a compiler error to a LoadError with position info.
func convertCompileError(err error, file string) *LoadError {
	var compileErr *compiler.CompileError
	switch {
	case errors.As(err, &compileErr):
		pos := compileErr.Pos
		if pos.File == "" {
			pos.File = file
		}
		return &LoadError{
			Code:    ErrCodeCompile,
			Message: fmt.Sprintf("%s: %s", compileErr.Field, compileErr.Message),
			Pos:     pos,
		}
	case errors.Is(err, compiler.ErrUnsupportedFormat):
		return &LoadError{Code: ErrCodeUnsupported, Message: err.Error(), Pos: compiler.Pos{File: file}}
	default:
		return &LoadError{Code: ErrCodeReadFailed, Message: err.Error(), Pos: compiler.Pos{File: file}}
	}
}
