package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/evitadb/evitago/internal/compiler"
)

// loadDocuments compiles the query document at path and reports failures
// through the formatter.
func loadDocuments(f *OutputFormatter, path string) ([]compiler.Document, error) {
	docs, err := compiler.LoadFile(path)
	if err != nil {
		return nil, documentError(f, err)
	}
	if len(docs) == 0 {
		return nil, f.Fail(ExitCommandError, ErrCodeEmptyDocument, fmt.Sprintf("%s holds no query", path), nil)
	}
	f.VerboseLog("Compiled %d query(ies) from %s", len(docs), path)
	return docs, nil
}

func documentError(f *OutputFormatter, err error) error {
	var ce *compiler.CompileError
	switch {
	case errors.As(err, &ce):
		details := map[string]any{"field": ce.Field}
		if ce.Pos.IsValid() {
			details["file"] = ce.Pos.File
			details["line"] = ce.Pos.Line
			details["column"] = ce.Pos.Column
		}
		return f.Fail(ExitCommandError, ErrCodeCompile, ce.Error(), details)
	case errors.Is(err, compiler.ErrUnsupportedFormat):
		return f.Fail(ExitCommandError, ErrCodeUnsupported, err.Error(), nil)
	case errors.Is(err, fs.ErrNotExist):
		return f.Fail(ExitCommandError, ErrCodeReadFailed, err.Error(), nil)
	default:
		return f.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}
}

// displayName names a document in text output.
func displayName(doc compiler.Document, i int) string {
	if doc.Name != "" {
		return doc.Name
	}
	return fmt.Sprintf("#%d", i+1)
}
