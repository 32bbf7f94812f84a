package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evitadb/evitago/internal/compiler"
	"github.com/evitadb/evitago/internal/fetch"
)

// ValidationIssue is a single problem found in a query document.
type ValidationIssue struct {
	File    string `json:"file,omitempty"`
	Query   string `json:"query,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool              `json:"valid"`
	Files   int               `json:"files"`
	Queries int               `json:"queries"`
	Errors  []ValidationIssue `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <path>",
		Short: "Validate query documents",
		Long: `Validate query documents without printing them.

Compiles the document at path, or every .yaml, .yml, .json and .cue
document below a directory, and reports all problems at once: documents
that do not compile, queries that cannot be printed or resolved into a
fetch request, and query names defined by more than one document.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	loadResult, loadErrors := LoadDocumentsDir(path, LoadModeCollectAll)

	// Nothing to validate: missing path, empty directory.
	if loadResult == nil && len(loadErrors) > 0 {
		var loadErr *LoadError
		if errors.As(loadErrors[0], &loadErr) {
			return formatter.Fail(ExitCommandError, loadErr.Code, loadErr.Message, nil)
		}
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, loadErrors[0].Error(), nil)
	}

	formatter.VerboseLog("Found %d document file(s) in %s", loadResult.FileCount, path)

	issues := make([]ValidationIssue, 0, len(loadErrors))
	for _, err := range loadErrors {
		issues = append(issues, loadIssue(err))
	}
	issues = append(issues, validateQueries(loadResult, formatter)...)

	result := ValidationResult{
		Valid:   len(issues) == 0,
		Files:   loadResult.FileCount,
		Queries: loadResult.QueryCount(),
		Errors:  issues,
	}
	if !result.Valid {
		return outputValidationErrors(formatter, result)
	}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ %d query(ies) in %d file(s) valid\n", result.Queries, result.Files)
	return nil
}

// validateQueries checks every compiled query: it must print in strict
// mode, resolve into a fetch request and carry a unique name.
func validateQueries(loaded *LoadResult, formatter *OutputFormatter) []ValidationIssue {
	var issues []ValidationIssue
	defined := make(map[string]string)

	for _, file := range loaded.Files {
		for i, doc := range file.Documents {
			name := displayName(doc, i)
			formatter.VerboseLog("Validating query %s in %s", name, file.Path)
			issue := func(code, message string) ValidationIssue {
				return ValidationIssue{
					File:    file.Path,
					Query:   name,
					Line:    doc.Pos.Line,
					Column:  doc.Pos.Column,
					Code:    code,
					Message: message,
				}
			}

			if doc.Name != "" {
				if prev, ok := defined[doc.Name]; ok {
					issues = append(issues, issue(ErrCodeDuplicateName, fmt.Sprintf("query %q already defined in %s", doc.Name, prev)))
				} else {
					defined[doc.Name] = file.Path
				}
			}
			if _, err := doc.Query.PrettyPrint(); err != nil {
				issues = append(issues, issue(ErrCodePrint, err.Error()))
			}
			if _, err := fetch.Resolve(doc.Query); err != nil {
				issues = append(issues, issue(ErrCodeResolve, err.Error()))
			}
		}
	}
	return issues
}

func loadIssue(err error) ValidationIssue {
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		return ValidationIssue{Code: ErrCodeGeneric, Message: err.Error()}
	}
	return ValidationIssue{
		File:    loadErr.Pos.File,
		Line:    loadErr.Pos.Line,
		Column:  loadErr.Pos.Column,
		Code:    loadErr.Code,
		Message: loadErr.Message,
	}
}

// outputValidationErrors outputs all validation issues.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	errs := result.Errors
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, issue := range errs {
		if where := issuePosition(issue); where != "" {
			fmt.Fprintln(formatter.Writer, where)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", issue.Code, issue.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}

// issuePosition renders file:line:col and the query name, omitting what
// is unknown.
func issuePosition(issue ValidationIssue) string {
	where := compiler.Pos{File: issue.File, Line: issue.Line, Column: issue.Column}.String()
	if issue.Query != "" {
		if where != "" {
			where += " "
		}
		where += "(" + issue.Query + ")"
	}
	return where
}
