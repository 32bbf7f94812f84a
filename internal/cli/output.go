package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // A check failed (context-missing read, invalid config)
	ExitCommandError = 2 // Command error (unreadable file, document does not compile)
)

// Error codes reported in CLIError.
const (
	ErrCodeGeneric       = "E001" // Generic/unknown error
	ErrCodeReadFailed    = "E002" // File could not be read
	ErrCodeCompile       = "E003" // Query document does not compile
	ErrCodeUnsupported   = "E004" // Unsupported document format
	ErrCodeConfig        = "E005" // Configuration file is invalid
	ErrCodeResolve       = "E006" // Fetch request could not be resolved
	ErrCodePrint         = "E007" // Query could not be printed
	ErrCodeBadRead       = "E008" // Malformed --read specification
	ErrCodeTestFailed    = "E009" // One or more conformance scenarios failed
	ErrCodeNotFound      = "E010" // Path not found
	ErrCodeNoFiles       = "E011" // No query documents found
	ErrCodeReadMissing   = "E101" // A read hits a facet the query did not fetch
	ErrCodeBadNaming     = "E102" // Unknown naming convention
	ErrCodeEmptyDocument = "E103" // Document holds no query
	ErrCodeDuplicateName = "E104" // Query name defined by more than one document
)

// ExitError carries the process exit code out of a command's RunE.
type ExitError struct {
	Code    int    // ExitFailure or ExitCommandError
	Message string // summary, prefixed with the error code when there is one
	Err     error  // cause, may be nil
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError without a cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError creates an ExitError around err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode returns the code of the ExitError in err's chain, or
// ExitFailure for any other error.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter writes command results as text or as a JSON CLIResponse.
type OutputFormatter struct {
	Format    string    // "text" or "json"
	Writer    io.Writer // results and errors
	ErrWriter io.Writer // progress notes under --verbose; Writer when nil
	Verbose   bool
}

// CLIResponse is the JSON envelope of every command's output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // printed queries, explanations, reports
	Error  *CLIError `json:"error,omitempty"` // set when Status is "error"
}

// CLIError is the error part of a CLIResponse.
type CLIError struct {
	Code    string `json:"code"` // one of the ErrCode constants
	Message string `json:"message"`
	Details any    `json:"details,omitempty"` // positions, validation issues, failed reads
}

func (f *OutputFormatter) isJSON() bool { return f.Format == "json" }

func (f *OutputFormatter) encode(resp CLIResponse) error {
	return json.NewEncoder(f.Writer).Encode(resp)
}

// Success writes data. Text output prints data with fmt, so commands pass a
// preformatted string or a fmt.Stringer there.
func (f *OutputFormatter) Success(data any) error {
	if f.isJSON() {
		return f.encode(CLIResponse{Status: "ok", Data: data})
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error writes an error report. Details are shown in text output only
// under --verbose.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.isJSON() {
		return f.encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Fail reports the error and returns the ExitError a RunE should return.
func (f *OutputFormatter) Fail(exitCode int, code, message string, details any) error {
	_ = f.Error(code, message, details)
	return NewExitError(exitCode, fmt.Sprintf("%s: %s", code, message))
}

// VerboseLog writes a progress note under --verbose. Notes go to
// ErrWriter when set, keeping JSON on Writer parseable.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the writer progress notes go to.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
