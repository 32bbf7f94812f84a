package harness

import "github.com/evitadb/evitago/internal/predicate"

// ReadOutcome is the result of one facet read.
type ReadOutcome struct {
	Read    string                       `json:"read"`
	Fetched bool                         `json:"fetched"`
	Code    predicate.ContextMissingCode `json:"code,omitempty"`
	Message string                       `json:"message,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every expectation matches.
	Pass bool `json:"pass"`

	// CompileError describes why the document was rejected.
	CompileError string `json:"compile_error,omitempty"`

	Printed       string   `json:"printed,omitempty"`
	Parameterized string   `json:"parameterized,omitempty"`
	Parameters    []string `json:"parameters,omitempty"`
	Normalized    string   `json:"normalized,omitempty"`

	// Reads holds the outcome of every scenario read, in order.
	Reads []ReadOutcome `json:"reads,omitempty"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
