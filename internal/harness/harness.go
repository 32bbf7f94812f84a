package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/evitadb/evitago/internal/compiler"
	"github.com/evitadb/evitago/internal/fetch"
	"github.com/evitadb/evitago/internal/predicate"
	"github.com/evitadb/evitago/internal/query"
	"github.com/evitadb/evitago/internal/testutil"
	"github.com/evitadb/evitago/internal/value"
)

// Harness executes scenarios.
type Harness struct {
	logger *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the logger scenario progress is reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		h.logger = logger
	}
}

// New creates a harness. Logs are discarded unless WithLogger is given.
func New(opts ...Option) *Harness {
	h := &Harness{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes a scenario with a default harness.
func Run(scenario *Scenario) (*Result, error) {
	return New().Run(scenario)
}

// Run executes a scenario and returns the result.
//
// Execution flow:
// 1. Compile the query document
// 2. Render the canonical, parameterized and normalized forms
// 3. Resolve the fetch context against a fixed clock
// 4. Evaluate every read
// 5. Compare everything against the scenario's expectations
//
// Mismatches are reported in the result. The error is non-nil only when
// the scenario cannot be executed at all.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	log := h.logger.With("scenario", scenario.Name)
	result := NewResult()

	q, err := h.compile(scenario)
	if err != nil {
		if !compiler.IsCompileError(err) {
			return nil, err
		}
		var ce *compiler.CompileError
		errors.As(err, &ce)
		result.CompileError = ce.Message
		log.Debug("document rejected", "error", err)
		switch want := scenario.Expect.Error; {
		case want == "":
			result.AddError(fmt.Sprintf("compile: unexpected error: %v", err))
		case !strings.Contains(err.Error(), want):
			result.AddError(fmt.Sprintf("compile: error %q does not contain %q", err.Error(), want))
		}
		return result, nil
	}
	if scenario.Expect.Error != "" {
		result.AddError(fmt.Sprintf("compile: expected error containing %q, document compiled", scenario.Expect.Error))
		return result, nil
	}

	if err := h.render(q, result); err != nil {
		return nil, err
	}
	h.compare(scenario.Expect, result)

	now := scenario.Now
	if now.IsZero() {
		now = DefaultNow
	}
	req, err := fetch.Resolve(q, fetch.WithClock(testutil.NewFixedClock(now)))
	if err != nil {
		result.AddError(fmt.Sprintf("resolve: %v", err))
		return result, nil
	}
	set := predicate.NewSet(req)

	for i, step := range scenario.Reads {
		read, err := predicate.ParseRead(step.Read)
		if err != nil {
			return nil, fmt.Errorf("reads[%d]: %w", i, err)
		}
		outcome := evaluate(read, set)
		result.Reads = append(result.Reads, outcome)
		if outcome.Code != step.Code || (step.Code == "" && !outcome.Fetched) {
			result.AddError(fmt.Sprintf("reads[%d] %s: got %s, want %s", i, step.Read, describe(outcome.Code), describe(step.Code)))
		}
	}

	log.Debug("scenario executed", "pass", result.Pass, "reads", len(result.Reads))
	return result, nil
}

// compile returns the single query of the scenario's document.
func (h *Harness) compile(s *Scenario) (*query.Query, error) {
	var (
		docs []compiler.Document
		err  error
	)
	if s.Document != "" {
		docs, err = compiler.LoadFile(s.Document)
	} else {
		var data []byte
		data, err = yaml.Marshal(&s.Query)
		if err != nil {
			return nil, fmt.Errorf("re-encode query: %w", err)
		}
		docs, err = compiler.ParseYAML(data, s.Name+".yaml")
	}
	if err != nil {
		return nil, err
	}
	if len(docs) != 1 {
		return nil, &compiler.CompileError{
			Field:   "document",
			Message: fmt.Sprintf("scenario needs exactly one query, document holds %d", len(docs)),
		}
	}
	return docs[0].Query, nil
}

func (h *Harness) render(q *query.Query, result *Result) error {
	printed, err := q.PrettyPrint()
	if err != nil {
		return fmt.Errorf("print: %w", err)
	}
	parameterized, params, err := q.PrettyPrintParameterized()
	if err != nil {
		return fmt.Errorf("print parameterized: %w", err)
	}
	normalized, err := q.Normalized().PrettyPrint()
	if err != nil {
		return fmt.Errorf("print normalized: %w", err)
	}

	result.Printed = printed
	result.Parameterized = parameterized
	result.Normalized = normalized
	for _, p := range params {
		s, err := value.Format(p)
		if err != nil {
			return fmt.Errorf("format parameter: %w", err)
		}
		result.Parameters = append(result.Parameters, s)
	}
	return nil
}

func (h *Harness) compare(want Expectation, result *Result) {
	if want.Printed != "" && want.Printed != result.Printed {
		result.AddError(fmt.Sprintf("printed: got %q, want %q", result.Printed, want.Printed))
	}
	if want.Parameterized != "" && want.Parameterized != result.Parameterized {
		result.AddError(fmt.Sprintf("parameterized: got %q, want %q", result.Parameterized, want.Parameterized))
	}
	if want.Parameters != nil {
		if diff := cmp.Diff(want.Parameters, result.Parameters); diff != "" {
			result.AddError(fmt.Sprintf("parameters mismatch (-want +got):\n%s", diff))
		}
	}
	if want.Normalized != "" && want.Normalized != result.Normalized {
		result.AddError(fmt.Sprintf("normalized: got %q, want %q", result.Normalized, want.Normalized))
	}
}

func evaluate(read predicate.Read, set *predicate.Set) ReadOutcome {
	outcome := ReadOutcome{Read: read.String(), Fetched: true}
	err := read.Check(set)
	if err == nil {
		return outcome
	}
	outcome.Fetched = false
	if cme, ok := predicate.AsContextMissing(err); ok {
		outcome.Code = cme.Code
		outcome.Message = cme.Message
		return outcome
	}
	outcome.Message = err.Error()
	return outcome
}

func describe(code predicate.ContextMissingCode) string {
	if code == "" {
		return "fetched"
	}
	return string(code)
}
