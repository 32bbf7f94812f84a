package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/evitadb/evitago/internal/predicate"
)

// Scenario defines a query conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Query is an inline query document.
	Query yaml.Node `yaml:"query,omitempty"`

	// Document is the path of a query document file. Relative paths are
	// resolved against the scenario file when loaded with LoadScenario.
	Document string `yaml:"document,omitempty"`

	// Now is the instant "now" constraints resolve to. Zero means
	// DefaultNow.
	Now time.Time `yaml:"now,omitempty"`

	// Expect holds the expected renderings of the query.
	Expect Expectation `yaml:"expect"`

	// Reads lists facet reads checked against the fetch context.
	Reads []ReadStep `yaml:"reads,omitempty"`
}

// Expectation lists expected renderings. Empty fields are not checked.
type Expectation struct {
	Printed       string   `yaml:"printed,omitempty"`
	Parameterized string   `yaml:"parameterized,omitempty"`
	Parameters    []string `yaml:"parameters,omitempty"`
	Normalized    string   `yaml:"normalized,omitempty"`

	// Error is a substring of the expected compile error.
	Error string `yaml:"error,omitempty"`
}

// ReadStep is a facet read and its expected outcome.
type ReadStep struct {
	// Read is a read in predicate.ParseRead form, e.g. "attribute:name@cs".
	Read string `yaml:"read"`

	// Code is the expected context-missing code, "" when the read must
	// succeed.
	Code predicate.ContextMissingCode `yaml:"code,omitempty"`
}

// DefaultNow is the fixed instant used when a scenario does not set now.
var DefaultNow = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "read:" vs "reads:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Document != "" && !filepath.IsAbs(scenario.Document) {
		scenario.Document = filepath.Join(filepath.Dir(path), scenario.Document)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadDir loads every *.yaml scenario in dir, ordered by file name.
func LoadDir(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if prev, ok := seen[s.Name]; ok {
			return nil, fmt.Errorf("%s: scenario %q already defined in %s", path, s.Name, prev)
		}
		seen[s.Name] = path
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return errors.New("name is required")
	}

	if s.Description == "" {
		return errors.New("description is required")
	}

	inline := s.Query.Kind != 0
	if inline == (s.Document != "") {
		return errors.New("exactly one of query and document is required")
	}

	if s.Document != "" {
		if _, err := os.Stat(s.Document); os.IsNotExist(err) {
			return fmt.Errorf("document not found: %s", s.Document)
		}
	}

	e := s.Expect
	if e.Error != "" {
		if e.Printed != "" || e.Parameterized != "" || e.Parameters != nil || e.Normalized != "" || len(s.Reads) > 0 {
			return errors.New("expect.error excludes other expectations and reads")
		}
		return nil
	}
	if e.Printed == "" && e.Parameterized == "" && e.Normalized == "" && len(s.Reads) == 0 {
		return errors.New("at least one expectation or read is required")
	}

	for i, step := range s.Reads {
		if step.Read == "" {
			return fmt.Errorf("reads[%d]: read is required", i)
		}
		if _, err := predicate.ParseRead(step.Read); err != nil {
			return fmt.Errorf("reads[%d]: %w", i, err)
		}
	}

	return nil
}
