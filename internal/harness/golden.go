package harness

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Snapshot captures everything a scenario derives from its query.
type Snapshot struct {
	ScenarioName  string        `json:"scenario_name"`
	Rejected      string        `json:"rejected,omitempty"`
	Printed       string        `json:"printed,omitempty"`
	Parameterized string        `json:"parameterized,omitempty"`
	Parameters    []string      `json:"parameters,omitempty"`
	Normalized    string        `json:"normalized,omitempty"`
	Reads         []ReadOutcome `json:"reads,omitempty"`
}

// NewSnapshot builds the snapshot of a scenario result.
func NewSnapshot(name string, result *Result) Snapshot {
	return Snapshot{
		ScenarioName:  name,
		Rejected:      result.CompileError,
		Printed:       result.Printed,
		Parameterized: result.Parameterized,
		Parameters:    result.Parameters,
		Normalized:    result.Normalized,
		Reads:         result.Reads,
	}
}

// Marshal renders the snapshot as indented JSON. Query text is not
// HTML-escaped so null sentinels stay readable.
func (s Snapshot) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns the result so callers can also check Pass. Test failure (via
// goldie) occurs if the snapshot doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares the snapshot of an existing result against a
// golden file without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := NewSnapshot(scenarioName, result).Marshal()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
