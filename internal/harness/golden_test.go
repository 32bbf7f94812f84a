package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarios_Golden(t *testing.T) {
	scenarios, err := LoadDir("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			result, err := RunWithGolden(t, s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestSnapshot_Marshal(t *testing.T) {
	result := NewResult()
	result.Printed = "attributeIs('code',<NULL>)"

	data, err := NewSnapshot("null_sentinel", result).Marshal()
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"scenario_name\": \"null_sentinel\",\n  \"printed\": \"attributeIs('code',<NULL>)\"\n}\n", string(data))
}
