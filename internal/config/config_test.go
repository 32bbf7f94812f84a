package config

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evitadb/evitago/internal/plancache"
	"github.com/evitadb/evitago/internal/schema"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "  ", cfg.Print.Indent)
	assert.Equal(t, int64(plancache.DefaultMaxSize), cfg.PlanCache.MaxSize)
	assert.Equal(t, plancache.DefaultTTL, cfg.PlanCache.TTL)
	assert.Equal(t, schema.CamelCase, cfg.Convention())
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
log:
  level: debug
  format: json
print:
  indent: "\t"
  parameterized: true
planCache:
  maxSize: 50
  ttl: 90s
  metrics: true
naming:
  convention: snake_case
`), "evitaq.yaml")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "\t", cfg.Print.Indent)
	assert.True(t, cfg.Print.Parameterized)
	assert.False(t, cfg.Print.Normalize)
	assert.Equal(t, int64(50), cfg.PlanCache.MaxSize)
	assert.Equal(t, 90*time.Second, cfg.PlanCache.TTL)
	assert.True(t, cfg.PlanCache.Metrics)
	assert.Equal(t, schema.SnakeCase, cfg.Convention())
}

func TestParse_KeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("log:\n  level: warn\n"), "partial.yaml")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, plancache.DefaultTTL, cfg.PlanCache.TTL)
}

func TestParse_Empty(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
	}{
		{name: "no bytes", doc: ""},
		{name: "blank lines", doc: "\n\n"},
		{name: "comments only", doc: "# defaults are fine\n"},
		{name: "explicit null", doc: "null\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tc.doc), "empty.yaml")
			require.NoError(t, err)
			assert.Equal(t, Default(), cfg)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		doc      string
		wantCode string
	}{
		{name: "unknown key", doc: "log:\n  level: info\n  colour: true\n", wantCode: ErrCodeSchema},
		{name: "bad level", doc: "log:\n  level: loud\n", wantCode: ErrCodeSchema},
		{name: "zero cache size", doc: "planCache:\n  maxSize: 0\n", wantCode: ErrCodeSchema},
		{name: "bad ttl", doc: "planCache:\n  ttl: soon\n", wantCode: ErrCodeSchema},
		{name: "unknown convention", doc: "naming:\n  convention: Train-Case\n", wantCode: ErrCodeSchema},
		{name: "visible indent", doc: "print:\n  indent: '--'\n", wantCode: ErrCodeInvalid},
		{name: "broken yaml", doc: "log: [\n", wantCode: ErrCodeSyntax},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc), "bad.yaml")
			require.Error(t, err)
			assert.True(t, IsLoadError(err))

			var le *LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tc.wantCode, le.Code)
		})
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "evitaq.yaml")
	require.NoError(t, os.WriteFile(path, []byte("naming:\n  convention: kebab-case\n"), 0o600))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, schema.KebabCase, cfg.Convention())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_PrintOptions(t *testing.T) {
	cfg := Default()
	assert.Len(t, cfg.PrintOptions(), 1)

	cfg.Print.Indent = ""
	assert.Empty(t, cfg.PrintOptions())
}

func TestConfig_PlanCacheOptions(t *testing.T) {
	reg := prometheus.NewRegistry()
	cfg := Default()

	opts := cfg.PlanCacheOptions(reg)
	assert.Nil(t, opts.Registerer)
	assert.Equal(t, cfg.PlanCache.MaxSize, opts.MaxSize)

	cfg.PlanCache.Metrics = true
	opts = cfg.PlanCacheOptions(reg)
	assert.Equal(t, prometheus.Registerer(reg), opts.Registerer)
}

func TestLogConfig_NewHandler(t *testing.T) {
	testCases := []struct {
		name      string
		log       LogConfig
		debugOn   bool
		wantStart string
	}{
		{name: "text info", log: LogConfig{Level: "info", Format: "text"}, wantStart: "time="},
		{name: "json debug", log: LogConfig{Level: "debug", Format: "json"}, debugOn: true, wantStart: "{"},
		{name: "error only", log: LogConfig{Level: "error", Format: "text"}, wantStart: "time="},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := tc.log.NewHandler(&buf)
			assert.Equal(t, tc.debugOn, h.Enabled(context.Background(), slog.LevelDebug))

			slog.New(h).Error("boom", "code", 1)
			assert.True(t, strings.HasPrefix(buf.String(), tc.wantStart), buf.String())
		})
	}
}
