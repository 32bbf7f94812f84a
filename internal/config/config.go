// Package config loads the client configuration.
//
// A configuration file is YAML. It is checked against an embedded CUE
// schema before it is decoded, so unknown keys and out-of-range values are
// reported with their position. Missing keys keep their defaults.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"

	"github.com/evitadb/evitago/internal/plancache"
	"github.com/evitadb/evitago/internal/query"
	"github.com/evitadb/evitago/internal/schema"
)

// Config is the client configuration.
type Config struct {
	Log       LogConfig       `yaml:"log" json:"log"`
	Print     PrintConfig     `yaml:"print" json:"print"`
	PlanCache PlanCacheConfig `yaml:"planCache" json:"planCache"`
	Naming    NamingConfig    `yaml:"naming" json:"naming"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`   // debug | info | warn | error
	Format string `yaml:"format" json:"format"` // text | json
}

// PrintConfig controls how queries are printed.
type PrintConfig struct {
	// Indent is the indentation unit of the pretty-printed form; empty
	// prints on a single line.
	Indent        string `yaml:"indent" json:"indent"`
	Parameterized bool   `yaml:"parameterized" json:"parameterized"`
	Normalize     bool   `yaml:"normalize" json:"normalize"`
}

// PlanCacheConfig configures the plan cache.
type PlanCacheConfig struct {
	MaxSize   int64         `yaml:"maxSize" json:"maxSize"`
	TTL       time.Duration `yaml:"ttl" json:"ttl"`
	Normalize bool          `yaml:"normalize" json:"normalize"`
	Metrics   bool          `yaml:"metrics" json:"metrics"`
}

// NamingConfig holds the naming convention names are shown in by default.
type NamingConfig struct {
	Convention string `yaml:"convention" json:"convention"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log:   LogConfig{Level: "info", Format: "text"},
		Print: PrintConfig{Indent: "  "},
		PlanCache: PlanCacheConfig{
			MaxSize: plancache.DefaultMaxSize,
			TTL:     plancache.DefaultTTL,
		},
		Naming: NamingConfig{Convention: schema.CamelCase.String()},
	}
}

// Load reads the configuration at path. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, path)
}

// Parse validates and decodes a YAML configuration. file names the source
// in error positions.
func Parse(data []byte, file string) (*Config, error) {
	if err := validateSchema(data, file); err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &LoadError{Code: ErrCodeDecode, Message: err.Error(), File: file, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the schema cannot express.
func (c *Config) Validate() error {
	if _, err := schema.ParseNamingConvention(c.Naming.Convention); err != nil {
		return &LoadError{Code: ErrCodeInvalid, Message: err.Error()}
	}
	if c.PlanCache.MaxSize <= 0 {
		return &LoadError{Code: ErrCodeInvalid, Message: fmt.Sprintf("planCache.maxSize must be positive, got %d", c.PlanCache.MaxSize)}
	}
	if c.PlanCache.TTL <= 0 {
		return &LoadError{Code: ErrCodeInvalid, Message: fmt.Sprintf("planCache.ttl must be positive, got %s", c.PlanCache.TTL)}
	}
	if strings.TrimSpace(c.Print.Indent) != "" {
		return &LoadError{Code: ErrCodeInvalid, Message: fmt.Sprintf("print.indent must be whitespace, got %q", c.Print.Indent)}
	}
	return nil
}

// Convention returns the configured naming convention.
func (c *Config) Convention() schema.NamingConvention {
	nc, err := schema.ParseNamingConvention(c.Naming.Convention)
	if err != nil {
		return schema.CamelCase
	}
	return nc
}

// PrintOptions returns the printer options for the configured layout.
func (c *Config) PrintOptions() []query.PrintOption {
	if c.Print.Indent == "" {
		return nil
	}
	return []query.PrintOption{query.WithIndent(c.Print.Indent)}
}

// PlanCacheOptions returns the plan cache options. reg receives the cache
// metrics when metrics are enabled.
func (c *Config) PlanCacheOptions(reg prometheus.Registerer) plancache.Options {
	opts := plancache.Options{
		MaxSize:   c.PlanCache.MaxSize,
		TTL:       c.PlanCache.TTL,
		Normalize: c.PlanCache.Normalize,
	}
	if c.PlanCache.Metrics {
		opts.Registerer = reg
	}
	return opts
}

// SlogLevel maps the configured level to a slog level.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewHandler returns a slog handler writing to w in the configured format.
func (l LogConfig) NewHandler(w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: l.SlogLevel()}
	if l.Format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
