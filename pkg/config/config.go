package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/panbanda/staccato/pkg/stats"
)

// ErrInvalidPercentile is returned for percentiles outside [1, 99].
var ErrInvalidPercentile = errors.New("percentile must be between 1 and 99")

// DefaultPercentiles are computed when none are configured.
var DefaultPercentiles = []int{75, 90, 95, 99}

// Formats lists the accepted output formats.
var Formats = []string{"text", "json", "yaml", "toon", "markdown", "table"}

// Config holds all configuration options for staccato.
type Config struct {
	// Percentiles to compute in addition to the whole series
	Percentiles []int `koanf:"percentiles" toml:"percentiles"`

	// Separator between keys and values: "tab", "colon", or a literal string
	Separator string `koanf:"separator" toml:"separator"`

	// Output settings
	Output OutputConfig `koanf:"output" toml:"output"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format   string `koanf:"format" toml:"format"` // text, json, yaml, toon, markdown, table
	Color    bool   `koanf:"color" toml:"color"`
	Progress bool   `koanf:"progress" toml:"progress"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Percentiles: slices.Clone(DefaultPercentiles),
		Separator:   "colon",
		Output: OutputConfig{
			Format:   "text",
			Color:    false,
			Progress: false,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	// Determine parser based on extension
	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// Unmarshal decodes into the default slice in place, leaving stale
	// trailing defaults when the file lists fewer percentiles.
	if k.Exists("percentiles") {
		cfg.Percentiles = k.Ints("percentiles")
	}

	return cfg, nil
}

// LoadResult is a loaded configuration and the file it came from.
// Source is empty when defaults were used.
type LoadResult struct {
	Config *Config
	Source string
}

type loadOptions struct {
	path string
}

// LoadOption configures LoadConfig.
type LoadOption func(*loadOptions)

// WithPath loads from path instead of searching the standard locations.
func WithPath(path string) LoadOption {
	return func(o *loadOptions) {
		o.path = path
	}
}

// LoadConfig loads and validates configuration. Without WithPath the
// standard locations are searched and defaults are used when no file exists.
func LoadConfig(opts ...LoadOption) (*LoadResult, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	path := o.path
	if path == "" {
		path = findConfig()
	}
	if path == "" {
		return &LoadResult{Config: DefaultConfig()}, nil
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &LoadResult{Config: cfg, Source: path}, nil
}

func findConfig() string {
	configNames := []string{
		"staccato.toml",
		"staccato.yaml",
		"staccato.yml",
		"staccato.json",
		".staccato.toml",
		".staccato.yaml",
		".staccato.yml",
		".staccato.json",
	}

	// Search in current directory and .staccato directory
	searchDirs := []string{".", ".staccato"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// Validate checks percentiles and the output format.
func (c *Config) Validate() error {
	for _, p := range c.Percentiles {
		if err := ValidatePercentile(p); err != nil {
			return err
		}
	}
	if !slices.Contains(Formats, strings.ToLower(c.Output.Format)) {
		return fmt.Errorf("unknown output format %q (want one of %s)", c.Output.Format, strings.Join(Formats, ", "))
	}
	return nil
}

// SeparatorValue resolves the configured separator.
func (c *Config) SeparatorValue() stats.Separator {
	return ParseSeparator(c.Separator)
}

// ValidatePercentile returns ErrInvalidPercentile unless 0 < p < 100.
func ValidatePercentile(p int) error {
	if p <= 0 || p >= 100 {
		return fmt.Errorf("%w: got %d", ErrInvalidPercentile, p)
	}
	return nil
}

// ParsePercentiles parses a comma separated list such as "75,90,99".
// "none" and the empty string yield no percentiles.
func ParsePercentiles(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return []int{}, nil
	}

	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		p, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidPercentile, part)
		}
		if err := ValidatePercentile(p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// ParseSeparator maps "tab" and "colon" to their separators. Any other
// value is used literally.
func ParseSeparator(s string) stats.Separator {
	switch strings.ToLower(s) {
	case "tab", `\t`:
		return stats.SeparatorTab
	case "colon":
		return stats.SeparatorColon
	default:
		return stats.Separator(s)
	}
}
