package squill

import (
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"
)

// Config represents the squill configuration
type Config struct {
	Dialect      string                `yaml:"dialect"`
	MaxFixPasses int                   `yaml:"max_fix_passes"`
	Rules        map[string]RuleConfig `yaml:"rules"`
	ExcludeRules []string              `yaml:"exclude_rules"`
	IncludeRules []string              `yaml:"include_rules"`
}

// RuleConfig represents per-rule configuration
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled"` // Pointer to distinguish between unset and false. If nil or true, rule is enabled
	Severity string         `yaml:"severity"`
	Params   map[string]any `yaml:",inline"`
}

// IsEnabled returns true if the rule is not explicitly disabled
func (r *RuleConfig) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// DefaultConfig returns the configuration used when no config file is present
func DefaultConfig() *Config {
	return &Config{
		Dialect:      "ansi",
		MaxFixPasses: 10,
		Rules:        map[string]RuleConfig{},
	}
}

// LoadConfig loads configuration from the given path. An empty path loads
// defaults. Environment variables override file values:
//
//	SQUILL_DIALECT        overrides dialect
//	SQUILL_MAX_FIX_PASSES overrides max_fix_passes
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func applyEnvOverrides(config *Config) {
	if dialect := os.Getenv("SQUILL_DIALECT"); dialect != "" {
		config.Dialect = dialect
	}

	if passes := os.Getenv("SQUILL_MAX_FIX_PASSES"); passes != "" {
		if n, err := strconv.Atoi(passes); err == nil && n > 0 {
			config.MaxFixPasses = n
		}
	}
}

// Validate checks configuration invariants that do not require the rule
// registry (rule-code validation happens in the linter, which knows the
// registered rules).
func (c *Config) Validate() error {
	if c.Dialect == "" {
		return fmt.Errorf("%w: dialect must not be empty", ErrConfigValidation)
	}

	if c.MaxFixPasses <= 0 {
		return fmt.Errorf("%w: max_fix_passes must be positive, got %d", ErrConfigValidation, c.MaxFixPasses)
	}

	for code, rule := range c.Rules {
		if code == "" {
			return fmt.Errorf("%w: empty rule code", ErrConfigValidation)
		}

		switch rule.Severity {
		case "", "error", "warning", "info":
		default:
			return fmt.Errorf("%w: rule %s has invalid severity %q", ErrConfigValidation, code, rule.Severity)
		}
	}

	return nil
}

// RuleParam returns a string parameter for the given rule, or the fallback
// when unset.
func (c *Config) RuleParam(code, name, fallback string) string {
	rule, ok := c.Rules[code]
	if !ok {
		return fallback
	}

	value, ok := rule.Params[name]
	if !ok {
		return fallback
	}

	s, ok := value.(string)
	if !ok {
		return fallback
	}

	return s
}
