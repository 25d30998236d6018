// Package config loads concord configuration from TOML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultConfigPath is the default location for the config file, resolved
// against the home directory first and the working directory second.
const DefaultConfigPath = ".concord/config.toml"

// Config is the root configuration.
type Config struct {
	Provider ProviderConfig `toml:"provider"`
	Analysis AnalysisConfig `toml:"analysis"`
	Gate     GateConfig     `toml:"gate"`
	Server   ServerConfig   `toml:"server"`
	Logging  LoggingConfig  `toml:"logging"`
}

// ProviderConfig selects and tunes the completion provider.
type ProviderConfig struct {
	// Model is the model identifier passed to the provider.
	Model string `toml:"model"`
	// Temperature is the sampling temperature for candidate generation.
	Temperature float64 `toml:"temperature"`
	// BaseURL points at an alternate OpenAI-compatible endpoint when set.
	BaseURL string `toml:"base_url"`
	// APIKeyEnv names the environment variable holding the API key. The key
	// itself is never read from the config file.
	APIKeyEnv string `toml:"api_key_env"`
}

// AnalysisConfig tunes the consistency detectors.
type AnalysisConfig struct {
	// Samples is the default number of completions per analysis.
	Samples int `toml:"samples"`
	// DivergenceThreshold is the unified diff record count a pair must
	// exceed to be flagged.
	DivergenceThreshold int `toml:"divergence_threshold"`
	// KeywordMinLen is the token length a word must exceed to count as a
	// keyword.
	KeywordMinLen int `toml:"keyword_min_len"`
	// VarianceFactor scales mean length in the structural check.
	VarianceFactor float64 `toml:"variance_factor"`
}

// GateConfig tunes threshold enforcement.
type GateConfig struct {
	// MinConfidence is the default gate threshold.
	MinConfidence float64 `toml:"min_confidence"`
	// PolicyPath points at a YAML rule file with per-prompt overrides.
	PolicyPath string `toml:"policy_path"`
}

// ServerConfig configures the HTTP gate server.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// LoggingConfig configures slog output.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
	// Format is text or json.
	Format string `toml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Provider: ProviderConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.7,
			APIKeyEnv:   "OPENAI_API_KEY",
		},
		Analysis: AnalysisConfig{
			Samples:             5,
			DivergenceThreshold: 5,
			KeywordMinLen:       5,
			VarianceFactor:      0.5,
		},
		Gate: GateConfig{
			MinConfidence: 0.6,
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8389,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a TOML config file. Unset fields fall back to defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads the config at path, or searches the default locations
// when path is empty, or returns defaults when nothing exists. An explicit
// path that fails to load is still an error.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, DefaultConfigPath)
		if _, err := os.Stat(candidate); err == nil {
			return Load(candidate)
		}
	}
	if _, err := os.Stat(DefaultConfigPath); err == nil {
		return Load(DefaultConfigPath)
	}
	return Default(), nil
}

// Validate checks ranges on everything the rest of the system assumes.
func (c *Config) Validate() error {
	if c.Provider.Temperature < 0 || c.Provider.Temperature > 2 {
		return fmt.Errorf("provider temperature %f outside [0.0, 2.0]", c.Provider.Temperature)
	}
	if c.Analysis.Samples < 2 || c.Analysis.Samples > 10 {
		return fmt.Errorf("analysis samples %d outside [2, 10]", c.Analysis.Samples)
	}
	if c.Analysis.DivergenceThreshold < 0 {
		return fmt.Errorf("divergence threshold %d must be >= 0", c.Analysis.DivergenceThreshold)
	}
	if c.Analysis.KeywordMinLen < 1 {
		return fmt.Errorf("keyword min length %d must be >= 1", c.Analysis.KeywordMinLen)
	}
	if c.Analysis.VarianceFactor <= 0 {
		return fmt.Errorf("variance factor %f must be > 0", c.Analysis.VarianceFactor)
	}
	if c.Gate.MinConfidence < 0 || c.Gate.MinConfidence > 1 {
		return fmt.Errorf("gate min_confidence %f outside [0.0, 1.0]", c.Gate.MinConfidence)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d outside [1, 65535]", c.Server.Port)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging level %q not one of debug, info, warn, error", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging format %q not one of text, json", c.Logging.Format)
	}
	return nil
}
