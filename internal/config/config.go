// Package config holds service configuration, loaded from an optional YAML
// file over built-in defaults. API keys are not configured here; the
// providers read GROQ_API_KEY, GEMINI_API_KEY, and OLLAMA_URL from the
// environment (a .env file is honored at process start).
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        string  `yaml:"port"`
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	// Prompt overrides the built-in label extraction prompt when set.
	Prompt string `yaml:"prompt"`

	ExtractTimeout time.Duration `yaml:"extract_timeout"`
	RetryAttempts  int           `yaml:"retry_attempts"`
	RetryBackoff   time.Duration `yaml:"retry_backoff"`

	// SessionIdleTimeout > 0 enables the idle-session reaper.
	SessionIdleTimeout time.Duration `yaml:"session_idle_timeout"`
	SessionMaxItems    int           `yaml:"session_max_items"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Port:           "8888",
		Provider:       "groq",
		Temperature:    0.1,
		ExtractTimeout: 30 * time.Second,
		RetryAttempts:  1,
		RetryBackoff:   2 * time.Second,
	}
}

// Load reads the YAML file at path and merges it over the defaults. An
// empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Provider != "groq" && cfg.Provider != "gemini" && cfg.Provider != "ollama" {
		return Config{}, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
	return cfg, nil
}

// ModelFor returns the configured model, falling back to a sensible
// default for the provider.
func (c Config) ModelFor() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Provider {
	case "groq":
		return "meta-llama/llama-4-scout-17b-16e-instruct"
	case "gemini":
		return "gemini-2.0-flash"
	case "ollama":
		return "llava"
	default:
		return ""
	}
}
