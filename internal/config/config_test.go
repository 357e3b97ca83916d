package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Port != "8888" {
		t.Errorf("Expected default port 8888, got %s", cfg.Port)
	}
	if cfg.Provider != "groq" {
		t.Errorf("Expected default provider groq, got %s", cfg.Provider)
	}
	if cfg.ExtractTimeout != 30*time.Second {
		t.Errorf("Expected 30s extract timeout, got %v", cfg.ExtractTimeout)
	}
	if cfg.RetryAttempts != 1 {
		t.Errorf("Expected 1 attempt (no retry) by default, got %d", cfg.RetryAttempts)
	}
	if cfg.SessionIdleTimeout != 0 {
		t.Errorf("Expected the reaper to be off by default, got %v", cfg.SessionIdleTimeout)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rackwalk.yaml")
	content := `provider: ollama
model: llava-phi3
extract_timeout: 10s
retry_attempts: 2
session_idle_timeout: 1h
session_max_items: 500
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Provider != "ollama" {
		t.Errorf("Expected provider ollama, got %s", cfg.Provider)
	}
	if cfg.Model != "llava-phi3" {
		t.Errorf("Expected model llava-phi3, got %s", cfg.Model)
	}
	if cfg.ExtractTimeout != 10*time.Second {
		t.Errorf("Expected 10s timeout, got %v", cfg.ExtractTimeout)
	}
	if cfg.SessionIdleTimeout != time.Hour {
		t.Errorf("Expected 1h idle timeout, got %v", cfg.SessionIdleTimeout)
	}
	if cfg.SessionMaxItems != 500 {
		t.Errorf("Expected 500 max items, got %d", cfg.SessionMaxItems)
	}
	// Untouched keys keep their defaults.
	if cfg.Port != "8888" {
		t.Errorf("Expected default port to survive, got %s", cfg.Port)
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rackwalk.yaml")
	if err := os.WriteFile(path, []byte("provider: skynet\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected an error for an unsupported provider")
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected an error for a missing config file")
	}
}

func TestModelFor(t *testing.T) {
	tests := []struct {
		provider string
		model    string
		expected string
	}{
		{"groq", "", "meta-llama/llama-4-scout-17b-16e-instruct"},
		{"gemini", "", "gemini-2.0-flash"},
		{"ollama", "", "llava"},
		{"groq", "custom-model", "custom-model"},
	}

	for _, tt := range tests {
		cfg := Config{Provider: tt.provider, Model: tt.model}
		if got := cfg.ModelFor(); got != tt.expected {
			t.Errorf("ModelFor(%s, %q): expected %q, got %q", tt.provider, tt.model, tt.expected, got)
		}
	}
}
