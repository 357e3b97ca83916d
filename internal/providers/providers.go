package providers

import (
	"context"
)

// Config represents the configuration for a vision model provider
type Config struct {
	Model       string
	Temperature float64
	Prompt      string
}

// Provider defines the interface for a vision-capable model provider.
// Describe sends one image plus the prompt and returns the raw model text.
type Provider interface {
	Describe(ctx context.Context, config Config, imageData []byte) (string, error)
}
