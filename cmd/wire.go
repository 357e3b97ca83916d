package cmd

import (
	"fmt"

	"github.com/rackwalk/rackwalk/internal/capture"
	"github.com/rackwalk/rackwalk/internal/config"
	"github.com/rackwalk/rackwalk/internal/export"
	"github.com/rackwalk/rackwalk/internal/extraction"
	"github.com/rackwalk/rackwalk/internal/gemini"
	"github.com/rackwalk/rackwalk/internal/groq"
	"github.com/rackwalk/rackwalk/internal/ollama"
	"github.com/rackwalk/rackwalk/internal/providers"
	"github.com/rackwalk/rackwalk/internal/storage"
)

// services bundles the wired core components.
type services struct {
	store    *storage.SessionStore
	pipeline *capture.Pipeline
	exporter *export.Builder
}

func newProvider(name string) (providers.Provider, error) {
	switch name {
	case "groq":
		return groq.New(), nil
	case "gemini":
		return gemini.New(), nil
	case "ollama":
		return ollama.New(), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
}

// newServices wires the session store, extraction client, capture
// pipeline, and export builder from one config.
func newServices(cfg config.Config) (*services, error) {
	provider, err := newProvider(cfg.Provider)
	if err != nil {
		return nil, err
	}

	client := extraction.NewClient(provider, providers.Config{
		Model:       cfg.ModelFor(),
		Temperature: cfg.Temperature,
		Prompt:      cfg.Prompt,
	})

	store := storage.New(storage.Options{
		IdleTimeout: cfg.SessionIdleTimeout,
		MaxItems:    cfg.SessionMaxItems,
	})

	pipeline := capture.New(store, client, capture.Options{
		Timeout:  cfg.ExtractTimeout,
		Attempts: cfg.RetryAttempts,
		Backoff:  cfg.RetryBackoff,
	})

	return &services{
		store:    store,
		pipeline: pipeline,
		exporter: export.NewBuilder(store),
	}, nil
}
