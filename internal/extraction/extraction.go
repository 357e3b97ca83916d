package extraction

import (
	"context"

	"github.com/rackwalk/rackwalk/internal/models"
	"github.com/rackwalk/rackwalk/internal/providers"
)

const defaultPrompt = `Extract the following information from this hardware label in JSON format:
- capacity (e.g., 8GB, 16GB, 256GB)
- generation (DDR3, DDR4, DDR5)
- brand
- speed (bus speed in MHz, e.g., 2133, 2400, 2666, 3200)
If you cannot read the label, add "confidence": "low" to the object.
Return ONLY the JSON object.`

// Client turns one label image into a RawRecord via a vision provider.
// It performs no retries; retry policy belongs to the capture pipeline.
type Client struct {
	provider providers.Provider
	config   providers.Config
}

// NewClient creates an extraction client for the given provider. An empty
// prompt in config selects the built-in label prompt.
func NewClient(provider providers.Provider, config providers.Config) *Client {
	if config.Prompt == "" {
		config.Prompt = defaultPrompt
	}
	return &Client{
		provider: provider,
		config:   config,
	}
}

// Extract sends the image to the provider and parses the reply into the
// four label fields. Failures are typed: *TransportError when the
// capability could not be reached, *MalformedError when the reply does not
// parse, *LowConfidenceError when the model reported an unreadable label.
func (c *Client) Extract(ctx context.Context, imageData []byte) (models.RawRecord, error) {
	text, err := c.provider.Describe(ctx, c.config, imageData)
	if err != nil {
		return models.RawRecord{}, &TransportError{Err: err}
	}

	raw, err := parseRecordJSON(text)
	if err != nil {
		return models.RawRecord{}, &MalformedError{Response: text, Err: err}
	}

	if raw.Confidence == "low" {
		return models.RawRecord{}, &LowConfidenceError{Response: text}
	}

	return raw, nil
}
