// Package capture orchestrates one capture request end to end: decode the
// image, extract fields through the vision provider, validate, and append
// to the session. A capture either fully succeeds, leaving exactly one new
// record in the session, or returns a typed error with the session
// untouched.
package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"time"

	"github.com/rackwalk/rackwalk/internal/extraction"
	"github.com/rackwalk/rackwalk/internal/models"
	"github.com/rackwalk/rackwalk/internal/storage"
	"github.com/rackwalk/rackwalk/internal/validate"
)

// ErrBadImage is returned when the submitted bytes are not a decodable
// JPEG, PNG, or GIF. Rejecting these locally avoids a pointless provider
// round-trip.
var ErrBadImage = errors.New("image data is not a supported image")

const maxAttempts = 3

// Extractor is the one suspending dependency of the pipeline. It is
// satisfied by *extraction.Client.
type Extractor interface {
	Extract(ctx context.Context, imageData []byte) (models.RawRecord, error)
}

// Options bound the extraction call and its optional retry.
type Options struct {
	// Timeout caps one extraction attempt. Defaults to 30s.
	Timeout time.Duration
	// Attempts is the total number of extraction attempts for one
	// capture, transport failures only. Defaults to 1 (no retry),
	// capped at 3.
	Attempts int
	// Backoff is slept between attempts.
	Backoff time.Duration
}

// Pipeline drives captures against a session store.
type Pipeline struct {
	store     *storage.SessionStore
	extractor Extractor
	opts      Options
	now       func() time.Time
}

func New(store *storage.SessionStore, extractor Extractor, opts Options) *Pipeline {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Attempts < 1 {
		opts.Attempts = 1
	}
	if opts.Attempts > maxAttempts {
		opts.Attempts = maxAttempts
	}
	return &Pipeline{
		store:     store,
		extractor: extractor,
		opts:      opts,
		now:       time.Now,
	}
}

// Capture runs one capture. On success the returned record, timestamp
// included, is exactly what was appended to the session.
func (p *Pipeline) Capture(ctx context.Context, sessionID string, imageData []byte) (models.Record, error) {
	if !p.store.Exists(sessionID) {
		return models.Record{}, storage.ErrNotFound
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(imageData)); err != nil {
		return models.Record{}, fmt.Errorf("%w: %v", ErrBadImage, err)
	}

	raw, err := p.extract(ctx, imageData)
	if err != nil {
		return models.Record{}, err
	}

	record, err := validate.Normalize(raw)
	if err != nil {
		return models.Record{}, err
	}
	record.Timestamp = p.now()

	// The session may have been deleted while extraction was in flight;
	// Append surfaces that as NotFound rather than resurrecting it.
	if err := p.store.Append(sessionID, record); err != nil {
		return models.Record{}, err
	}

	return record, nil
}

// extract runs the provider call with a bounded timeout per attempt.
// Retries are attempted for transport failures only, so one capture can
// never append twice: the record is appended once, after the loop.
func (p *Pipeline) extract(ctx context.Context, imageData []byte) (models.RawRecord, error) {
	var lastErr error

	for attempt := 1; attempt <= p.opts.Attempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
		raw, err := p.extractor.Extract(attemptCtx, imageData)
		cancel()
		if err == nil {
			return raw, nil
		}

		var transportErr *extraction.TransportError
		if !errors.As(err, &transportErr) {
			return models.RawRecord{}, err
		}
		lastErr = err

		if attempt < p.opts.Attempts {
			slog.Warn("Extraction attempt failed, retrying",
				"attempt", attempt, "attempts", p.opts.Attempts, "error", err)
			select {
			case <-ctx.Done():
				return models.RawRecord{}, &extraction.TransportError{Err: ctx.Err()}
			case <-time.After(p.opts.Backoff):
			}
		}
	}

	return models.RawRecord{}, lastErr
}
