package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rackwalk/rackwalk/internal/capture"
	"github.com/rackwalk/rackwalk/internal/export"
	"github.com/rackwalk/rackwalk/internal/extraction"
	"github.com/rackwalk/rackwalk/internal/storage"
	"github.com/rackwalk/rackwalk/internal/validate"
)

type Handler struct {
	sessionStore *storage.SessionStore
	pipeline     *capture.Pipeline
	exporter     *export.Builder
}

func New(sessionStore *storage.SessionStore, pipeline *capture.Pipeline, exporter *export.Builder) *Handler {
	return &Handler{
		sessionStore: sessionStore,
		pipeline:     pipeline,
		exporter:     exporter,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// errorKind maps a failure to its reported kind and HTTP status. Every
// failure is scoped to the request that triggered it; nothing here is
// fatal to the process.
func errorKind(err error) (string, int) {
	var transportErr *extraction.TransportError
	var malformedErr *extraction.MalformedError
	var lowConfErr *extraction.LowConfidenceError

	switch {
	case errors.Is(err, storage.ErrNotFound):
		return "not_found", http.StatusNotFound
	case errors.Is(err, storage.ErrSessionFull):
		return "session_full", http.StatusConflict
	case errors.Is(err, capture.ErrBadImage):
		return "bad_image", http.StatusUnprocessableEntity
	case errors.As(err, &transportErr):
		return "transport_failure", http.StatusBadGateway
	case errors.As(err, &malformedErr):
		return "malformed_response", http.StatusUnprocessableEntity
	case errors.As(err, &lowConfErr):
		return "low_confidence", http.StatusUnprocessableEntity
	case errors.Is(err, validate.ErrInvalidRecord):
		return "validation_failure", http.StatusUnprocessableEntity
	case errors.Is(err, export.ErrNoItems):
		return "no_items", http.StatusBadRequest
	default:
		return "internal", http.StatusInternalServerError
	}
}
