package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// 10MB is plenty for a phone photo of a DIMM label.
const maxImageBytes = 10 * 1024 * 1024

// handleCapture accepts one image per request, either as a multipart
// "file" field or as JSON {"image_base64": ...}, and drives it through the
// capture pipeline. An unknown session is a 404; it is never auto-created.
func (h *Handler) handleCapture(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	imageData, ok := h.readImage(w, r)
	if !ok {
		return
	}

	record, err := h.pipeline.Capture(r.Context(), sessionID, imageData)
	if err != nil {
		kind, status := errorKind(err)
		slog.Warn("Capture failed", "session_id", sessionID, "kind", kind, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if encodeErr := json.NewEncoder(w).Encode(map[string]any{
			"success":    false,
			"error":      err.Error(),
			"error_kind": kind,
		}); encodeErr != nil {
			slog.Error("Unable to encode JSON response", "err", encodeErr)
		}
		return
	}

	session, err := h.sessionStore.Session(sessionID)
	if err != nil {
		// Deleted between append and read; the capture itself succeeded.
		h.writeError(w, "Session not found", http.StatusNotFound)
		return
	}

	slog.Info("Capture succeeded", "session_id", sessionID, "scan_count", session.ScanCount())
	h.writeJSON(w, map[string]any{
		"success":    true,
		"record":     record,
		"scan_count": session.ScanCount(),
	})
}

// readImage extracts the raw image bytes from the request body. It writes
// the error response itself when the request is unusable.
func (h *Handler) readImage(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		var request struct {
			ImageBase64 string `json:"image_base64"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return nil, false
		}
		if request.ImageBase64 == "" {
			h.writeError(w, "image_base64 is required", http.StatusBadRequest)
			return nil, false
		}
		imageData, err := base64.StdEncoding.DecodeString(request.ImageBase64)
		if err != nil {
			h.writeError(w, "Invalid base64 image data: "+err.Error(), http.StatusBadRequest)
			return nil, false
		}
		return imageData, true
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	defer file.Close()

	imageData, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		h.writeError(w, "Failed to read file contents: "+err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	if len(imageData) >= maxImageBytes {
		h.writeError(w, "File too large (max 10MB)", http.StatusBadRequest)
		return nil, false
	}
	return imageData, true
}
