package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rackwalk/rackwalk/internal/storage"
)

// HandleSessions serves the session collection: POST starts a scanning
// run, GET lists the live ones.
func (h *Handler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "POST":
		session, err := h.sessionStore.Create()
		if err != nil {
			h.writeError(w, "Failed to create session: "+err.Error(), http.StatusInternalServerError)
			return
		}
		slog.Info("Session started", "session_id", session.ID)
		h.writeJSON(w, map[string]any{
			"session_id": session.ID,
			"started_at": session.CreatedAt,
			"message":    "Session started",
		})
	case "GET":
		sessions := h.sessionStore.Sessions()
		summaries := make([]map[string]any, 0, len(sessions))
		for _, session := range sessions {
			summaries = append(summaries, map[string]any{
				"session_id": session.ID,
				"started_at": session.CreatedAt,
				"scan_count": session.ScanCount(),
			})
		}
		h.writeJSON(w, summaries)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleSessionDetail routes /api/sessions/{id} and its capture and
// export subresources.
func (h *Handler) HandleSessionDetail(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	sessionID, sub, _ := strings.Cut(rest, "/")
	if sessionID == "" {
		h.writeError(w, "Session id is required", http.StatusBadRequest)
		return
	}

	switch sub {
	case "":
		h.handleSession(w, r, sessionID)
	case "captures":
		h.handleCapture(w, r, sessionID)
	case "export":
		h.handleExport(w, r, sessionID)
	default:
		h.writeError(w, "Not found", http.StatusNotFound)
	}
}

func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	switch r.Method {
	case "GET":
		session, err := h.sessionStore.Session(sessionID)
		if err != nil {
			h.writeError(w, "Session not found", http.StatusNotFound)
			return
		}
		h.writeJSON(w, map[string]any{
			"session_id": session.ID,
			"started_at": session.CreatedAt,
			"scan_count": session.ScanCount(),
			"items":      session.Items,
		})
	case "DELETE":
		if err := h.sessionStore.Delete(sessionID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				h.writeError(w, "Session not found", http.StatusNotFound)
				return
			}
			h.writeError(w, "Failed to delete session: "+err.Error(), http.StatusInternalServerError)
			return
		}
		slog.Info("Session ended", "session_id", sessionID)
		h.writeJSON(w, map[string]any{
			"session_id": sessionID,
			"message":    "Session ended",
		})
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
