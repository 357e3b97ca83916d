package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
)

// handleExport streams the session's inventory as a spreadsheet
// attachment. ?format=parquet selects the parquet variant; the default is
// XLSX, matching what the scanning UI offers for download.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "xlsx"
	}

	var data []byte
	var err error
	var contentType string
	switch format {
	case "xlsx":
		data, err = h.exporter.Build(sessionID)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "parquet":
		data, err = h.exporter.BuildParquet(sessionID)
		contentType = "application/vnd.apache.parquet"
	default:
		h.writeError(w, "Unsupported format: "+format, http.StatusBadRequest)
		return
	}

	if err != nil {
		kind, status := errorKind(err)
		slog.Warn("Export failed", "session_id", sessionID, "kind", kind, "error", err)
		h.writeError(w, err.Error(), status)
		return
	}

	filename := fmt.Sprintf("hardware_inventory_%s.%s", sessionID, format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	if _, err := w.Write(data); err != nil {
		slog.Error("Unable to stream export", "session_id", sessionID, "err", err)
	}
}
