package web

import (
	"encoding/json"
	"net/http"

	"github.com/GilTarablus/TidyImport/internal/logging"
)

// errorResponse is the JSON body for every error status.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes v as JSON with the given status. Encoding errors are
// logged; headers are already sent by then.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("json encode failed", "error", err)
	}
}

// writeError writes a JSON error response and logs it with request context.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	logger := logging.FromContext(r.Context())
	if status >= 500 {
		logger.Error("request failed", "status", status, "error", message)
	} else {
		logger.Warn("request rejected", "status", status, "error", message)
	}
	writeJSON(w, r, status, errorResponse{Error: message})
}
