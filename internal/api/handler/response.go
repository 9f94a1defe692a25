// Package handler implements the HTTP endpoint handlers.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Helper to respond with JSON
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("failed to encode response JSON", "error", err)
	}
}

func respondOK(w http.ResponseWriter, payload map[string]any) {
	payload["status"] = "ok"
	respondJSON(w, http.StatusOK, payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{
		"status":  "error",
		"message": message,
	})
}

// RespondNotFound writes the structured not-found payload. Exposed so the
// router can reuse it as its fallback handler.
func RespondNotFound(w http.ResponseWriter) {
	respondError(w, http.StatusNotFound, "not found")
}

// noCache disables client and intermediary caching on the response.
func noCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
}
