// File: internal/handlers/helpers.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dresai/dresai/internal/middleware"
)

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

// userIDFromContext pulls the authenticated user ID set by the JWT middleware.
func userIDFromContext(r *http.Request) (uint, bool) {
	userID, ok := r.Context().Value(middleware.ContextUserIDKey).(uint)
	return userID, ok
}
