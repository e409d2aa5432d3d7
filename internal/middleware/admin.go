// File: internal/middleware/admin.go
package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/dresai/dresai/internal/repository/user"
)

// RequireAdmin allows only users with the admin flag through. Must run after
// the JWT middleware.
func RequireAdmin(userRepo user.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := r.Context().Value(ContextUserIDKey).(uint)
			if !ok {
				forbidden(w)
				return
			}
			u, err := userRepo.FindByID(r.Context(), userID)
			if err != nil || !u.IsAdmin {
				forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func forbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Admin access required"})
}
