// File: internal/handlers/admin_handlers.go
package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/dresai/dresai/internal/dtos"
	"github.com/dresai/dresai/internal/services/admin_services"
)

// AdminHandler holds dependencies for administrative handlers.
type AdminHandler struct {
	AdminService *admin_services.AdminService
}

func NewAdminHandler(adminService *admin_services.AdminService) *AdminHandler {
	return &AdminHandler{AdminService: adminService}
}

// GetAllUsers lists every registered user.
func (h *AdminHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.AdminService.GetAllUsers(r.Context())
	if err != nil {
		log.Printf("Admin list users error: %v", err)
		writeError(w, "Could not retrieve users", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// GrantCredits tops up a user's balance manually.
func (h *AdminHandler) GrantCredits(w http.ResponseWriter, r *http.Request) {
	var req dtos.GrantCreditsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.AdminService.GrantCredits(r.Context(), req.UserID, req.Amount); err != nil {
		log.Printf("Admin grant credits error: %v", err)
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Credits granted"})
}
