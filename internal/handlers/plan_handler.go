// File: internal/handlers/plan_handler.go
package handlers

import (
	"net/http"

	"github.com/dresai/dresai/internal/services/plan"
)

type PlanHandler struct {
	PlanService *plan.Service
}

func NewPlanHandler(planService *plan.Service) *PlanHandler {
	return &PlanHandler{PlanService: planService}
}

// GetPlanStatus returns the user's derived access tier. Served from the
// short-lived cache; consumption and webhooks invalidate it.
func (h *PlanHandler) GetPlanStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, h.PlanService.CachedStatus(r.Context(), userID))
}

// GetCredits returns the raw credit balance.
func (h *PlanHandler) GetCredits(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	credits, err := h.PlanService.Credits(r.Context(), userID)
	if err != nil {
		writeError(w, "Could not retrieve balance", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"credits": credits})
}
