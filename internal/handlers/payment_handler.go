// File: internal/handlers/payment_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dresai/dresai/internal/domain"
	"github.com/dresai/dresai/internal/dtos"
	"github.com/dresai/dresai/internal/services/payment"
	"github.com/dresai/dresai/internal/services/reconcile"
	"github.com/dresai/dresai/internal/services/user_services"
)

const maxWebhookBytes = 64 << 10

type PaymentHandler struct {
	PaymentService *payment.Service
	AuthService    *user_services.AuthService
	Reconciles     *reconcile.Manager
	FrontendURL    string
}

func NewPaymentHandler(paymentService *payment.Service, authService *user_services.AuthService,
	reconciles *reconcile.Manager, frontendURL string) *PaymentHandler {
	return &PaymentHandler{
		PaymentService: paymentService,
		AuthService:    authService,
		Reconciles:     reconciles,
		FrontendURL:    frontendURL,
	}
}

// CreateCheckout returns a provider-hosted checkout URL for the given price.
func (h *PaymentHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req dtos.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PriceID == "" {
		writeError(w, "A price id is required", http.StatusBadRequest)
		return
	}

	url, err := h.PaymentService.CreateCheckout(r.Context(), user, req.PriceID)
	if err != nil {
		h.writePaymentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// CreatePortal returns a provider-hosted subscription management URL.
func (h *PaymentHandler) CreatePortal(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	url, err := h.PaymentService.CreatePortal(r.Context(), user)
	if err != nil {
		h.writePaymentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// Webhook applies one signed provider event.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		writeError(w, "Could not read payload", http.StatusBadRequest)
		return
	}

	err = h.PaymentService.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		var paymentErr *payment.PaymentError
		if errors.As(err, &paymentErr) && paymentErr.Type == payment.ErrTypeSignature {
			writeError(w, "Invalid signature", http.StatusBadRequest)
			return
		}
		log.Printf("Webhook error: %v", err)
		writeError(w, "Webhook processing failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"received": "true"})
}

// PaymentSuccess consumes the post-checkout redirect: it starts background
// reconciliation for the session and bounces the browser to a clean URL so
// the session parameters never linger in the address bar.
func (h *PaymentHandler) PaymentSuccess(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	if sessionID != "" && r.URL.Query().Get("payment_success") == "true" {
		h.Reconciles.Start(sessionID, userID)
	}
	http.Redirect(w, r, h.FrontendURL+"/?reconcile="+sessionID, http.StatusSeeOther)
}

// ReconcileState reports the reconciliation state for one checkout session.
func (h *PaymentHandler) ReconcileState(w http.ResponseWriter, r *http.Request) {
	if _, ok := userIDFromContext(r); !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sessionID := mux.Vars(r)["sessionID"]
	state, found := h.Reconciles.State(sessionID)
	if !found {
		writeError(w, "Unknown checkout session", http.StatusNotFound)
		return
	}

	resp := map[string]interface{}{"state": state}
	if state == reconcile.StateExhausted {
		// The payment itself succeeded upstream; this is advisory, not an error.
		resp["message"] = "Your payment is still processing. Your credits will appear shortly."
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *PaymentHandler) currentUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	user, err := h.AuthService.FindByID(r.Context(), userID)
	if err != nil {
		writeError(w, "User not found", http.StatusUnauthorized)
		return nil, false
	}
	return user, true
}

func (h *PaymentHandler) writePaymentError(w http.ResponseWriter, err error) {
	var paymentErr *payment.PaymentError
	if errors.As(err, &paymentErr) && paymentErr.Type == payment.ErrTypeValidation {
		writeError(w, paymentErr.Message, http.StatusBadRequest)
		return
	}
	log.Printf("Payment error: %v", err)
	writeError(w, "Payment error, please try again.", http.StatusInternalServerError)
}
