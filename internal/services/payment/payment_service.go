// File: internal/services/payment/payment_service.go
package payment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dresai/dresai/internal/domain"
	"github.com/dresai/dresai/internal/repository/subscription"
	"github.com/dresai/dresai/internal/repository/user"
	"github.com/dresai/dresai/internal/services"
	"github.com/dresai/dresai/internal/services/plan"
)

// Service orchestrates the payment boundary: checkout and portal session
// creation, and webhook follow-up (credit top-ups and subscription upserts).
type Service struct {
	config           *Config
	provider         Provider
	userRepo         user.UserRepository
	subscriptionRepo subscription.SubscriptionRepository
	plans            *plan.Service
	logger           services.Logger
}

func NewService(config *Config, provider Provider, userRepo user.UserRepository,
	subscriptionRepo subscription.SubscriptionRepository, plans *plan.Service,
	logger services.Logger) *Service {
	return &Service{
		config:           config,
		provider:         provider,
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		plans:            plans,
		logger:           logger,
	}
}

// CreateCheckout builds a provider-hosted checkout flow. The mode depends on
// whether the price is the subscription price or a one-time credit pack.
func (s *Service) CreateCheckout(ctx context.Context, u *domain.User, priceID string) (string, error) {
	if priceID == "" {
		return "", &PaymentError{Type: ErrTypeValidation, Operation: "checkout", Message: "price id is required"}
	}
	mode := ModePayment
	if priceID == s.config.SubscriptionPriceID {
		mode = ModeSubscription
	}

	url, err := s.provider.CreateCheckoutSession(ctx, CheckoutParams{
		UserID:  u.ID,
		Email:   u.Email,
		PriceID: priceID,
		Mode:    mode,
	})
	if err != nil {
		s.logger.Error("checkout session creation failed",
			"user_id", u.ID, "price_id", priceID, "error", err.Error())
		return "", err
	}

	s.logger.Info("checkout session created", "user_id", u.ID, "mode", mode)
	return url, nil
}

// CreatePortal returns a provider-hosted subscription management URL.
func (s *Service) CreatePortal(ctx context.Context, u *domain.User) (string, error) {
	url, err := s.provider.CreatePortalSession(ctx, u.Email)
	if err != nil {
		s.logger.Error("portal session creation failed", "user_id", u.ID, "error", err.Error())
		return "", err
	}
	return url, nil
}

// HandleWebhook verifies and applies one provider event. One-time checkout
// completions credit the user with a pack; subscription lifecycle events
// upsert the subscription row. Everything else is acknowledged and ignored.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.provider.VerifyEvent(payload, signature)
	if err != nil {
		return err
	}

	switch event.Type {
	case EventCheckoutCompleted:
		if event.Mode == ModeSubscription {
			// Subscription state arrives via the subscription events.
			s.logger.Info("subscription checkout completed", "customer_id", event.CustomerID)
			return nil
		}
		userID, err := s.resolveUser(ctx, event)
		if err != nil {
			return fmt.Errorf("checkout completion for unknown user: %w", err)
		}
		if err := s.plans.AddCredits(ctx, userID, s.config.CreditPackSize); err != nil {
			return err
		}
		s.logger.Info("credit pack applied", "user_id", userID, "credits", s.config.CreditPackSize)
		return nil

	case EventInvoicePaid, EventSubscriptionUpdated, EventSubscriptionDeleted:
		userID, err := s.resolveUser(ctx, event)
		if err != nil {
			return fmt.Errorf("subscription event for unknown user: %w", err)
		}
		record := &domain.Subscription{
			UserID:                 userID,
			ProviderCustomerID:     event.CustomerID,
			ProviderSubscriptionID: event.SubscriptionID,
			Status:                 event.SubscriptionStatus,
			CurrentPeriodStart:     event.PeriodStart,
			CurrentPeriodEnd:       event.PeriodEnd,
		}
		if event.Type == EventSubscriptionDeleted && record.Status == "" {
			record.Status = domain.SubscriptionStatusCanceled
		}
		if err := s.subscriptionRepo.Upsert(ctx, record); err != nil {
			return err
		}
		s.plans.Invalidate(userID)
		s.logger.Info("subscription state updated",
			"user_id", userID, "status", record.Status, "event", event.Type)
		return nil

	default:
		s.logger.Debug("ignoring webhook event", "type", event.Type)
		return nil
	}
}

// resolveUser maps a provider customer to an internal user: the metadata
// user_id written at checkout first, then an email lookup.
func (s *Service) resolveUser(ctx context.Context, event *Event) (uint, error) {
	if event.UserID != "" {
		if id, err := strconv.ParseUint(event.UserID, 10, 32); err == nil && id != 0 {
			return uint(id), nil
		}
	}
	if event.CustomerEmail != "" {
		if u, err := s.userRepo.FindByEmail(ctx, event.CustomerEmail); err == nil {
			return u.ID, nil
		}
	}
	return 0, fmt.Errorf("unable to resolve user for customer %q", event.CustomerID)
}
