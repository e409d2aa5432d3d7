// File: internal/services/payment/interface.go
package payment

import (
	"context"
	"time"
)

const (
	ModeSubscription = "subscription"
	ModePayment      = "payment"
)

// Webhook event types this service acts on.
const (
	EventCheckoutCompleted   = "checkout.session.completed"
	EventInvoicePaid         = "invoice.payment_succeeded"
	EventSubscriptionUpdated = "customer.subscription.updated"
	EventSubscriptionDeleted = "customer.subscription.deleted"
)

type CheckoutParams struct {
	UserID  uint
	Email   string
	PriceID string
	Mode    string
}

// Event is the provider-neutral form of a verified webhook payload.
type Event struct {
	Type          string
	CustomerID    string
	CustomerEmail string
	// UserID is the internal user id recorded in the customer metadata at
	// checkout time; empty when the provider did not carry it.
	UserID             string
	Mode               string
	SubscriptionID     string
	SubscriptionStatus string
	PeriodStart        time.Time
	PeriodEnd          time.Time
}

// Provider is the payment-processor boundary.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (string, error)
	CreatePortalSession(ctx context.Context, email string) (string, error)
	// VerifyEvent checks the webhook signature and decodes the payload.
	VerifyEvent(payload []byte, signature string) (*Event, error)
}
