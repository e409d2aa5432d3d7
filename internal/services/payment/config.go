// File: internal/services/payment/config.go
package payment

type Config struct {
	SecretKey     string
	WebhookSecret string

	// SubscriptionPriceID selects checkout mode: this price starts a
	// subscription, anything else is a one-time credit-pack payment.
	SubscriptionPriceID string
	CreditPackPriceID   string
	CreditPackSize      int

	SuccessURL      string
	CancelURL       string
	PortalReturnURL string
}

func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return NewConfigError("STRIPE_SECRET_KEY is required")
	}
	if c.WebhookSecret == "" {
		return NewConfigError("STRIPE_WEBHOOK_SECRET is required")
	}
	if c.SuccessURL == "" || c.CancelURL == "" {
		return NewConfigError("checkout redirect URLs are required")
	}
	if c.CreditPackSize <= 0 {
		return NewConfigError("credit pack size must be positive")
	}
	return nil
}
