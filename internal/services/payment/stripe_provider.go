// File: internal/services/payment/stripe_provider.go
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

type StripeProvider struct {
	config *Config
	client *client.API
}

func NewStripeProvider(config *Config) (*StripeProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	sc := &client.API{}
	sc.Init(config.SecretKey, nil)
	return &StripeProvider{config: config, client: sc}, nil
}

func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (string, error) {
	customerID, err := p.findOrCreateCustomer(ctx, params.Email, params.UserID)
	if err != nil {
		return "", err
	}

	sessionParams := &stripe.CheckoutSessionParams{
		Customer: stripe.String(customerID),
		Mode:     stripe.String(params.Mode),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(params.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(p.config.SuccessURL),
		CancelURL:         stripe.String(p.config.CancelURL),
		ClientReferenceID: stripe.String(strconv.FormatUint(uint64(params.UserID), 10)),
	}
	sessionParams.Context = ctx

	sess, err := p.client.CheckoutSessions.New(sessionParams)
	if err != nil {
		return "", NewProviderError("checkout_session", err)
	}
	return sess.URL, nil
}

func (p *StripeProvider) CreatePortalSession(ctx context.Context, email string) (string, error) {
	customerID, err := p.findCustomer(ctx, email)
	if err != nil {
		return "", err
	}
	if customerID == "" {
		return "", &PaymentError{
			Type:      ErrTypeValidation,
			Operation: "portal_session",
			Message:   "no payment customer exists for this user",
		}
	}

	portalParams := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(p.config.PortalReturnURL),
	}
	portalParams.Context = ctx

	sess, err := p.client.BillingPortalSessions.New(portalParams)
	if err != nil {
		return "", NewProviderError("portal_session", err)
	}
	return sess.URL, nil
}

// VerifyEvent checks the provider signature, then flattens the payload into a
// provider-neutral Event. Unknown event types come back with just the type set
// so the service can ignore them.
func (p *StripeProvider) VerifyEvent(payload []byte, signature string) (*Event, error) {
	event, err := verifyStripeSignature(payload, signature, p.config.WebhookSecret)
	if err != nil {
		return nil, NewSignatureError(err)
	}

	out := &Event{Type: string(event.Type)}

	switch out.Type {
	case EventCheckoutCompleted:
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, NewProviderError("webhook_decode", err)
		}
		out.Mode = string(sess.Mode)
		out.UserID = sess.ClientReferenceID
		if sess.Customer != nil {
			out.CustomerID = sess.Customer.ID
		}
		if sess.CustomerDetails != nil {
			out.CustomerEmail = sess.CustomerDetails.Email
		}
		if sess.Subscription != nil {
			out.SubscriptionID = sess.Subscription.ID
		}

	case EventInvoicePaid:
		var inv stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			return nil, NewProviderError("webhook_decode", err)
		}
		if inv.Customer != nil {
			out.CustomerID = inv.Customer.ID
			out.CustomerEmail = inv.Customer.Email
		}
		if inv.Subscription != nil {
			out.SubscriptionID = inv.Subscription.ID
		}
		// The invoice payload carries only a subscription reference; fetch the
		// authoritative status and period.
		if out.SubscriptionID != "" {
			if sub, err := p.client.Subscriptions.Get(out.SubscriptionID, nil); err == nil {
				fillFromSubscription(out, sub)
			}
		}

	case EventSubscriptionUpdated, EventSubscriptionDeleted:
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, NewProviderError("webhook_decode", err)
		}
		fillFromSubscription(out, &sub)
	}

	// Resolve the internal user id from the customer metadata written at
	// checkout time.
	if out.UserID == "" && out.CustomerID != "" {
		if cust, err := p.client.Customers.Get(out.CustomerID, nil); err == nil {
			out.UserID = cust.Metadata["user_id"]
			if out.CustomerEmail == "" {
				out.CustomerEmail = cust.Email
			}
		}
	}

	return out, nil
}

func (p *StripeProvider) findOrCreateCustomer(ctx context.Context, email string, userID uint) (string, error) {
	customerID, err := p.findCustomer(ctx, email)
	if err != nil {
		return "", err
	}
	if customerID != "" {
		return customerID, nil
	}

	params := &stripe.CustomerParams{Email: stripe.String(email)}
	params.Context = ctx
	params.AddMetadata("user_id", strconv.FormatUint(uint64(userID), 10))

	cust, err := p.client.Customers.New(params)
	if err != nil {
		return "", NewProviderError("customer_create", err)
	}
	return cust.ID, nil
}

func (p *StripeProvider) findCustomer(ctx context.Context, email string) (string, error) {
	listParams := &stripe.CustomerListParams{Email: stripe.String(email)}
	listParams.Context = ctx
	listParams.Limit = stripe.Int64(1)

	iter := p.client.Customers.List(listParams)
	if iter.Next() {
		return iter.Customer().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", NewProviderError("customer_list", err)
	}
	return "", nil
}

func fillFromSubscription(out *Event, sub *stripe.Subscription) {
	if sub == nil {
		return
	}
	out.SubscriptionID = sub.ID
	out.SubscriptionStatus = string(sub.Status)
	out.PeriodStart = time.Unix(sub.CurrentPeriodStart, 0).UTC()
	out.PeriodEnd = time.Unix(sub.CurrentPeriodEnd, 0).UTC()
	if sub.Customer != nil {
		out.CustomerID = sub.Customer.ID
	}
}

func verifyStripeSignature(payload []byte, signature, secret string) (stripe.Event, error) {
	if signature == "" {
		return stripe.Event{}, errors.New("missing signature header")
	}
	return webhook.ConstructEvent(payload, signature, secret)
}
