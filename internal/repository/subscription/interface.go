package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/dresai/dresai/internal/domain"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

// SubscriptionRepository mirrors payment-provider subscription state.
type SubscriptionRepository interface {
	FindByUser(ctx context.Context, userID uint) (*domain.Subscription, error)
	// FindActiveByUser returns the user's subscription only when it is active
	// and its paid period extends past now.
	FindActiveByUser(ctx context.Context, userID uint, now time.Time) (*domain.Subscription, error)
	// Upsert replaces the user's subscription state in one statement, the way
	// the provider webhook reports it.
	Upsert(ctx context.Context, sub *domain.Subscription) error
}
