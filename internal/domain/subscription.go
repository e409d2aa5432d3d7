// File: internal/domain/subscription.go
package domain

import "time"

const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusCanceled = "canceled"
)

// Subscription mirrors the payment provider's subscription state for a user.
// At most one record per user; upserted from webhook events.
type Subscription struct {
	ID                     uint      `json:"id" gorm:"primarykey"`
	UserID                 uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	ProviderCustomerID     string    `json:"-"`
	ProviderSubscriptionID string    `json:"-"`
	Status                 string    `json:"status" gorm:"not null"`
	CurrentPeriodStart     time.Time `json:"current_period_start"`
	CurrentPeriodEnd       time.Time `json:"current_period_end"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// GrantsAccess reports whether the record grants unlimited access: the status
// must be active and the paid period must not have ended.
func (s *Subscription) GrantsAccess(now time.Time) bool {
	return s.Status == SubscriptionStatusActive && s.CurrentPeriodEnd.After(now)
}
