// File: internal/domain/credit.go
package domain

import "time"

// TrialCredits is the number of analyses granted when a balance record is
// first materialized for a user.
const TrialCredits = 3

// CreditBalance tracks how many analyses a user may still run. One record per
// user, created lazily on the first consumption attempt. Credits never go
// negative: consumption is a conditional decrement at the data layer.
type CreditBalance struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	UserID      uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Credits     int       `json:"credits" gorm:"not null;default:0"`
	LastUpdated time.Time `json:"last_updated"`
}
