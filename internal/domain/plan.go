// File: internal/domain/plan.go
package domain

import "time"

// PlanType is the derived access tier of a user. "free_trial" means no credit
// balance record exists yet; the first consumption materializes it with
// TrialCredits. The tier is recomputed on every fetch, never persisted.
type PlanType string

const (
	PlanNone      PlanType = "none"
	PlanFreeTrial PlanType = "free_trial"
	PlanCredits   PlanType = "credits"
	PlanUnlimited PlanType = "unlimited"
	PlanExpired   PlanType = "expired"
)

// HasAccess reports whether the tier permits running an analysis.
func (p PlanType) HasAccess() bool {
	switch p {
	case PlanFreeTrial, PlanCredits, PlanUnlimited:
		return true
	}
	return false
}

// PlanStatus is the derived view of a user's entitlements.
type PlanStatus struct {
	PlanType            PlanType   `json:"plan_type"`
	Credits             int        `json:"credits"`
	SubscriptionActive  bool       `json:"subscription_active"`
	SubscriptionEndDate *time.Time `json:"subscription_end_date,omitempty"`
}
