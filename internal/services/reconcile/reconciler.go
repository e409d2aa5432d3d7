// File: internal/services/reconcile/reconciler.go
package reconcile

import (
	"context"
	"time"

	"github.com/dresai/dresai/internal/repository/credit"
	"github.com/dresai/dresai/internal/services"
	"github.com/dresai/dresai/internal/services/plan"
)

// State of one post-checkout reconciliation.
type State string

const (
	StatePolling   State = "polling"
	StateSucceeded State = "succeeded"
	// StateExhausted means the retry budget ran out before the payment was
	// observed. Not an error: the webhook may still land later.
	StateExhausted State = "exhausted"
)

type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultConfig covers roughly 56 seconds of webhook latency:
// delays of 2,4,6,8,10,10,10,10 seconds.
func DefaultConfig() *Config {
	return &Config{
		MaxAttempts: 8,
		BaseDelay:   2 * time.Second,
		MaxDelay:    10 * time.Second,
	}
}

// Reconciler converges local plan state with a just-completed checkout,
// compensating for asynchronous webhook delivery with bounded, cancellable
// polling. The timer is injectable so tests can fast-forward.
type Reconciler struct {
	config     *Config
	plans      *plan.Service
	creditRepo credit.CreditRepository
	logger     services.Logger
	after      func(time.Duration) <-chan time.Time
}

func NewReconciler(config *Config, plans *plan.Service, creditRepo credit.CreditRepository, logger services.Logger) *Reconciler {
	if config == nil {
		config = DefaultConfig()
	}
	return &Reconciler{
		config:     config,
		plans:      plans,
		creditRepo: creditRepo,
		logger:     logger,
		after:      time.After,
	}
}

// Run checks immediately, then retries with delays of
// min((attempt+1)*BaseDelay, MaxDelay) for MaxAttempts attempts. Returns
// StatePolling when cancelled mid-poll.
func (r *Reconciler) Run(ctx context.Context, userID uint) State {
	r.plans.Invalidate(userID)
	if r.converged(ctx, userID) {
		return StateSucceeded
	}

	for attempt := 0; attempt < r.config.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return StatePolling
		case <-r.after(r.delay(attempt)):
		}

		r.plans.Invalidate(userID)
		if r.converged(ctx, userID) {
			r.logger.Info("payment reconciled", "user_id", userID, "attempt", attempt)
			return StateSucceeded
		}
	}

	r.logger.Info("payment still processing after retry budget", "user_id", userID)
	return StateExhausted
}

func (r *Reconciler) delay(attempt int) time.Duration {
	d := time.Duration(attempt+1) * r.config.BaseDelay
	if d > r.config.MaxDelay {
		d = r.config.MaxDelay
	}
	return d
}

// converged re-derives the plan status and independently re-queries the
// balance; any positive-access condition counts as the expected post-payment
// state.
func (r *Reconciler) converged(ctx context.Context, userID uint) bool {
	status := r.plans.FetchStatus(ctx, userID)
	if status.PlanType.HasAccess() {
		return true
	}
	if balance, err := r.creditRepo.FindByUser(ctx, userID); err == nil && balance.Credits > 0 {
		return true
	}
	return false
}
