// File: internal/services/plan/plan_service.go
package plan

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/dresai/dresai/internal/domain"
	"github.com/dresai/dresai/internal/repository/credit"
	"github.com/dresai/dresai/internal/repository/subscription"
	"github.com/dresai/dresai/internal/services"
)

// statusCacheTTL bounds how stale a served plan status can be. It matches the
// refresh interval the result view polls at.
const statusCacheTTL = 15 * time.Second

// Service derives the user's access tier from credit and subscription records
// and owns credit consumption. Derivation precedence:
//
//  1. no balance record        -> free_trial (the 3-credit grant is still owed)
//  2. active, unexpired sub    -> unlimited
//  3. credits > 0              -> credits
//  4. otherwise                -> expired
//
// Read failures degrade to PlanNone — fail closed, never an error to the
// caller.
type Service struct {
	creditRepo       credit.CreditRepository
	subscriptionRepo subscription.SubscriptionRepository
	cache            *gocache.Cache
	logger           services.Logger
	now              func() time.Time
}

func NewService(creditRepo credit.CreditRepository, subscriptionRepo subscription.SubscriptionRepository, logger services.Logger) *Service {
	return &Service{
		creditRepo:       creditRepo,
		subscriptionRepo: subscriptionRepo,
		cache:            gocache.New(statusCacheTTL, time.Minute),
		logger:           logger,
		now:              time.Now,
	}
}

// FetchStatus recomputes the plan status from the stored records. It is the
// authoritative refresh: callers must not decrement locally and trust the
// result over any cached value.
func (s *Service) FetchStatus(ctx context.Context, userID uint) domain.PlanStatus {
	balance, err := s.creditRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, credit.ErrBalanceNotFound) {
			return domain.PlanStatus{PlanType: domain.PlanFreeTrial, Credits: domain.TrialCredits}
		}
		s.logger.Warn("credit balance read failed, denying access",
			"user_id", userID, "error", err.Error())
		return domain.PlanStatus{PlanType: domain.PlanNone}
	}

	status := domain.PlanStatus{Credits: balance.Credits}

	sub, err := s.subscriptionRepo.FindActiveByUser(ctx, userID, s.now())
	if err != nil && !errors.Is(err, subscription.ErrSubscriptionNotFound) {
		s.logger.Warn("subscription read failed, denying access",
			"user_id", userID, "error", err.Error())
		return domain.PlanStatus{PlanType: domain.PlanNone}
	}
	if err == nil {
		end := sub.CurrentPeriodEnd
		status.PlanType = domain.PlanUnlimited
		status.SubscriptionActive = true
		status.SubscriptionEndDate = &end
		return status
	}

	if balance.Credits > 0 {
		status.PlanType = domain.PlanCredits
		return status
	}
	status.PlanType = domain.PlanExpired
	return status
}

// CachedStatus serves the last derived status for up to statusCacheTTL.
func (s *Service) CachedStatus(ctx context.Context, userID uint) domain.PlanStatus {
	key := cacheKey(userID)
	if cached, ok := s.cache.Get(key); ok {
		if status, ok := cached.(domain.PlanStatus); ok {
			return status
		}
	}
	status := s.FetchStatus(ctx, userID)
	s.cache.Set(key, status, gocache.DefaultExpiration)
	return status
}

// Invalidate drops the cached status so the next read is authoritative.
func (s *Service) Invalidate(userID uint) {
	s.cache.Delete(cacheKey(userID))
}

// UseCredit consumes one analysis credit. The repository performs the lazy
// trial grant and the decrement atomically; false means no credit was
// available.
func (s *Service) UseCredit(ctx context.Context, userID uint) (bool, error) {
	ok, err := s.creditRepo.Consume(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to consume credit: %w", err)
	}
	s.Invalidate(userID)
	return ok, nil
}

// AddCredits tops up the user's balance (webhook purchases, admin grants,
// refunds after a failed analysis call).
func (s *Service) AddCredits(ctx context.Context, userID uint, amount int) error {
	if err := s.creditRepo.Add(ctx, userID, amount); err != nil {
		return fmt.Errorf("failed to add credits: %w", err)
	}
	s.Invalidate(userID)
	return nil
}

// Credits returns the raw balance, zero when no record exists yet.
func (s *Service) Credits(ctx context.Context, userID uint) (int, error) {
	balance, err := s.creditRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, credit.ErrBalanceNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get credit balance: %w", err)
	}
	return balance.Credits, nil
}

func cacheKey(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}
