// File: internal/services/plan/plan_service_test.go
package plan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dresai/dresai/internal/domain"
	"github.com/dresai/dresai/internal/repository/credit"
	"github.com/dresai/dresai/internal/repository/subscription"
	"github.com/dresai/dresai/internal/services"
)

type fakeCreditRepo struct {
	balance    *domain.CreditBalance
	findErr    error
	consumeOK  bool
	consumeErr error
	added      int
	addErr     error
	findCalls  int
}

func (f *fakeCreditRepo) FindByUser(ctx context.Context, userID uint) (*domain.CreditBalance, error) {
	f.findCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.balance, nil
}

func (f *fakeCreditRepo) Consume(ctx context.Context, userID uint) (bool, error) {
	return f.consumeOK, f.consumeErr
}

func (f *fakeCreditRepo) Add(ctx context.Context, userID uint, amount int) error {
	f.added += amount
	return f.addErr
}

type fakeSubscriptionRepo struct {
	sub     *domain.Subscription
	findErr error
}

func (f *fakeSubscriptionRepo) FindByUser(ctx context.Context, userID uint) (*domain.Subscription, error) {
	if f.sub == nil {
		return nil, subscription.ErrSubscriptionNotFound
	}
	return f.sub, nil
}

func (f *fakeSubscriptionRepo) FindActiveByUser(ctx context.Context, userID uint, now time.Time) (*domain.Subscription, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.sub == nil || !f.sub.GrantsAccess(now) {
		return nil, subscription.ErrSubscriptionNotFound
	}
	return f.sub, nil
}

func (f *fakeSubscriptionRepo) Upsert(ctx context.Context, sub *domain.Subscription) error {
	f.sub = sub
	return nil
}

func newTestService(creditRepo *fakeCreditRepo, subRepo *fakeSubscriptionRepo) *Service {
	return NewService(creditRepo, subRepo, services.NopLogger{})
}

func TestFetchStatus_NoBalanceRecordMeansFreeTrial(t *testing.T) {
	svc := newTestService(&fakeCreditRepo{findErr: credit.ErrBalanceNotFound}, &fakeSubscriptionRepo{})

	status := svc.FetchStatus(context.Background(), 1)

	assert.Equal(t, domain.PlanFreeTrial, status.PlanType)
	assert.Equal(t, domain.TrialCredits, status.Credits)
	assert.True(t, status.PlanType.HasAccess())
}

func TestFetchStatus_ActiveSubscriptionWinsOverZeroCredits(t *testing.T) {
	end := time.Now().Add(20 * 24 * time.Hour)
	svc := newTestService(
		&fakeCreditRepo{balance: &domain.CreditBalance{UserID: 1, Credits: 0}},
		&fakeSubscriptionRepo{sub: &domain.Subscription{
			UserID:           1,
			Status:           domain.SubscriptionStatusActive,
			CurrentPeriodEnd: end,
		}},
	)

	status := svc.FetchStatus(context.Background(), 1)

	assert.Equal(t, domain.PlanUnlimited, status.PlanType)
	assert.True(t, status.SubscriptionActive)
	require.NotNil(t, status.SubscriptionEndDate)
	assert.True(t, status.SubscriptionEndDate.Equal(end))
}

func TestFetchStatus_ExpiredSubscriptionFallsThroughToCredits(t *testing.T) {
	svc := newTestService(
		&fakeCreditRepo{balance: &domain.CreditBalance{UserID: 1, Credits: 2}},
		&fakeSubscriptionRepo{sub: &domain.Subscription{
			UserID:           1,
			Status:           domain.SubscriptionStatusActive,
			CurrentPeriodEnd: time.Now().Add(-time.Hour),
		}},
	)

	status := svc.FetchStatus(context.Background(), 1)

	assert.Equal(t, domain.PlanCredits, status.PlanType)
	assert.Equal(t, 2, status.Credits)
}

func TestFetchStatus_ZeroCreditsNoSubscriptionIsExpired(t *testing.T) {
	svc := newTestService(
		&fakeCreditRepo{balance: &domain.CreditBalance{UserID: 1, Credits: 0}},
		&fakeSubscriptionRepo{},
	)

	status := svc.FetchStatus(context.Background(), 1)

	assert.Equal(t, domain.PlanExpired, status.PlanType)
	assert.False(t, status.PlanType.HasAccess())
}

func TestFetchStatus_CreditReadFailureDeniesAccess(t *testing.T) {
	svc := newTestService(&fakeCreditRepo{findErr: errors.New("db down")}, &fakeSubscriptionRepo{})

	status := svc.FetchStatus(context.Background(), 1)

	assert.Equal(t, domain.PlanNone, status.PlanType)
	assert.False(t, status.PlanType.HasAccess())
}

func TestFetchStatus_SubscriptionReadFailureDeniesAccess(t *testing.T) {
	svc := newTestService(
		&fakeCreditRepo{balance: &domain.CreditBalance{UserID: 1, Credits: 5}},
		&fakeSubscriptionRepo{findErr: errors.New("db down")},
	)

	status := svc.FetchStatus(context.Background(), 1)

	assert.Equal(t, domain.PlanNone, status.PlanType)
}

func TestCachedStatus_ServesFromCacheUntilInvalidated(t *testing.T) {
	creditRepo := &fakeCreditRepo{balance: &domain.CreditBalance{UserID: 1, Credits: 2}}
	svc := newTestService(creditRepo, &fakeSubscriptionRepo{})

	first := svc.CachedStatus(context.Background(), 1)
	second := svc.CachedStatus(context.Background(), 1)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, creditRepo.findCalls)

	svc.Invalidate(1)
	svc.CachedStatus(context.Background(), 1)
	assert.Equal(t, 2, creditRepo.findCalls)
}

func TestUseCredit_InvalidatesCache(t *testing.T) {
	creditRepo := &fakeCreditRepo{
		balance:   &domain.CreditBalance{UserID: 1, Credits: 2},
		consumeOK: true,
	}
	svc := newTestService(creditRepo, &fakeSubscriptionRepo{})

	svc.CachedStatus(context.Background(), 1)

	ok, err := svc.UseCredit(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ok)

	svc.CachedStatus(context.Background(), 1)
	assert.Equal(t, 2, creditRepo.findCalls)
}

func TestUseCredit_ExhaustedBalance(t *testing.T) {
	svc := newTestService(&fakeCreditRepo{consumeOK: false}, &fakeSubscriptionRepo{})

	ok, err := svc.UseCredit(context.Background(), 1)

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCredits_MissingRecordReadsAsZero(t *testing.T) {
	svc := newTestService(&fakeCreditRepo{findErr: credit.ErrBalanceNotFound}, &fakeSubscriptionRepo{})

	credits, err := svc.Credits(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 0, credits)
}

func TestAddCredits(t *testing.T) {
	creditRepo := &fakeCreditRepo{balance: &domain.CreditBalance{UserID: 1, Credits: 0}}
	svc := newTestService(creditRepo, &fakeSubscriptionRepo{})

	require.NoError(t, svc.AddCredits(context.Background(), 1, 10))
	assert.Equal(t, 10, creditRepo.added)
}
