// File: internal/services/analysis/service_test.go
package analysis

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
	"github.com/dresai/dresai/internal/services/plan"
)

const testResponse = "Score: 88/100\nCore Style: Street – Sleek Nomad\n\nWhat's Working:\n- Bold silhouette\n- Strong color story\n\nTip to Elevate:\n** Tip to Elevate: Add layered necklaces"

type fakeAIProvider struct {
	response string
	err      error
	lastTone domain.Tone
	calls    int
}

func (f *fakeAIProvider) AnalyzeImage(ctx context.Context, imageURL string, tone domain.Tone) (string, error) {
	f.calls++
	f.lastTone = tone
	return f.response, f.err
}

func (f *fakeAIProvider) HealthCheck(ctx context.Context) error { return nil }

type memCreditRepo struct {
	credits map[uint]int
	exists  map[uint]bool
}

func newMemCreditRepo() *memCreditRepo {
	return &memCreditRepo{credits: make(map[uint]int), exists: make(map[uint]bool)}
}

func (m *memCreditRepo) FindByUser(ctx context.Context, userID uint) (*domain.CreditBalance, error) {
	if !m.exists[userID] {
		return nil, credit.ErrBalanceNotFound
	}
	return &domain.CreditBalance{UserID: userID, Credits: m.credits[userID]}, nil
}

func (m *memCreditRepo) Consume(ctx context.Context, userID uint) (bool, error) {
	if !m.exists[userID] {
		m.exists[userID] = true
		m.credits[userID] = domain.TrialCredits
	}
	if m.credits[userID] > 0 {
		m.credits[userID]--
		return true, nil
	}
	return false, nil
}

func (m *memCreditRepo) Add(ctx context.Context, userID uint, amount int) error {
	m.exists[userID] = true
	m.credits[userID] += amount
	return nil
}

type memSubscriptionRepo struct {
	sub *domain.Subscription
}

func (m *memSubscriptionRepo) FindByUser(ctx context.Context, userID uint) (*domain.Subscription, error) {
	if m.sub == nil {
		return nil, subscription.ErrSubscriptionNotFound
	}
	return m.sub, nil
}

func (m *memSubscriptionRepo) FindActiveByUser(ctx context.Context, userID uint, now time.Time) (*domain.Subscription, error) {
	if m.sub == nil || !m.sub.GrantsAccess(now) {
		return nil, subscription.ErrSubscriptionNotFound
	}
	return m.sub, nil
}

func (m *memSubscriptionRepo) Upsert(ctx context.Context, sub *domain.Subscription) error {
	m.sub = sub
	return nil
}

type memAnalysisRepo struct {
	records []domain.AnalysisRecord
}

func (m *memAnalysisRepo) Create(ctx context.Context, record *domain.AnalysisRecord) error {
	m.records = append(m.records, *record)
	return nil
}

func (m *memAnalysisRepo) FindByUser(ctx context.Context, userID uint, limit int) ([]domain.AnalysisRecord, error) {
	return m.records, nil
}

type testHarness struct {
	svc          *Service
	aiProvider   *fakeAIProvider
	creditRepo   *memCreditRepo
	subRepo      *memSubscriptionRepo
	analysisRepo *memAnalysisRepo
}

func newHarness(provider *fakeAIProvider) *testHarness {
	creditRepo := newMemCreditRepo()
	subRepo := &memSubscriptionRepo{}
	analysisRepo := &memAnalysisRepo{}
	plans := plan.NewService(creditRepo, subRepo, services.NopLogger{})
	matcher := NewStyleCoreMatcher(&fakeStyleCoreRepo{records: testStyleCores()})
	return &testHarness{
		svc:          NewService(provider, plans, matcher, analysisRepo, services.NopLogger{}),
		aiProvider:   provider,
		creditRepo:   creditRepo,
		subRepo:      subRepo,
		analysisRepo: analysisRepo,
	}
}

const testImageInput = "data:image/jpeg;base64,/9j/AAAA"

func TestAnalyze_FullPipeline(t *testing.T) {
	h := newHarness(&fakeAIProvider{response: testResponse})

	result, err := h.svc.Analyze(context.Background(), 1, testImageInput, domain.ToneCreative)

	require.NoError(t, err)
	assert.Equal(t, 88, result.Score)
	assert.Equal(t, "Street – Sleek Nomad", result.StyleCore)
	assert.Equal(t, []string{"Bold silhouette", "Strong color story"}, result.Strengths)
	assert.Equal(t, "Add layered necklaces", result.Suggestion)
	assert.Equal(t, domain.ToneCreative, h.aiProvider.lastTone)

	// First touch materialized the trial grant and spent one credit.
	assert.Equal(t, domain.TrialCredits-1, h.creditRepo.credits[1])

	require.Len(t, h.analysisRepo.records, 1)
	assert.Equal(t, "Bold silhouette\nStrong color story", h.analysisRepo.records[0].Strengths)
	assert.Equal(t, string(domain.ToneCreative), h.analysisRepo.records[0].Tone)
}

func TestAnalyze_InvalidToneDefaultsToChill(t *testing.T) {
	h := newHarness(&fakeAIProvider{response: testResponse})

	_, err := h.svc.Analyze(context.Background(), 1, testImageInput, "sassy")

	require.NoError(t, err)
	assert.Equal(t, domain.ToneChill, h.aiProvider.lastTone)
}

func TestAnalyze_ExhaustedPlanIsRejectedBeforeTheVisionCall(t *testing.T) {
	h := newHarness(&fakeAIProvider{response: testResponse})
	h.creditRepo.exists[1] = true
	h.creditRepo.credits[1] = 0

	_, err := h.svc.Analyze(context.Background(), 1, testImageInput, domain.ToneChill)

	assert.ErrorIs(t, err, ErrNoAccess)
	assert.Zero(t, h.aiProvider.calls)
}

func TestAnalyze_UnlimitedPlanDoesNotConsumeCredits(t *testing.T) {
	h := newHarness(&fakeAIProvider{response: testResponse})
	h.subRepo.sub = &domain.Subscription{
		UserID:           1,
		Status:           domain.SubscriptionStatusActive,
		CurrentPeriodEnd: time.Now().Add(time.Hour),
	}
	h.creditRepo.exists[1] = true
	h.creditRepo.credits[1] = 2

	_, err := h.svc.Analyze(context.Background(), 1, testImageInput, domain.ToneChill)

	require.NoError(t, err)
	assert.Equal(t, 2, h.creditRepo.credits[1])
}

func TestAnalyze_RefundsCreditWhenVisionCallFails(t *testing.T) {
	h := newHarness(&fakeAIProvider{err: errors.New("provider down")})
	h.creditRepo.exists[1] = true
	h.creditRepo.credits[1] = 2

	_, err := h.svc.Analyze(context.Background(), 1, testImageInput, domain.ToneChill)

	assert.Error(t, err)
	assert.Equal(t, 2, h.creditRepo.credits[1])
}

func TestAnalyze_RejectsUnsupportedInputWithoutSpendingCredits(t *testing.T) {
	h := newHarness(&fakeAIProvider{response: testResponse})
	h.creditRepo.exists[1] = true
	h.creditRepo.credits[1] = 2

	_, err := h.svc.Analyze(context.Background(), 1, "https://example.com/look.jpg", domain.ToneChill)

	assert.ErrorIs(t, err, ErrUnsupportedImage)
	assert.Equal(t, 2, h.creditRepo.credits[1])
	assert.Zero(t, h.aiProvider.calls)
}

func TestAnalyze_MatcherFailureKeepsParsedStyleText(t *testing.T) {
	creditRepo := newMemCreditRepo()
	plans := plan.NewService(creditRepo, &memSubscriptionRepo{}, services.NopLogger{})
	matcher := NewStyleCoreMatcher(&fakeStyleCoreRepo{err: errors.New("db down")})
	provider := &fakeAIProvider{response: "Core Style: Eclectic Original"}
	svc := NewService(provider, plans, matcher, &memAnalysisRepo{}, services.NopLogger{})

	result, err := svc.Analyze(context.Background(), 1, testImageInput, domain.ToneChill)

	require.NoError(t, err)
	assert.Equal(t, "Eclectic Original", result.StyleCore)
}
