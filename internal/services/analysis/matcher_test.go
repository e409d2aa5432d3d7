// File: internal/services/analysis/matcher_test.go
package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dresai/dresai/internal/domain"
)

type fakeStyleCoreRepo struct {
	records []domain.StyleCore
	err     error
	calls   int
}

func (f *fakeStyleCoreRepo) FindAll(ctx context.Context) ([]domain.StyleCore, error) {
	f.calls++
	return f.records, f.err
}

func (f *fakeStyleCoreRepo) SeedDefaults(ctx context.Context) error { return nil }

func testStyleCores() []domain.StyleCore {
	return []domain.StyleCore{
		{ID: 1, Base: "Modern", Flavor: "Luxe Minimalist", FullLabel: "Modern – Luxe Minimalist"},
		{ID: 2, Base: "Street", Flavor: "Sleek Nomad", FullLabel: "Street – Sleek Nomad"},
	}
}

func TestMatch_FirstMatchWins(t *testing.T) {
	matcher := NewStyleCoreMatcher(&fakeStyleCoreRepo{records: testStyleCores()})

	got, err := matcher.Match(context.Background(), "a sleek nomad street look with modern touches")

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint(1), got.ID)
}

func TestMatch_NoMatchFallsBackToFirstRecord(t *testing.T) {
	matcher := NewStyleCoreMatcher(&fakeStyleCoreRepo{records: testStyleCores()})

	got, err := matcher.Match(context.Background(), "completely unrelated description")

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint(1), got.ID)
}

func TestMatch_EmptyReferenceSetReturnsNil(t *testing.T) {
	matcher := NewStyleCoreMatcher(&fakeStyleCoreRepo{})

	got, err := matcher.Match(context.Background(), "anything")

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMatch_MatchesOnFlavorAlone(t *testing.T) {
	matcher := NewStyleCoreMatcher(&fakeStyleCoreRepo{records: testStyleCores()})

	got, err := matcher.Match(context.Background(), "this reads as sleek nomad to me")

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint(2), got.ID)
}

func TestMatch_RepositoryErrorPropagates(t *testing.T) {
	matcher := NewStyleCoreMatcher(&fakeStyleCoreRepo{err: errors.New("db down")})

	_, err := matcher.Match(context.Background(), "anything")

	assert.Error(t, err)
}

func TestMatch_CachesReferenceRecords(t *testing.T) {
	repo := &fakeStyleCoreRepo{records: testStyleCores()}
	matcher := NewStyleCoreMatcher(repo)

	_, err := matcher.Match(context.Background(), "first call")
	require.NoError(t, err)
	_, err = matcher.Match(context.Background(), "second call")
	require.NoError(t, err)

	assert.Equal(t, 1, repo.calls)
}
