// File: internal/repository/credit/gorm_credit_repository_test.go
package credit

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dresai/dresai/internal/domain"
)

func newTestRepo(t *testing.T) CreditRepository {
	t.Helper()
	// A file-backed database with a busy timeout so concurrent writers queue
	// instead of failing with SQLITE_BUSY.
	dsn := filepath.Join(t.TempDir(), "credits.db") + "?_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.CreditBalance{}))
	return NewGormCreditRepository(db)
}

func TestFindByUser_MissingRecord(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.FindByUser(context.Background(), 1)

	assert.ErrorIs(t, err, ErrBalanceNotFound)
}

func TestConsume_FirstTouchGrantsTrialThenDecrements(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	ok, err := repo.Consume(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	balance, err := repo.FindByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.TrialCredits-1, balance.Credits)
}

func TestConsume_StopsAtZero(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < domain.TrialCredits; i++ {
		ok, err := repo.Consume(ctx, 1)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := repo.Consume(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	balance, err := repo.FindByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, balance.Credits)
}

func TestConsume_ConcurrentFirstTouchNeverOverdraws(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	successes := make(chan bool, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.Consume(ctx, 1)
			assert.NoError(t, err)
			successes <- ok
		}()
	}
	wg.Wait()
	close(successes)

	won := 0
	for ok := range successes {
		if ok {
			won++
		}
	}
	assert.Equal(t, 2, won)

	balance, err := repo.FindByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.TrialCredits-2, balance.Credits)
}

func TestAdd_CreatesThenAccumulates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, 1, 10))
	require.NoError(t, repo.Add(ctx, 1, 5))

	balance, err := repo.FindByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 15, balance.Credits)
}

func TestAdd_RejectsNonPositiveAmounts(t *testing.T) {
	repo := newTestRepo(t)

	assert.Error(t, repo.Add(context.Background(), 1, 0))
	assert.Error(t, repo.Add(context.Background(), 1, -3))
}

func TestAdd_AfterExhaustionRestoresConsumption(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < domain.TrialCredits; i++ {
		_, err := repo.Consume(ctx, 1)
		require.NoError(t, err)
	}
	require.NoError(t, repo.Add(ctx, 1, 1))

	ok, err := repo.Consume(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Consume(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}
