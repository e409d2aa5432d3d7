// File: internal/repository/credit/gorm_credit_repository.go
package credit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dresai/dresai/internal/domain"
)

type gormCreditRepository struct {
	db *gorm.DB
}

func NewGormCreditRepository(db *gorm.DB) CreditRepository {
	return &gormCreditRepository{db: db}
}

func (r *gormCreditRepository) FindByUser(ctx context.Context, userID uint) (*domain.CreditBalance, error) {
	var balance domain.CreditBalance
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&balance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBalanceNotFound
		}
		return nil, fmt.Errorf("database error finding credit balance: %w", err)
	}
	return &balance, nil
}

// Consume performs the lazy trial grant and the decrement as two conflict-safe
// statements: the insert is a no-op when a row already exists, and the update
// only fires while credits remain. RowsAffected tells us whether this caller
// actually won a credit.
func (r *gormCreditRepository) Consume(ctx context.Context, userID uint) (bool, error) {
	if err := r.ensureBalance(ctx, userID); err != nil {
		return false, err
	}

	res := r.db.WithContext(ctx).Model(&domain.CreditBalance{}).
		Where("user_id = ? AND credits > 0", userID).
		Updates(map[string]interface{}{
			"credits":      gorm.Expr("credits - 1"),
			"last_updated": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, fmt.Errorf("database error consuming credit: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *gormCreditRepository) Add(ctx context.Context, userID uint, amount int) error {
	if amount <= 0 {
		return errors.New("amount must be positive")
	}
	now := time.Now().UTC()
	balance := domain.CreditBalance{UserID: userID, Credits: amount, LastUpdated: now}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"credits":      gorm.Expr("credits + ?", amount),
			"last_updated": now,
		}),
	}).Create(&balance).Error
	if err != nil {
		return fmt.Errorf("database error adding credits: %w", err)
	}
	return nil
}

func (r *gormCreditRepository) ensureBalance(ctx context.Context, userID uint) error {
	balance := domain.CreditBalance{
		UserID:      userID,
		Credits:     domain.TrialCredits,
		LastUpdated: time.Now().UTC(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&balance).Error
	if err != nil {
		return fmt.Errorf("database error creating credit balance: %w", err)
	}
	return nil
}
