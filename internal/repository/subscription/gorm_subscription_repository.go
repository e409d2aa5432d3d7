// File: internal/repository/subscription/gorm_subscription_repository.go
package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dresai/dresai/internal/domain"
)

type gormSubscriptionRepository struct {
	db *gorm.DB
}

func NewGormSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &gormSubscriptionRepository{db: db}
}

func (r *gormSubscriptionRepository) FindByUser(ctx context.Context, userID uint) (*domain.Subscription, error) {
	var sub domain.Subscription
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&sub).Error
	return r.handleFindError(err, &sub)
}

func (r *gormSubscriptionRepository) FindActiveByUser(ctx context.Context, userID uint, now time.Time) (*domain.Subscription, error) {
	var sub domain.Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND current_period_end > ?",
			userID, domain.SubscriptionStatusActive, now).
		First(&sub).Error
	return r.handleFindError(err, &sub)
}

func (r *gormSubscriptionRepository) Upsert(ctx context.Context, sub *domain.Subscription) error {
	if sub.UserID == 0 {
		return errors.New("user ID is required for subscription upsert")
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"provider_customer_id",
			"provider_subscription_id",
			"status",
			"current_period_start",
			"current_period_end",
			"updated_at",
		}),
	}).Create(sub).Error
	if err != nil {
		return fmt.Errorf("database error upserting subscription: %w", err)
	}
	return nil
}

func (r *gormSubscriptionRepository) handleFindError(err error, sub *domain.Subscription) (*domain.Subscription, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("database error finding subscription: %w", err)
	}
	return sub, nil
}
