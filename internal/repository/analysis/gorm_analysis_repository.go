// File: internal/repository/analysis/gorm_analysis_repository.go
package analysis

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/dresai/dresai/internal/domain"
)

const defaultHistoryLimit = 50

type gormAnalysisRepository struct {
	db *gorm.DB
}

func NewGormAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &gormAnalysisRepository{db: db}
}

func (r *gormAnalysisRepository) Create(ctx context.Context, record *domain.AnalysisRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("database error saving analysis: %w", err)
	}
	return nil
}

func (r *gormAnalysisRepository) FindByUser(ctx context.Context, userID uint, limit int) ([]domain.AnalysisRecord, error) {
	if limit <= 0 || limit > defaultHistoryLimit {
		limit = defaultHistoryLimit
	}
	var records []domain.AnalysisRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("database error listing analyses: %w", err)
	}
	return records, nil
}
