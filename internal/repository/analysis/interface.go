package analysis

import (
	"context"

	"github.com/dresai/dresai/internal/domain"
)

// AnalysisRepository stores completed analyses for the owner's history.
type AnalysisRepository interface {
	Create(ctx context.Context, record *domain.AnalysisRecord) error
	FindByUser(ctx context.Context, userID uint, limit int) ([]domain.AnalysisRecord, error)
}
