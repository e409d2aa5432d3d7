// File: internal/repository/stylecore/gorm_stylecore_repository.go
package stylecore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/dresai/dresai/internal/domain"
)

// defaultStyleCores is the canonical reference set. Matching is
// first-record-wins, so table order matters.
var defaultStyleCores = []domain.StyleCore{
	{Base: "Modern", Flavor: "Luxe Minimalist", FullLabel: "Modern – Luxe Minimalist",
		Description: "Clean lines, muted palette, quiet statement pieces."},
	{Base: "Street", Flavor: "Sleek Nomad", FullLabel: "Street – Sleek Nomad",
		Description: "Relaxed layers and utility details with an urban edge."},
	{Base: "Classic", Flavor: "Timeless Tailor", FullLabel: "Classic – Timeless Tailor",
		Description: "Structured tailoring and heritage staples that never date."},
	{Base: "Boho", Flavor: "Free Spirit", FullLabel: "Boho – Free Spirit",
		Description: "Flowing silhouettes, natural textures, eclectic accents."},
	{Base: "Romantic", Flavor: "Soft Focus", FullLabel: "Romantic – Soft Focus",
		Description: "Delicate fabrics, gentle colors, feminine detailing."},
	{Base: "Sporty", Flavor: "Athleisure Ace", FullLabel: "Sporty – Athleisure Ace",
		Description: "Performance pieces styled for the street."},
}

type gormStyleCoreRepository struct {
	db *gorm.DB
}

func NewGormStyleCoreRepository(db *gorm.DB) StyleCoreRepository {
	return &gormStyleCoreRepository{db: db}
}

func (r *gormStyleCoreRepository) FindAll(ctx context.Context) ([]domain.StyleCore, error) {
	var cores []domain.StyleCore
	if err := r.db.WithContext(ctx).Order("id").Find(&cores).Error; err != nil {
		return nil, fmt.Errorf("database error listing style cores: %w", err)
	}
	return cores, nil
}

func (r *gormStyleCoreRepository) SeedDefaults(ctx context.Context) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.StyleCore{}).Count(&count).Error; err != nil {
		return fmt.Errorf("database error counting style cores: %w", err)
	}
	if count > 0 {
		return nil
	}
	cores := make([]domain.StyleCore, len(defaultStyleCores))
	copy(cores, defaultStyleCores)
	if err := r.db.WithContext(ctx).Create(&cores).Error; err != nil {
		return fmt.Errorf("database error seeding style cores: %w", err)
	}
	return nil
}
