package stylecore

import (
	"context"

	"github.com/dresai/dresai/internal/domain"
)

// StyleCoreRepository serves the read-only style reference table.
type StyleCoreRepository interface {
	FindAll(ctx context.Context) ([]domain.StyleCore, error)
	// SeedDefaults inserts the canonical reference set when the table is empty.
	SeedDefaults(ctx context.Context) error
}
