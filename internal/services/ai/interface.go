// File: internal/services/ai/interface.go
package ai

import (
	"context"

	"github.com/dresai/dresai/internal/domain"
)

// Provider turns one outfit image into the model's free-text analysis. The
// text is returned unmodified; structuring it is the caller's concern.
type Provider interface {
	AnalyzeImage(ctx context.Context, imageURL string, tone domain.Tone) (string, error)
	HealthCheck(ctx context.Context) error
}
