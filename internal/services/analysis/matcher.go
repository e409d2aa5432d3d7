// File: internal/services/analysis/matcher.go
package analysis

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/dresai/dresai/internal/domain"
	"github.com/dresai/dresai/internal/repository/stylecore"
)

const (
	styleCoreCacheKey = "stylecores"
	styleCoreCacheTTL = 5 * time.Minute
)

// StyleCoreMatcher maps free-text style descriptions to canonical reference
// records. Matching is a linear first-match-wins scan in table order, with no
// specificity ranking.
type StyleCoreMatcher struct {
	repo  stylecore.StyleCoreRepository
	cache *gocache.Cache
}

func NewStyleCoreMatcher(repo stylecore.StyleCoreRepository) *StyleCoreMatcher {
	return &StyleCoreMatcher{
		repo:  repo,
		cache: gocache.New(styleCoreCacheTTL, time.Minute),
	}
}

// Match returns the first record whose base, flavor or full label appears
// case-insensitively inside styleText. No match falls back to the first
// record; an empty reference set yields nil.
func (m *StyleCoreMatcher) Match(ctx context.Context, styleText string) (*domain.StyleCore, error) {
	records, err := m.records(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	lowerText := strings.ToLower(styleText)
	for i := range records {
		record := &records[i]
		if containsAny(lowerText, record.Base, record.Flavor, record.FullLabel) {
			return record, nil
		}
	}
	return &records[0], nil
}

func (m *StyleCoreMatcher) records(ctx context.Context) ([]domain.StyleCore, error) {
	if cached, ok := m.cache.Get(styleCoreCacheKey); ok {
		if records, ok := cached.([]domain.StyleCore); ok {
			return records, nil
		}
	}
	records, err := m.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	m.cache.Set(styleCoreCacheKey, records, gocache.DefaultExpiration)
	return records, nil
}

func containsAny(lowerText string, candidates ...string) bool {
	for _, candidate := range candidates {
		if candidate != "" && strings.Contains(lowerText, strings.ToLower(candidate)) {
			return true
		}
	}
	return false
}
