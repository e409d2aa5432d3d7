// File: internal/services/analysis/service.go
package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/dresai/dresai/internal/domain"
	analysisrepo "github.com/dresai/dresai/internal/repository/analysis"
	"github.com/dresai/dresai/internal/services"
	"github.com/dresai/dresai/internal/services/ai"
	"github.com/dresai/dresai/internal/services/plan"
)

// Service ties image preparation, the vision call, response parsing and style
// matching into one operation, gated by credit consumption.
type Service struct {
	aiProvider   ai.Provider
	plans        *plan.Service
	matcher      *StyleCoreMatcher
	analysisRepo analysisrepo.AnalysisRepository
	logger       services.Logger
}

func NewService(aiProvider ai.Provider, plans *plan.Service, matcher *StyleCoreMatcher,
	analysisRepo analysisrepo.AnalysisRepository, logger services.Logger) *Service {
	return &Service{
		aiProvider:   aiProvider,
		plans:        plans,
		matcher:      matcher,
		analysisRepo: analysisRepo,
		logger:       logger,
	}
}

// Analyze runs one outfit analysis from a string image input (a data URL).
func (s *Service) Analyze(ctx context.Context, userID uint, imageData string, tone domain.Tone) (*domain.AnalysisResult, error) {
	prepared, err := PrepareImage(imageData)
	if err != nil {
		return nil, err
	}
	return s.analyze(ctx, userID, prepared, tone)
}

// AnalyzeBytes runs one outfit analysis from a raw uploaded file. Both entry
// points converge on the same acceptance rules and pipeline.
func (s *Service) AnalyzeBytes(ctx context.Context, userID uint, raw []byte, tone domain.Tone) (*domain.AnalysisResult, error) {
	prepared, err := PrepareImageBytes(raw)
	if err != nil {
		return nil, err
	}
	return s.analyze(ctx, userID, prepared, tone)
}

func (s *Service) analyze(ctx context.Context, userID uint, imageURL string, tone domain.Tone) (*domain.AnalysisResult, error) {
	if !tone.IsValid() {
		tone = domain.ToneChill
	}

	status := s.plans.FetchStatus(ctx, userID)
	if !status.PlanType.HasAccess() {
		return nil, ErrNoAccess
	}

	// Credit consumption must complete before the vision call is issued —
	// never concurrently, and never on a speculative local balance.
	spentCredit := false
	if status.PlanType != domain.PlanUnlimited {
		ok, err := s.plans.UseCredit(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrNoAccess
		}
		spentCredit = true
	}

	raw, err := s.aiProvider.AnalyzeImage(ctx, imageURL, tone)
	if err != nil {
		if spentCredit {
			if refundErr := s.plans.AddCredits(ctx, userID, 1); refundErr != nil {
				s.logger.Error("credit refund after failed analysis failed",
					"user_id", userID, "error", refundErr.Error())
			}
		}
		return nil, fmt.Errorf("analysis request failed: %w", err)
	}

	result := ParseAnalysis(raw)

	// Style matching is best effort: a lookup failure keeps the parsed text.
	if record, matchErr := s.matcher.Match(ctx, result.StyleCore); matchErr == nil && record != nil {
		result.StyleCore = record.FullLabel
	} else if matchErr != nil {
		s.logger.Warn("style core match failed", "user_id", userID, "error", matchErr.Error())
	}

	result.Suggestion = CleanDisplayText(result.Suggestion)

	s.saveRecord(ctx, userID, &result, tone)
	return &result, nil
}

// History lists the user's past analyses, newest first.
func (s *Service) History(ctx context.Context, userID uint, limit int) ([]domain.AnalysisRecord, error) {
	return s.analysisRepo.FindByUser(ctx, userID, limit)
}

func (s *Service) saveRecord(ctx context.Context, userID uint, result *domain.AnalysisResult, tone domain.Tone) {
	record := &domain.AnalysisRecord{
		UserID:     userID,
		Score:      result.Score,
		StyleCore:  result.StyleCore,
		Strengths:  strings.Join(result.Strengths, "\n"),
		Suggestion: result.Suggestion,
		Tone:       string(tone),
	}
	if err := s.analysisRepo.Create(ctx, record); err != nil {
		s.logger.Warn("failed to save analysis record", "user_id", userID, "error", err.Error())
	}
}
