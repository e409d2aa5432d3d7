// File: internal/domain/analysis.go
package domain

import "time"

// Tone selects the voice of the analysis feedback.
type Tone string

const (
	ToneChill           Tone = "chill"
	ToneStraightforward Tone = "straightforward"
	ToneCreative        Tone = "creative"
)

func (t Tone) IsValid() bool {
	switch t {
	case ToneChill, ToneStraightforward, ToneCreative:
		return true
	}
	return false
}

// AnalysisResult is the structured form of one model response. It lives only
// for the duration of a single upload-to-result interaction; AnalysisRecord is
// its persisted copy.
type AnalysisResult struct {
	Score      int      `json:"score"`
	StyleCore  string   `json:"style_core"`
	Strengths  []string `json:"strengths"`
	Suggestion string   `json:"suggestion"`
}

// AnalysisRecord stores one completed analysis for the owner's history.
type AnalysisRecord struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	UserID     uint      `json:"user_id" gorm:"index;not null"`
	Score      int       `json:"score"`
	StyleCore  string    `json:"style_core"`
	Strengths  string    `json:"strengths"` // newline-joined
	Suggestion string    `json:"suggestion"`
	Tone       string    `json:"tone"`
	CreatedAt  time.Time `json:"created_at"`
}
