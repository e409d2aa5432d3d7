// File: internal/services/analysis/parser.go
package analysis

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dresai/dresai/internal/domain"
)

// Defaults used when the model's output drifts from the requested template.
const (
	DefaultScore      = 70
	DefaultStyleCore  = "Modern – Luxe Minimalist"
	DefaultSuggestion = "Try adding a statement accessory to elevate your look."
)

const maxStrengths = 3

// Each extraction is an ordered fallback chain: patterns are tried until one
// matches, and the stated default closes the chain. The composite parser
// never fails — the contract is a complete AnalysisResult for any input.

var scorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*/\s*100`),
	regexp.MustCompile(`(?i)score:\s*(\d+)`),
	regexp.MustCompile(`(?i)style\s+score:\s*(\d+)`),
}

var styleCorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)core style[^:\n]*:[ \t]*(.+)`),
	regexp.MustCompile(`(?i)style description:[ \t]*(.+)`),
	regexp.MustCompile(`(?i)style:[ \t]*(.+)`),
}

var suggestionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)tip to elevate:[ \t]*(.+?)(?:\n[ \t]*\n|$)`),
	regexp.MustCompile(`(?is)suggestion:[ \t]*(.+?)(?:\n[ \t]*\n|$)`),
	regexp.MustCompile(`(?i)(?:tip|elevate)[^:\n]*:[ \t]*(.+)`),
}

var (
	strengthsBlockPattern = regexp.MustCompile(`(?is)what'?s working:?[ \t]*\n(.*?)(?:\n[ \t]*\n|tip to elevate|suggestion|$)`)
	bulletPrefixPattern   = regexp.MustCompile(`^[\s\-•*\d.]+`)
	bulletLinePattern     = regexp.MustCompile(`^\s*[-•*]`)
)

var (
	leadingMarkerPattern = regexp.MustCompile(`^\*\* ?`)
	redundantTipPattern  = regexp.MustCompile(`(?i)^tip to elevate:\s*`)
)

// ParseAnalysis converts one free-text model response into a structured
// result, degrading to defaults field by field.
func ParseAnalysis(text string) domain.AnalysisResult {
	return domain.AnalysisResult{
		Score:      ExtractScore(text),
		StyleCore:  ExtractStyleCore(text),
		Strengths:  ExtractStrengths(text),
		Suggestion: ExtractSuggestion(text),
	}
}

// ExtractScore finds the style score. The value is intentionally not clamped
// to [0,100]; callers must not assume the bound holds.
func ExtractScore(text string) int {
	for _, pattern := range scorePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n
			}
		}
	}
	return DefaultScore
}

func ExtractStyleCore(text string) string {
	for _, pattern := range styleCorePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			if value := strings.TrimSpace(m[1]); value != "" {
				return value
			}
		}
	}
	return DefaultStyleCore
}

// ExtractStrengths collects up to three strengths from the "What's Working"
// block, falling back to any bullet-like line that is not part of the tip
// section. Missing markers yield an empty list, never an error.
func ExtractStrengths(text string) []string {
	if m := strengthsBlockPattern.FindStringSubmatch(text); m != nil {
		return collectStrengths(strings.Split(m[1], "\n"))
	}

	var candidates []string
	for _, line := range strings.Split(text, "\n") {
		if !bulletLinePattern.MatchString(line) {
			continue
		}
		lower := strings.ToLower(line)
		if strings.Contains(lower, "tip") || strings.Contains(lower, "elevate") {
			continue
		}
		candidates = append(candidates, line)
	}
	return collectStrengths(candidates)
}

func ExtractSuggestion(text string) string {
	for _, pattern := range suggestionPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			if value := strings.TrimSpace(m[1]); value != "" {
				return value
			}
		}
	}
	return DefaultSuggestion
}

// CleanDisplayText strips a leading markdown bold marker and a redundant
// "Tip to Elevate:" prefix the model sometimes leaves in the suggestion body.
func CleanDisplayText(text string) string {
	text = strings.TrimSpace(text)
	text = leadingMarkerPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(redundantTipPattern.ReplaceAllString(text, ""))
}

func collectStrengths(lines []string) []string {
	out := make([]string, 0, maxStrengths)
	for _, line := range lines {
		cleaned := strings.TrimSpace(bulletPrefixPattern.ReplaceAllString(line, ""))
		if cleaned == "" {
			continue
		}
		out = append(out, cleaned)
		if len(out) == maxStrengths {
			break
		}
	}
	return out
}
