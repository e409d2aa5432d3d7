// File: internal/services/ai/prompt.go
package ai

import "github.com/dresai/dresai/internal/domain"

// The response template the parser expects. Keeping the section markers
// stable ("Score: N/100", "Core Style:", "What's Working:", "Tip to Elevate:")
// is what makes the downstream extraction reliable.
const responseTemplate = `Respond using exactly this structure:

Score: <number>/100
Core Style: <base style> – <flavor>

What's Working:
- <strength 1>
- <strength 2>
- <strength 3>

Tip to Elevate:
<one concrete suggestion>`

const userPrompt = "Analyze this outfit photo and rate the look."

var tonePrompts = map[domain.Tone]string{
	domain.ToneChill: "You are a friendly, laid-back fashion stylist. " +
		"Keep the feedback warm and encouraging, like advice from a close friend.",
	domain.ToneStraightforward: "You are a direct, no-nonsense fashion stylist. " +
		"Give honest, practical feedback without sugarcoating.",
	domain.ToneCreative: "You are an imaginative, editorial fashion stylist. " +
		"Use vivid language and bold ideas in your feedback.",
}

// SystemPrompt builds the tone-specific instruction block. Unknown tones fall
// back to chill.
func SystemPrompt(tone domain.Tone) string {
	persona, ok := tonePrompts[tone]
	if !ok {
		persona = tonePrompts[domain.ToneChill]
	}
	return persona + "\n\n" + responseTemplate
}
