package usecase

import "strings"

// jsonInstruction pins the exact result schema the model must emit. The
// analyzer depends on this block staying in sync with domain.AnalysisResult.
const jsonInstruction = `
RETURN ONLY VALID JSON. NO MARKDOWN. NO EXTRA TEXT.

JSON SCHEMA:
{
  "summary": string,
  // Neutral rewrite + short summary (max 800 words)

  "biases": [
    {
      "name": string,
      "description": string
      // About 2 concise lines explaining the bias
    }
  ],

  "proportionality": string,
  // About 3 short lines explaining whether the reaction is proportionate,
  // mildly exaggerated, or disproportionate

  "overreaction_score": number,
  // Integer from 1 to 10

  "next_steps": [
    {
      "step": string,
      "explanation": string
      // About 2 calm, rational lines per step
    }
  ]
}
`

const taskPreamble = `
You are a neutral, emotionally intelligent analyst.

Analyze the situation using the rules below.

RULES:
- Do not shame the user
- Do not take sides
- Be grounded and emotionally safe
- If emotions are justified, state so briefly
- Keep everything concise

TASKS:
1. Rewrite the situation neutrally and provide a short summary (max 800 words)
2. Identify possible cognitive biases (if any)
3. Judge whether the reaction is proportionate, mildly exaggerated, or disproportionate
4. Give an overreaction score (1-10), 10 being extreme overreaction and 1 being completely proportionate
5. Provide exactly 3 calm, rational next steps
`

// PromptBuilder assembles the single prompt sent to the text-generation
// provider: fixed rules and tasks, the JSON schema, then the caller's text
// appended verbatim.
type PromptBuilder interface {
	Build(text string) string
}

// SituationPromptBuilder renders the fixed instruction template with optional
// extra instruction lines appended after the tasks.
type SituationPromptBuilder struct {
	additionalInstructions []string
}

// NewSituationPromptBuilder creates a prompt builder with optional extra instructions appended.
func NewSituationPromptBuilder(additionalInstructions ...string) PromptBuilder {
	return &SituationPromptBuilder{
		additionalInstructions: additionalInstructions,
	}
}

// Build concatenates preamble, schema and the raw situation text. The text is
// not escaped; the provider transports it as an opaque string.
func (b *SituationPromptBuilder) Build(text string) string {
	var sb strings.Builder
	sb.WriteString(taskPreamble)
	for _, inst := range b.additionalInstructions {
		sb.WriteString(inst)
		sb.WriteString("\n")
	}
	sb.WriteString(jsonInstruction)
	sb.WriteString("\nSITUATION:\n")
	sb.WriteString(text)
	return sb.String()
}
