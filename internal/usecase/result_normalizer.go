package usecase

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/kumarshrey19021990-arch/amioverreacting/internal/domain"
)

// ResultNormalizer turns whatever text the model produced into the fixed
// AnalysisResult shape. Malformed output is never an error here: a reply that
// is not a JSON object degrades to a plain-text summary with empty defaults.
type ResultNormalizer struct{}

// NewResultNormalizer creates a normalizer instance (currently stateless).
func NewResultNormalizer() ResultNormalizer {
	return ResultNormalizer{}
}

// Normalize parses the raw reply and fills every field with a safe default.
// Policy for malformed biases/next_steps: a non-array value is dropped to an
// empty array, never wrapped.
func (n ResultNormalizer) Normalize(raw string) *domain.AnalysisResult {
	result := domain.NewAnalysisResult()

	var value any
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &value); err != nil {
		// Non-compliant reply: the whole text becomes the summary.
		result.Summary = raw
		return result
	}

	parsed, isObject := value.(map[string]any)
	if !isObject {
		// A top-level array is still structured output, just field-less;
		// scalars fall back like non-JSON text.
		if _, isArray := value.([]any); isArray {
			return result
		}
		result.Summary = raw
		return result
	}

	result.Summary = asString(parsed["summary"])
	result.Biases = asEntries(parsed["biases"], "name", "description", func(a, b string) domain.Bias {
		return domain.Bias{Name: a, Description: b}
	})
	if p := asString(parsed["proportionality"]); p != "" {
		result.Proportionality = &p
	}
	result.OverreactionScore = asNumber(parsed["overreaction_score"])
	result.NextSteps = asEntries(parsed["next_steps"], "step", "explanation", func(a, b string) domain.NextStep {
		return domain.NextStep{Step: a, Explanation: b}
	})

	return result
}

func asString(value any) string {
	s, _ := value.(string)
	return s
}

// asNumber accepts JSON numbers and numeric strings; anything else is nil.
func asNumber(value any) *float64 {
	switch v := value.(type) {
	case float64:
		return &v
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return &parsed
		}
	}
	return nil
}

func asEntries[T any](value any, firstKey, secondKey string, build func(a, b string) T) []T {
	entries := []T{}
	list, ok := value.([]any)
	if !ok {
		return entries
	}
	for _, item := range list {
		obj, _ := item.(map[string]any)
		entries = append(entries, build(asString(obj[firstKey]), asString(obj[secondKey])))
	}
	return entries
}
