package usecase_test

import (
	"testing"

	"github.com/kumarshrey19021990-arch/amioverreacting/internal/domain"
	"github.com/kumarshrey19021990-arch/amioverreacting/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_NonJSONFallsBackToSummary(t *testing.T) {
	normalizer := usecase.NewResultNormalizer()

	result := normalizer.Normalize("not json")

	assert.Equal(t, "not json", result.Summary)
	assert.Equal(t, []domain.Bias{}, result.Biases)
	assert.Equal(t, []domain.NextStep{}, result.NextSteps)
	assert.Nil(t, result.Proportionality)
	assert.Nil(t, result.OverreactionScore)
}

func TestNormalize_CompleteReply(t *testing.T) {
	normalizer := usecase.NewResultNormalizer()

	result := normalizer.Normalize(`{
		"summary": "A neutral rewrite.",
		"biases": [{"name": "catastrophizing", "description": "Expecting the worst."}],
		"proportionality": "Mildly exaggerated.",
		"overreaction_score": 4,
		"next_steps": [{"step": "Wait a day", "explanation": "Let emotions settle."}]
	}`)

	assert.Equal(t, "A neutral rewrite.", result.Summary)
	require.Len(t, result.Biases, 1)
	assert.Equal(t, "catastrophizing", result.Biases[0].Name)
	require.NotNil(t, result.Proportionality)
	assert.Equal(t, "Mildly exaggerated.", *result.Proportionality)
	require.NotNil(t, result.OverreactionScore)
	assert.Equal(t, 4.0, *result.OverreactionScore)
	require.Len(t, result.NextSteps, 1)
	assert.Equal(t, "Wait a day", result.NextSteps[0].Step)
}

func TestNormalize_NumericStringScoreCoerced(t *testing.T) {
	normalizer := usecase.NewResultNormalizer()

	result := normalizer.Normalize(`{"summary":"ok","overreaction_score":"7"}`)

	assert.Equal(t, "ok", result.Summary)
	require.NotNil(t, result.OverreactionScore)
	assert.Equal(t, 7.0, *result.OverreactionScore)
}

func TestNormalize_NonNumericScoreBecomesNull(t *testing.T) {
	normalizer := usecase.NewResultNormalizer()

	result := normalizer.Normalize(`{"overreaction_score":"high"}`)

	assert.Nil(t, result.OverreactionScore)
}

func TestNormalize_MissingFieldsGetDefaults(t *testing.T) {
	normalizer := usecase.NewResultNormalizer()

	result := normalizer.Normalize(`{"summary":"only a summary"}`)

	assert.Equal(t, "only a summary", result.Summary)
	assert.NotNil(t, result.Biases, "biases must never be nil")
	assert.Empty(t, result.Biases)
	assert.NotNil(t, result.NextSteps, "next_steps must never be nil")
	assert.Empty(t, result.NextSteps)
	assert.Nil(t, result.Proportionality)
}

func TestNormalize_NonArrayBiasesDroppedToEmpty(t *testing.T) {
	normalizer := usecase.NewResultNormalizer()

	result := normalizer.Normalize(`{"biases": {"name": "anchoring"}, "next_steps": "breathe"}`)

	assert.Equal(t, []domain.Bias{}, result.Biases)
	assert.Equal(t, []domain.NextStep{}, result.NextSteps)
}

func TestNormalize_EntrySubfieldsDefaultToEmpty(t *testing.T) {
	normalizer := usecase.NewResultNormalizer()

	result := normalizer.Normalize(`{
		"biases": [{"name": "anchoring"}, {"description": "d"}, "bare string"],
		"next_steps": [{"explanation": "only explanation"}]
	}`)

	require.Len(t, result.Biases, 3)
	assert.Equal(t, domain.Bias{Name: "anchoring"}, result.Biases[0])
	assert.Equal(t, domain.Bias{Description: "d"}, result.Biases[1])
	assert.Equal(t, domain.Bias{}, result.Biases[2], "non-object entries keep the shape with empty fields")
	require.Len(t, result.NextSteps, 1)
	assert.Equal(t, domain.NextStep{Explanation: "only explanation"}, result.NextSteps[0])
}

func TestNormalize_TopLevelArrayIsStructuredButFieldless(t *testing.T) {
	normalizer := usecase.NewResultNormalizer()

	result := normalizer.Normalize(`[{"summary":"inside an array"}]`)

	assert.Empty(t, result.Summary, "array replies carry no recognized fields")
	assert.Equal(t, []domain.Bias{}, result.Biases)
	assert.Equal(t, []domain.NextStep{}, result.NextSteps)
	assert.Nil(t, result.OverreactionScore)
}

func TestNormalize_ScalarRepliesFallBackToSummary(t *testing.T) {
	normalizer := usecase.NewResultNormalizer()

	for _, raw := range []string{`42`, `"quoted text"`, `true`, `null`} {
		result := normalizer.Normalize(raw)
		assert.Equal(t, raw, result.Summary, "scalar %s must become the verbatim summary", raw)
		assert.Equal(t, []domain.Bias{}, result.Biases)
	}
}

func TestNormalize_SurroundingWhitespaceTolerated(t *testing.T) {
	normalizer := usecase.NewResultNormalizer()

	result := normalizer.Normalize("\n  {\"summary\":\"trimmed\"}  \n")

	assert.Equal(t, "trimmed", result.Summary)
}
