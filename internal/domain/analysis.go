package domain

import "context"

// AnalysisResult is the fixed shape every analysis response carries. Biases and
// NextSteps are always non-nil so the JSON encoding never emits null arrays;
// Proportionality and OverreactionScore encode as null when upstream omitted them.
type AnalysisResult struct {
	Summary           string     `json:"summary"`
	Biases            []Bias     `json:"biases"`
	Proportionality   *string    `json:"proportionality"`
	OverreactionScore *float64   `json:"overreaction_score"`
	NextSteps         []NextStep `json:"next_steps"`
}

// Bias names a cognitive bias the model spotted in the situation.
type Bias struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NextStep is one of the calm, rational follow-ups the model proposes.
type NextStep struct {
	Step        string `json:"step"`
	Explanation string `json:"explanation"`
}

// NewAnalysisResult returns a result with the empty defaults every field
// degrades to when the upstream reply omits or malforms it.
func NewAnalysisResult() *AnalysisResult {
	return &AnalysisResult{
		Biases:    []Bias{},
		NextSteps: []NextStep{},
	}
}

// TextAnalysisProvider is one upstream text-generation backend. Complete sends
// the finished prompt and returns the assistant's raw text, already extracted
// from whatever response shape that provider uses.
type TextAnalysisProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
}
