package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/kumarshrey19021990-arch/amioverreacting/internal/domain"
	"github.com/kumarshrey19021990-arch/amioverreacting/internal/infra/httpclient"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

type generateRequest struct {
	Prompt          generatePrompt `json:"prompt"`
	Temperature     float64        `json:"temperature"`
	MaxOutputTokens int            `json:"maxOutputTokens"`
}

type generatePrompt struct {
	Text string `json:"text"`
}

type generateReply struct {
	Candidates []struct {
		Output string `json:"output"`
		// Content arrives as either a list of text parts or a plain string
		// depending on model generation.
		Content json.RawMessage `json:"content"`
	} `json:"candidates"`
	OutputText string `json:"output_text"`
	Text       string `json:"text"`
}

// GeminiClient calls Google's generative language API and returns the
// candidate text.
type GeminiClient struct {
	BaseURL   string
	APIKey    string
	Model     string
	MaxTokens int
	Client    *http.Client
}

// NewGeminiClient constructs a client for the given credential and model name.
func NewGeminiClient(apiKey, model string, maxTokens int) *GeminiClient {
	return &GeminiClient{
		BaseURL:   defaultGeminiBaseURL,
		APIKey:    apiKey,
		Model:     model,
		MaxTokens: maxTokens,
		Client:    httpclient.NewPooledClient(0),
	}
}

// Complete sends the prompt and extracts the reply text, trying the known
// response shapes in priority order: candidate output, candidate content
// (parts or string), then flat output_text / text fields. No match yields "".
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("%w: GOOGLE_API_KEY not set", domain.ErrConfig)
	}

	reqBody := generateRequest{
		Prompt:          generatePrompt{Text: prompt},
		Temperature:     generationTemperature,
		MaxOutputTokens: c.MaxTokens,
	}
	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	// The key travels in a header, never in the URL: request URLs end up in
	// transport error messages and access logs.
	endpoint := fmt.Sprintf("%s/v1beta2/models/%s:generate",
		strings.TrimRight(c.BaseURL, "/"), url.PathEscape(c.Model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("failed to create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", &domain.UpstreamNetworkError{Provider: c.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", &domain.UpstreamStatusError{Provider: c.Name(), StatusCode: resp.StatusCode, Body: string(body)}
	}

	var reply generateReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return "", fmt.Errorf("failed to decode generate reply: %w", err)
	}

	return extractGenerateText(reply), nil
}

// Name identifies the provider in errors and logs.
func (c *GeminiClient) Name() string { return "gemini" }

func extractGenerateText(reply generateReply) string {
	if len(reply.Candidates) > 0 {
		cand := reply.Candidates[0]
		if cand.Output != "" {
			return cand.Output
		}
		if text := contentText(cand.Content); text != "" {
			return text
		}
	}
	if reply.OutputText != "" {
		return reply.OutputText
	}
	return reply.Text
}

func contentText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var parts []struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &parts); err == nil {
		texts := make([]string, 0, len(parts))
		for _, part := range parts {
			texts = append(texts, part.Text)
		}
		return strings.Join(texts, "\n")
	}
	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}
	return ""
}

var _ domain.TextAnalysisProvider = (*GeminiClient)(nil)
