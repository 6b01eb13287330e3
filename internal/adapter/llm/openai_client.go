package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kumarshrey19021990-arch/amioverreacting/internal/domain"
	"github.com/kumarshrey19021990-arch/amioverreacting/internal/infra/httpclient"
)

const (
	defaultOpenAIBaseURL  = "https://api.openai.com"
	generationTemperature = 0.2
)

type responsesRequest struct {
	Model           string  `json:"model"`
	Input           string  `json:"input"`
	MaxOutputTokens int     `json:"max_output_tokens"`
	Temperature     float64 `json:"temperature"`
}

type responsesReply struct {
	Output []struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
	OutputText string `json:"output_text"`
	Text       string `json:"text"`
}

// OpenAIClient calls the OpenAI Responses API and returns the assistant text.
type OpenAIClient struct {
	BaseURL   string
	APIKey    string
	Model     string
	MaxTokens int
	Client    *http.Client
}

// NewOpenAIClient constructs a client for the given credential and model name.
func NewOpenAIClient(apiKey, model string, maxTokens int) *OpenAIClient {
	return &OpenAIClient{
		BaseURL:   defaultOpenAIBaseURL,
		APIKey:    apiKey,
		Model:     model,
		MaxTokens: maxTokens,
		Client:    httpclient.NewPooledClient(0),
	}
}

// Complete sends the prompt and extracts the reply text, trying the known
// Responses API shapes in priority order: structured content blocks, then the
// flat output_text field, then a bare text field. No match yields "".
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("%w: OPENAI_API_KEY not set", domain.ErrConfig)
	}

	reqBody := responsesRequest{
		Model:           c.Model,
		Input:           prompt,
		MaxOutputTokens: c.MaxTokens,
		Temperature:     generationTemperature,
	}
	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal responses request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/responses", strings.TrimRight(c.BaseURL, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("failed to create responses request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", &domain.UpstreamNetworkError{Provider: c.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", &domain.UpstreamStatusError{Provider: c.Name(), StatusCode: resp.StatusCode, Body: string(body)}
	}

	var reply responsesReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return "", fmt.Errorf("failed to decode responses reply: %w", err)
	}

	return extractResponsesText(reply), nil
}

// Name identifies the provider in errors and logs.
func (c *OpenAIClient) Name() string { return "openai" }

func extractResponsesText(reply responsesReply) string {
	if len(reply.Output) > 0 {
		content := reply.Output[0].Content
		var parts []string
		for _, part := range content {
			if (part.Type == "output_text" || part.Type == "output") && part.Text != "" {
				parts = append(parts, part.Text)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "\n")
		}
		if len(content) > 0 && content[0].Text != "" {
			return content[0].Text
		}
	}
	if reply.OutputText != "" {
		return reply.OutputText
	}
	return reply.Text
}

var _ domain.TextAnalysisProvider = (*OpenAIClient)(nil)
