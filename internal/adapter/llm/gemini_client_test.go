package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kumarshrey19021990-arch/amioverreacting/internal/domain"
)

func decodeGenerateReply(t *testing.T, raw string) generateReply {
	t.Helper()
	var reply generateReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		t.Fatalf("failed to unmarshal fixture: %v", err)
	}
	return reply
}

func TestExtractGenerateText_CandidateOutput(t *testing.T) {
	reply := decodeGenerateReply(t, `{"candidates":[{"output":"direct output"}]}`)

	if got := extractGenerateText(reply); got != "direct output" {
		t.Fatalf("expected candidate output, got %q", got)
	}
}

func TestExtractGenerateText_ContentParts(t *testing.T) {
	reply := decodeGenerateReply(t, `{"candidates":[{"content":[{"text":"a"},{"text":"b"}]}]}`)

	if got := extractGenerateText(reply); got != "a\nb" {
		t.Fatalf("expected joined parts, got %q", got)
	}
}

func TestExtractGenerateText_ContentString(t *testing.T) {
	reply := decodeGenerateReply(t, `{"candidates":[{"content":"plain content"}]}`)

	if got := extractGenerateText(reply); got != "plain content" {
		t.Fatalf("expected string content, got %q", got)
	}
}

func TestExtractGenerateText_FlatFallbacks(t *testing.T) {
	if got := extractGenerateText(decodeGenerateReply(t, `{"output_text":"flat"}`)); got != "flat" {
		t.Fatalf("expected output_text fallback, got %q", got)
	}
	if got := extractGenerateText(decodeGenerateReply(t, `{"text":"bare"}`)); got != "bare" {
		t.Fatalf("expected text fallback, got %q", got)
	}
	if got := extractGenerateText(decodeGenerateReply(t, `{}`)); got != "" {
		t.Fatalf("expected empty extraction, got %q", got)
	}
}

func TestGeminiClient_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta2/models/gemini-1.5-flash:generate" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if key := r.Header.Get("x-goog-api-key"); key != "test-key" {
			t.Fatalf("unexpected api key header: %s", key)
		}
		if r.URL.RawQuery != "" {
			t.Fatalf("credentials must not travel in the URL, got query %q", r.URL.RawQuery)
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Prompt.Text == "" {
			t.Fatalf("expected prompt text in request")
		}
		if req.MaxOutputTokens != 1000 {
			t.Fatalf("unexpected maxOutputTokens: %d", req.MaxOutputTokens)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{"output": `{"summary":"ok"}`}},
		})
	}))
	defer server.Close()

	client := NewGeminiClient("test-key", "gemini-1.5-flash", 1000)
	client.BaseURL = server.URL

	got, err := client.Complete(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"summary":"ok"}` {
		t.Fatalf("unexpected reply text: %q", got)
	}
}

func TestGeminiClient_MissingKeyIsConfigError(t *testing.T) {
	client := NewGeminiClient("", "gemini-1.5-flash", 1000)

	_, err := client.Complete(context.Background(), "prompt")
	if !errors.Is(err, domain.ErrConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestGeminiClient_TransportErrorOmitsKey(t *testing.T) {
	client := NewGeminiClient("sk-sensitive-credential", "gemini-1.5-flash", 1000)
	client.BaseURL = "http://127.0.0.1:1"

	_, err := client.Complete(context.Background(), "prompt")

	var netErr *domain.UpstreamNetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected upstream network error, got %v", err)
	}
	if strings.Contains(err.Error(), "sk-sensitive-credential") {
		t.Fatalf("transport error text leaks the api key: %v", err)
	}
}

func TestGeminiClient_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewGeminiClient("test-key", "gemini-1.5-flash", 1000)
	client.BaseURL = server.URL

	_, err := client.Complete(context.Background(), "prompt")

	var statusErr *domain.UpstreamStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected upstream status error, got %v", err)
	}
	if statusErr.StatusCode != http.StatusForbidden {
		t.Fatalf("unexpected status: %d", statusErr.StatusCode)
	}
}
