package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	// DefaultClaudeBaseURL is the default Anthropic API endpoint.
	DefaultClaudeBaseURL = "https://api.anthropic.com/v1"

	// claudeAPIVersion is the required anthropic-version header value.
	claudeAPIVersion = "2023-06-01"

	// claudeMaxTokens bounds every completion.
	claudeMaxTokens = 1024
)

// ClaudeAdapter implements Provider for the Anthropic Messages API with a
// single credential. Inline binary payloads are not forwarded; only the
// text part of the prompt is sent, so transcription quality degrades to
// whatever the instruction text alone can produce.
type ClaudeAdapter struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// ClaudeAdapterOption is a functional option for configuring ClaudeAdapter.
type ClaudeAdapterOption func(*ClaudeAdapter)

// WithClaudeBaseURL sets a custom base URL for the Anthropic API.
func WithClaudeBaseURL(url string) ClaudeAdapterOption {
	return func(c *ClaudeAdapter) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithClaudeHTTPClient sets a custom HTTP client.
func WithClaudeHTTPClient(client *http.Client) ClaudeAdapterOption {
	return func(c *ClaudeAdapter) {
		c.httpClient = client
	}
}

// NewClaudeAdapter creates a new ClaudeAdapter with the given API key.
func NewClaudeAdapter(apiKey string, opts ...ClaudeAdapterOption) *ClaudeAdapter {
	c := &ClaudeAdapter{
		apiKey:  apiKey,
		baseURL: DefaultClaudeBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Name returns the provider identifier.
func (c *ClaudeAdapter) Name() string {
	return "claude"
}

// GenerateContent performs a messages request against the Anthropic API
// and returns the first content block's text.
func (c *ClaudeAdapter) GenerateContent(ctx context.Context, model string, p Payload) (string, error) {
	claudeReq := ClaudeRequest{
		Model:     model,
		MaxTokens: claudeMaxTokens,
		Messages: []ClaudeMessage{
			{Role: "user", Content: p.Text},
		},
	}

	body, err := json.Marshal(claudeReq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal claude request: %w", err)
	}

	url := c.baseURL + "/messages"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", claudeAPIVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to execute claude request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read claude response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		message := string(respBody)
		var claudeErr ClaudeErrorResponse
		if err := json.Unmarshal(respBody, &claudeErr); err == nil && claudeErr.Error.Message != "" {
			message = claudeErr.Error.Message
		}
		return "", &ProviderError{
			Provider: c.Name(),
			Status:   resp.StatusCode,
			Kind:     classifyStatus(resp.StatusCode, message),
			Message:  message,
		}
	}

	var claudeResp ClaudeResponse
	if err := json.Unmarshal(respBody, &claudeResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal claude response: %w", err)
	}

	if len(claudeResp.Content) == 0 {
		return "", &ProviderError{
			Provider: c.Name(),
			Status:   resp.StatusCode,
			Kind:     KindInvalid,
			Message:  "response contained no content blocks",
		}
	}

	return claudeResp.Content[0].Text, nil
}

// ============================================================================
// Anthropic API Types
// ============================================================================

// ClaudeRequest represents an Anthropic messages request.
type ClaudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []ClaudeMessage `json:"messages"`
}

// ClaudeMessage is a single message in the conversation.
type ClaudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ClaudeResponse represents an Anthropic messages response.
type ClaudeResponse struct {
	ID      string              `json:"id"`
	Model   string              `json:"model"`
	Content []ClaudeContentPart `json:"content"`
	Usage   *ClaudeUsage        `json:"usage,omitempty"`
}

// ClaudeContentPart is one block of response content.
type ClaudeContentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ClaudeUsage contains token usage information.
type ClaudeUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// ClaudeErrorResponse represents an error response from the Anthropic API.
type ClaudeErrorResponse struct {
	Error ClaudeErrorDetail `json:"error"`
}

// ClaudeErrorDetail contains error details.
type ClaudeErrorDetail struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
