// Package adapter provides implementations for external AI provider integrations.
package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultGeminiBaseURL is the default Gemini API endpoint.
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultTimeout is the default HTTP client timeout for provider calls.
	DefaultTimeout = 30 * time.Second
)

// GeminiAdapter implements Provider for the Google Gemini API using a
// single credential. Multi-key rotation is layered on top by RotatingAdapter.
type GeminiAdapter struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// GeminiAdapterOption is a functional option for configuring GeminiAdapter.
type GeminiAdapterOption func(*GeminiAdapter)

// WithBaseURL sets a custom base URL for the Gemini API.
func WithBaseURL(url string) GeminiAdapterOption {
	return func(g *GeminiAdapter) {
		g.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) GeminiAdapterOption {
	return func(g *GeminiAdapter) {
		g.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) GeminiAdapterOption {
	return func(g *GeminiAdapter) {
		g.httpClient.Timeout = timeout
	}
}

// NewGeminiAdapter creates a new GeminiAdapter with the given API key.
func NewGeminiAdapter(apiKey string, opts ...GeminiAdapterOption) *GeminiAdapter {
	g := &GeminiAdapter{
		apiKey:  apiKey,
		baseURL: DefaultGeminiBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Name returns the provider identifier.
func (g *GeminiAdapter) Name() string {
	return "gemini"
}

// GenerateContent performs a generateContent request against the Gemini API
// and returns the first candidate's text.
func (g *GeminiAdapter) GenerateContent(ctx context.Context, model string, p Payload) (string, error) {
	geminiReq := buildGeminiRequest(p)

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, model, g.apiKey)

	body, err := json.Marshal(geminiReq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal gemini request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to execute gemini request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read gemini response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		message := string(respBody)
		var geminiErr GeminiErrorResponse
		if err := json.Unmarshal(respBody, &geminiErr); err == nil && geminiErr.Error.Message != "" {
			message = geminiErr.Error.Message
		}
		return "", &ProviderError{
			Provider: g.Name(),
			Status:   resp.StatusCode,
			Kind:     classifyStatus(resp.StatusCode, message),
			Message:  message,
		}
	}

	var geminiResp GeminiResponse
	if err := json.Unmarshal(respBody, &geminiResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal gemini response: %w", err)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", &ProviderError{
			Provider: g.Name(),
			Status:   resp.StatusCode,
			Kind:     KindInvalid,
			Message:  "response contained no candidates",
		}
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}

// buildGeminiRequest maps a Payload onto Gemini's contents/parts shape.
// Inline data, when present, is placed before the instruction text.
func buildGeminiRequest(p Payload) GeminiRequest {
	parts := make([]GeminiPart, 0, 2)
	if p.Inline != nil {
		parts = append(parts, GeminiPart{
			InlineData: &GeminiInlineData{
				MIMEType: p.Inline.MIMEType,
				Data:     p.Inline.Data,
			},
		})
	}
	if p.Text != "" {
		parts = append(parts, GeminiPart{Text: p.Text})
	}

	return GeminiRequest{
		Contents: []GeminiContent{
			{Role: "user", Parts: parts},
		},
	}
}

// ============================================================================
// Gemini API Types
// ============================================================================

// GeminiRequest represents a Gemini generateContent request.
type GeminiRequest struct {
	Contents []GeminiContent `json:"contents"`
}

// GeminiContent represents a content block in Gemini format.
type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

// GeminiPart is either a text part or an inline binary part.
type GeminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *GeminiInlineData `json:"inlineData,omitempty"`
}

// GeminiInlineData carries base64-encoded binary data.
type GeminiInlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

// GeminiResponse represents a Gemini generateContent response.
type GeminiResponse struct {
	Candidates    []GeminiCandidate    `json:"candidates"`
	UsageMetadata *GeminiUsageMetadata `json:"usageMetadata,omitempty"`
}

// GeminiCandidate represents a single generated candidate.
type GeminiCandidate struct {
	Content      GeminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
	Index        int           `json:"index"`
}

// GeminiUsageMetadata contains token usage information.
type GeminiUsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

// GeminiErrorResponse represents an error response from the Gemini API.
type GeminiErrorResponse struct {
	Error GeminiErrorDetail `json:"error"`
}

// GeminiErrorDetail contains error details.
type GeminiErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}
