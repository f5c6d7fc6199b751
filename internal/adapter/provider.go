// Package adapter provides implementations for external AI provider integrations.
// It uses the Adapter pattern to abstract provider-specific APIs behind a common interface.
package adapter

import (
	"context"
)

// Payload is the prompt sent to a provider: plain text, optionally
// accompanied by inline binary data (base64) for transcription.
type Payload struct {
	// Text is the instruction or prompt text.
	Text string

	// Inline carries base64-encoded binary data, nil for text-only prompts.
	Inline *InlineData
}

// InlineData is a base64-encoded binary attachment with its MIME type.
type InlineData struct {
	MIMEType string
	Data     string
}

// Text builds a text-only payload.
func Text(s string) Payload {
	return Payload{Text: s}
}

// Provider defines the uniform contract every concrete AI provider
// implements. Callers depend only on this interface and never branch
// on provider identity.
type Provider interface {
	// GenerateContent sends the payload to the given model and returns
	// the model's raw text reply.
	GenerateContent(ctx context.Context, model string, p Payload) (string, error)

	// Name returns the provider's identifier string.
	Name() string
}
