// Package domain contains the core business entities and value objects.
// These types are framework-agnostic and represent the heart of the application.
package domain

// ProviderKind identifies which external LLM service backs the assistant.
type ProviderKind string

const (
	ProviderGemini ProviderKind = "gemini"
	ProviderClaude ProviderKind = "claude"
)

// IsValid reports whether the kind is one of the supported providers.
func (k ProviderKind) IsValid() bool {
	return k == ProviderGemini || k == ProviderClaude
}
