package adapter

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies provider failures for the rotation logic.
type ErrorKind string

const (
	// KindAuth means the credential was rejected. Rotation-eligible.
	KindAuth ErrorKind = "auth"

	// KindTransient covers rate limits, timeouts and provider 5xx.
	// Never rotated: the key is fine, the provider is not.
	KindTransient ErrorKind = "transient"

	// KindInvalid covers malformed requests and other client errors.
	KindInvalid ErrorKind = "invalid"
)

// ProviderError is a classified failure from a concrete provider call.
type ProviderError struct {
	Provider string
	Status   int
	Kind     ErrorKind
	Message  string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s API error [%d]: %s", e.Provider, e.Status, e.Message)
}

// IsAuthError reports whether err is a credential rejection.
func IsAuthError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Kind == KindAuth
}

// classifyStatus maps an HTTP status plus the provider's error message
// onto an ErrorKind. Gemini reports bad keys as 400 API_KEY_INVALID, so
// the message is inspected alongside the status.
func classifyStatus(status int, message string) ErrorKind {
	switch {
	case status == 401 || status == 403:
		return KindAuth
	case strings.Contains(message, "API_KEY_INVALID") ||
		strings.Contains(message, "API key not valid"):
		return KindAuth
	case status == 429 || status == 408 || status >= 500:
		return KindTransient
	default:
		return KindInvalid
	}
}

// KeysExhaustedError aggregates a full unsuccessful pass over the key
// ring. Last carries the most recent underlying cause.
type KeysExhaustedError struct {
	Attempts int
	Last     error
}

func (e *KeysExhaustedError) Error() string {
	return fmt.Sprintf("all %d API keys failed: %v", e.Attempts, e.Last)
}

func (e *KeysExhaustedError) Unwrap() error {
	return e.Last
}
