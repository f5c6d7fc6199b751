// Package security provides data leakage prevention for log output.
package security

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
)

// RedactedPlaceholder replaces sensitive data in log output.
const RedactedPlaceholder = "[REDACTED]"

// credentialPatterns matches the credential formats this service
// actually handles, plus a generic catch-all for key-shaped strings.
var credentialPatterns = []*regexp.Regexp{
	// Google AI keys: AIza...
	regexp.MustCompile(`AIza[a-zA-Z0-9_-]{30,}`),
	// Anthropic keys: sk-ant-...
	regexp.MustCompile(`sk-ant-[a-zA-Z0-9_-]{20,}`),
	// Other sk- style keys
	regexp.MustCompile(`sk-[a-zA-Z0-9]{20,}`),
	// Bearer tokens embedded in header dumps
	regexp.MustCompile(`Bearer\s+[a-zA-Z0-9_-]{20,}`),
	// Keys leaked through query strings: key=...
	regexp.MustCompile(`key=[a-zA-Z0-9_-]{20,}`),
	// Generic long alphanumeric strings that look like keys
	regexp.MustCompile(`[a-zA-Z0-9_-]{40,}`),
}

// sensitiveKeyFragments flags attribute names whose values are always
// redacted regardless of content.
var sensitiveKeyFragments = []string{
	"authorization",
	"api_key",
	"apikey",
	"api-key",
	"secret",
	"password",
	"token",
	"bearer",
	"credential",
}

// Redact scans a string for credential patterns and replaces them.
func Redact(s string) string {
	result := s
	for _, pattern := range credentialPatterns {
		result = pattern.ReplaceAllString(result, RedactedPlaceholder)
	}
	return result
}

// RedactedHandler wraps an slog.Handler and scrubs credentials from
// every record before it reaches the inner handler.
type RedactedHandler struct {
	inner slog.Handler
}

// NewRedactedHandler wraps an existing handler with credential redaction.
func NewRedactedHandler(inner slog.Handler) *RedactedHandler {
	return &RedactedHandler{inner: inner}
}

// Enabled reports whether the handler handles records at the given level.
func (h *RedactedHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle redacts the record message and attributes, then delegates.
func (h *RedactedHandler) Handle(ctx context.Context, r slog.Record) error {
	clean := slog.Record{
		Time:    r.Time,
		Message: Redact(r.Message),
		Level:   r.Level,
		PC:      r.PC,
	}

	r.Attrs(func(a slog.Attr) bool {
		clean.AddAttrs(redactAttr(a))
		return true
	})

	return h.inner.Handle(ctx, clean)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *RedactedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = redactAttr(a)
	}
	return &RedactedHandler{inner: h.inner.WithAttrs(redacted)}
}

// WithGroup returns a new handler with the given group name.
func (h *RedactedHandler) WithGroup(name string) slog.Handler {
	return &RedactedHandler{inner: h.inner.WithGroup(name)}
}

// redactAttr scrubs a single attribute.
func redactAttr(a slog.Attr) slog.Attr {
	if isSensitiveKey(strings.ToLower(a.Key)) {
		return slog.String(a.Key, RedactedPlaceholder)
	}

	switch v := a.Value.Any().(type) {
	case string:
		return slog.String(a.Key, Redact(v))
	case []string:
		redacted := make([]string, len(v))
		for i, s := range v {
			redacted[i] = Redact(s)
		}
		return slog.Any(a.Key, redacted)
	}

	return a
}

// isSensitiveKey reports whether an attribute name implies a credential value.
func isSensitiveKey(key string) bool {
	for _, fragment := range sensitiveKeyFragments {
		if strings.Contains(key, fragment) {
			return true
		}
	}
	return false
}
