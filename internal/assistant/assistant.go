// Package assistant implements the Milo request flows: intent routing,
// command extraction, conversation and voice transcription. All flows
// go through one Provider; none of them knows which service backs it.
package assistant

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/milo-ai/milo-backend/internal/adapter"
	"github.com/milo-ai/milo-backend/internal/domain"
)

// Models holds the per-purpose model identifiers.
type Models struct {
	Router       string
	Command      string
	Conversation string
	Transcribe   string
}

// Assistant wires the provider, the intent cache and the prompt
// templates into the four request flows.
type Assistant struct {
	provider adapter.Provider
	models   Models
	cache    *Cache
	logger   *slog.Logger
}

// Option is a functional option for configuring Assistant.
type Option func(*Assistant)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) {
		a.logger = logger
	}
}

// WithCache sets a custom intent cache.
func WithCache(cache *Cache) Option {
	return func(a *Assistant) {
		a.cache = cache
	}
}

// New creates an Assistant over the given provider and models.
func New(provider adapter.Provider, models Models, opts ...Option) *Assistant {
	a := &Assistant{
		provider: provider,
		models:   models,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.cache == nil {
		a.cache = NewCache(WithCacheLogger(a.logger))
	}

	return a
}

// Respond runs the full flow for a user message: classify the intent,
// then branch to command extraction or conversation. The returned value
// is either a domain.StructuredAction or a ConversationalReply.
func (a *Assistant) Respond(ctx context.Context, prompt string, contacts []domain.Contact) (any, error) {
	intent, err := a.Classify(ctx, prompt)
	if err != nil {
		return nil, err
	}

	switch intent {
	case domain.IntentCommand:
		return a.ExtractCommand(ctx, prompt, contacts)
	case domain.IntentQuestion, domain.IntentGreeting:
		return a.Converse(ctx, prompt, intent)
	default:
		// Classify validates the label, so this is unreachable unless
		// the enum grows without this switch keeping up.
		return nil, fmt.Errorf("unhandled intent: %s", intent)
	}
}

// generate sends a payload through the provider, logging call metadata.
// The raw prompt is never logged; only its digest and estimated size.
func (a *Assistant) generate(ctx context.Context, model string, p adapter.Payload) (string, error) {
	a.logger.Debug("provider call",
		slog.String("provider", a.provider.Name()),
		slog.String("model", model),
		slog.String("prompt_digest", PromptKey(p.Text)[:12]),
		slog.Int("est_prompt_tokens", estimateTokens(p.Text)),
		slog.Bool("has_inline_data", p.Inline != nil),
	)

	return a.provider.GenerateContent(ctx, model, p)
}
