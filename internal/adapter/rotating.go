package adapter

import (
	"context"
	"log/slog"

	"github.com/milo-ai/milo-backend/internal/domain"
	"github.com/milo-ai/milo-backend/internal/ui"
)

// Factory builds a single-key Provider for a given credential. The
// RotatingAdapter constructs a fresh provider per attempt so the key
// under the ring cursor is always the one used.
type Factory func(apiKey string) Provider

// RotatingAdapter wraps a key ring and a provider factory behind the
// Provider interface. On an authentication failure it advances the ring
// and retries; every other failure is returned immediately. One call
// never tries the same credential twice.
type RotatingAdapter struct {
	ring    *domain.KeyRing
	factory Factory
	name    string
	logger  *slog.Logger
}

// RotatingAdapterOption is a functional option for configuring RotatingAdapter.
type RotatingAdapterOption func(*RotatingAdapter)

// WithRotationLogger sets a custom logger.
func WithRotationLogger(logger *slog.Logger) RotatingAdapterOption {
	return func(a *RotatingAdapter) {
		a.logger = logger
	}
}

// NewRotatingAdapter creates a RotatingAdapter over the given ring.
func NewRotatingAdapter(ring *domain.KeyRing, factory Factory, opts ...RotatingAdapterOption) *RotatingAdapter {
	a := &RotatingAdapter{
		ring:    ring,
		factory: factory,
		// The name is a constant of the provider type, not of any one
		// credential, so resolve it once here.
		name:   factory("").Name(),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Name returns the identifier of the provider under rotation.
func (a *RotatingAdapter) Name() string {
	return a.name
}

// GenerateContent tries the call with the credential under the cursor,
// rotating on auth failures until every credential has been tried once.
func (a *RotatingAdapter) GenerateContent(ctx context.Context, model string, p Payload) (string, error) {
	maxAttempts := a.ring.Len()
	if maxAttempts == 0 {
		return "", domain.ErrNoKeysAvailable
	}
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		key, idx, err := a.ring.Current()
		if err != nil {
			return "", err
		}

		provider := a.factory(key)
		out, err := provider.GenerateContent(ctx, model, p)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !IsAuthError(err) {
			// Rate limits, provider outages and malformed requests are
			// not the key's fault. Fail fast without rotating.
			return "", err
		}

		a.logger.Warn("auth failure, rotating key",
			slog.Int("attempt", attempt),
			slog.Int("key_index", idx),
			slog.String("error", err.Error()),
		)

		if a.ring.Advance(idx) {
			next, _, _ := a.ring.Current()
			ui.PrintSwitching(key, next)
		}
	}

	return "", &KeysExhaustedError{Attempts: maxAttempts, Last: lastErr}
}
