package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/milo-ai/milo-backend/internal/adapter"
	"github.com/milo-ai/milo-backend/internal/domain"
	"github.com/milo-ai/milo-backend/internal/normalize"
	"github.com/milo-ai/milo-backend/internal/ui"
)

// Classify determines the intent of a user message. The cache is
// consulted first; on a miss the router model is asked and its reply
// validated against the closed intent set before being cached.
func (a *Assistant) Classify(ctx context.Context, prompt string) (domain.IntentLabel, error) {
	start := time.Now()
	if label, ok := a.cache.GetIntent(prompt); ok {
		ui.PrintCacheHit(PromptKey(prompt), time.Since(start))
		a.logger.Debug("intent cache hit",
			slog.String("prompt_digest", PromptKey(prompt)[:12]),
			slog.String("intent", string(label)),
		)
		return label, nil
	}

	routerPrompt := fmt.Sprintf(routerPromptTemplate, prompt)

	raw, err := a.generate(ctx, a.models.Router, adapter.Text(routerPrompt))
	if err != nil {
		return "", err
	}

	parsed, err := normalize.JSON(raw)
	if err != nil {
		return "", err
	}

	rawLabel, _ := parsed["intent"].(string)
	label, err := domain.ParseIntent(rawLabel)
	if err != nil {
		// An out-of-set label is a normalization failure, not a new intent.
		return "", fmt.Errorf("router reply rejected: %w", err)
	}

	a.cache.SetIntent(prompt, label)

	return label, nil
}
