package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/milo-ai/milo-backend/internal/adapter"
	"github.com/milo-ai/milo-backend/internal/domain"
	"github.com/milo-ai/milo-backend/internal/normalize"
)

// ExtractCommand converts a natural-language command into a structured
// wallet action. Contact-name resolution, the asset whitelist and
// number-word conversion are enforced by prompt instruction; the asset
// and amount rules are then re-checked locally since the model's output
// is untrusted. A malformed reply degrades to the canonical error
// action instead of failing the request.
func (a *Assistant) ExtractCommand(ctx context.Context, prompt string, contacts []domain.Contact) (domain.StructuredAction, error) {
	if contacts == nil {
		contacts = []domain.Contact{}
	}
	contactsJSON, err := json.Marshal(contacts)
	if err != nil {
		return domain.StructuredAction{}, fmt.Errorf("failed to marshal contacts: %w", err)
	}

	commandPrompt := fmt.Sprintf(commandPromptTemplate, contactsJSON, prompt)

	raw, err := a.generate(ctx, a.models.Command, adapter.Text(commandPrompt))
	if err != nil {
		return domain.StructuredAction{}, err
	}

	var action domain.StructuredAction
	if err := normalize.Decode(raw, &action); err != nil {
		var pe *normalize.ParseError
		if errors.As(err, &pe) {
			a.logger.Error("command reply was not valid JSON",
				slog.String("raw", pe.Raw),
			)
			return normalize.Fallback(), nil
		}
		return domain.StructuredAction{}, err
	}

	return action.Validate(), nil
}
