package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/milo-ai/milo-backend/internal/adapter"
	"github.com/milo-ai/milo-backend/internal/domain"
)

// ConversationalReply is the fixed envelope for non-command intents.
// The model's text is the message; no JSON parsing is involved.
type ConversationalReply struct {
	Type    string             `json:"type"`
	Intent  domain.IntentLabel `json:"intent"`
	Message string             `json:"message"`
}

// Converse answers greetings and questions in Milo's voice. Repeated
// identical questions within the cache TTL are served from the answer
// cache without a provider call.
func (a *Assistant) Converse(ctx context.Context, prompt string, intent domain.IntentLabel) (ConversationalReply, error) {
	if intent == domain.IntentQuestion {
		if answer, ok := a.cache.GetAnswer(prompt); ok {
			return ConversationalReply{
				Type:    "conversational",
				Intent:  intent,
				Message: answer,
			}, nil
		}
	}

	conversationPrompt := fmt.Sprintf(conversationPromptTemplate, prompt)

	raw, err := a.generate(ctx, a.models.Conversation, adapter.Text(conversationPrompt))
	if err != nil {
		return ConversationalReply{}, err
	}

	message := strings.TrimSpace(raw)

	if intent == domain.IntentQuestion {
		a.cache.SetAnswer(prompt, message)
	}

	return ConversationalReply{
		Type:    "conversational",
		Intent:  intent,
		Message: message,
	}, nil
}
