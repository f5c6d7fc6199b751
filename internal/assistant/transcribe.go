package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/milo-ai/milo-backend/internal/adapter"
)

// correctionLabelRe strips the label the correction pass tends to echo
// back at the start of its reply.
var correctionLabelRe = regexp.MustCompile(`(?i)^corrected transcription:\s*`)

// Transcribe converts base64-encoded audio into corrected text in two
// sequential provider calls: a raw transcription pass biased by the
// language hint, then a domain-correction pass that fixes misheard
// cryptocurrency terms. Input shape validation (presence, base64
// well-formedness) belongs to the HTTP layer and must happen before
// this method is called.
func (a *Assistant) Transcribe(ctx context.Context, audioB64, mimeType, language string) (string, error) {
	raw, err := a.generate(ctx, a.models.Transcribe, adapter.Payload{
		Text: fmt.Sprintf(transcribePromptTemplate, language),
		Inline: &adapter.InlineData{
			MIMEType: mimeType,
			Data:     audioB64,
		},
	})
	if err != nil {
		return "", fmt.Errorf("transcription pass failed: %w", err)
	}
	transcript := strings.TrimSpace(raw)

	corrected, err := a.generate(ctx, a.models.Transcribe,
		adapter.Text(fmt.Sprintf(correctionPromptTemplate, transcript)))
	if err != nil {
		return "", fmt.Errorf("correction pass failed: %w", err)
	}

	out := strings.TrimSpace(corrected)
	out = correctionLabelRe.ReplaceAllString(out, "")

	return out, nil
}
