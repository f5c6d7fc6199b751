// Package normalize converts free-text model replies into validated
// structured values. Models are instructed to emit bare JSON but often
// wrap it in markdown code fences; this package is the single place
// where that markup is stripped and parse failures are classified.
package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/milo-ai/milo-backend/internal/domain"
)

// FallbackMessage is the canonical user-facing message substituted when
// a model reply cannot be parsed. Defined once so every call site
// degrades identically.
const FallbackMessage = "Sorry, I encountered an error processing your request."

// fenceReplacer strips markdown code-fence markers, with or without the
// json language tag, from a model reply.
var fenceReplacer = strings.NewReplacer("```json", "", "```", "")

// ParseError is a typed failure for model output that was expected to
// be JSON but was not. Raw carries the offending reply for logging.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("model reply is not valid JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Strip removes code-fence markers and surrounding whitespace.
func Strip(raw string) string {
	return strings.TrimSpace(fenceReplacer.Replace(raw))
}

// JSON strips fence markup and parses the remainder into a generic map.
func JSON(raw string) (map[string]any, error) {
	var out map[string]any
	if err := Decode(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Decode strips fence markup and unmarshals the remainder into v.
func Decode(raw string, v any) error {
	cleaned := Strip(raw)
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return &ParseError{Raw: raw, Err: err}
	}
	return nil
}

// Fallback returns the canonical degraded action substituted on parse
// failure. Malformed model output must never become an unhandled fault.
func Fallback() domain.StructuredAction {
	return domain.ErrorAction(FallbackMessage)
}
