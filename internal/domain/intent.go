package domain

import "fmt"

// IntentLabel is the classified purpose of a user message.
// The set is closed: any other value coming back from the model is an
// error condition, never a new variant.
type IntentLabel string

const (
	// IntentCommand means the user wants to perform a blockchain action.
	IntentCommand IntentLabel = "command"

	// IntentQuestion means the user is asking for information or help.
	IntentQuestion IntentLabel = "question"

	// IntentGreeting means small talk: hello, thanks, how are you.
	IntentGreeting IntentLabel = "greeting"
)

// ErrUnknownIntent wraps a label outside the enumerated set.
type ErrUnknownIntent struct {
	Label string
}

func (e *ErrUnknownIntent) Error() string {
	return fmt.Sprintf("unknown intent label %q", e.Label)
}

// ParseIntent validates a raw label against the enumerated set.
func ParseIntent(s string) (IntentLabel, error) {
	switch IntentLabel(s) {
	case IntentCommand, IntentQuestion, IntentGreeting:
		return IntentLabel(s), nil
	default:
		return "", &ErrUnknownIntent{Label: s}
	}
}
