package domain

import (
	"errors"
	"testing"
)

func TestParseIntent(t *testing.T) {
	tests := []struct {
		input   string
		want    IntentLabel
		wantErr bool
	}{
		{"command", IntentCommand, false},
		{"question", IntentQuestion, false},
		{"greeting", IntentGreeting, false},
		{"Command", "", true}, // labels are case-sensitive
		{"banter", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseIntent(tt.input)
			if tt.wantErr {
				var unknownErr *ErrUnknownIntent
				if !errors.As(err, &unknownErr) {
					t.Fatalf("ParseIntent(%q) error = %v, want ErrUnknownIntent", tt.input, err)
				}
				if unknownErr.Label != tt.input {
					t.Errorf("ErrUnknownIntent.Label = %q, want %q", unknownErr.Label, tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseIntent(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseIntent(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
