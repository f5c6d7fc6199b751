package domain

import (
	"errors"
	"sync"
	"testing"
)

func TestNewKeyRing(t *testing.T) {
	tests := []struct {
		name     string
		keys     []string
		expected int
	}{
		{
			name:     "multiple keys",
			keys:     []string{"key1", "key2", "key3"},
			expected: 3,
		},
		{
			name:     "duplicates dropped",
			keys:     []string{"key1", "key2", "key1"},
			expected: 2,
		},
		{
			name:     "empty strings dropped",
			keys:     []string{"", "key1", ""},
			expected: 1,
		},
		{
			name:     "nil slice",
			keys:     nil,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ring := NewKeyRing(tt.keys)
			if ring.Len() != tt.expected {
				t.Errorf("Len() = %d, want %d", ring.Len(), tt.expected)
			}
		})
	}
}

func TestKeyRingCurrent(t *testing.T) {
	ring := NewKeyRing([]string{"key1", "key2"})

	key, idx, err := ring.Current()
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if key != "key1" || idx != 0 {
		t.Errorf("Current() = (%q, %d), want (key1, 0)", key, idx)
	}
}

func TestKeyRingCurrentEmpty(t *testing.T) {
	ring := NewKeyRing(nil)

	_, _, err := ring.Current()
	if !errors.Is(err, ErrNoKeysAvailable) {
		t.Errorf("Current() error = %v, want ErrNoKeysAvailable", err)
	}
}

func TestKeyRingAdvanceWrapsAround(t *testing.T) {
	ring := NewKeyRing([]string{"key1", "key2", "key3"})

	expected := []string{"key2", "key3", "key1"}
	for i, want := range expected {
		_, idx, _ := ring.Current()
		if !ring.Advance(idx) {
			t.Fatalf("Advance(%d) = false on step %d, want true", idx, i)
		}
		key, _, _ := ring.Current()
		if key != want {
			t.Errorf("step %d: Current() = %q, want %q", i, key, want)
		}
	}
}

func TestKeyRingAdvanceStaleIndex(t *testing.T) {
	ring := NewKeyRing([]string{"key1", "key2", "key3"})

	// Two requests observe index 0, both report a failure against it.
	_, idx, _ := ring.Current()

	if !ring.Advance(idx) {
		t.Fatal("first Advance should move the cursor")
	}
	if ring.Advance(idx) {
		t.Error("second Advance with a stale index should not move the cursor")
	}
	if ring.Index() != 1 {
		t.Errorf("Index() = %d, want 1", ring.Index())
	}
}

func TestKeyRingAdvanceEmpty(t *testing.T) {
	ring := NewKeyRing(nil)
	if ring.Advance(0) {
		t.Error("Advance on an empty ring should return false")
	}
}

func TestKeyRingConcurrentAccess(t *testing.T) {
	ring := NewKeyRing([]string{"key1", "key2", "key3"})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key, idx, err := ring.Current()
				if err != nil {
					t.Errorf("Current() error = %v", err)
					return
				}
				if key == "" {
					t.Error("Current() returned empty key")
					return
				}
				ring.Advance(idx)
			}
		}()
	}
	wg.Wait()

	if idx := ring.Index(); idx < 0 || idx >= ring.Len() {
		t.Errorf("Index() = %d out of range after concurrent use", idx)
	}
}
