// Package domain contains the core business entities and value objects.
package domain

import (
	"errors"
	"sync"
)

// ErrNoKeysAvailable is returned when the ring holds no credentials.
var ErrNoKeysAvailable = errors.New("no API keys available in the ring")

// KeyRing holds an ordered list of provider credentials and a single
// rotation cursor shared by every in-flight request. The cursor only
// moves forward when an authentication failure is reported against the
// index that observed it, so two concurrent requests failing on the
// same stale key advance the ring once, not twice.
type KeyRing struct {
	mu    sync.Mutex
	keys  []string
	index int
}

// NewKeyRing creates a KeyRing from the given credentials.
// Empty strings and duplicates are dropped; order is preserved.
func NewKeyRing(keys []string) *KeyRing {
	r := &KeyRing{keys: make([]string, 0, len(keys))}

	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if key == "" {
			continue
		}
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		r.keys = append(r.keys, key)
	}

	return r
}

// Current returns the credential under the cursor and the cursor position.
// The position must be passed back to Advance to report a failure.
func (r *KeyRing) Current() (string, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.keys) == 0 {
		return "", 0, ErrNoKeysAvailable
	}
	return r.keys[r.index], r.index, nil
}

// Advance moves the cursor to the next credential, but only if it still
// points at the position the caller failed on. Returns true if the cursor
// moved. A false return means another request already rotated past this
// key and the caller should simply re-read Current.
func (r *KeyRing) Advance(from int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.keys) == 0 || r.index != from {
		return false
	}
	r.index = (r.index + 1) % len(r.keys)
	return true
}

// Len returns the number of credentials in the ring.
func (r *KeyRing) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.keys)
}

// Index returns the current cursor position.
func (r *KeyRing) Index() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index
}
