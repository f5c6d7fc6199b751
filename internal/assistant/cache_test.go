package assistant

import (
	"testing"
	"time"

	"github.com/milo-ai/milo-backend/internal/domain"
)

func TestPromptKey(t *testing.T) {
	k1 := PromptKey("hello")
	k2 := PromptKey("hello")
	k3 := PromptKey("hello ")

	if k1 != k2 {
		t.Error("identical prompts must produce identical keys")
	}
	if k1 == k3 {
		t.Error("distinct prompts must produce distinct keys")
	}
	if len(k1) != 64 {
		t.Errorf("key length = %d, want 64 hex chars", len(k1))
	}
}

func TestCacheRoundtrip(t *testing.T) {
	c := NewCache()

	c.Set("k", "v")
	got, ok := c.Get("k")
	if !ok || got != "v" {
		t.Errorf("Get() = (%q, %v), want (v, true)", got, ok)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("Get() on a missing key should report a miss")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(WithCacheTTL(10 * time.Millisecond))

	c.Set("k", "v")
	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("entry should have expired")
	}
}

func TestCacheNamespaceIsolation(t *testing.T) {
	c := NewCache()
	prompt := "what is sui?"

	c.SetIntent(prompt, domain.IntentQuestion)

	// The intent entry must not leak into the answer namespace.
	if _, ok := c.GetAnswer(prompt); ok {
		t.Error("intent entry visible through GetAnswer")
	}

	c.SetAnswer(prompt, "Sui is a layer-1 blockchain.")

	label, ok := c.GetIntent(prompt)
	if !ok || label != domain.IntentQuestion {
		t.Errorf("GetIntent() = (%q, %v)", label, ok)
	}
	answer, ok := c.GetAnswer(prompt)
	if !ok || answer != "Sui is a layer-1 blockchain." {
		t.Errorf("GetAnswer() = (%q, %v)", answer, ok)
	}
}

func TestCacheRejectsCorruptIntent(t *testing.T) {
	c := NewCache()
	prompt := "hello"

	// A stored value outside the intent set is treated as a miss.
	c.Set(PromptKey(prompt)+intentSuffix, "not-an-intent")

	if _, ok := c.GetIntent(prompt); ok {
		t.Error("corrupt intent value should read as a miss")
	}
}

func TestCacheStats(t *testing.T) {
	c := NewCache()

	c.Set("k", "v")
	c.Get("k")
	c.Get("missing")

	hits, misses, size := c.Stats()
	if hits != 1 || misses != 1 || size != 1 {
		t.Errorf("Stats() = (%d, %d, %d), want (1, 1, 1)", hits, misses, size)
	}
}

func TestCacheCleanup(t *testing.T) {
	c := NewCache(WithCacheTTL(1 * time.Millisecond))

	c.Set("k1", "v1")
	c.Set("k2", "v2")
	time.Sleep(10 * time.Millisecond)

	c.cleanup()

	if _, _, size := c.Stats(); size != 0 {
		t.Errorf("size after cleanup = %d, want 0", size)
	}
}
