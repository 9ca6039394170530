package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// Miss before Set
	_, hit, err := c.Get(ctx, "tree:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("Get before Set should miss")
	}

	// Round trip
	if err := c.Set(ctx, "tree:abc", []byte("payload"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "tree:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit || string(data) != "payload" {
		t.Errorf("Get = %q hit=%v, want payload hit", data, hit)
	}

	// Delete removes the entry
	if err := c.Delete(ctx, "tree:abc"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "tree:abc"); hit {
		t.Error("Get after Delete should miss")
	}

	// Deleting again is not an error
	if err := c.Delete(ctx, "tree:abc"); err != nil {
		t.Errorf("Delete of absent key errored: %v", err)
	}
}

func TestFileCacheExpiration(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("stale"), -time.Second); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("expired entry should miss")
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// SceneKey is stable for the same source hash
	if k.SceneKey("abc") != k.SceneKey("abc") {
		t.Error("SceneKey should be deterministic")
	}
	if !strings.HasPrefix(k.SceneKey("abc"), "scene:") {
		t.Errorf("SceneKey missing stage prefix: %s", k.SceneKey("abc"))
	}

	// TreeKey should include partition parameters in the hash
	tk1 := k.TreeKey("abc", TreeKeyOpts{Resolution: 0.05, AreaTol: 0.001})
	tk2 := k.TreeKey("abc", TreeKeyOpts{Resolution: 0.10, AreaTol: 0.001})
	if tk1 == tk2 {
		t.Error("Different TreeKeyOpts should produce different keys")
	}

	// ArtifactKey should include render parameters in the hash
	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "dot"})
	if ak1 == ak2 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}

	// Width and the label flags participate in the key too
	ak3 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "plan", Width: 400})
	ak4 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "plan", Width: 800})
	if ak3 == ak4 {
		t.Error("Different widths should produce different keys")
	}
	ak5 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Detailed: true})
	if ak1 == ak5 {
		t.Error("Detailed flag should produce a different key")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "tenant:123:")

	// All keys should be prefixed
	sk := scoped.SceneKey("abc")
	if !strings.HasPrefix(sk, "tenant:123:scene:") {
		t.Errorf("ScopedKeyer SceneKey should be prefixed: %s", sk)
	}

	tk := scoped.TreeKey("abc", TreeKeyOpts{})
	if !strings.HasPrefix(tk, "tenant:123:") {
		t.Errorf("ScopedKeyer TreeKey should be prefixed: %s", tk)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.SceneKey("abc")
	if !strings.HasPrefix(key, "prefix:scene:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	// Non-nil error is wrapped
	base := errors.New("transient")
	err := Retryable(base)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}

	// Error message is preserved
	if err.Error() != base.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}

	// Non-wrapped errors are not retryable
	if IsRetryable(errors.New("plain")) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	// Success on first try
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately
	permanent := errors.New("permanent")
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return permanent
	})
	if err != permanent {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	// Retryable error triggers retries
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(errors.New("transient"))
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(errors.New("transient"))
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
