package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestKeyDeterministic(t *testing.T) {
	a := Key("media", "https://example.com")
	b := Key("media", "https://example.com")
	if a != b {
		t.Fatalf("key not deterministic: %s vs %s", a, b)
	}
	if a == Key("fonts", "https://example.com") {
		t.Fatal("different tools must produce different keys")
	}
	if a == Key("media", "https://example.org") {
		t.Fatal("different URLs must produce different keys")
	}
}

func TestRoundtrip(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "cache.sqlite"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	key := Key("media", "https://example.com")

	if _, ok, err := store.Get(ctx, key); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	payload := []byte(`{"summary":{"totalMediaQueries":3}}`)
	if err := store.Put(ctx, key, "https://example.com", "media", payload, time.Hour); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := store.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if string(got) != string(payload) {
		t.Fatalf("payload mismatch: %s", got)
	}
}

func TestExpiryIsAMiss(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "cache.sqlite"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	key := Key("media", "https://expired.example.com")
	if err := store.Put(ctx, key, "https://expired.example.com", "media", []byte("{}"), -time.Minute); err != nil {
		t.Fatalf("put: %v", err)
	}

	if _, ok, err := store.Get(ctx, key); err != nil || ok {
		t.Fatalf("expired entry must read as a miss, got ok=%v err=%v", ok, err)
	}
}

func TestClear(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "cache.sqlite"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	_ = store.Put(ctx, Key("media", "https://a.example.com"), "https://a.example.com", "media", []byte("{}"), time.Hour)
	_ = store.Put(ctx, Key("media", "https://b.example.com"), "https://b.example.com", "media", []byte("{}"), -time.Hour)

	n, err := store.Clear(ctx, false)
	if err != nil {
		t.Fatalf("clear expired: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 expired row removed, got %d", n)
	}

	n, err = store.Clear(ctx, true)
	if err != nil {
		t.Fatalf("clear all: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 remaining row removed, got %d", n)
	}
}
