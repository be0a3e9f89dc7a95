package cache

import (
	"context"
	"testing"
	"time"

	"founderlens/internal/globaltime"
)

func TestKeyNormalization(t *testing.T) {
	base := Key("acme corp")
	variants := []string{"Acme Corp", "  acme   corp  ", "ACME\tCORP"}
	for _, variant := range variants {
		if got := Key(variant); got != base {
			t.Fatalf("Key(%q) = %q, want %q", variant, got, base)
		}
	}
	if Key("acme corp") == Key("acme corporation") {
		t.Fatalf("distinct queries must not collide")
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, Key("acme")); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, Key("acme"), []byte(`{"score":42}`), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, ok, err := store.Get(ctx, Key("acme"))
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if string(value) != `{"score":42}` {
		t.Fatalf("unexpected cached value: %q", value)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	globaltime.SetMockTime(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	defer globaltime.ResetTime()

	store := NewMemoryStore()
	ctx := context.Background()
	key := Key("expiring entry")

	if err := store.Set(ctx, key, []byte("payload"), 30*time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	globaltime.AdvanceMockTime(29 * time.Minute)
	if _, ok, _ := store.Get(ctx, key); !ok {
		t.Fatalf("entry expired too early")
	}

	globaltime.AdvanceMockTime(2 * time.Minute)
	if _, ok, _ := store.Get(ctx, key); ok {
		t.Fatalf("entry should have expired")
	}
}
