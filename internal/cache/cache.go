// Package cache provides the result cache fronting the verification
// pipeline. Keys are derived from the normalized query so that casing and
// stray whitespace do not fragment the cache.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"founderlens/internal/globaltime"
)

const keyPrefix = "verify:"

// Store is the backend contract. Implementations must treat a missing key
// and an expired key identically.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Key maps a raw user query to its cache key. The query is lowercased,
// trimmed, and inner whitespace is collapsed before hashing, so
// "  Acme   Corp " and "acme corp" share an entry.
func Key(query string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(query)), " ")
	sum := sha256.Sum256([]byte(normalized))
	return keyPrefix + hex.EncodeToString(sum[:])
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is the in-process backend used in development and tests.
// Entries are reaped lazily on read.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !globaltime.Now().Before(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	s.entries[key] = memoryEntry{value: value, expiresAt: globaltime.Now().Add(ttl)}
	s.mu.Unlock()
	return nil
}
