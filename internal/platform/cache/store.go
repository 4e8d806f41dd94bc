// Package cache provides the timestamped key-value store used by the
// market-data services. Entries never expire inside the store: staleness is
// judged by the caller against its own TTL, so an expired entry remains
// readable as a fallback (lazy expiry).
package cache

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// Entry is a stored value with the time it was written.
type Entry struct {
	Key       string    `json:"key"`
	Value     []byte    `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// Fresh reports whether the entry is still within ttl as of now.
func (e Entry) Fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.Timestamp) < ttl
}

// Store abstracts the cache backing store so services can be tested against
// an in-memory implementation and run against Redis in production.
type Store interface {
	// Get returns the entry for key, or nil if absent. Stale entries are
	// still returned; the caller decides what stale means.
	Get(ctx context.Context, key string) (*Entry, error)

	// Set stores value under key with the given write time, overwriting any
	// previous entry (last writer wins).
	Set(ctx context.Context, key string, value []byte, ts time.Time) error

	// Keys returns the entries (key and timestamp, value omitted) whose key
	// starts with prefix, sorted by key.
	Keys(ctx context.Context, prefix string) ([]Entry, error)

	// Clear removes all entries whose key starts with prefix.
	Clear(ctx context.Context, prefix string) error
}

// MemoryStore is a mutex-guarded map implementation of Store.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]Entry
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]Entry)}
}

// Get returns the entry for key, or nil if absent.
func (s *MemoryStore) Get(_ context.Context, key string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.items[key]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

// Set stores value under key, overwriting any previous entry.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ts time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = Entry{Key: key, Value: value, Timestamp: ts}
	return nil
}

// Keys returns key and timestamp for every entry under prefix, sorted by key.
func (s *MemoryStore) Keys(_ context.Context, prefix string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, len(s.items))
	for k, e := range s.items {
		if strings.HasPrefix(k, prefix) {
			out = append(out, Entry{Key: k, Timestamp: e.Timestamp})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Clear removes all entries under prefix.
func (s *MemoryStore) Clear(_ context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k := range s.items {
		if strings.HasPrefix(k, prefix) {
			delete(s.items, k)
		}
	}
	return nil
}
