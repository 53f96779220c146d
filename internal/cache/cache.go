// Package cache defines the externally-owned event cache the engine reads
// from and appends to. The engine never evicts or mutates existing entries;
// bucket partitioning is opaque to it.
package cache

import (
	"sync"

	"github.com/lectern-reader/lectern/internal/model"
)

// Bucket names used by the retrieval engine.
const (
	BucketPassages = "passages"
	BucketIndexes  = "indexes"
)

// Entry pairs a cached event with the sources it was seen on.
type Entry struct {
	Event   model.ContentEvent `json:"event"`
	Sources []string           `json:"sources,omitempty"`
}

// Cache is the engine's view of the cache collaborator. False negatives are
// acceptable: a miss simply falls through to a network lookup.
type Cache interface {
	// GetEvents returns the entries currently in a bucket.
	GetEvents(bucket string) []Entry

	// StoreEvents appends entries to a bucket. Implementations decide
	// retention; the engine only hands back newly fetched events.
	StoreEvents(bucket string, entries []Entry)
}

// Memory is an in-process Cache. Entries are deduplicated by event id
// within a bucket, keeping the first occurrence. Safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	buckets map[string][]Entry
	seen    map[string]map[string]struct{}
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{
		buckets: make(map[string][]Entry),
		seen:    make(map[string]map[string]struct{}),
	}
}

// GetEvents returns a copy of the bucket's entries.
func (m *Memory) GetEvents(bucket string) []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := m.buckets[bucket]
	if len(entries) == 0 {
		return nil
	}
	return append([]Entry(nil), entries...)
}

// StoreEvents appends entries to a bucket, skipping ids already present.
func (m *Memory) StoreEvents(bucket string, entries []Entry) {
	if len(entries) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := m.seen[bucket]
	if ids == nil {
		ids = make(map[string]struct{})
		m.seen[bucket] = ids
	}
	for _, e := range entries {
		if e.Event.ID == "" {
			continue
		}
		if _, ok := ids[e.Event.ID]; ok {
			continue
		}
		ids[e.Event.ID] = struct{}{}
		m.buckets[bucket] = append(m.buckets[bucket], e)
	}
}
