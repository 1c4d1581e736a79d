// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package registry

import (
	"sync"
	"sync/atomic"
)

// Sharding constants.
const (
	// shardCount is the number of shards for reduced lock contention.
	// Must be a power of 2 for fast modulo via bitwise AND.
	shardCount = 16

	// shardMask is used for fast shard selection (shardCount - 1).
	shardMask = shardCount - 1
)

// hasher computes a hash for a key, used for shard selection.
type hasher[K any] func(K) uint64

// uint64Hasher returns the key itself as the hash (identity hash).
// Keys derived from FNV are already well distributed.
func uint64Hasher[K ~uint64](key K) uint64 { return uint64(key) }

// table is a thread-safe sharded map for resident resources. Unlike
// an LRU cache, entries are never evicted behind the caller's back:
// resources stay until explicitly deleted or garbage collected, so a
// found entry is always safe to share.
type table[K comparable, V any] struct {
	shards [shardCount]*tableShard[K, V]
	hasher hasher[K]

	// Statistics (atomic for zero-allocation reads)
	hits   atomic.Uint64
	misses atomic.Uint64
}

type tableShard[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
}

func newTable[K comparable, V any](h hasher[K]) *table[K, V] {
	t := &table[K, V]{hasher: h}
	for i := range t.shards {
		t.shards[i] = &tableShard[K, V]{entries: make(map[K]V)}
	}
	return t
}

func (t *table[K, V]) shard(key K) *tableShard[K, V] {
	return t.shards[t.hasher(key)&shardMask]
}

// Find returns the value for key, if present.
func (t *table[K, V]) Find(key K) (V, bool) {
	s := t.shard(key)
	s.mu.RLock()
	v, ok := s.entries[key]
	s.mu.RUnlock()

	if ok {
		t.hits.Add(1)
	} else {
		t.misses.Add(1)
	}
	return v, ok
}

// Insert stores value under key, replacing any previous entry.
func (t *table[K, V]) Insert(key K, value V) {
	s := t.shard(key)
	s.mu.Lock()
	s.entries[key] = value
	s.mu.Unlock()
}

// FindOrInsert returns the resident value for key, inserting value
// if the key was absent. The second result reports whether the
// returned value was already resident.
func (t *table[K, V]) FindOrInsert(key K, value V) (V, bool) {
	s := t.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.entries[key]; ok {
		t.hits.Add(1)
		return v, true
	}
	t.misses.Add(1)
	s.entries[key] = value
	return value, false
}

// Delete removes key. Returns true if an entry was removed.
func (t *table[K, V]) Delete(key K) bool {
	s := t.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return false
	}
	delete(s.entries, key)
	return true
}

// Range calls f for every entry. f returning false stops iteration
// within the current shard and skips the remaining shards.
//
// Entries inserted or deleted concurrently may or may not be seen.
func (t *table[K, V]) Range(f func(key K, value V) bool) {
	for _, s := range t.shards {
		s.mu.RLock()
		cont := true
		for k, v := range s.entries {
			if !f(k, v) {
				cont = false
				break
			}
		}
		s.mu.RUnlock()
		if !cont {
			return
		}
	}
}

// Len returns the total number of entries across all shards.
func (t *table[K, V]) Len() int {
	total := 0
	for _, s := range t.shards {
		s.mu.RLock()
		total += len(s.entries)
		s.mu.RUnlock()
	}
	return total
}

// Stats returns the hit/miss counters.
func (t *table[K, V]) Stats() (hits, misses uint64) {
	return t.hits.Load(), t.misses.Load()
}
