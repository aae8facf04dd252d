// Lookalike - Product Catalog Normalization and Similarity Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lookalike

// Package cache provides a bounded LRU memo for pairwise similarity
// scores. Ranking a catalog touches every pair many times; memoizing the
// symmetric score keeps repeated queries O(1) per pair without letting
// the memo grow with the square of the catalog.
package cache

import (
	"sync"

	"github.com/tomtom215/lookalike/internal/metrics"
)

// entry is a node in the LRU list.
type entry struct {
	key   string
	value float64
	prev  *entry
	next  *entry
}

// ScoreCache is a thread-safe LRU cache of float64 scores keyed by
// product pair. All operations are O(1). A doubly-linked list with
// sentinel nodes tracks recency; head.next is most recently used.
type ScoreCache struct {
	mu sync.RWMutex

	capacity int
	items    map[string]*entry
	head     *entry
	tail     *entry

	hits   int64
	misses int64
}

// NewScoreCache creates a cache holding at most capacity scores.
// Non-positive capacities fall back to a default of 4096.
func NewScoreCache(capacity int) *ScoreCache {
	if capacity <= 0 {
		capacity = 4096
	}

	c := &ScoreCache{
		capacity: capacity,
		items:    make(map[string]*entry, capacity),
		head:     &entry{},
		tail:     &entry{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head

	return c
}

// PairKey builds the symmetric cache key for two product ids, ordering
// them so (a,b) and (b,a) hit the same entry.
func PairKey(idA, idB string) string {
	if idA > idB {
		idA, idB = idB, idA
	}
	return idA + "|" + idB
}

// Get returns the cached score for key, marking it most recently used.
func (c *ScoreCache) Get(key string) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		c.misses++
		metrics.SimilarityCacheMisses.Inc()
		return 0, false
	}

	c.moveToFront(e)
	c.hits++
	metrics.SimilarityCacheHits.Inc()
	return e.value, true
}

// Add stores or updates a score, evicting the least recently used entry
// when over capacity.
func (c *ScoreCache) Add(key string, value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.addToFront(e)
	c.items[key] = e

	for len(c.items) > c.capacity {
		c.evictOldest()
	}
}

// Len returns the current number of cached scores.
func (c *ScoreCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Clear drops every cached score. Called when the catalog changes, since
// scores are only valid against the corpus they were computed from.
func (c *ScoreCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*entry, c.capacity)
	c.head.next = c.tail
	c.tail.prev = c.head
}

// Stats returns hit/miss counters and the current size.
func (c *ScoreCache) Stats() (hits, misses int64, size int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses, len(c.items)
}

// Internal methods (must be called with lock held)

func (c *ScoreCache) addToFront(e *entry) {
	e.prev = c.head
	e.next = c.head.next
	c.head.next.prev = e
	c.head.next = e
}

func (c *ScoreCache) moveToFront(e *entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	c.addToFront(e)
}

func (c *ScoreCache) evictOldest() {
	oldest := c.tail.prev
	if oldest == c.head {
		return
	}
	oldest.prev.next = oldest.next
	oldest.next.prev = oldest.prev
	delete(c.items, oldest.key)
}
