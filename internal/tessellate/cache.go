/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tessellate

import (
	"hash/fnv"

	"github.com/hashicorp/golang-lru/v2/simplelru"

	"vecdraw/internal/vector"
)

// DefaultCacheSize bounds the number of shapes kept by NewCache(0).
const DefaultCacheSize = 256

// Entry is the cached geometry of one path shape.
type Entry struct {
	D      string
	Hash   uint64
	Fill   []float32
	Stroke []float32
	// StrokeSegments is the curve resolution Stroke was flattened with.
	StrokeSegments int
	// Origin is the min corner of the geometry before any render offset.
	Origin vector.Pt
}

// CacheStats counts cache traffic since construction or the last Clear.
// Evictions includes entries dropped by Evict and by staleness.
type CacheStats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Len       int
}

// Cache maps a shape id to its tessellated geometry. An entry is valid only
// while its description string is unchanged. The cache is bounded with LRU
// eviction and is not safe for concurrent use.
type Cache struct {
	lru   *simplelru.LRU[string, *Entry]
	stats CacheStats
}

// NewCache creates a cache holding at most size shapes.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c := &Cache{}
	// NewLRU only fails for a non-positive size
	c.lru, _ = simplelru.NewLRU[string, *Entry](size, func(string, *Entry) { c.stats.Evictions++ })
	return c
}

// HashD is the content hash stored alongside each entry.
func HashD(d string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(d))
	return h.Sum64()
}

// Get returns the entry for id when it was built from d with the given
// stroke resolution. A stale entry is dropped and counted as a miss.
func (c *Cache) Get(id, d string, strokeSegments int) (*Entry, bool) {
	e, ok := c.lru.Get(id)
	if !ok {
		c.stats.Misses++
		return nil, false
	}
	if e.Hash != HashD(d) || e.D != d || e.StrokeSegments != strokeSegments {
		c.lru.Remove(id)
		c.stats.Misses++
		return nil, false
	}
	c.stats.Hits++
	return e, true
}

// Put stores e under id, filling in its hash.
func (c *Cache) Put(id string, e *Entry) {
	e.Hash = HashD(e.D)
	c.lru.Add(id, e)
}

// Evict forgets id, typically because the shape was deleted.
func (c *Cache) Evict(id string) { c.lru.Remove(id) }

// Clear drops every entry and resets the counters.
func (c *Cache) Clear() {
	c.lru.Purge()
	c.stats = CacheStats{}
}

func (c *Cache) Len() int { return c.lru.Len() }

func (c *Cache) Stats() CacheStats {
	s := c.stats
	s.Len = c.lru.Len()
	return s
}
