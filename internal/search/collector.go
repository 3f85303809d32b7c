// Package search implements the SearchWorker pool and the Collector:
// one worker per PathIndex shard scores candidates against the live
// query and feeds a shared bounded top-K merger tagged with a query
// generation, so stale results from a superseded query are always
// dropped rather than merged in.
package search

import (
	"sync"

	"github.com/dl/boo/internal/fpath"
)

// Entry is one collected result: a score and the path it belongs to.
type Entry struct {
	Score int32
	Path  fpath.Handle
}

// Collector is a bounded priority structure holding at most K entries,
// sorted by descending score, tagged with a generation matched against
// the query that is currently "live." Entries from any other
// generation are rejected outright by Update, never merged in — this
// is what lets SearchWorkers safely race ahead on a query that has
// already been superseded: their stale results are simply dropped
// at the Collector.
type Collector struct {
	mu         sync.Mutex
	capacity   int
	entries    []Entry
	generation int32
}

// NewCollector creates a Collector bounded to capacity entries.
func NewCollector(capacity int) *Collector {
	if capacity <= 0 {
		capacity = 1
	}
	return &Collector{capacity: capacity}
}

// Clear bumps the generation and empties the collector. Called once
// per query change, before the new generation is broadcast to workers,
// so that late updates tagged with the old generation are rejected by
// Update even if they arrive after Clear.
func (c *Collector) Clear() int32 {
	c.mu.Lock()
	c.generation++
	c.entries = c.entries[:0]
	gen := c.generation
	c.mu.Unlock()
	return gen
}

// Generation returns the collector's current generation tag.
func (c *Collector) Generation() int32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Update merges incoming (already sorted descending by score) with the
// existing entries, keeping at most capacity total, and returns the
// new lower bound: the capacity-th score if and only if the collector
// is now full, otherwise -1. If generation does not match the
// collector's current generation the call is a no-op and returns -1 —
// this is the generation gate that rejects stale results outright.
//
// Ties are broken in favor of the existing entry (stable merge):
// deterministic within a process.
func (c *Collector) Update(incoming []Entry, generation int32) int32 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation {
		return -1
	}

	merged := make([]Entry, 0, c.capacity)
	i, j := 0, 0
	for i < len(c.entries) && j < len(incoming) && len(merged) < c.capacity {
		if c.entries[i].Score >= incoming[j].Score {
			merged = append(merged, c.entries[i])
			i++
		} else {
			merged = append(merged, incoming[j])
			j++
		}
	}
	for i < len(c.entries) && len(merged) < c.capacity {
		merged = append(merged, c.entries[i])
		i++
	}
	for j < len(incoming) && len(merged) < c.capacity {
		merged = append(merged, incoming[j])
		j++
	}

	c.entries = merged

	if len(c.entries) == c.capacity {
		return c.entries[len(c.entries)-1].Score
	}
	return -1
}

// Snapshot returns a copy of the current entries and the generation
// they belong to, safe for the UI to read once per frame.
func (c *Collector) Snapshot() ([]Entry, int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out, c.generation
}

// Len returns the number of entries currently held.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
