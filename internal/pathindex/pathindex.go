// Package pathindex implements PathIndex: a sharded, concurrently
// readable set of fpath.Handle values, one shard per worker. Writers
// are walker goroutines; readers are search workers and the UI.
package pathindex

import (
	"sync"

	"github.com/dl/boo/internal/arena"
	"github.com/dl/boo/internal/fpath"
)

// ShardChunkCap is the chunk capacity for each shard's handle arena.
const ShardChunkCap = 100_000

// Shard is one partition of the index: an Arena of handles guarded by
// a readers-writer lock. A given Handle lives in exactly one shard for
// the program's lifetime; handles are only ever appended, never
// reordered or removed.
type Shard struct {
	mu    sync.RWMutex
	store *arena.Arena[fpath.Handle]
}

func newShard() *Shard {
	return &Shard{store: arena.New[fpath.Handle](ShardChunkCap)}
}

// AppendBatch appends the given handles under the write lock. Walkers
// buffer handles locally per directory and call this once per
// directory batch, keeping the critical section short.
func (s *Shard) AppendBatch(handles []fpath.Handle) {
	if len(handles) == 0 {
		return
	}
	s.mu.Lock()
	s.store.Extend(handles)
	s.mu.Unlock()
}

// ReadOnlyView takes a snapshot of the shard's current chunk list under
// the read lock, then returns it for lock-free reading — cheap, since
// it only captures the already-committed chunk boundaries, never the
// unfinished tail of a chunk mid-append.
func (s *Shard) ReadOnlyView() [][]fpath.Handle {
	s.mu.RLock()
	view := s.store.ReadOnlyView()
	s.mu.RUnlock()
	return view
}

// Len returns the number of handles currently in the shard.
func (s *Shard) Len() int {
	s.mu.RLock()
	n := s.store.Len()
	s.mu.RUnlock()
	return n
}

// Index is a vector of N shards, N equal to the configured worker
// count. Each PathHandle lives in exactly one shard for the program's
// lifetime, decided by the walker that discovered it.
type Index struct {
	shards []*Shard
}

// New creates an Index with the given shard count.
func New(shardCount int) *Index {
	if shardCount <= 0 {
		shardCount = 1
	}
	shards := make([]*Shard, shardCount)
	for i := range shards {
		shards[i] = newShard()
	}
	return &Index{shards: shards}
}

// ShardCount returns the number of shards.
func (idx *Index) ShardCount() int {
	return len(idx.shards)
}

// Shard returns the i-th shard.
func (idx *Index) Shard(i int) *Shard {
	return idx.shards[i]
}

// Len returns the total number of handles across all shards.
func (idx *Index) Len() int {
	n := 0
	for _, s := range idx.shards {
		n += s.Len()
	}
	return n
}
