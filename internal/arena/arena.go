// Package arena implements a grow-only, non-shrinking store of chunked
// slices. Elements are never moved or overwritten once written, so a
// slice handed back by ExtendAndGet stays valid and points at the same
// backing bytes for the arena's lifetime.
package arena

// DefaultChunkCap is the chunk capacity used when none is supplied.
// The original source uses 1,000,000 for byte arenas and 100,000 for
// PathHandle arenas; callers pick the constant that fits their element
// size via New.
const DefaultChunkCap = 1_000_000

// Arena is a chunked, append-only container of elements of type T.
//
// Each chunk is pre-allocated with make([]T, 0, cap) and is never
// appended past its capacity: once a chunk would overflow, it is
// sealed into the read-only chunk list and a fresh chunk is started.
// Because a Go slice's backing array address is stable once the slice
// stops growing, a slice returned by ExtendAndGet remains a valid
// pointer into memory the arena will never move or free early — the
// same guarantee the original source modeled with raw 'static
// pointers, but expressed here with ordinary Go slice semantics and no
// unsafe code. See DESIGN.md for why this repo prefers that over a
// synthetic (chunk, offset, length) index handle.
//
// Arena has no internal lock: the design is single-writer per arena
// (the owning worker goroutine). Concurrent readers must synchronize
// externally (see pathindex.Shard) before calling ReadOnlyView.
type Arena[T any] struct {
	chunkCap int
	current  []T
	sealed   [][]T
}

// New creates an Arena whose chunks have capacity chunkCap.
// A chunkCap <= 0 falls back to DefaultChunkCap.
func New[T any](chunkCap int) *Arena[T] {
	if chunkCap <= 0 {
		chunkCap = DefaultChunkCap
	}
	return &Arena[T]{
		chunkCap: chunkCap,
		current:  make([]T, 0, chunkCap),
	}
}

// Push appends a single element, sealing the current chunk first if it
// is already full.
func (a *Arena[T]) Push(v T) {
	if len(a.current) >= cap(a.current) {
		a.seal(a.chunkCap)
	}
	a.current = append(a.current, v)
}

// Extend appends a slice of elements as a unit. If the slice would not
// fit in the remaining capacity of the current chunk, the current
// chunk is sealed and a new chunk sized to fit the slice (at least
// chunkCap) is started — slices are never split across chunks.
func (a *Arena[T]) Extend(data []T) {
	if len(a.current)+len(data) > cap(a.current) {
		size := a.chunkCap
		if len(data) > size {
			size = len(data)
		}
		a.seal(size)
	}
	a.current = append(a.current, data...)
}

// ExtendAndGet behaves like Extend but returns a stable slice handle
// referring to exactly the bytes just written.
func (a *Arena[T]) ExtendAndGet(data []T) []T {
	if len(a.current)+len(data) > cap(a.current) {
		size := a.chunkCap
		if len(data) > size {
			size = len(data)
		}
		a.seal(size)
	}
	start := len(a.current)
	a.current = append(a.current, data...)
	return a.current[start : start+len(data) : start+len(data)]
}

// seal moves the current chunk into the sealed list and starts a fresh
// one with the given capacity.
func (a *Arena[T]) seal(nextCap int) {
	if len(a.current) > 0 {
		a.sealed = append(a.sealed, a.current)
	}
	a.current = make([]T, 0, nextCap)
}

// ReadOnlyView enumerates all non-empty chunks in insertion order
// (oldest first). The returned slices alias the arena's storage and
// must not be mutated; they remain valid for the arena's lifetime.
func (a *Arena[T]) ReadOnlyView() [][]T {
	view := make([][]T, 0, len(a.sealed)+1)
	for _, chunk := range a.sealed {
		if len(chunk) == 0 {
			continue
		}
		view = append(view, chunk)
	}
	if len(a.current) > 0 {
		view = append(view, a.current)
	}
	return view
}

// Len returns the total number of elements appended so far.
func (a *Arena[T]) Len() int {
	n := len(a.current)
	for _, chunk := range a.sealed {
		n += len(chunk)
	}
	return n
}
