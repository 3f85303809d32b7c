// Package walker implements a parallel breadth-first directory
// traversal: a fixed pool of worker goroutines drains a shared FIFO
// job queue of pending directories, each worker owning one shard of
// the PathIndex and one private byte arena for the path bytes it
// discovers. Termination is governed by a single shared
// active_walkers counter: a worker that finds the queue empty goes
// idle and decrements the counter; it only terminates once the
// counter reaches zero while the queue is still empty.
package walker

import (
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/unix"

	"github.com/dl/boo/internal/arena"
	"github.com/dl/boo/internal/fpath"
	"github.com/dl/boo/internal/pathindex"
)

// ErrorFunc receives walker errors (unreadable directories). It must
// not block; the walker never retries and never treats a reported
// error as fatal.
type ErrorFunc func(path string, err error)

// Options configures a Pool.
type Options struct {
	// Workers is the number of walker goroutines, and therefore the
	// number of shards they write into. Must match the PathIndex's
	// shard count.
	Workers int
	// Globs holds --glob include/exclude patterns (empty = no filter).
	Globs []string
}

// Pool runs W walker goroutines over a shared job queue, each owning
// shard i of index and its own private byte arena for path storage.
type Pool struct {
	index *pathindex.Index
	globs globFilter
	onErr ErrorFunc

	mu    sync.Mutex
	queue []string

	active atomic.Int32 // active_walkers
	wg     sync.WaitGroup
}

// Run starts the walker pool over root and returns immediately; use
// Wait to block until every worker has terminated. index must have
// exactly opts.Workers shards.
func Run(root string, index *pathindex.Index, opts Options, onErr ErrorFunc) *Pool {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if onErr == nil {
		onErr = func(string, error) {}
	}

	p := &Pool{
		index: index,
		globs: newGlobFilter(opts.Globs),
		onErr: onErr,
		queue: []string{root},
	}
	p.active.Store(int32(opts.Workers))

	for shard := 0; shard < opts.Workers; shard++ {
		p.wg.Add(1)
		go func(shard int) {
			defer p.wg.Done()
			p.work(shard)
		}(shard)
	}
	return p
}

// Wait blocks until every walker goroutine has terminated.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// ActiveWalkers returns the current active_walkers count: zero means
// indexing is complete.
func (p *Pool) ActiveWalkers() int32 {
	return p.active.Load()
}

// dequeue pops the front of the job queue. ok is false when the queue
// is currently empty (not necessarily permanently — other workers may
// still enqueue more directories).
func (p *Pool) dequeue() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.queue) == 0 {
		return "", false
	}
	dir := p.queue[0]
	p.queue = p.queue[1:]
	return dir, true
}

func (p *Pool) enqueue(dirs []string) {
	if len(dirs) == 0 {
		return
	}
	p.mu.Lock()
	p.queue = append(p.queue, dirs...)
	p.mu.Unlock()
}

func (p *Pool) work(shard int) {
	byteArena := arena.New[byte](arena.DefaultChunkCap)
	getdentsBuf := make([]byte, 64*1024)
	var dirents []dirent
	idle := false

	for {
		dir, ok := p.dequeue()
		if !ok {
			if !idle {
				idle = true
				p.active.Add(-1)
			}
			if p.active.Load() == 0 {
				return
			}
			runtime.Gosched()
			continue
		}
		if idle {
			idle = false
			p.active.Add(1)
		}

		dirents = p.processDir(dir, shard, byteArena, getdentsBuf, dirents)
	}
}

// processDir enumerates one directory one level deep and appends the
// discovered entries to this worker's shard. dirents and buf are
// caller-owned scratch space reused across calls.
func (p *Pool) processDir(dir string, shard int, byteArena *arena.Arena[byte], buf []byte, dirents []dirent) []dirent {
	fd, err := unix.Open(dir, unix.O_RDONLY|unix.O_DIRECTORY, 0)
	if err != nil {
		p.onErr(dir, err)
		return dirents
	}
	defer unix.Close(fd)

	var batch []fpath.Handle
	var subdirs []string
	var scratch []byte

	for {
		n, err := unix.Getdents(fd, buf)
		if err != nil {
			p.onErr(dir, err)
			break
		}
		if n == 0 {
			break
		}

		dirents = parseDirents(buf, n, dirents)
		for _, ent := range dirents {
			scratch = joinPath(scratch[:0], dir, ent.name)
			fullPath := string(scratch)

			isDir := ent.typ == dtDir
			if ent.typ == dtUnknown {
				var st unix.Stat_t
				if err := unix.Lstat(fullPath, &st); err == nil {
					isDir = st.Mode&unix.S_IFMT == unix.S_IFDIR
				}
			}

			if p.globs.excluded(fullPath) {
				continue
			}

			handle := fpath.New(byteArena.ExtendAndGet(scratch))
			batch = append(batch, handle)

			// Symlinked entries (DT_LNK) are indexed as leaf paths but
			// never traversed into, applied uniformly at every depth
			// rather than only at the root.
			if isDir && ent.typ != dtLnk {
				subdirs = append(subdirs, fullPath)
			}
		}
	}

	p.index.Shard(shard).AppendBatch(batch)
	p.enqueue(subdirs)
	return dirents
}

// joinPath concatenates a directory and entry name with a single
// separator into dst (reusing its backing array when it has capacity),
// avoiding filepath.Join's Clean/validation overhead — the walker
// controls both inputs, so no cleaning is needed.
func joinPath(dst []byte, dir string, name []byte) []byte {
	needsSep := len(dir) == 0 || dir[len(dir)-1] != fpath.Sep
	dst = append(dst, dir...)
	if needsSep {
		dst = append(dst, fpath.Sep)
	}
	dst = append(dst, name...)
	return dst
}
