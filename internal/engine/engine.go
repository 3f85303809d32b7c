// Package engine wires together the PathIndex, walker pool, SearchWorker
// pool, and Collector into a single pipeline. One Engine owns the three
// shared counters (active_walkers, active_searchers, should_quit) with a
// lifecycle bounded by one Start call, rather than as package-level
// globals: should_quit is an Engine field, and the two active counters
// live in the walker and search pools the Engine holds.
package engine

import (
	"sync/atomic"

	"github.com/dl/boo/internal/pathindex"
	"github.com/dl/boo/internal/search"
	"github.com/dl/boo/internal/walker"
)

// DefaultCollectorCapacity is the default Collector bound (K), matching
// the UI's default visible result-list length.
const DefaultCollectorCapacity = 15

// Options configures an Engine.
type Options struct {
	// Root is the directory to index.
	Root string
	// Workers is the worker/shard count; also the walker pool size.
	Workers int
	// Globs holds --glob include/exclude patterns for the walker.
	Globs []string
	// CollectorCapacity bounds the Collector (K); DefaultCollectorCapacity
	// when zero.
	CollectorCapacity int
	// OnWalkError receives directory-walk errors.
	OnWalkError walker.ErrorFunc
}

// Engine owns the whole discovery/scoring/collection pipeline for one
// run: a PathIndex, a walker.Pool, a search.Pool, and a Collector, plus
// the shared should_quit flag that stops every SearchWorker.
type Engine struct {
	index     *pathindex.Index
	walkers   *walker.Pool
	searchers *search.Pool
	collector *search.Collector

	shouldQuit atomic.Bool
}

// Start launches the walker pool and the SearchWorker pool and returns
// immediately; it does not block on indexing. Search is idle (no query
// broadcast) until Search is called.
func Start(opts Options) *Engine {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	capacity := opts.CollectorCapacity
	if capacity <= 0 {
		capacity = DefaultCollectorCapacity
	}

	e := &Engine{
		index:     pathindex.New(opts.Workers),
		collector: search.NewCollector(capacity),
	}
	e.walkers = walker.Run(opts.Root, e.index, walker.Options{
		Workers: opts.Workers,
		Globs:   opts.Globs,
	}, opts.OnWalkError)
	e.searchers = search.NewPool(e.index, e.collector, &e.shouldQuit, e.walkingDone)
	return e
}

// walkingDone reports whether the walker pool has finished indexing
// (active_walkers == 0), consumed here by SearchWorkers and by the UI
// through IndexingComplete.
func (e *Engine) walkingDone() bool {
	return e.walkers.ActiveWalkers() == 0
}

// Search broadcasts a new query to every SearchWorker and clears the
// Collector. An empty query is never broadcast — the Collector is
// simply cleared, and the UI shows no results.
func (e *Engine) Search(query string) {
	if query == "" {
		e.collector.Clear()
		return
	}
	e.searchers.Search(query)
}

// Snapshot returns the Collector's current top-K entries and the
// generation they belong to, for the UI to render once per frame.
func (e *Engine) Snapshot() ([]search.Entry, int32) {
	return e.collector.Snapshot()
}

// IndexingComplete reports whether the walker pool has finished and
// every SearchWorker has completed at least one full pass since.
func (e *Engine) IndexingComplete() bool {
	return e.walkingDone() && e.searchers.IndexingComplete()
}

// IndexedCount returns the total number of paths discovered so far,
// for the UI's humanize-formatted status line.
func (e *Engine) IndexedCount() int {
	return e.index.Len()
}

// ActiveWalkers returns the live active_walkers counter.
func (e *Engine) ActiveWalkers() int32 {
	return e.walkers.ActiveWalkers()
}

// ActiveSearchers returns the live active_searchers counter.
func (e *Engine) ActiveSearchers() int32 {
	return e.searchers.ActiveSearchers()
}

// Stop sets should_quit, which every SearchWorker observes within a
// bounded number of chunk-scans and exits on.
// It does not wait for the walker pool, which terminates on its own
// once the filesystem scan completes; call Wait after Stop if a full,
// deterministic shutdown is required before the process exits.
func (e *Engine) Stop() {
	e.shouldQuit.Store(true)
}

// Wait blocks until the walker pool has fully terminated. It does not
// wait on SearchWorkers, which keep running (idle, polling their input
// channel) until Stop is called — the UI event loop is expected to call
// Stop once it decides to exit.
func (e *Engine) Wait() {
	e.walkers.Wait()
}
