package search

import (
	"sort"
	"sync/atomic"
	"time"

	"github.com/dl/boo/internal/fuzzy"
	"github.com/dl/boo/internal/pathindex"
)

// ChunkSize is the number of candidates scored per Collector
// submission: large enough to amortize the Collector's lock, small
// enough that a newer query or shutdown is noticed quickly.
const ChunkSize = 50

// pollInterval is how long a worker with no pending query sleeps
// before checking its channel again.
const pollInterval = time.Millisecond

// queryMsg is one broadcast from Pool.Search to a Worker: the query
// text and the generation the Collector assigned it at Clear time.
// Carrying the generation alongside the text (rather than having each
// Worker mint its own local counter on receive) is what lets a
// Worker's Collector.Update calls land in the same generation space
// the Collector itself tracks: the generation gate only works if both
// sides agree on what "the current generation" is.
type queryMsg struct {
	text string
	gen  int32
}

// Worker scans one PathIndex shard against the live query and feeds
// Collector. One Worker runs per shard; Pool owns the whole set plus
// the shared active_searchers counter.
type Worker struct {
	shard       *pathindex.Shard
	queries     <-chan queryMsg
	collector   *Collector
	matcher     *fuzzy.Matcher
	shouldQuit  *atomic.Bool
	walkingDone func() bool

	generation int32
	input      *string
	currentMin int32
	indexDone  atomic.Bool
}

// IndexingComplete reports whether this worker has completed at least
// one full pass over its shard since the walker pool finished — purely
// informational; it never stops the worker.
func (w *Worker) IndexingComplete() bool {
	return w.indexDone.Load()
}

// Run drives the worker loop until shouldQuit is set or the query
// channel is closed.
func (w *Worker) Run() {
	for !w.shouldQuit.Load() {
		if w.input == nil {
			if !w.waitForQuery() {
				return // channel closed
			}
			if w.input == nil {
				continue
			}
		}

		query := *w.input
		gen := w.generation
		w.currentMin = 0

		aborted := w.scanOnce(query, gen)
		if !aborted {
			if w.walkingDone() {
				w.indexDone.Store(true)
			}
			w.input = nil
		}
	}
}

// waitForQuery blocks briefly until a query arrives or shouldQuit is
// observed, then drains the channel for the latest value. Returns
// false only if the channel has been closed.
func (w *Worker) waitForQuery() bool {
	for w.input == nil && !w.shouldQuit.Load() {
		select {
		case m, ok := <-w.queries:
			if !ok {
				return false
			}
			w.generation = m.gen
			v := m.text
			w.input = &v
			w.drainExtra()
		default:
			time.Sleep(pollInterval)
		}
	}
	return true
}

// drainExtra drains any further queued queries so only the latest
// value survives, adopting its generation so the Worker's notion of
// "current generation" always matches whatever the Collector assigned
// the query it is about to scan under.
func (w *Worker) drainExtra() bool {
	got := false
	for {
		select {
		case m, ok := <-w.queries:
			if !ok {
				w.shouldQuit.Store(true)
				return true
			}
			w.generation = m.gen
			v := m.text
			w.input = &v
			got = true
		default:
			return got
		}
	}
}

// scanOnce walks the shard's current read-only view once, in
// ChunkSize-sized batches, submitting survivors to the Collector.
// Returns true if a newer query or shutdown aborted the scan early.
func (w *Worker) scanOnce(query string, gen int32) bool {
	view := w.shard.ReadOnlyView()
	q := []byte(query)

	var batch []Entry
	for _, chunk := range view {
		for start := 0; start < len(chunk); start += ChunkSize {
			end := start + ChunkSize
			if end > len(chunk) {
				end = len(chunk)
			}

			batch = batch[:0]
			for _, h := range chunk[start:end] {
				score := w.matcher.Score(q, h.Bytes(), h.Segments())
				if score > w.currentMin {
					batch = append(batch, Entry{Score: score, Path: h})
				}
			}
			sort.Slice(batch, func(i, j int) bool { return batch[i].Score > batch[j].Score })

			// Submitting even an empty batch keeps the generation check
			// running on a steady cadence regardless of whether anything
			// in this chunk survived the score filter.
			w.currentMin = w.collector.Update(batch, gen)

			if w.shouldQuit.Load() {
				return true
			}
			if w.drainExtra() {
				return true
			}
		}
	}
	return false
}

// Pool runs one Worker per shard of a PathIndex, sharing a single
// Collector and the two process-wide coordination flags.
type Pool struct {
	workers    []*Worker
	senders    []chan queryMsg
	collector  *Collector
	shouldQuit *atomic.Bool
	active     atomic.Int32
}

// NewPool starts a SearchWorker for every shard of idx, scoring
// against collector and stopping when shouldQuit is set. walkingDone
// reports whether the walker pool has finished (used for the
// informational per-worker "indexing complete" flag).
func NewPool(idx *pathindex.Index, collector *Collector, shouldQuit *atomic.Bool, walkingDone func() bool) *Pool {
	n := idx.ShardCount()
	p := &Pool{
		collector:  collector,
		shouldQuit: shouldQuit,
	}
	p.active.Store(int32(n))

	for i := 0; i < n; i++ {
		ch := make(chan queryMsg, 8)
		w := &Worker{
			shard:       idx.Shard(i),
			queries:     ch,
			collector:   collector,
			matcher:     fuzzy.New(),
			shouldQuit:  shouldQuit,
			walkingDone: walkingDone,
		}
		p.workers = append(p.workers, w)
		p.senders = append(p.senders, ch)

		go func(w *Worker) {
			defer p.active.Add(-1)
			w.Run()
		}(w)
	}
	return p
}

// Search clears the Collector and broadcasts a new query, tagged with
// the generation the Collector just assigned it, to every worker. The
// caller must never invoke Search with an empty query — callers should
// clear the Collector directly instead and leave it empty.
func (p *Pool) Search(query string) {
	gen := p.collector.Clear()
	msg := queryMsg{text: query, gen: gen}
	for _, ch := range p.senders {
		select {
		case ch <- msg:
		default:
			// The channel is full of queries the worker has not consumed
			// yet; drop the oldest one to make room. The worker drains the
			// channel on receive and scans only the latest query it finds.
			select {
			case <-ch:
			default:
			}
			ch <- msg
		}
	}
}

// ActiveSearchers returns the number of SearchWorkers still running.
func (p *Pool) ActiveSearchers() int32 {
	return p.active.Load()
}

// IndexingComplete reports whether every worker has completed a full
// pass since the walker pool finished.
func (p *Pool) IndexingComplete() bool {
	for _, w := range p.workers {
		if !w.IndexingComplete() {
			return false
		}
	}
	return true
}
