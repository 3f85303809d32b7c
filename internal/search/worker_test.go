package search

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/dl/boo/internal/fpath"
	"github.com/dl/boo/internal/fuzzy"
	"github.com/dl/boo/internal/pathindex"
)

func handleOf(path string) fpath.Handle {
	return fpath.New([]byte(path))
}

func TestWorkerFullPassMarksIndexingComplete(t *testing.T) {
	idx := pathindex.New(1)
	idx.Shard(0).AppendBatch([]fpath.Handle{
		handleOf("/a/foo.txt"),
		handleOf("/a/bar.txt"),
		handleOf("/a/foobar.txt"),
	})

	var quit atomic.Bool
	collector := NewCollector(10)
	pool := NewPool(idx, collector, &quit, func() bool { return true })
	defer quit.Store(true)

	pool.Search("foo")

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if pool.IndexingComplete() {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if !pool.IndexingComplete() {
		t.Fatalf("worker never completed a full pass")
	}

	got, _ := collector.Snapshot()
	if len(got) == 0 {
		t.Fatalf("expected matches for query \"foo\", got none")
	}
	for _, e := range got {
		if e.Score <= 0 {
			t.Fatalf("unexpected non-positive score in results: %+v", e)
		}
	}
}

func TestWorkerShutdownIsResponsive(t *testing.T) {
	idx := pathindex.New(1)
	handles := make([]fpath.Handle, 0, 5000)
	for i := 0; i < 5000; i++ {
		handles = append(handles, handleOf("/a/file-does-not-match-anything"))
	}
	idx.Shard(0).AppendBatch(handles)

	var quit atomic.Bool
	collector := NewCollector(10)
	pool := NewPool(idx, collector, &quit, func() bool { return false })

	pool.Search("zzz-no-such-query")

	// Give the worker a moment to start scanning, then request shutdown
	// and confirm it exits promptly rather than finishing the whole pass.
	time.Sleep(2 * time.Millisecond)
	quit.Store(true)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if pool.ActiveSearchers() == 0 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("worker did not shut down within deadline, active = %d", pool.ActiveSearchers())
}

func TestWorkerStaleQueryResultsDoNotSurvive(t *testing.T) {
	// Scenario S3: query "bar" is superseded by query "baz" while a
	// worker may still be scanning under the old generation. Only
	// "baz"-generation results may end up in the collector.
	idx := pathindex.New(1)
	idx.Shard(0).AppendBatch([]fpath.Handle{
		handleOf("/x/bar"),
		handleOf("/x/baz"),
	})

	var quit atomic.Bool
	collector := NewCollector(10)
	pool := NewPool(idx, collector, &quit, func() bool { return true })
	defer quit.Store(true)

	pool.Search("bar")
	pool.Search("baz")

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if pool.IndexingComplete() {
			break
		}
		time.Sleep(time.Millisecond)
	}

	got, gen := collector.Snapshot()
	if gen != collector.Generation() {
		t.Fatalf("snapshot generation mismatch")
	}
	// "/x/bar" is a legitimate partial match for "baz" too, so each entry
	// is checked by its score: a result left over from the "bar"
	// generation carries its "bar" score, not its "baz" score.
	scorer := fuzzy.New()
	for _, e := range got {
		if want := scorer.Score([]byte("baz"), e.Path.Bytes(), e.Path.Segments()); e.Score != want {
			t.Fatalf("stale \"bar\" result survived into collector after \"baz\" superseded it: %q scored %d, want %d: %+v", e.Path.Path(), e.Score, want, got)
		}
	}
}
