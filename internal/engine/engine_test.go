package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func buildTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(os.Mkdir(filepath.Join(root, "a"), 0o755))
	must(os.Mkdir(filepath.Join(root, "b"), 0o755))
	must(os.WriteFile(filepath.Join(root, "a", "foo.txt"), []byte("x"), 0o644))
	must(os.WriteFile(filepath.Join(root, "b", "foo"), []byte("x"), 0o644))
	must(os.WriteFile(filepath.Join(root, "b", "bar.md"), []byte("x"), 0o644))
	return root
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("condition not met within %s", timeout)
}

// TestEnginePipelineLiveness checks that once the walker terminates and
// a query is live, every SearchWorker completes at least one full
// pass, and the Collector holds matching results.
func TestEnginePipelineLiveness(t *testing.T) {
	root := buildTree(t)
	e := Start(Options{Root: root, Workers: 2})
	defer e.Stop()

	waitFor(t, 2*time.Second, func() bool { return e.ActiveWalkers() == 0 })
	if got, want := e.IndexedCount(), 5; got != want {
		t.Fatalf("indexed %d entries, want %d", got, want)
	}

	e.Search("foo")
	waitFor(t, 2*time.Second, e.IndexingComplete)

	got, _ := e.Snapshot()
	if len(got) == 0 {
		t.Fatalf("expected matches for query \"foo\"")
	}
}

// TestEngineStopIsResponsive checks that setting should_quit causes
// every SearchWorker to exit within a bounded number of chunk-scans.
func TestEngineStopIsResponsive(t *testing.T) {
	root := buildTree(t)
	e := Start(Options{Root: root, Workers: 2})

	waitFor(t, 2*time.Second, func() bool { return e.ActiveWalkers() == 0 })
	e.Search("foo")

	e.Stop()
	waitFor(t, 2*time.Second, func() bool { return e.ActiveSearchers() == 0 })
}

// TestEngineEmptyQueryNeverBroadcasts checks that an empty query never
// populates the Collector.
func TestEngineEmptyQueryNeverBroadcasts(t *testing.T) {
	root := buildTree(t)
	e := Start(Options{Root: root, Workers: 1})
	defer e.Stop()

	waitFor(t, 2*time.Second, func() bool { return e.ActiveWalkers() == 0 })

	e.Search("foo")
	waitFor(t, 2*time.Second, e.IndexingComplete)
	if got, _ := e.Snapshot(); len(got) == 0 {
		t.Fatalf("sanity check failed: expected some matches before clearing")
	}

	e.Search("")
	got, _ := e.Snapshot()
	if len(got) != 0 {
		t.Fatalf("empty query left %d stale entries in the collector", len(got))
	}
}
