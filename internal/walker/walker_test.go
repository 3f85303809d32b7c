package walker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dl/boo/internal/pathindex"
)

// buildTree creates /tmp/t-like fixture: a/foo.txt, b/foo, b/bar.md.
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

// TestWalkIndexesEverything checks that indexing the fixture tree
// discovers all 3 files and 2 directories.
func TestWalkIndexesEverything(t *testing.T) {
	root := buildTree(t)
	idx := pathindex.New(4)
	pool := Run(root, idx, Options{Workers: 4}, nil)
	pool.Wait()

	if got, want := idx.Len(), 5; got != want {
		t.Fatalf("indexed %d entries, want %d", got, want)
	}
	if pool.ActiveWalkers() != 0 {
		t.Fatalf("active walkers = %d, want 0 after Wait", pool.ActiveWalkers())
	}
}

func TestWalkGlobExclude(t *testing.T) {
	root := buildTree(t)
	idx := pathindex.New(2)
	pool := Run(root, idx, Options{Workers: 2, Globs: []string{"!**/*.md"}}, nil)
	pool.Wait()

	found := collectPaths(idx)
	for _, p := range found {
		if filepath.Ext(p) == ".md" {
			t.Fatalf("excluded pattern still present: %s", p)
		}
	}
	if len(found) != 4 {
		t.Fatalf("got %d entries, want 4 (5 minus the excluded .md file)", len(found))
	}
}

func collectPaths(idx *pathindex.Index) []string {
	var out []string
	for i := 0; i < idx.ShardCount(); i++ {
		for _, chunk := range idx.Shard(i).ReadOnlyView() {
			for _, h := range chunk {
				out = append(out, h.Path())
			}
		}
	}
	return out
}

// TestWalkReportsUnreadableDirSilentlyButLogs checks that a directory
// that cannot be opened is skipped, reported through onErr, and never
// retried or treated as fatal. A regular file masquerading
// as a directory entry to open (ENOTDIR) reproduces an "unreadable
// directory" without depending on permission bits, which root ignores.
func TestWalkReportsUnreadableDirSilentlyButLogs(t *testing.T) {
	root := t.TempDir()
	notADir := filepath.Join(root, "not-a-dir")
	if err := os.WriteFile(notADir, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	var gotErr bool
	idx := pathindex.New(1)
	pool := Run(notADir, idx, Options{Workers: 1}, func(path string, err error) {
		gotErr = true
	})
	pool.Wait()

	if !gotErr {
		t.Fatalf("expected an error to be reported for unreadable directory")
	}
	if idx.Len() != 0 {
		t.Fatalf("expected nothing indexed when the walk root itself can't be opened")
	}
}
