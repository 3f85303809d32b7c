package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dl/boo/internal/fpath"
)

// TestSelectionTextFullPath pins the default (no --cd-path) behavior:
// the full path is printed unchanged.
func TestSelectionTextFullPath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "foo.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	h := fpath.New([]byte(file))
	got := selectionText(h, false)
	if *got != file {
		t.Fatalf("got %q, want %q", *got, file)
	}
}

// TestSelectionTextCdPathOnFile resolves to the parent directory when
// the picked entry is a regular file.
func TestSelectionTextCdPathOnFile(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "b")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(sub, "foo")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	h := fpath.New([]byte(file))
	got := selectionText(h, true)
	if *got != sub {
		t.Fatalf("got %q, want %q", *got, sub)
	}
}

// TestSelectionTextCdPathOnDir resolves to itself when the picked
// entry is already a directory.
func TestSelectionTextCdPathOnDir(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "b")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	h := fpath.New([]byte(sub))
	got := selectionText(h, true)
	if *got != sub {
		t.Fatalf("got %q, want %q", *got, sub)
	}
}
