// Package fpath implements PathHandle: a lightweight value identifying
// a filesystem path via a stable byte slice, plus the byte-level
// parsing rules used to derive its name, extension, and segments.
//
// Parsing is byte-level and locale-independent throughout: the
// separator is the platform's single-byte path separator, and no
// Unicode normalization or case-folding is ever applied.
package fpath

import "os"

// Sep is the path separator byte this package parses against.
const Sep = os.PathSeparator

// Handle holds a byte-slice handle into an arena: the NUL-free,
// separator-delimited raw path bytes as returned by the directory
// enumerator. Equality is byte equality. A Handle is a plain value
// (one slice header) — copyable and safe to share across goroutines
// once its bytes have been written, since the bytes are never mutated
// afterward.
type Handle struct {
	data []byte
}

// New wraps raw path bytes (already owned by an arena) in a Handle.
func New(data []byte) Handle {
	return Handle{data: data}
}

// Equal reports whether two handles reference byte-identical paths.
func (h Handle) Equal(other Handle) bool {
	return string(h.data) == string(other.data)
}

// Path returns the full path bytes interpreted as text, with no
// validation beyond what the filesystem enumerator already performed
// — the bytes may be non-UTF-8 if the OS returned non-UTF-8 bytes.
func (h Handle) Path() string {
	return string(h.data)
}

// Bytes returns the raw path bytes.
func (h Handle) Bytes() []byte {
	return h.data
}

// Name returns the last path segment, as produced by Segments — the
// same segment-boundary scan, not an independent backward search for
// the last separator. This means Name inherits Segments' own
// deliberately-kept quirk (the scan always advances past exactly one
// byte before looking for the first boundary): for a path with no
// leading separator the returned name is missing its first byte, e.g.
// Name("noslash") is "oslash", not "noslash". This matches the
// original source's own name(), which is likewise defined as the last
// element of its segment iterator rather than a separate scan. Empty
// if the path has no segments (empty path, or a single separator).
func (h Handle) Name() string {
	segs := h.Segments()
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// FileExt returns the bytes after the last '.' in the final path
// segment, scanning from the end of the segment and stopping at the
// segment's own start (i.e. at the preceding separator). A leading dot
// on a segment (e.g. ".config") only counts as an extension start if
// there is no later dot in the segment — equivalently, the first '.'
// encountered scanning right-to-left within the final segment marks
// the extension start, wherever in the segment it falls, including
// position 0.
func (h Handle) FileExt() string {
	data := h.data
	for i := len(data) - 1; i >= 0; i-- {
		if data[i] == Sep {
			break
		}
		if data[i] == '.' {
			return string(data[i+1:])
		}
	}
	return ""
}

// ContainingFolder returns the path itself if isDir is true (the path
// already refers to a directory), otherwise the parent segment — the
// path with its final segment and separator removed, except that an
// entry directly under the root yields "/" and a path with no
// separator yields the empty string. Callers determine
// isDir from filesystem metadata; Handle carries no type information of
// its own.
func (h Handle) ContainingFolder(isDir bool) string {
	if isDir {
		return h.Path()
	}
	data := h.data
	for i := len(data) - 1; i >= 0; i-- {
		if data[i] == Sep {
			if i == 0 {
				return string(data[:1])
			}
			return string(data[:i])
		}
	}
	return ""
}

// Segments returns each path segment between separators, in order, as
// distinct strings. A leading separator is skipped; a trailing
// separator produces no empty trailing segment.
//
// The scan always advances past exactly one byte before looking for
// the first segment boundary, regardless of whether that byte was a
// separator. For a normal absolute path this correctly skips the
// leading separator; for a path with no leading separator it silently
// drops the first byte of the first segment, and for a doubled leading
// separator ("//a/b") it yields an empty first segment rather than
// skipping both. This is intentional, not a bug to fix here — see
// TestSegmentsSkipsOneLeadingByteOnly.
func (h Handle) Segments() []string {
	data := h.data
	if len(data) == 0 {
		return nil
	}
	var segs []string
	index := 0
	for index < len(data)-1 {
		index++
		start := index
		for index < len(data) && data[index] != Sep {
			index++
		}
		segs = append(segs, string(data[start:index]))
	}
	return segs
}
