package walker

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// globFilter evaluates --glob patterns against a path. A pattern
// prefixed with '!' is an exclusion; any other pattern is an
// inclusion. A path is kept if it matches no exclusion and, when at
// least one inclusion pattern was supplied, matches at least one of
// them. Patterns support doublestar's recursive "**" so a pattern like
// "**/*_test.go" can exclude at any depth.
type globFilter struct {
	includes []string
	excludes []string
}

// newGlobFilter builds a globFilter from raw --glob flag values.
func newGlobFilter(patterns []string) globFilter {
	var f globFilter
	for _, p := range patterns {
		if strings.HasPrefix(p, "!") {
			f.excludes = append(f.excludes, p[1:])
		} else {
			f.includes = append(f.includes, p)
		}
	}
	return f
}

func (f globFilter) empty() bool {
	return len(f.includes) == 0 && len(f.excludes) == 0
}

// excluded reports whether path should be dropped from the index.
// path is matched relative to nothing in particular — callers pass the
// full discovered path, and patterns are expected to use "**" where a
// match against any depth is intended.
func (f globFilter) excluded(path string) bool {
	if f.empty() {
		return false
	}
	for _, pat := range f.excludes {
		if ok, _ := doublestar.Match(pat, path); ok {
			return true
		}
	}
	if len(f.includes) == 0 {
		return false
	}
	for _, pat := range f.includes {
		if ok, _ := doublestar.Match(pat, path); ok {
			return false
		}
	}
	return true
}
