package treediff

import (
	"fmt"
	"path"
	"strings"
)

// FilterFunc decides whether a regular file takes part in a run. It is
// handed the slash-delimited path relative to the tree root. Directories
// are always traversed and reported regardless of the filter.
type FilterFunc func(rel string) bool

// CompileFilter turns a comma-separated list of glob patterns into a
// FilterFunc. A pattern matches either the full relative path or the base
// name, so "*.txt" keeps text files anywhere in the tree. The empty
// expression keeps everything.
func CompileFilter(expr string) (FilterFunc, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return func(string) bool { return true }, nil
	}

	patterns := strings.Split(expr, ",")
	for i, p := range patterns {
		patterns[i] = strings.TrimSpace(p)
		if _, err := path.Match(patterns[i], ""); err != nil {
			return nil, fmt.Errorf("%w: bad filter pattern %q: %v", ErrEnumeration, patterns[i], err)
		}
	}

	return func(rel string) bool {
		base := path.Base(rel)
		for _, p := range patterns {
			if ok, _ := path.Match(p, rel); ok {
				return true
			}
			if ok, _ := path.Match(p, base); ok {
				return true
			}
		}
		return false
	}, nil
}
