package treediff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReduceBottommost(t *testing.T) {
	in := []string{"a", "a/b", "a/b/c", "d", "e/f", "e"}
	assert.Equal(t, []string{"a/b/c", "d", "e/f"}, ReduceBottommost(in))
}

func TestReduceTopmost(t *testing.T) {
	in := []string{"a/b/c", "a", "a/b", "d", "e/f", "e"}
	assert.Equal(t, []string{"a", "d", "e"}, ReduceTopmost(in))
}

func TestReduceDuplicates(t *testing.T) {
	in := []string{"a", "a", "b", "a"}
	assert.Equal(t, []string{"a", "b"}, ReduceBottommost(in))
	assert.Equal(t, []string{"a", "b"}, ReduceTopmost(in))
}

func TestReduceEqualPathsNotAncestors(t *testing.T) {
	// "ab" is not a descendant of "a": ancestry is per segment, not per byte.
	in := []string{"a", "ab", "a-b/c"}
	assert.Equal(t, in, ReduceBottommost(in))
	assert.Equal(t, in, ReduceTopmost(in))
}

func TestReduceEmpty(t *testing.T) {
	assert.Empty(t, ReduceBottommost(nil))
	assert.Empty(t, ReduceTopmost(nil))
}

// Recursive removal of the topmost survivors must cover exactly the paths
// recursive removal of every original would, and mkdir -p on the
// bottommost survivors must create exactly what creating every original
// would.
func TestReduceCoverage(t *testing.T) {
	paths := []string{"a/b/c", "a/b", "a", "x/y", "q"}

	coveredBy := func(set []string, p string) bool {
		for _, s := range set {
			if s == p || isAncestor(s, p) {
				return true
			}
		}
		return false
	}

	top := ReduceTopmost(paths)
	for _, p := range paths {
		assert.True(t, coveredBy(top, p), "removal of %q not covered", p)
	}

	ancestorsOf := func(set []string, p string) bool {
		for _, s := range set {
			if s == p || isAncestor(p, s) {
				return true
			}
		}
		return false
	}

	bottom := ReduceBottommost(paths)
	for _, p := range paths {
		assert.True(t, ancestorsOf(bottom, p), "creation of %q not covered", p)
	}
}
