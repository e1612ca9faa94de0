package treediff

import "strings"

// isAncestor reports whether a is a strict path-prefix ancestor of b.
// Comparison is exact on slash-delimited segments; a path is never its
// own ancestor.
func isAncestor(a, b string) bool {
	return len(b) > len(a) && strings.HasPrefix(b, a+"/")
}

// ReduceBottommost keeps only the paths that are not an ancestor of any
// other path in the set: the deepest directories. Creating each survivor
// mkdir -p style creates every path the original set named, so bulk
// creation is idempotent and order-independent. Duplicates collapse to
// one entry; input order is preserved.
func ReduceBottommost(paths []string) []string {
	return reduce(paths, func(candidate, other string) bool {
		return isAncestor(candidate, other)
	})
}

// ReduceTopmost keeps only the paths that are not a descendant of any
// other path in the set: the shallowest directories. Removing each
// survivor recursively removes every path the original set named, in any
// order.
func ReduceTopmost(paths []string) []string {
	return reduce(paths, func(candidate, other string) bool {
		return isAncestor(other, candidate)
	})
}

func reduce(paths []string, covered func(candidate, other string) bool) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))

	for _, p := range paths {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}

		drop := false
		for _, q := range paths {
			if p != q && covered(p, q) {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, p)
		}
	}
	return out
}
