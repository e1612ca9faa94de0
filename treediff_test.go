package treediff

import (
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/require"
)

// newTree builds an in-memory tree from a path->content map. Keys ending
// in "/" create (possibly empty) directories.
func newTree(t *testing.T, files map[string]string) billy.Filesystem {
	t.Helper()
	fsys := memfs.New()
	for p, content := range files {
		if strings.HasSuffix(p, "/") {
			require.NoError(t, fsys.MkdirAll(strings.TrimSuffix(p, "/"), 0o755))
			continue
		}
		require.NoError(t, writeFileFS(fsys, p, []byte(content), 0o644))
	}
	return fsys
}

func classify(t *testing.T, a, b billy.Filesystem, opts ...func(*Classifier)) *ChangeSet {
	t.Helper()
	c := &Classifier{Differ: NewUnifiedDiffer()}
	for _, o := range opts {
		o(c)
	}
	cs, err := c.Classify(a, b, NewMemScratch())
	require.NoError(t, err)
	return cs
}

func checksum(t *testing.T, fsys billy.Filesystem) string {
	t.Helper()
	sum, err := TreeChecksum(fsys)
	require.NoError(t, err)
	return sum
}
