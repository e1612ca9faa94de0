package treediff

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkOrderAndKinds(t *testing.T) {
	fsys := newTree(t, map[string]string{
		"b.txt":       "b",
		"a/one.txt":   "1",
		"a/two.txt":   "2",
		"a/sub/x.txt": "x",
		"empty/":      "",
	})

	entries, warnings, err := Walk(fsys, nil)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	want := []Entry{
		{Path: "a", Kind: KindDir},
		{Path: "a/one.txt", Kind: KindFile},
		{Path: "a/sub", Kind: KindDir},
		{Path: "a/sub/x.txt", Kind: KindFile},
		{Path: "a/two.txt", Kind: KindFile},
		{Path: "b.txt", Kind: KindFile},
		{Path: "empty", Kind: KindDir},
	}
	assert.Equal(t, want, entries)
}

func TestWalkFilterFilesOnly(t *testing.T) {
	fsys := newTree(t, map[string]string{
		"keep.txt":     "k",
		"drop.bin":     "d",
		"sub/keep.txt": "k",
		"sub/drop.bin": "d",
	})

	filter, err := CompileFilter("*.txt")
	require.NoError(t, err)

	entries, _, err := Walk(fsys, filter)
	require.NoError(t, err)

	// Directories survive any filter; only files are screened.
	want := []Entry{
		{Path: "keep.txt", Kind: KindFile},
		{Path: "sub", Kind: KindDir},
		{Path: "sub/keep.txt", Kind: KindFile},
	}
	assert.Equal(t, want, entries)
}

func TestWalkSymlinkIsOther(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, writeFileFS(fsys, "real.txt", []byte("r"), 0o644))
	require.NoError(t, fsys.Symlink("real.txt", "link"))

	entries, _, err := Walk(fsys, nil)
	require.NoError(t, err)

	kinds := map[string]EntryKind{}
	for _, e := range entries {
		kinds[e.Path] = e.Kind
	}
	assert.Equal(t, KindFile, kinds["real.txt"])
	assert.Equal(t, KindOther, kinds["link"])
}

func TestWalkEmptyTree(t *testing.T) {
	entries, warnings, err := Walk(memfs.New(), nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, warnings)
}
