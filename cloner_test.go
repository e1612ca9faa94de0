package treediff

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneCopiesWholeTree(t *testing.T) {
	src := newTree(t, map[string]string{
		"a.txt":       "a",
		"sub/b.txt":   "b",
		"sub/deeper/": "",
	})
	dst := memfs.New()

	require.NoError(t, FSCloner{}.Clone(src, dst, false))
	assert.Equal(t, checksum(t, src), checksum(t, dst))
}

func TestCloneConflict(t *testing.T) {
	src := newTree(t, map[string]string{"a.txt": "a"})
	dst := newTree(t, map[string]string{"occupied.txt": "x"})

	err := FSCloner{}.Clone(src, dst, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCopyConflict)

	require.NoError(t, FSCloner{}.Clone(src, dst, true))
	data, err := readFileFS(dst, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))
}

func TestCloneIntoEmptyFSIsNotAConflict(t *testing.T) {
	src := newTree(t, map[string]string{"a.txt": "a"})
	require.NoError(t, FSCloner{}.Clone(src, memfs.New(), false))
}
