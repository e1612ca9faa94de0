package treediff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileFilterEmpty(t *testing.T) {
	f, err := CompileFilter("")
	require.NoError(t, err)
	assert.True(t, f("anything/at/all.bin"))
}

func TestCompileFilterBaseName(t *testing.T) {
	f, err := CompileFilter("*.txt")
	require.NoError(t, err)

	assert.True(t, f("readme.txt"))
	assert.True(t, f("deep/nested/notes.txt"))
	assert.False(t, f("image.png"))
	assert.False(t, f("deep/nested/image.png"))
}

func TestCompileFilterMultiplePatterns(t *testing.T) {
	f, err := CompileFilter("*.go, *.mod")
	require.NoError(t, err)

	assert.True(t, f("main.go"))
	assert.True(t, f("go.mod"))
	assert.False(t, f("main.py"))
}

func TestCompileFilterFullPath(t *testing.T) {
	f, err := CompileFilter("docs/*")
	require.NoError(t, err)

	assert.True(t, f("docs/intro.md"))
	assert.False(t, f("src/intro.md"))
}

func TestCompileFilterInvalid(t *testing.T) {
	_, err := CompileFilter("[")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEnumeration)
}
