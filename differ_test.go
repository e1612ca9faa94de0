package treediff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffTextual(t *testing.T) {
	d := NewUnifiedDiffer()
	res, err := d.Diff("foo/bar.txt", []byte("x\n"), []byte("z\n"))
	require.NoError(t, err)
	require.True(t, res.Textual)

	text := string(res.Artifact)
	assert.Contains(t, text, "--- a/foo/bar.txt")
	assert.Contains(t, text, "+++ b/foo/bar.txt")
	assert.Contains(t, text, "-x\n")
	assert.Contains(t, text, "+z\n")
}

func TestDiffNoTrailingNewline(t *testing.T) {
	d := NewUnifiedDiffer()
	res, err := d.Diff("f", []byte("x"), []byte("z"))
	require.NoError(t, err)
	require.True(t, res.Textual)
	assert.True(t, strings.HasSuffix(string(res.Artifact), noNewlineMarker+"\n"))
}

func TestDiffBinaryFallsBackToCopy(t *testing.T) {
	d := NewUnifiedDiffer()
	b := []byte{0x00, 0x01, 0x02}
	res, err := d.Diff("blob", []byte{0x00, 0xff}, b)
	require.NoError(t, err)
	assert.False(t, res.Textual)
	assert.Equal(t, b, res.Artifact)
}

func TestDiffTrailingNewlineOnlyFallsBackToCopy(t *testing.T) {
	// "x" and "x\n" have identical line content, so the change is not
	// representable as a line diff.
	d := NewUnifiedDiffer()
	res, err := d.Diff("f", []byte("x"), []byte("x\n"))
	require.NoError(t, err)
	assert.False(t, res.Textual)
	assert.Equal(t, []byte("x\n"), res.Artifact)
}

func TestNormalizeEOL(t *testing.T) {
	assert.Equal(t, []byte("a\nb\n"), normalizeEOL([]byte("a\r\nb\r\n")))
	assert.Equal(t, []byte("a\nb"), normalizeEOL([]byte("a\nb")))
}

func TestSentinelLines(t *testing.T) {
	lines, missing := sentinelLines([]byte("a\nb\n"))
	assert.Equal(t, []string{"a\n", "b\n"}, lines)
	assert.False(t, missing)

	lines, missing = sentinelLines([]byte("a\nb"))
	assert.Equal(t, []string{"a\n", "b\n"}, lines)
	assert.True(t, missing)

	lines, missing = sentinelLines(nil)
	assert.Equal(t, []string{"\n"}, lines)
	assert.True(t, missing)
}
