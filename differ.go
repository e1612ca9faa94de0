package treediff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const noNewlineMarker = `\ No newline at end of file`

// DiffResult is the outcome of diffing two file versions. When Textual is
// false the artifact is a verbatim snapshot of the B side instead of a
// unified diff.
type DiffResult struct {
	Textual  bool
	Artifact []byte
}

// TextDiffer computes the artifact stored for a changed file.
type TextDiffer interface {
	Diff(rel string, a, b []byte) (DiffResult, error)
}

// UnifiedDiffer produces unified diffs with go-difflib, falling back to a
// full-copy snapshot when either side is binary or when the change is not
// representable line-wise (e.g. the sides differ only in the trailing
// newline).
type UnifiedDiffer struct {
	Context int
}

func NewUnifiedDiffer() *UnifiedDiffer {
	return &UnifiedDiffer{Context: 3}
}

func (d *UnifiedDiffer) Diff(rel string, a, b []byte) (DiffResult, error) {
	if isBinary(a) || isBinary(b) {
		return DiffResult{Textual: false, Artifact: b}, nil
	}

	linesA, _ := sentinelLines(a)
	linesB, missingB := sentinelLines(b)

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        linesA,
		B:        linesB,
		FromFile: "a/" + rel,
		ToFile:   "b/" + rel,
		Context:  d.Context,
	})
	if err != nil {
		return DiffResult{}, fmt.Errorf("diff %s: %w", rel, err)
	}
	if text == "" {
		// Same line content, different bytes: not diff-representable.
		return DiffResult{Textual: false, Artifact: b}, nil
	}
	if missingB {
		text += noNewlineMarker + "\n"
	}
	return DiffResult{Textual: true, Artifact: []byte(text)}, nil
}

// sentinelLines splits content into newline-terminated lines, adding a
// terminator to the final line if it lacks one. The second return reports
// whether that terminator was added.
func sentinelLines(content []byte) ([]string, bool) {
	s := string(content)
	missing := !strings.HasSuffix(s, "\n")
	if missing {
		s += "\n"
	}
	lines := strings.SplitAfter(s, "\n")
	return lines[:len(lines)-1], missing
}

func isBinary(content []byte) bool {
	probe := content
	if len(probe) > 8000 {
		probe = probe[:8000]
	}
	return bytes.IndexByte(probe, 0) >= 0
}

// normalizeEOL rewrites CRLF line endings to LF. Used only for in-memory
// comparison copies, never on the source trees.
func normalizeEOL(content []byte) []byte {
	return bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
}
