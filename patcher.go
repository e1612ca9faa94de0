package treediff

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var hunkHeaderPattern = regexp.MustCompile(`^@@ -(\d+(?:,\d+)?) \+(\d+(?:,\d+)?) @@`)

// Patcher applies a textual diff artifact to a file's current content.
type Patcher interface {
	Apply(target, artifact []byte) ([]byte, error)
}

// UnifiedPatcher replays unified diffs strictly: every context and
// deletion line must match the target exactly, otherwise the patch is
// rejected with ErrPatchApply.
type UnifiedPatcher struct{}

func (UnifiedPatcher) Apply(target, artifact []byte) ([]byte, error) {
	src := strings.Split(strings.TrimSuffix(string(target), "\n"), "\n")
	patchLines := strings.Split(string(artifact), "\n")

	var out []string
	srcIdx := 0
	noNewline := false

	i := 0
	for i < len(patchLines) {
		line := patchLines[i]
		switch {
		case line == "":
			i++
		case line == noNewlineMarker:
			noNewline = true
			i++
		case strings.HasPrefix(line, "--- ") || strings.HasPrefix(line, "+++ "):
			i++
		case strings.HasPrefix(line, "@@"):
			start, oldLen, err := parseHunkHeader(line)
			if err != nil {
				return nil, err
			}

			startIdx := start - 1
			if oldLen == 0 {
				// Pure insertion: the old range names the line the
				// insertion follows, not the line it replaces.
				startIdx = start
			}
			if startIdx < 0 || startIdx > len(src) {
				return nil, fmt.Errorf("%w: hunk starts at line %d beyond target", ErrPatchApply, start)
			}
			for srcIdx < startIdx {
				out = append(out, src[srcIdx])
				srcIdx++
			}

			i++
			for i < len(patchLines) {
				h := patchLines[i]
				if h == noNewlineMarker {
					noNewline = true
					i++
					continue
				}
				if strings.HasPrefix(h, "@@") || strings.HasPrefix(h, "--- ") || strings.HasPrefix(h, "+++ ") {
					break
				}

				switch {
				case strings.HasPrefix(h, "+"):
					out = append(out, h[1:])
				case strings.HasPrefix(h, "-"):
					if srcIdx >= len(src) || src[srcIdx] != h[1:] {
						return nil, hunkMismatch(srcIdx, h[1:], src)
					}
					srcIdx++
				case strings.HasPrefix(h, " "):
					if srcIdx >= len(src) || src[srcIdx] != h[1:] {
						return nil, hunkMismatch(srcIdx, h[1:], src)
					}
					out = append(out, h[1:])
					srcIdx++
				case h == "":
					// trailing split remnant
				default:
					return nil, fmt.Errorf("%w: unrecognized patch line %q", ErrPatchApply, h)
				}
				i++
			}
		default:
			return nil, fmt.Errorf("%w: unrecognized patch line %q", ErrPatchApply, line)
		}
	}

	for srcIdx < len(src) {
		out = append(out, src[srcIdx])
		srcIdx++
	}

	res := strings.Join(out, "\n")
	if !noNewline {
		res += "\n"
	}
	return []byte(res), nil
}

func parseHunkHeader(line string) (start, oldLen int, err error) {
	m := hunkHeaderPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, fmt.Errorf("%w: bad hunk header %q", ErrPatchApply, line)
	}

	oldRange := strings.SplitN(m[1], ",", 2)
	start, err = strconv.Atoi(oldRange[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad hunk header %q", ErrPatchApply, line)
	}
	oldLen = 1
	if len(oldRange) == 2 {
		oldLen, err = strconv.Atoi(oldRange[1])
		if err != nil {
			return 0, 0, fmt.Errorf("%w: bad hunk header %q", ErrPatchApply, line)
		}
	}
	return start, oldLen, nil
}

func hunkMismatch(idx int, want string, src []string) error {
	got := "<eof>"
	if idx < len(src) {
		got = src[idx]
	}
	return fmt.Errorf("%w: line %d is %q, patch expects %q", ErrPatchApply, idx+1, got, want)
}

// ExtractPathFromDiff pulls the target path out of a unified diff's
// "+++ b/<path>" header line.
func ExtractPathFromDiff(artifact []byte) string {
	for _, line := range strings.Split(string(artifact), "\n") {
		if rest, ok := strings.CutPrefix(line, "+++ b/"); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}
