package treediff

import "github.com/go-git/go-billy/v5"

type EntryKind int

const (
	KindFile EntryKind = iota
	KindDir
	KindOther
)

func (k EntryKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	default:
		return "other"
	}
}

// Entry is one filesystem object found under a tree root. Path is always
// relative to the root and slash-delimited.
type Entry struct {
	Path string
	Kind EntryKind
}

// ChangeSet is the full result of one classification run: five ordered
// path lists plus the staged artifacts (diffs/ and added/ subtrees).
type ChangeSet struct {
	RemovedFiles []string
	RemovedDirs  []string
	AddedFiles   []string
	AddedDirs    []string
	ChangedFiles []string

	Warnings []string

	// Artifacts holds the generated diff artifacts and added-file
	// snapshots, laid out exactly as the store persists them.
	Artifacts billy.Filesystem
}

func (cs *ChangeSet) Empty() bool {
	return len(cs.RemovedFiles) == 0 &&
		len(cs.RemovedDirs) == 0 &&
		len(cs.AddedFiles) == 0 &&
		len(cs.AddedDirs) == 0 &&
		len(cs.ChangedFiles) == 0
}

type ApplyAction struct {
	Verb string // "remove", "rmdir", "patch", "replace", "mkdir", "add", "clone"
	Path string
}

type ApplyReport struct {
	DryRun       bool
	Cloned       string
	RemovedFiles []string
	RemovedDirs  []string
	Patched      []string
	Replaced     []string
	CreatedDirs  []string
	AddedFiles   []string
	Skipped      []string
}

func (r *ApplyReport) Actions() []ApplyAction {
	var out []ApplyAction
	add := func(verb string, paths []string) {
		for _, p := range paths {
			out = append(out, ApplyAction{Verb: verb, Path: p})
		}
	}
	if r.Cloned != "" {
		out = append(out, ApplyAction{Verb: "clone", Path: r.Cloned})
	}
	add("remove", r.RemovedFiles)
	add("rmdir", r.RemovedDirs)
	add("patch", r.Patched)
	add("replace", r.Replaced)
	add("mkdir", r.CreatedDirs)
	add("add", r.AddedFiles)
	return out
}
