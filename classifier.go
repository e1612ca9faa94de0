package treediff

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
)

const (
	diffsDir = "diffs"
	addedDir = "added"
	diffExt  = ".diff"
	copyExt  = ".copy"
)

// Scratch is the working storage owned by a single classification run.
// Generated artifacts are staged here until the store persists them;
// Release must run on every exit path so no temporary state outlives the
// run.
type Scratch struct {
	FS      billy.Filesystem
	release func() error
}

func (s *Scratch) Release() error {
	if s.release == nil {
		return nil
	}
	return s.release()
}

// NewScratch stages artifacts in a fresh OS temporary directory.
func NewScratch() (*Scratch, error) {
	dir, err := os.MkdirTemp("", "treediff-")
	if err != nil {
		return nil, fmt.Errorf("create scratch storage: %w", err)
	}
	return &Scratch{
		FS:      osfs.New(dir),
		release: func() error { return os.RemoveAll(dir) },
	}, nil
}

// NewMemScratch stages artifacts in memory.
func NewMemScratch() *Scratch {
	return &Scratch{FS: memfs.New()}
}

type Classifier struct {
	Differ       TextDiffer
	Filter       FilterFunc
	NormalizeEOL bool
	Log          *slog.Logger
	Progress     func(current, total int)
}

// Classify walks both trees and produces the five disjoint
// classifications plus their artifacts, staged in scratch. Neither tree
// is ever written to. A path that is a directory on one side and a
// regular file on the other is dropped from every category with a
// warning.
func (c *Classifier) Classify(treeA, treeB billy.Filesystem, scratch *Scratch) (*ChangeSet, error) {
	entriesA, warnA, err := Walk(treeA, c.Filter)
	if err != nil {
		return nil, fmt.Errorf("tree A: %w", err)
	}
	entriesB, warnB, err := Walk(treeB, c.Filter)
	if err != nil {
		return nil, fmt.Errorf("tree B: %w", err)
	}

	cs := &ChangeSet{Artifacts: scratch.FS}
	for _, w := range append(warnA, warnB...) {
		c.warn(cs, w)
	}

	kindA := kindsByPath(entriesA)
	kindB := kindsByPath(entriesB)

	// Files the first pass failed to read are absent for the second pass
	// too, so they surface as added instead of staying invisible.
	unreadableA := make(map[string]struct{})

	total := len(entriesA) + len(entriesB)
	done := 0
	step := func() {
		done++
		if c.Progress != nil {
			c.Progress(done, total)
		}
	}

	for _, e := range entriesA {
		p := e.Path
		kb, inB := kindB[p]
		switch e.Kind {
		case KindDir:
			if inB && kb == KindFile {
				c.warn(cs, fmt.Sprintf("%s is a directory in tree A but a file in tree B, skipping", p))
			} else if !inB || kb != KindDir {
				cs.RemovedDirs = append(cs.RemovedDirs, p)
			}
		case KindFile:
			switch {
			case inB && kb == KindFile:
				if err := c.compareFiles(cs, treeA, treeB, p, unreadableA); err != nil {
					return nil, err
				}
			case inB && kb == KindDir:
				c.warn(cs, fmt.Sprintf("%s is a file in tree A but a directory in tree B, skipping", p))
			default:
				cs.RemovedFiles = append(cs.RemovedFiles, p)
			}
		default:
			c.warn(cs, fmt.Sprintf("%s in tree A is neither a file nor a directory, skipping", p))
		}
		step()
	}

	for _, e := range entriesB {
		p := e.Path
		ka, inA := kindA[p]
		switch e.Kind {
		case KindDir:
			// The dir-vs-file flip was already reported by the first
			// pass; it still must not land in addedDirs.
			if !inA || ka == KindOther {
				cs.AddedDirs = append(cs.AddedDirs, p)
			}
		case KindFile:
			if _, unreadable := unreadableA[p]; unreadable {
				inA = false
			}
			if inA && ka == KindFile {
				break // handled in the first pass
			}
			if inA && ka == KindDir {
				break // type flip, already warned
			}
			data, err := readFileFS(treeB, p)
			if err != nil {
				c.warn(cs, fmt.Sprintf("cannot read %s in tree B: %v", p, err))
				break
			}
			cs.AddedFiles = append(cs.AddedFiles, p)
			if err := writeFileFS(scratch.FS, addedDir+"/"+p, data, 0o644); err != nil {
				return nil, fmt.Errorf("stage snapshot for %s: %w", p, err)
			}
		default:
			c.warn(cs, fmt.Sprintf("%s in tree B is neither a file nor a directory, skipping", p))
		}
		step()
	}

	return cs, nil
}

func (c *Classifier) compareFiles(cs *ChangeSet, treeA, treeB billy.Filesystem, p string, unreadableA map[string]struct{}) error {
	dataA, err := readFileFS(treeA, p)
	if err != nil {
		c.warn(cs, fmt.Sprintf("cannot read %s in tree A: %v", p, err))
		unreadableA[p] = struct{}{}
		return nil
	}
	dataB, err := readFileFS(treeB, p)
	if err != nil {
		c.warn(cs, fmt.Sprintf("cannot read %s in tree B: %v", p, err))
		cs.RemovedFiles = append(cs.RemovedFiles, p)
		return nil
	}

	cmpA, cmpB := dataA, dataB
	if c.NormalizeEOL {
		cmpA = normalizeEOL(dataA)
		cmpB = normalizeEOL(dataB)
	}
	if bytes.Equal(cmpA, cmpB) {
		return nil
	}

	res, err := c.Differ.Diff(p, cmpA, cmpB)
	if err != nil {
		return err
	}

	cs.ChangedFiles = append(cs.ChangedFiles, p)
	name := diffsDir + "/" + p + diffExt
	if !res.Textual {
		name = diffsDir + "/" + p + copyExt
	}
	if err := writeFileFS(cs.Artifacts, name, res.Artifact, 0o644); err != nil {
		return fmt.Errorf("stage diff for %s: %w", p, err)
	}
	return nil
}

func (c *Classifier) warn(cs *ChangeSet, msg string) {
	cs.Warnings = append(cs.Warnings, msg)
	if c.Log != nil {
		c.Log.Warn(msg)
	}
}

func kindsByPath(entries []Entry) map[string]EntryKind {
	m := make(map[string]EntryKind, len(entries))
	for _, e := range entries {
		m[e.Path] = e.Kind
	}
	return m
}
