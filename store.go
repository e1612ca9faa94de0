package treediff

import (
	"fmt"
	"strings"

	"github.com/go-git/go-billy/v5"
)

const (
	removedFilesList = "removed_files"
	removedDirsList  = "removed_dirs"
	addedFilesList   = "added_files"
	addedDirsList    = "added_dirs"
	changedFilesList = "changed_files"
)

var listFiles = []string{
	removedFilesList,
	removedDirsList,
	addedFilesList,
	addedDirsList,
	changedFilesList,
}

// Store is the persisted form of a ChangeSet: five newline-delimited list
// files plus the diffs/ and added/ artifact trees, all under one root.
// Paths containing embedded newlines are not representable.
type Store struct {
	fs billy.Filesystem
}

func NewStore(fsys billy.Filesystem) *Store {
	return &Store{fs: fsys}
}

// Write persists the change-set. An existing store is only replaced when
// overwrite is set; replacement is destructive.
func (s *Store) Write(cs *ChangeSet, overwrite bool) error {
	for _, name := range listFiles {
		if pathExists(s.fs, name) {
			if !overwrite {
				return fmt.Errorf("%w: %s", ErrAlreadyExists, name)
			}
			break
		}
	}
	if overwrite {
		for _, name := range append([]string{diffsDir, addedDir}, listFiles...) {
			if err := removeAllFS(s.fs, name); err != nil {
				return fmt.Errorf("clear previous change-set: %w", err)
			}
		}
	}

	lists := map[string][]string{
		removedFilesList: cs.RemovedFiles,
		removedDirsList:  cs.RemovedDirs,
		addedFilesList:   cs.AddedFiles,
		addedDirsList:    cs.AddedDirs,
		changedFilesList: cs.ChangedFiles,
	}
	for name, paths := range lists {
		if err := writeFileFS(s.fs, name, []byte(joinLines(paths)), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}

	for _, dir := range []string{diffsDir, addedDir} {
		if err := copyTree(cs.Artifacts, dir, s.fs, dir); err != nil {
			return fmt.Errorf("write %s: %w", dir, err)
		}
	}
	return nil
}

// Read loads the five lists back. The lists are the sole source of truth
// for a later apply; they are re-read as written, never re-derived. A
// populated changed or added list without its companion artifact tree
// marks the store as incomplete.
func (s *Store) Read() (*ChangeSet, error) {
	read := func(name string) ([]string, error) {
		if !fileExists(s.fs, name) {
			return nil, fmt.Errorf("%w: list file %s not found", ErrMissingStore, name)
		}
		data, err := readFileFS(s.fs, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		return splitLines(string(data)), nil
	}

	cs := &ChangeSet{Artifacts: s.fs}
	var err error
	if cs.RemovedFiles, err = read(removedFilesList); err != nil {
		return nil, err
	}
	if cs.RemovedDirs, err = read(removedDirsList); err != nil {
		return nil, err
	}
	if cs.AddedFiles, err = read(addedFilesList); err != nil {
		return nil, err
	}
	if cs.AddedDirs, err = read(addedDirsList); err != nil {
		return nil, err
	}
	if cs.ChangedFiles, err = read(changedFilesList); err != nil {
		return nil, err
	}

	if len(cs.ChangedFiles) > 0 && !dirExists(s.fs, diffsDir) {
		return nil, fmt.Errorf("%w: %s lists %d entries but %s/ is absent",
			ErrMissingStore, changedFilesList, len(cs.ChangedFiles), diffsDir)
	}
	if len(cs.AddedFiles) > 0 && !dirExists(s.fs, addedDir) {
		return nil, fmt.Errorf("%w: %s lists %d entries but %s/ is absent",
			ErrMissingStore, addedFilesList, len(cs.AddedFiles), addedDir)
	}
	return cs, nil
}

// DiffArtifact returns the stored artifact for a changed file and whether
// it is a textual diff or a full-copy snapshot.
func (s *Store) DiffArtifact(rel string) (data []byte, textual bool, err error) {
	if data, err = readFileFS(s.fs, diffsDir+"/"+rel+diffExt); err == nil {
		return data, true, nil
	}
	if data, err = readFileFS(s.fs, diffsDir+"/"+rel+copyExt); err == nil {
		return data, false, nil
	}
	return nil, false, fmt.Errorf("%w: no diff artifact for %s", ErrMissingStore, rel)
}

// Snapshot returns the stored copy of an added file.
func (s *Store) Snapshot(rel string) ([]byte, error) {
	data, err := readFileFS(s.fs, addedDir+"/"+rel)
	if err != nil {
		return nil, fmt.Errorf("%w: no snapshot for %s", ErrMissingStore, rel)
	}
	return data, nil
}

func joinLines(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	return strings.Join(paths, "\n") + "\n"
}

func splitLines(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
