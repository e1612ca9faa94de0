package treediff

import (
	"fmt"
	"os"
	"path"
	"sort"

	"github.com/go-git/go-billy/v5"
)

// Walk enumerates every entry under the root of fsys in depth-first
// lexical order, directories before their contents. Regular files that
// the filter rejects are left out; directories are always reported.
// Unreadable subdirectories produce a warning and are treated as empty;
// an unreadable root is fatal.
func Walk(fsys billy.Filesystem, filter FilterFunc) ([]Entry, []string, error) {
	if filter == nil {
		filter = func(string) bool { return true }
	}

	var entries []Entry
	var warnings []string

	var walk func(dir string) error
	walk = func(dir string) error {
		infos, err := fsys.ReadDir(dir)
		if err != nil {
			if dir == "." {
				return fmt.Errorf("%w: %v", ErrEnumeration, err)
			}
			warnings = append(warnings, fmt.Sprintf("cannot read directory %s: %v", dir, err))
			return nil
		}
		sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })

		for _, info := range infos {
			rel := path.Join(dir, info.Name())
			switch {
			case info.IsDir():
				entries = append(entries, Entry{Path: rel, Kind: KindDir})
				if err := walk(rel); err != nil {
					return err
				}
			case info.Mode().IsRegular():
				if filter(rel) {
					entries = append(entries, Entry{Path: rel, Kind: KindFile})
				}
			default:
				entries = append(entries, Entry{Path: rel, Kind: KindOther})
			}
		}
		return nil
	}

	if err := walk("."); err != nil {
		return nil, warnings, err
	}
	return entries, warnings, nil
}

// lstat prefers Lstat when the filesystem supports it, so symlinks are
// seen as links rather than their targets.
func lstat(fsys billy.Filesystem, name string) (os.FileInfo, error) {
	if sym, ok := fsys.(billy.Symlink); ok {
		return sym.Lstat(name)
	}
	return fsys.Stat(name)
}
