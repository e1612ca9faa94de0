package treediff

import (
	"fmt"

	"github.com/go-git/go-billy/v5"
)

// TreeCloner copies one tree into another before an apply run.
type TreeCloner interface {
	Clone(src, dst billy.Filesystem, force bool) error
}

// FSCloner clones tree contents between billy filesystems. Regular files
// and directories are copied; other entry kinds are skipped.
type FSCloner struct{}

func (FSCloner) Clone(src, dst billy.Filesystem, force bool) error {
	if destTreeExists(dst) && !force {
		return ErrCopyConflict
	}
	if err := copyTree(src, ".", dst, "."); err != nil {
		return fmt.Errorf("clone tree: %w", err)
	}
	return nil
}

// destTreeExists reports whether the destination already holds anything.
func destTreeExists(dst billy.Filesystem) bool {
	infos, err := dst.ReadDir(".")
	return err == nil && len(infos) > 0
}

// copyTree mirrors the subtree at src/from into dst/to, creating missing
// directories along the way. A missing source subtree is a no-op.
func copyTree(src billy.Filesystem, from string, dst billy.Filesystem, to string) error {
	if !dirExists(src, from) {
		return nil
	}

	sub := src
	if from != "." {
		var err error
		if sub, err = src.Chroot(from); err != nil {
			return err
		}
	}

	entries, _, err := Walk(sub, nil)
	if err != nil {
		return err
	}

	join := func(rel string) string {
		if to == "." {
			return rel
		}
		return to + "/" + rel
	}

	for _, e := range entries {
		switch e.Kind {
		case KindDir:
			if err := dst.MkdirAll(join(e.Path), 0o755); err != nil {
				return err
			}
		case KindFile:
			data, err := readFileFS(sub, e.Path)
			if err != nil {
				return err
			}
			info, err := lstat(sub, e.Path)
			if err != nil {
				return err
			}
			if err := writeFileFS(dst, join(e.Path), data, info.Mode().Perm()); err != nil {
				return err
			}
		}
	}
	return nil
}
