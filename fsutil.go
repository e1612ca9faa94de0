package treediff

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

func dirExists(fsys billy.Filesystem, p string) bool {
	if p == "." {
		return true
	}
	info, err := lstat(fsys, p)
	return err == nil && info.IsDir()
}

func fileExists(fsys billy.Filesystem, p string) bool {
	info, err := lstat(fsys, p)
	return err == nil && info.Mode().IsRegular()
}

func pathExists(fsys billy.Filesystem, p string) bool {
	_, err := lstat(fsys, p)
	return err == nil
}

func readFileFS(fsys billy.Filesystem, p string) ([]byte, error) {
	return util.ReadFile(fsys, p)
}

// writeFileFS writes data creating any missing parent directories.
func writeFileFS(fsys billy.Filesystem, p string, data []byte, perm os.FileMode) error {
	if dir := path.Dir(p); dir != "." {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return util.WriteFile(fsys, p, data, perm)
}

func removeAllFS(fsys billy.Filesystem, p string) error {
	return util.RemoveAll(fsys, p)
}

// TreeChecksum hashes every relative path and regular-file content under
// the root, giving a stable fingerprint of the whole tree.
func TreeChecksum(fsys billy.Filesystem) (string, error) {
	entries, _, err := Walk(fsys, nil)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	for _, e := range entries {
		h.Write([]byte(e.Path))
		h.Write([]byte{0})
		if e.Kind == KindFile {
			data, err := readFileFS(fsys, e.Path)
			if err != nil {
				return "", err
			}
			h.Write(data)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
