package files

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"syscall"
)

var filepathAbs = filepath.Abs
var filepathEvalSymlinks = filepath.EvalSymlinks

// Canonicalize returns the absolute path with every symlink resolved.
func Canonicalize(path string) (string, error) {
	abs, err := filepathAbs(path)
	if err != nil {
		return "", err
	}
	return filepathEvalSymlinks(abs)
}

// CanonicalizeParent resolves symlinks in the directory part of path only,
// so a symlink named by path keeps its own identity.
func CanonicalizeParent(path string) (string, error) {
	abs, err := filepathAbs(path)
	if err != nil {
		return "", err
	}
	dir, ok := Parent(abs)
	if !ok {
		return abs, nil
	}
	dir, err = filepathEvalSymlinks(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, filepath.Base(abs)), nil
}

// Parent returns the containing directory of an absolute path.
// The filesystem root has no parent.
func Parent(path string) (string, bool) {
	parent := filepath.Dir(path)
	if parent == path {
		return "", false
	}
	return parent, true
}

// IsDescendant reports whether path lies strictly below ancestor.
func IsDescendant(path, ancestor string) bool {
	if path == ancestor {
		return false
	}
	if !strings.HasSuffix(ancestor, string(filepath.Separator)) {
		ancestor += string(filepath.Separator)
	}
	return strings.HasPrefix(path, ancestor)
}

// IsNotDir reports whether err says a path component is not a directory.
func IsNotDir(err error) bool {
	return errors.Is(err, syscall.ENOTDIR)
}

// IsPermissionDenied reports whether err is an access failure.
func IsPermissionDenied(err error) bool {
	return errors.Is(err, fs.ErrPermission)
}
