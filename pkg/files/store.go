package files

//go:generate mockgen -destination=mock_store.go -package=files . Store

import (
	"context"
	"os"
)

// Store is the filesystem surface the browser core depends on.
type Store interface {
	RootTitle() string

	// IsDir reports whether path currently resolves to a directory.
	// Any stat failure is reported as false.
	IsDir(path string) bool

	// Exists reports whether path is present without following a trailing symlink.
	Exists(path string) bool

	ReadDir(ctx context.Context, path string) ([]os.DirEntry, error)

	// Delete removes a file, a symlink or a whole directory tree.
	// A missing path is an error wrapping fs.ErrNotExist.
	Delete(ctx context.Context, path string) error

	// ReadFile returns at most limit leading bytes of a regular file.
	ReadFile(ctx context.Context, path string, limit int) ([]byte, error)
}
