package ftjoin

import (
	"context"
	"path/filepath"

	"github.com/filetug/millertug/pkg/files"
	"go.uber.org/zap"
)

type ReadDirKind int

const (
	ReadDirOK ReadDirKind = iota
	ReadDirPermissionDenied
	ReadDirNotADirectory
	ReadDirFailed
)

func (k ReadDirKind) String() string {
	switch k {
	case ReadDirOK:
		return "ok"
	case ReadDirPermissionDenied:
		return "permission_denied"
	case ReadDirNotADirectory:
		return "not_a_directory"
	default:
		return "error"
	}
}

// ReadDirResult carries the absolute child paths of Path, or why there are none.
type ReadDirResult struct {
	Path     string
	Kind     ReadDirKind
	Children []string
	Err      error
}

type ReadDirJoiner struct {
	*joiner[ReadDirResult]
	store files.Store
}

const defaultReadDirConcurrency = 8

func NewReadDirJoiner(store files.Store, opts ...Option) *ReadDirJoiner {
	o := newOptions(defaultReadDirConcurrency, opts)
	return &ReadDirJoiner{
		joiner: newJoiner[ReadDirResult](context.Background(), "read_dir", o),
		store:  store,
	}
}

// Spawn lists path in the background.
func (j *ReadDirJoiner) Spawn(path string) {
	if !j.spawn(func(ctx context.Context) (ReadDirResult, string) {
		r := readDir(ctx, j.store, path)
		return r, r.Kind.String()
	}) {
		j.logger.Debug("listing dropped after close", zap.String("path", path))
	}
}

// Close abandons outstanding listings without waiting for them to return.
func (j *ReadDirJoiner) Close() {
	j.close(false)
}

func readDir(ctx context.Context, store files.Store, path string) ReadDirResult {
	entries, err := store.ReadDir(ctx, path)
	switch {
	case err == nil:
	case files.IsPermissionDenied(err):
		return ReadDirResult{Path: path, Kind: ReadDirPermissionDenied}
	case files.IsNotDir(err):
		return ReadDirResult{Path: path, Kind: ReadDirNotADirectory}
	default:
		return ReadDirResult{Path: path, Kind: ReadDirFailed, Err: err}
	}
	children := make([]string, len(entries))
	for i, entry := range entries {
		children[i] = filepath.Join(path, entry.Name())
	}
	return ReadDirResult{Path: path, Kind: ReadDirOK, Children: children}
}
