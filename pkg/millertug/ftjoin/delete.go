package ftjoin

import (
	"context"
	"errors"
	"fmt"

	"github.com/filetug/millertug/pkg/files"
	"go.uber.org/zap"
)

type DeleteResult struct {
	Path string
	Err  error
}

// DeleteJoiner removes paths in the background. Deletions are never cancelled.
type DeleteJoiner struct {
	*joiner[DeleteResult]
	store files.Store
}

const defaultDeleteConcurrency = 4

func NewDeleteJoiner(store files.Store, opts ...Option) *DeleteJoiner {
	o := newOptions(defaultDeleteConcurrency, opts)
	return &DeleteJoiner{
		joiner: newJoiner[DeleteResult](context.Background(), "delete", o),
		store:  store,
	}
}

func (j *DeleteJoiner) Spawn(path string) {
	if !j.spawn(func(ctx context.Context) (DeleteResult, string) {
		err := j.store.Delete(context.WithoutCancel(ctx), path)
		if err != nil {
			return DeleteResult{Path: path, Err: fmt.Errorf("failed to delete %s: %w", path, err)}, "error"
		}
		return DeleteResult{Path: path}, "ok"
	}) {
		j.logger.Warn("deletion dropped after close", zap.String("path", path))
	}
}

// Drain waits for every outstanding deletion and returns their joined errors.
func (j *DeleteJoiner) Drain() error {
	var errs []error
	for _, r := range j.drain() {
		if r.Err != nil {
			j.logger.Error("deletion failed during shutdown", zap.String("path", r.Path), zap.Error(r.Err))
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}

// Close drains outstanding deletions and stops accepting new ones.
func (j *DeleteJoiner) Close() error {
	err := j.Drain()
	j.close(true)
	return err
}
