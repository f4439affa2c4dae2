// Package ftjoin runs directory listings and deletions in the background
// and hands their results back to a single consumer.
package ftjoin

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/filetug/millertug/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

type options struct {
	logger      *zap.Logger
	concurrency int64
}

type Option func(*options)

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithConcurrency bounds how many tasks run at once. Extra tasks queue.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = int64(n)
		}
	}
}

func newOptions(defaultConcurrency int64, opts []Option) options {
	o := options{
		logger:      zap.NewNop(),
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// joiner is an unordered set of goroutines each delivering one result.
type joiner[T any] struct {
	name    string
	logger  *zap.Logger
	results chan T
	sem     *semaphore.Weighted
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	pending atomic.Int64
	closed  atomic.Bool
}

func newJoiner[T any](ctx context.Context, name string, o options) *joiner[T] {
	ctx, cancel := context.WithCancel(ctx)
	return &joiner[T]{
		name:    name,
		logger:  o.logger.With(zap.String("joiner", name)),
		results: make(chan T),
		sem:     semaphore.NewWeighted(o.concurrency),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// spawn runs task on its own goroutine. It returns false once the joiner is closed.
func (j *joiner[T]) spawn(task func(ctx context.Context) (T, string)) bool {
	if j.closed.Load() {
		return false
	}
	j.pending.Add(1)
	j.wg.Add(1)
	metrics.TaskSpawned(j.name)
	go func() {
		defer j.wg.Done()
		if err := j.sem.Acquire(j.ctx, 1); err != nil {
			j.abandon()
			return
		}
		started := time.Now()
		result, outcome := task(j.ctx)
		j.sem.Release(1)
		select {
		case j.results <- result:
			j.pending.Add(-1)
			metrics.TaskCompleted(j.name, outcome, time.Since(started))
		case <-j.ctx.Done():
			j.abandon()
		}
	}()
	return true
}

func (j *joiner[T]) abandon() {
	j.pending.Add(-1)
	metrics.TaskAbandoned(j.name)
}

// C delivers completed results. Only one goroutine should receive from it.
func (j *joiner[T]) C() <-chan T {
	return j.results
}

// Len is the number of tasks whose results have not been received yet.
func (j *joiner[T]) Len() int {
	return int(j.pending.Load())
}

// drain receives results until every spawned task has delivered.
func (j *joiner[T]) drain() []T {
	done := make(chan struct{})
	go func() {
		j.wg.Wait()
		close(done)
	}()
	var out []T
	for {
		select {
		case r := <-j.results:
			out = append(out, r)
		case <-done:
			return out
		}
	}
}

// close stops accepting tasks and cancels the ones still running.
// With wait set it also joins their goroutines. It is idempotent.
func (j *joiner[T]) close(wait bool) {
	if j.closed.Swap(true) {
		return
	}
	j.cancel()
	if wait {
		j.wg.Wait()
	}
}
