package profiling

import (
	"context"
	"runtime"
	"runtime/pprof"
	"sync"
	"time"

	"go.uber.org/zap"
)

var memProfilingInterval = 30 * time.Second
var pprofWriteHeapProfile = pprof.WriteHeapProfile
var runtimeGC = runtime.GC

// DoMemProfiling snapshots the heap to path every interval until ctx is done.
// The returned function writes a snapshot on demand.
func DoMemProfiling(ctx context.Context, path string, logger *zap.Logger) (write func()) {
	create, writeHeap, gc := osCreate, pprofWriteHeapProfile, runtimeGC
	var mu sync.Mutex
	write = func() {
		mu.Lock()
		defer mu.Unlock()
		f, err := create(path)
		if err != nil {
			logger.Error("could not create memory profile", zap.String("path", path), zap.Error(err))
			return
		}
		defer func() {
			_ = f.Close()
		}()
		gc()
		if err = writeHeap(f); err != nil {
			logger.Error("could not write memory profile", zap.String("path", path), zap.Error(err))
		}
	}

	interval := memProfilingInterval
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				write()
			}
		}
	}()
	return write
}
