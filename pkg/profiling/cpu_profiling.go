// Package profiling writes pprof CPU and heap profiles and serves the
// pprof HTTP endpoints.
package profiling

import (
	"os"
	"runtime/pprof"

	"go.uber.org/zap"
)

var osCreate = os.Create
var pprofStartCPUProfile = pprof.StartCPUProfile
var pprofStopCPUProfile = pprof.StopCPUProfile

// DoCPUProfiling starts a CPU profile written to path and returns the
// function that stops it. Failures are logged and yield a no-op.
func DoCPUProfiling(path string, logger *zap.Logger) (stop func()) {
	f, err := osCreate(path)
	if err != nil {
		logger.Error("could not create CPU profile", zap.String("path", path), zap.Error(err))
		return func() {}
	}
	if err = pprofStartCPUProfile(f); err != nil {
		logger.Error("could not start CPU profile", zap.String("path", path), zap.Error(err))
		_ = f.Close()
		return func() {}
	}
	stopCPUProfile := pprofStopCPUProfile
	return func() {
		stopCPUProfile()
		if err := f.Close(); err != nil {
			logger.Warn("could not close CPU profile", zap.String("path", path), zap.Error(err))
		}
	}
}
