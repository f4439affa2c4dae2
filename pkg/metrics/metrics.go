// Package metrics provides Prometheus metrics for millertug.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	// Background task metrics
	tasksSpawned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "millertug_tasks_spawned_total",
			Help: "Total number of background tasks started",
		},
		[]string{"joiner"},
	)

	tasksCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "millertug_tasks_completed_total",
			Help: "Total number of background tasks finished",
		},
		[]string{"joiner", "outcome"},
	)

	tasksInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "millertug_tasks_in_flight",
			Help: "Number of background tasks not yet collected",
		},
		[]string{"joiner"},
	)

	taskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "millertug_task_duration_seconds",
			Help:    "Background task duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"joiner"},
	)

	// Scheduler metrics
	ticksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "millertug_ticks_total",
			Help: "Total number of scheduler ticks by outcome",
		},
		[]string{"outcome"},
	)

	// Cache metrics
	cachedEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "millertug_cached_entries",
			Help: "Number of paths held in the entry cache",
		},
	)
)

func TaskSpawned(joiner string) {
	tasksSpawned.WithLabelValues(joiner).Inc()
	tasksInFlight.WithLabelValues(joiner).Inc()
}

// TaskCompleted records a task that finished with outcome after running for d.
func TaskCompleted(joiner, outcome string, d time.Duration) {
	tasksCompleted.WithLabelValues(joiner, outcome).Inc()
	tasksInFlight.WithLabelValues(joiner).Dec()
	taskDuration.WithLabelValues(joiner).Observe(d.Seconds())
}

// TaskAbandoned records a task whose result was never collected.
func TaskAbandoned(joiner string) {
	tasksInFlight.WithLabelValues(joiner).Dec()
}

func Tick(outcome string) {
	ticksTotal.WithLabelValues(outcome).Inc()
}

func SetCachedEntries(n int) {
	cachedEntries.Set(float64(n))
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	go func() {
		logger.Info("metrics server listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()
	return nil
}
