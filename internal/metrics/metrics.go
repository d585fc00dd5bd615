package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// UpstreamCallsTotal counts generateContent calls by operation and result.
	UpstreamCallsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "studymate",
		Subsystem: "upstream",
		Name:      "calls_total",
		Help:      "Total number of upstream generation calls, labeled by operation and result.",
	}, []string{"operation", "result"})

	// UpstreamLatencySeconds is wall time of a single upstream call.
	UpstreamLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "studymate",
		Subsystem: "upstream",
		Name:      "latency_seconds",
		Help:      "Latency of upstream generation calls.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 60},
	}, []string{"operation"})

	// FallbackTotal counts replies that could not be parsed into the requested shape.
	FallbackTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "studymate",
		Name:      "fallback_total",
		Help:      "Total number of upstream replies degraded into a fallback record.",
	}, []string{"operation"})
)

// Register registers collectors with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			UpstreamCallsTotal,
			UpstreamLatencySeconds,
			FallbackTotal,
		)
	})
}

// ObserveUpstreamCall records a finished upstream call.
func ObserveUpstreamCall(operation string, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	UpstreamCallsTotal.WithLabelValues(operation, result).Inc()
	UpstreamLatencySeconds.WithLabelValues(operation).Observe(d.Seconds())
}

func RecordFallback(operation string) {
	FallbackTotal.WithLabelValues(operation).Inc()
}
