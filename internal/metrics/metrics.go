// file: internal/metrics/metrics.go
// version: 2.0.0
// guid: 9f8e7d6c-5b4a-3210-9fed-cba876543210

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	verdictTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "genre_updater",
		Name:      "verdicts_total",
		Help:      "Total number of album verdicts by kind",
	}, []string{"verdict"})
	markTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "genre_updater",
		Name:      "verification_marks_total",
		Help:      "Total number of verification-queue marks by reason",
	}, []string{"reason"})
	lookupFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "genre_updater",
		Name:      "lookup_failures_total",
		Help:      "Total number of exhausted external lookups by source",
	}, []string{"source"})
	lookupDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "genre_updater",
		Name:      "lookup_duration_seconds",
		Help:      "Histogram of external lookup durations in seconds by source",
		Buckets:   prometheus.ExponentialBuckets(0.05, 1.6, 10), // ~50ms up to several seconds/minutes
	}, []string{"source"})

	albumsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "genre_updater",
		Name:      "albums_total",
		Help:      "Number of albums seen by the current run",
	})
	pendingGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "genre_updater",
		Name:      "verification_pending_total",
		Help:      "Current number of albums in the verification queue",
	})
)

// Register initializes metrics with the global Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(verdictTotal, markTotal, lookupFailed, lookupDuration,
			albumsGauge, pendingGauge)
	})
}

// Verdict lifecycle helpers
func IncVerdict(kind string)               { verdictTotal.WithLabelValues(kind).Inc() }
func IncMark(reason string)                { markTotal.WithLabelValues(reason).Inc() }
func IncLookupFailed(source string)        { lookupFailed.WithLabelValues(source).Inc() }
func ObserveLookupDuration(source string, d time.Duration) {
	lookupDuration.WithLabelValues(source).Observe(d.Seconds())
}

// Gauges
func SetAlbums(n int)  { albumsGauge.Set(float64(n)) }
func SetPending(n int) { pendingGauge.Set(float64(n)) }
