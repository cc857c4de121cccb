package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// snapshot batch and the forcing export.
type Metrics struct {
	// Snapshot batch metrics.
	SnapshotsWritten  prometheus.Counter
	SnapshotsSkipped  prometheus.Counter
	SnapshotFailures  prometheus.Counter
	DownloaderRunning prometheus.Gauge
	BatchDuration     prometheus.Histogram

	// Static-map API metrics.
	MapRequests    *prometheus.CounterVec   // labels: map_type={satellite,roadmap}, outcome={success,error}
	MapAPIDuration *prometheus.HistogramVec // labels: map_type={satellite,roadmap}

	// Forcing export metrics.
	SamplesPublished prometheus.Counter
	PublishErrors    prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.SnapshotsWritten,
		m.SnapshotsSkipped,
		m.SnapshotFailures,
		m.DownloaderRunning,
		m.BatchDuration,
		m.MapRequests,
		m.MapAPIDuration,
		m.SamplesPublished,
		m.PublishErrors,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid "already
// registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SnapshotsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aedes_study",
			Name:      "snapshots_written_total",
			Help:      "Map images fetched and written to the artifact tree.",
		}),
		SnapshotsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aedes_study",
			Name:      "snapshots_skipped_total",
			Help:      "Map images skipped because the artifact already exists.",
		}),
		SnapshotFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aedes_study",
			Name:      "snapshot_failures_total",
			Help:      "Map images that could not be fetched or written.",
		}),
		DownloaderRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aedes_study",
			Name:      "downloader_running",
			Help:      "1 while the snapshot batch is active, 0 otherwise.",
		}),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "aedes_study",
			Name:      "batch_duration_seconds",
			Help:      "Duration of a complete snapshot batch run.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),
		MapRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aedes_study",
			Name:      "map_requests_total",
			Help:      "Static-map API requests by map type and outcome.",
		}, []string{"map_type", "outcome"}),
		MapAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "aedes_study",
			Name:      "map_api_duration_seconds",
			Help:      "Static-map API request duration in seconds, retries included.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"map_type"}),
		SamplesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aedes_study",
			Name:      "forcing_samples_published_total",
			Help:      "Forcing samples published to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aedes_study",
			Name:      "forcing_publish_errors_total",
			Help:      "Failed forcing-sample publish attempts.",
		}),
	}
}
