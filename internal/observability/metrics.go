package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// assessment pipeline and HTTP surface.
type Metrics struct {
	RequestsConsumed    prometheus.Counter
	AssessmentsProduced prometheus.Counter
	AssessmentErrors    prometheus.Counter
	PipelineRunning     prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// SLARiskOutcomes counts completed assessments by risk class.
	SLARiskOutcomes *prometheus.CounterVec // labels: risk={low,medium,high,critical}

	// AssessCache counts HTTP memo lookups.
	AssessCache *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.RequestsConsumed,
		m.AssessmentsProduced,
		m.AssessmentErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.SLARiskOutcomes,
		m.AssessCache,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RequestsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "link_impact",
			Name:      "requests_consumed_total",
			Help:      "Total assessment requests read from the source topic.",
		}),
		AssessmentsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "link_impact",
			Name:      "assessments_produced_total",
			Help:      "Total completed assessments written to the sink topic.",
		}),
		AssessmentErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "link_impact",
			Name:      "assessment_errors_total",
			Help:      "Total assessment failures (parse errors and precondition violations).",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "link_impact",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "link_impact",
			Name:      "batch_size",
			Help:      "Number of requests per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "link_impact",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-assess-load cycle.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		SLARiskOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "link_impact",
			Name:      "sla_risk_outcomes_total",
			Help:      "Completed assessments by SLA risk class.",
		}, []string{"risk"}),
		AssessCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "link_impact",
			Name:      "assess_cache_total",
			Help:      "HTTP assessment cache lookups by result.",
		}, []string{"result"}),
	}
}
