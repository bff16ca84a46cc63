package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AnalysesTotal tracks completed analyses per kind and verdict
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sniffer_analyses_total",
			Help: "Total number of analyses completed",
		},
		[]string{"kind", "verdict"},
	)

	// AnalysisErrorsTotal tracks analyses rejected before computation
	AnalysisErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sniffer_analysis_errors_total",
			Help: "Total number of analyses that failed validation",
		},
		[]string{"kind"},
	)

	// AlertsTotal tracks alerts raised per finding type and severity
	AlertsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sniffer_alerts_total",
			Help: "Total number of alerts raised",
		},
		[]string{"type", "severity"},
	)

	// AnalysisDuration tracks analysis latency
	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sniffer_analysis_duration_seconds",
			Help:    "Analysis latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	// EventsAnalyzed tracks decoded events and transactions fed to the detectors
	EventsAnalyzed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sniffer_events_analyzed_total",
			Help: "Total number of decoded events and transactions analyzed",
		},
		[]string{"kind"},
	)

	// EmitErrors tracks failed alert deliveries per sink
	EmitErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sniffer_emit_errors_total",
			Help: "Total number of alert emit failures",
		},
		[]string{"sink"},
	)

	// JobsProcessed tracks queued jobs handled by the worker
	JobsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sniffer_jobs_processed_total",
			Help: "Total number of queued jobs processed",
		},
		[]string{"kind", "status"},
	)
)
