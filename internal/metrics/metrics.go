// Package metrics registers the Prometheus collectors for analyses.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_analyses_completed_total",
			Help: "Total number of résumé analyses completed",
		},
		[]string{"source"},
	)

	AnalysesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_analyses_failed_total",
			Help: "Total number of résumé analyses that failed",
		},
		[]string{"source", "reason"},
	)

	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resume_analysis_duration_seconds",
			Help:    "Duration of a résumé analysis in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	FinalScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "resume_final_score",
			Help:    "Distribution of final résumé scores",
			Buckets: prometheus.LinearBuckets(0, 2, 11),
		},
	)

	GrammarCheckFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "resume_grammar_check_failures_total",
			Help: "Total number of grammar checks that failed and were skipped",
		},
	)

	LinkProbes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_link_probes_total",
			Help: "Total number of external link probes by outcome",
		},
		[]string{"reachable"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_http_requests_total",
			Help: "Total number of HTTP API requests",
		},
		[]string{"method", "route", "status"},
	)
)

// Source labels.
const (
	SourceCLI  = "cli"
	SourceHTTP = "http"
)
