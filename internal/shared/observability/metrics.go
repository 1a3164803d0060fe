package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "doctypes_parsing_seconds",
		Help:    "Time spent parsing a source file.",
		Buckets: prometheus.DefBuckets,
	})

	FilesParsedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "doctypes_files_parsed_total",
		Help: "Total number of source files processed, by outcome.",
	}, []string{"outcome"})

	FunctionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "doctypes_functions_total",
		Help: "Total number of functions and methods inspected, by whether a return tag was found.",
	}, []string{"tagged"})

	ResolvedTypesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "doctypes_resolved_types_total",
		Help: "Total number of resolved return types, by variant.",
	}, []string{"variant"})

	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "doctypes_scan_seconds",
		Help:    "Time spent on a full scan.",
		Buckets: prometheus.DefBuckets,
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "doctypes_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	RescansThrottledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "doctypes_rescans_throttled_total",
		Help: "Total number of watch-triggered rescans delayed by the rate limiter.",
	})
)
