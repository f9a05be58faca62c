// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics exposes the Prometheus collectors the walker and the
// dynamic detector populate: detection outcomes by proxy kind,
// detection/read failures by stage, and the per-run/per-walk cost of the
// pipeline.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// DetectionsTotal counts completed detections, labeled by the
	// resolved ProxyKind's String() form (including "Unknown").
	DetectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "proxydetect_detections_total",
		Help: "Count of completed detections by proxy kind.",
	}, []string{"kind"})

	// DetectionErrorsTotal counts detection/read failures, labeled by the
	// stage that raised them ("detect" or "read").
	DetectionErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "proxydetect_detection_errors_total",
		Help: "Count of detection/read failures by stage.",
	}, []string{"stage"})

	// DynamicRunDuration observes the wall-clock duration of a single
	// dynamic-detector interpreter run.
	DynamicRunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name: "proxydetect_dynamic_run_duration_seconds",
		Help: "Wall-clock duration of a single dynamic-detector interpreter run.",
	})

	// HopsTotal observes the number of External-dispatch hops the walker
	// followed before reaching a concrete result.
	HopsTotal = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "proxydetect_walker_hops",
		Help:    "Number of External-dispatch hops followed by the walker per call.",
		Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 7, 8},
	})
)

// MustRegister registers every collector in this package against reg. Call
// once at process startup.
func MustRegister(reg *prometheus.Registry) {
	reg.MustRegister(DetectionsTotal, DetectionErrorsTotal, DynamicRunDuration, HopsTotal)
}
