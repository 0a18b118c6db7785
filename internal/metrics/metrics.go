// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, matched route, and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codelens_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "route", "status"})

	// GatewayDuration tracks model latency per operation and outcome.
	GatewayDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "codelens_gateway_duration_seconds",
		Help:    "Time spent waiting for the model.",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"operation", "outcome"})

	// SnippetChars tracks the distribution of submitted snippet lengths.
	SnippetChars = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "codelens_snippet_chars",
		Help:    "Number of characters in submitted code.",
		Buckets: []float64{100, 500, 1000, 2500, 5000, 10000, 25000, 50000},
	})
)
