// Package metrics holds the process-wide prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GRPCRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jii_grpc_requests_total",
			Help: "Total number of gRPC requests handled",
		},
		[]string{"method", "code"},
	)

	GRPCRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jii_grpc_request_duration_seconds",
			Help:    "Duration of gRPC requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jii_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	ResponseCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jii_response_cache_lookups_total",
			Help: "Read-through cache lookups of gRPC responses, by kind and result",
		},
		[]string{"kind", "result"},
	)

	// SentimentCacheLookups counts memo lookups of the lexicon analyzer.
	SentimentCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jii_sentiment_cache_lookups_total",
			Help: "Lexicon sentiment memo lookups by result",
		},
		[]string{"result"},
	)

	SentimentLabelsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jii_sentiment_labels_total",
			Help: "Answers classified, by mode and label",
		},
		[]string{"mode", "label"},
	)

	ExportedRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jii_export_rows_total",
			Help: "Rows written to CSV exports, by view",
		},
		[]string{"view"},
	)
)
