// Package metrics registers the service's prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PredictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agro_api_predictions_total",
		Help: "Total number of predictions served, by category.",
	}, []string{"category"})

	PredictionFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agro_api_prediction_failures_total",
		Help: "Total number of failed prediction requests, by category.",
	}, []string{"category"})

	LedgerWrites = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agro_api_ledger_writes_total",
		Help: "Total number of records appended to the prediction ledger.",
	})

	LedgerWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agro_api_ledger_write_failures_total",
		Help: "Total number of ledger insert failures.",
	})

	ScoringDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "agro_api_scoring_duration_seconds",
		Help:    "Duration of one scoring call, by category.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
	}, []string{"category"})
)
