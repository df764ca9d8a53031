// Package metrics defines the Prometheus collectors exported on the metrics port.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rejection reasons.
const (
	ReasonBadRequest = "bad_request"
	ReasonMapping    = "mapping"
	ReasonShape      = "shape"
	ReasonModel      = "model"
)

var (
	AssessmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cardiorisk_assessments_total",
		Help: "Scored submissions by risk tier.",
	}, []string{"tier"})

	RejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cardiorisk_assessment_rejections_total",
		Help: "Submissions that produced no score, by reason.",
	}, []string{"reason"})

	ScoreSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cardiorisk_model_score_seconds",
		Help:    "Time spent encoding and scoring one submission.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	})

	ModelInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "cardiorisk_model_info",
		Help: "Loaded classifier, value is always 1.",
	}, []string{"model_id"})
)

// SetModel marks modelID as the loaded classifier.
func SetModel(modelID string) {
	ModelInfo.Reset()
	ModelInfo.WithLabelValues(modelID).Set(1)
}
