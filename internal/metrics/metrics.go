// Package metrics exposes Prometheus instrumentation for recommendation runs,
// fallback activations, topic claims and the HTTP API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fyp_recommendation_requests_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"}, // "full", "short", "error"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fyp_recommendation_duration_seconds",
			Help:    "Duration of a recommendation request in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecommendedTopics = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fyp_recommended_topics_total",
			Help: "Total number of topics returned, by source",
		},
		[]string{"source"}, // "RULE_BASED", "ML_FALLBACK"
	)

	QualifiedTopics = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fyp_qualified_topics",
			Help:    "Number of topics passing the strict hard gate per request",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	FallbackActivations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fyp_fallback_activations_total",
			Help: "Total number of requests that used the similarity fallback",
		},
	)

	// Claim Metrics
	ClaimsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fyp_topic_claims_total",
			Help: "Total number of topic claim attempts by result",
		},
		[]string{"result"}, // "success", "already_claimed", "student_has_claim", "unknown_topic", "error"
	)

	ClaimedTopics = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fyp_claimed_topics",
			Help: "Current number of claimed topics",
		},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fyp_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fyp_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

// RecordRecommendation records one finished recommendation request.
func RecordRecommendation(duration time.Duration, qualified, ruleBased, fallback int, short bool, err error) {
	RecommendationDuration.Observe(duration.Seconds())
	if err != nil {
		RecommendationsTotal.WithLabelValues("error").Inc()
		return
	}

	QualifiedTopics.Observe(float64(qualified))
	RecommendedTopics.WithLabelValues("RULE_BASED").Add(float64(ruleBased))
	RecommendedTopics.WithLabelValues("ML_FALLBACK").Add(float64(fallback))
	if fallback > 0 {
		FallbackActivations.Inc()
	}
	if short {
		RecommendationsTotal.WithLabelValues("short").Inc()
	} else {
		RecommendationsTotal.WithLabelValues("full").Inc()
	}
}

// RecordClaim records a claim attempt and the resulting ledger size.
func RecordClaim(result string, claimed int) {
	ClaimsTotal.WithLabelValues(result).Inc()
	ClaimedTopics.Set(float64(claimed))
}

// RecordAPIRequest records an API request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
