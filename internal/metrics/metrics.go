// Package metrics exposes Prometheus collectors for the wodbot service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// FetchAttempts tracks HTTP GET attempts against the workout page.
	FetchAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wodbot_fetch_attempts_total",
		Help: "The total number of fetch attempts dispatched.",
	})
	// FetchRetries tracks attempts beyond the first for an invocation.
	FetchRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wodbot_fetch_retries_total",
		Help: "The total number of fetch retries after a failed attempt.",
	})
	// FetchFailures tracks invocations that exhausted every attempt.
	FetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wodbot_fetch_failures_total",
		Help: "The total number of fetches that failed after all retries.",
	})
	// SuspectedBlocks tracks responses rejected as block/challenge pages.
	SuspectedBlocks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wodbot_suspected_blocks_total",
		Help: "The total number of responses that looked like an anti-bot block.",
	})
	// HeadlessRenders tracks escalations to the headless renderer.
	HeadlessRenders = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wodbot_headless_renders_total",
		Help: "The total number of headless render escalations.",
	})
	// Degradations tracks parsing irregularities absorbed into sentinel
	// values, labeled by reason.
	Degradations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wodbot_extraction_degradations_total",
		Help: "The total number of extraction degradations, by reason.",
	}, []string{"reason"})
	// RecordsAssembled tracks successfully assembled records, labeled
	// by whether the day classified as a rest day.
	RecordsAssembled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wodbot_records_assembled_total",
		Help: "The total number of records assembled, by rest_day.",
	}, []string{"rest_day"})
)

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
