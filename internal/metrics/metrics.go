package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobportal_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	DecisionsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobportal_moderation_decisions_total",
			Help: "Total number of recorded moderation decisions.",
		},
		[]string{"outcome"},
	)
	MatchRequestsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobportal_match_requests_total",
			Help: "Total number of match requests by policy.",
		},
		[]string{"policy"},
	)
	// Dropped entries are invisible to callers, so this counter is the only
	// place identifier drift between engine and catalog shows up.
	OrphanedResultsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobportal_match_orphaned_results_total",
			Help: "Total number of engine results dropped because no catalog posting matched.",
		},
	)
	UpstreamErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobportal_engine_errors_total",
			Help: "Total number of scoring engine call failures.",
		},
		[]string{"endpoint"},
	)
	EngineStepDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "jobportal_engine_step_duration_seconds",
			Help:       "Duration of each scoring engine call.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"step"},
	)
	MatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jobportal_match_pipeline_duration_seconds",
			Help:    "End to end duration of the match pipeline.",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10},
		},
	)
	ActiveArtifactsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "jobportal_active_resume_artifacts",
			Help: "Number of resume artifacts currently held in the session store.",
		},
	)
)

func StartMetricsServer(port int) {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(DecisionsCounter)
	prometheus.MustRegister(MatchRequestsCounter)
	prometheus.MustRegister(OrphanedResultsCounter)
	prometheus.MustRegister(UpstreamErrorsCounter)
	prometheus.MustRegister(EngineStepDuration)
	prometheus.MustRegister(MatchDuration)
	prometheus.MustRegister(ActiveArtifactsGauge)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", port), nil))
	}()
}
