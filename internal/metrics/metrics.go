package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"sync"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intern_match_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	ScoringDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "intern_match_scoring_duration_seconds",
			Help:    "Duration of each scoring collaborator call in seconds.",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
		},
	)
	MatchRequestsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intern_match_match_requests_total",
			Help: "Total number of match requests by outcome.",
		},
		[]string{"outcome"},
	)
	DroppedSuggestionsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "intern_match_suggestions_dropped_total",
			Help: "Total number of scorer suggestions that matched no catalog posting.",
		},
	)
	ApplicationsSubmittedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "intern_match_applications_submitted_total",
			Help: "Total number of accepted applications.",
		},
	)
	DuplicateApplicationsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "intern_match_applications_duplicate_total",
			Help: "Total number of rejected repeated applications.",
		},
	)
	StatusChangesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intern_match_application_status_changes_total",
			Help: "Total number of application status changes by target status.",
		},
		[]string{"status"},
	)
	ApplicationsByStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "intern_match_applications",
			Help: "Current number of applications by status.",
		},
		[]string{"status"},
	)
)

var registerOnce sync.Once

// Register adds all collectors to the default registry. Safe to call more
// than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ErrorsCounter)
		prometheus.MustRegister(ScoringDuration)
		prometheus.MustRegister(MatchRequestsCounter)
		prometheus.MustRegister(DroppedSuggestionsCounter)
		prometheus.MustRegister(ApplicationsSubmittedCounter)
		prometheus.MustRegister(DuplicateApplicationsCounter)
		prometheus.MustRegister(StatusChangesCounter)
		prometheus.MustRegister(ApplicationsByStatus)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
