// Package metrics exposes Prometheus counters for scheduled runs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	runsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dropdate_runs_total",
			Help: "Total number of scheduled runs by outcome",
		},
		[]string{"outcome"},
	)

	filesRenamedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dropdate_files_renamed_total",
			Help: "Total number of files renamed with a date prefix",
		},
	)

	filesSkippedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dropdate_files_skipped_total",
			Help: "Total number of files skipped because they were already renamed",
		},
	)

	tokenRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dropdate_token_refreshes_total",
			Help: "Total number of access token refresh attempts",
		},
		[]string{"status"},
	)
)

func RecordRun(outcome string) {
	runsTotal.WithLabelValues(outcome).Inc()
}

func RecordRenamed() {
	filesRenamedTotal.Inc()
}

func RecordSkipped() {
	filesSkippedTotal.Inc()
}

func RecordRefresh(ok bool) {
	status := "success"
	if !ok {
		status = "failure"
	}
	tokenRefreshesTotal.WithLabelValues(status).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
