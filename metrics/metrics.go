package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ScansTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "nmrstats_scans_total",
		Help: "Total number of directory scans",
	})
	FilesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "nmrstats_acqus_files_total",
		Help: "Total number of acqus files examined",
	})
	UnreadableFilesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "nmrstats_acqus_unreadable_total",
		Help: "Total number of acqus files that could not be read",
	})
	FlaggedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "nmrstats_acqus_flagged_total",
		Help: "Total number of experiments whose acquisition time can't be trusted",
	})
	ScanDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "nmrstats_scan_duration_seconds",
		Help:    "Duration of directory scans in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
	})

	registerOnce sync.Once
)

// Init registers the collectors with the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			ScansTotal,
			FilesTotal,
			UnreadableFilesTotal,
			FlaggedTotal,
			ScanDurationSeconds,
		)
	})
}

func Handler() http.Handler {
	Init()
	return promhttp.Handler()
}
