// Package metrics exposes ingest counters in prometheus format
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/umputun/corteo/pkg/domain"
)

// item results used as metric label values
const (
	ResultFound     = "found"
	ResultImported  = "imported"
	ResultDuplicate = "skipped_duplicate"
	ResultFailed    = "failed"
)

// Recorder collects batch reports into prometheus metrics. It has its own registry.
type Recorder struct {
	registry *prometheus.Registry
	items    *prometheus.CounterVec
	runs     *prometheus.CounterVec
	lastRun  *prometheus.GaugeVec
}

// NewRecorder makes a Recorder with registered collectors, including go and process ones
func NewRecorder() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}
	r.items = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "corteo",
		Name:      "ingest_items_total",
		Help:      "Number of ingested items by source and result",
	}, []string{"source", "result"})
	r.runs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "corteo",
		Name:      "ingest_runs_total",
		Help:      "Number of ingest runs by source",
	}, []string{"source"})
	r.lastRun = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "corteo",
		Name:      "ingest_last_run_timestamp_seconds",
		Help:      "Unix timestamp of the last finished ingest run",
	}, []string{"source"})

	r.registry.MustRegister(r.items, r.runs, r.lastRun,
		collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return r
}

// RecordBatch adds report counts to the items counter
func (r *Recorder) RecordBatch(source string, report domain.BatchReport) {
	r.items.WithLabelValues(source, ResultFound).Add(float64(report.Found))
	r.items.WithLabelValues(source, ResultImported).Add(float64(report.Imported))
	r.items.WithLabelValues(source, ResultDuplicate).Add(float64(report.SkippedDuplicate))
	r.items.WithLabelValues(source, ResultFailed).Add(float64(report.Failed))
}

// RecordRun counts a finished run and sets its timestamp
func (r *Recorder) RecordRun(source string, at time.Time) {
	r.runs.WithLabelValues(source).Inc()
	r.lastRun.WithLabelValues(source).Set(float64(at.Unix()))
}

// Handler returns the http handler serving the registry
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
