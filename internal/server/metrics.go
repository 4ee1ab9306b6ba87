package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sells-group/property-checklist/internal/model"
)

// Metrics holds the server's collectors on a private registry so several
// servers can coexist in one process.
type Metrics struct {
	reg *prometheus.Registry

	requests        *prometheus.CounterVec
	latency         *prometheus.HistogramVec
	assessments     *prometheus.CounterVec
	categoryResults *prometheus.CounterVec
	overall         prometheus.Histogram
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: "checklist", Name: "http_requests_total", Help: "HTTP requests."},
			[]string{"route", "method", "status"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "checklist", Name: "http_request_duration_seconds",
				Help:    "HTTP request duration seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		assessments: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: "checklist", Name: "assessments_total", Help: "Assessments scored."},
			[]string{"saved"},
		),
		categoryResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: "checklist", Name: "category_results_total", Help: "Category results by calculation status."},
			[]string{"category", "status"},
		),
		overall: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "checklist", Name: "overall_score",
			Help:    "Overall score of calculated assessments.",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}),
	}
	m.reg.MustRegister(m.requests, m.latency, m.assessments, m.categoryResults, m.overall)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

func (m *Metrics) observeHTTP(route, method string, status int, dur time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func (m *Metrics) observeScores(scores model.DashboardScores, overall *float64) {
	for _, c := range model.Categories() {
		if d, ok := scores[c]; ok {
			m.categoryResults.WithLabelValues(c.String(), d.CalculationStatus.String()).Inc()
		}
	}
	if overall != nil {
		m.overall.Observe(*overall)
	}
}

func (m *Metrics) observeAssessment(saved bool) {
	m.assessments.WithLabelValues(strconv.FormatBool(saved)).Inc()
}
