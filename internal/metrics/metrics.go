// Package metrics provides prometheus collectors for Skintelect.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skintelect/skintelect/internal/core/ports/driven"
)

const namespace = "skintelect"

// Analysis outcomes.
const (
	OutcomeCompleted = "completed"
	OutcomeRejected  = "rejected_"
)

// Ensure Registry implements the interface.
var _ driven.MetricsRecorder = (*Registry)(nil)

// Registry holds every collector and the registry they are exposed from.
type Registry struct {
	gatherer prometheus.Gatherer

	analysesTotal       *prometheus.CounterVec
	analysisIngredients prometheus.Histogram
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	affiliateClicks     *prometheus.CounterVec
	rateLimited         *prometheus.CounterVec
}

// New creates collectors registered on a fresh registry, together with the
// Go runtime and process collectors.
func New() (*Registry, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, err
	}
	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, err
	}
	return NewWith(reg, reg)
}

// NewWith registers the collectors on r and serves them from g.
func NewWith(r prometheus.Registerer, g prometheus.Gatherer) (*Registry, error) {
	m := &Registry{
		gatherer: g,
		analysesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "analyses_total",
				Help:      "Ingredient list analyses by outcome",
			},
			[]string{"outcome"}, // completed, rejected_empty, rejected_too_long, rejected_no_ingredients
		),
		analysisIngredients: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "analysis_ingredients",
				Help:      "Number of parsed ingredients per completed analysis",
				Buckets:   []float64{1, 5, 10, 20, 30, 50, 75, 100},
			},
		),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Time taken to serve HTTP requests",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		affiliateClicks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "affiliate_clicks_total",
				Help:      "Affiliate redirects by retailer",
			},
			[]string{"retailer"},
		),
		rateLimited: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limited_total",
				Help:      "Requests refused by the rate limiter, by bucket",
			},
			[]string{"bucket"},
		),
	}

	for _, c := range []prometheus.Collector{
		m.analysesTotal,
		m.analysisIngredients,
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.affiliateClicks,
		m.rateLimited,
	} {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// AnalysisCompleted records a successful analysis of n tokens.
func (m *Registry) AnalysisCompleted(n int) {
	m.analysesTotal.WithLabelValues(OutcomeCompleted).Inc()
	m.analysisIngredients.Observe(float64(n))
}

// AnalysisRejected records a validation failure.
func (m *Registry) AnalysisRejected(reason string) {
	m.analysesTotal.WithLabelValues(OutcomeRejected + reason).Inc()
}

// AffiliateClick records a redirect to retailer.
func (m *Registry) AffiliateClick(retailer string) {
	if retailer == "" {
		retailer = "unknown"
	}
	m.affiliateClicks.WithLabelValues(retailer).Inc()
}

// RateLimited records a refused request.
func (m *Registry) RateLimited(bucket string) {
	m.rateLimited.WithLabelValues(bucket).Inc()
}

// ObserveHTTP records a served request. route is the matched route
// template, not the raw path, to keep label cardinality bounded.
func (m *Registry) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the gathered metrics in the prometheus text format.
func (m *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
