package scraper

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the crawl.
type Metrics struct {
	Registry            *prometheus.Registry
	PagesTotal          prometheus.Counter
	ItemsExtractedTotal prometheus.Counter
	ParseFailuresTotal  *prometheus.CounterVec
	NavigationDuration  prometheus.Histogram
	NavErrorsTotal      *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	pages := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "crawler_pages_total",
			Help: "Total catalog pages visited by the crawler.",
		},
	)
	items := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "crawler_items_extracted_total",
			Help: "Total catalog items turned into records.",
		},
	)
	parseFailures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crawler_parse_failures_total",
			Help: "Total soft field-parse failures by field.",
		},
		[]string{"field"},
	)
	navDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "crawler_navigation_duration_seconds",
			Help:    "Page navigation latency.",
			Buckets: prometheus.DefBuckets,
		},
	)
	navErrors := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crawler_navigation_errors_total",
			Help: "Total navigation errors by classified type.",
		},
		[]string{"error_type"},
	)

	registry.MustRegister(pages, items, parseFailures, navDuration, navErrors)

	return &Metrics{
		Registry:            registry,
		PagesTotal:          pages,
		ItemsExtractedTotal: items,
		ParseFailuresTotal:  parseFailures,
		NavigationDuration:  navDuration,
		NavErrorsTotal:      navErrors,
	}
}

// IncPages increments the pages visited counter.
func (m *Metrics) IncPages() {
	if m == nil {
		return
	}
	m.PagesTotal.Inc()
}

// IncItems increments the extracted items counter.
func (m *Metrics) IncItems() {
	if m == nil {
		return
	}
	m.ItemsExtractedTotal.Inc()
}

// IncParseFailure increments the soft-parse failure counter for a field.
func (m *Metrics) IncParseFailure(field string) {
	if m == nil {
		return
	}
	m.ParseFailuresTotal.WithLabelValues(field).Inc()
}

// ObserveNavigation records one page navigation duration.
func (m *Metrics) ObserveNavigation(d time.Duration) {
	if m == nil {
		return
	}
	m.NavigationDuration.Observe(d.Seconds())
}

// IncNavError increments the navigation error counter for a type label.
func (m *Metrics) IncNavError(errorType string) {
	if m == nil {
		return
	}
	m.NavErrorsTotal.WithLabelValues(errorType).Inc()
}
