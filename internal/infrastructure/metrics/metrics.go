package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry         *prometheus.Registry
	salesCreated     prometheus.Counter
	saleAmount       prometheus.Histogram
	invoicesRendered *prometheus.CounterVec
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
	eventsFailed     prometheus.Counter
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		salesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "truegrow_sales_created_total",
			Help: "Sales recorded by shop owners.",
		}),
		saleAmount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "truegrow_sale_amount",
			Help:    "Grand total of recorded sales.",
			Buckets: []float64{100, 500, 1000, 5000, 10000, 50000, 100000},
		}),
		invoicesRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "truegrow_invoices_rendered_total",
			Help: "Invoices rendered, by output format.",
		}, []string{"format"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "truegrow_report_cache_hits_total",
			Help: "Analytics reports served from cache.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "truegrow_report_cache_misses_total",
			Help: "Analytics reports rebuilt from sales.",
		}),
		eventsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "truegrow_sale_events_failed_total",
			Help: "Sale events that could not be published.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "truegrow_http_requests_total",
			Help: "HTTP requests, by route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "truegrow_http_request_duration_seconds",
			Help:    "HTTP request latency, by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.salesCreated, m.saleAmount, m.invoicesRendered, m.cacheHits, m.cacheMisses,
		m.eventsFailed, m.httpRequests, m.httpDuration,
	)
	return m
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) SaleCreated(total float64) {
	if m == nil {
		return
	}
	m.salesCreated.Inc()
	m.saleAmount.Observe(total)
}

func (m *Metrics) InvoiceRendered(format string) {
	if m == nil {
		return
	}
	m.invoicesRendered.WithLabelValues(format).Inc()
}

func (m *Metrics) ReportCacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) ReportCacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}

func (m *Metrics) EventPublishFailed() {
	if m == nil {
		return
	}
	m.eventsFailed.Inc()
}

// ObserveRequest records one served HTTP request
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
