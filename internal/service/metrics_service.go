package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API
// and the scrape pipeline.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	scrapeRuns      *prometheus.CounterVec
	scrapeDuration  prometheus.Histogram
	eventsSaved     prometheus.Counter
}

// NewMetricsService registers the core collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	scrapeRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scrape_runs_total",
		Help: "Total number of scrape cycles by outcome",
	}, []string{"result"})

	scrapeDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scrape_duration_seconds",
		Help:    "Duration of full scrape cycles",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
	})

	eventsSaved := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "events_saved_total",
		Help: "Total newly stored events across all scrape cycles",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, scrapeRuns, scrapeDuration, eventsSaved, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		scrapeRuns:      scrapeRuns,
		scrapeDuration:  scrapeDuration,
		eventsSaved:     eventsSaved,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records per-request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveScrapeRun records the outcome and duration of one scrape cycle.
func (m *MetricsService) ObserveScrapeRun(result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.scrapeRuns.WithLabelValues(result).Inc()
	m.scrapeDuration.Observe(duration.Seconds())
}

// AddEventsSaved tracks how many new events a cycle persisted.
func (m *MetricsService) AddEventsSaved(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.eventsSaved.Add(float64(count))
}
