package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/amirhossein-jamali/peer-market/internal/domain/port/core"
)

const namespace = "peer_market"

// Prometheus implements core.Metrics on its own registry
type Prometheus struct {
	registry *prometheus.Registry

	registrations *prometheus.CounterVec
	purchases     *prometheus.CounterVec
	storeOps      *prometheus.HistogramVec
	storeErrors   *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

var _ core.Metrics = (*Prometheus)(nil)

// NewPrometheus creates and registers every marketplace collector. Process and
// Go runtime collectors are added when withRuntime is set.
func NewPrometheus(withRuntime bool) *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		registrations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "registrations_total",
				Help:      "Total number of user registrations by outcome.",
			},
			[]string{"outcome"},
		),
		purchases: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "purchases_total",
				Help:      "Total number of purchase attempts by outcome and rejection reason.",
			},
			[]string{"outcome", "reason"},
		),
		storeOps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "store_operation_seconds",
				Help:      "Duration of ledger loads and saves.",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
			},
			[]string{"op"},
		),
		storeErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_errors_total",
				Help:      "Total number of failed ledger loads and saves.",
			},
			[]string{"op"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
			},
			[]string{"method", "route"},
		),
	}

	p.registry.MustRegister(
		p.registrations,
		p.purchases,
		p.storeOps,
		p.storeErrors,
		p.httpRequests,
		p.httpDuration,
	)
	if withRuntime {
		p.registry.MustRegister(
			prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
			prometheus.NewGoCollector(),
		)
	}

	return p
}

// Registry exposes the underlying registry
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry in the Prometheus text format
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// ObserveRegistration counts a registration attempt
func (p *Prometheus) ObserveRegistration(outcome string) {
	p.registrations.WithLabelValues(outcome).Inc()
}

// ObservePurchase counts a purchase attempt
func (p *Prometheus) ObservePurchase(outcome, reason string) {
	p.purchases.WithLabelValues(outcome, reason).Inc()
}

// ObserveStoreOperation records the duration of a store call
func (p *Prometheus) ObserveStoreOperation(op string, elapsed time.Duration, err error) {
	p.storeOps.WithLabelValues(op).Observe(elapsed.Seconds())
	if err != nil {
		p.storeErrors.WithLabelValues(op).Inc()
	}
}

// ObserveHTTPRequest records one served request
func (p *Prometheus) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
