package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request counts and latency for the gateway.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the request metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_http_requests_total",
		Help: "HTTP requests handled by the gateway.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	reg.MustRegister(requests, duration)
	return &HTTPMetrics{requests: requests, duration: duration}
}

// ObserveRequest records one completed request.
func (m *HTTPMetrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// CheckoutMetrics counts checkout submission outcomes.
type CheckoutMetrics struct {
	success prometheus.Counter
	failure *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout counters on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	success := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_checkout_success_total",
		Help: "Checkout submissions confirmed by the backend.",
	})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_checkout_failure_total",
		Help: "Checkout submissions that failed, by error code.",
	}, []string{"code"})
	reg.MustRegister(success, failure)
	return &CheckoutMetrics{success: success, failure: failure}
}

// IncSuccess counts a confirmed order placement.
func (m *CheckoutMetrics) IncSuccess() {
	if m == nil || m.success == nil {
		return
	}
	m.success.Inc()
}

// IncFailure counts a failed submission under its error code.
func (m *CheckoutMetrics) IncFailure(code string) {
	if m == nil || m.failure == nil {
		return
	}
	if code == "" {
		code = "UNKNOWN"
	}
	m.failure.WithLabelValues(code).Inc()
}
