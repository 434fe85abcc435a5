package netx

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects Prometheus metrics for outbound requests. A nil *Metrics
// records nothing.
type Metrics struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight *prometheus.GaugeVec
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		requestsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "globalstats_requests_total",
				Help: "Total number of requests sent to the globalstats API",
			},
			[]string{"method", "status_code", "endpoint"},
		),
		requestDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "globalstats_request_duration_seconds",
				Help:    "Duration of globalstats API requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "status_code", "endpoint"},
		),
		requestsInFlight: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "globalstats_requests_in_flight",
				Help: "Number of globalstats API requests currently in flight",
			},
			[]string{"method", "endpoint"},
		),
	}
}

// start marks a request in flight and returns a func that records its
// outcome. Status 0 means the request never got a response.
func (m *Metrics) start(method, endpoint string) func(status int) {
	if m == nil {
		return func(int) {}
	}
	begin := time.Now()
	inFlight := m.requestsInFlight.WithLabelValues(method, endpoint)
	inFlight.Inc()

	return func(status int) {
		inFlight.Dec()
		code := "error"
		if status > 0 {
			code = strconv.Itoa(status)
		}
		m.requestsTotal.WithLabelValues(method, code, endpoint).Inc()
		m.requestDuration.WithLabelValues(method, code, endpoint).Observe(time.Since(begin).Seconds())
	}
}
