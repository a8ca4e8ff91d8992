package observability

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/adaptor/pkg/httpclient"
)

// StatusTransportError labels requests that never received a response.
const StatusTransportError = "error"

// Metrics holds the request collectors.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	InFlight prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adaptor_requests_total",
				Help: "Total upstream requests by status code",
			},
			[]string{"status"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "adaptor_request_duration_seconds",
				Help:    "Upstream request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"status"},
		),
		InFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "adaptor_requests_in_flight",
				Help: "Upstream requests awaiting a response",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Requests, m.Duration, m.InFlight)
	}
	return m
}

// Hooks returns client hooks that record every round trip.
func (m *Metrics) Hooks() httpclient.Hooks {
	return httpclient.Hooks{
		OnRequest: func(context.Context, httpclient.Request) {
			m.InFlight.Inc()
		},
		OnResponse: func(_ context.Context, ev httpclient.ResponseEvent) {
			m.InFlight.Dec()
			status := StatusTransportError
			if ev.Response != nil {
				status = strconv.Itoa(ev.Response.StatusCode)
			}
			m.Requests.WithLabelValues(status).Inc()
			m.Duration.WithLabelValues(status).Observe(ev.Duration.Seconds())
		},
	}
}
