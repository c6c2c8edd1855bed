package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// NewPrometheusRegistry returns a registry with the Go runtime and process
// collectors already registered.
func NewPrometheusRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

// Collectors are the portal's own metrics.
type Collectors struct {
	HTTPRequestTotals    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestInFlight  prometheus.Gauge
	PAExpiringReferrals  prometheus.Gauge
	PAReminderPublished  prometheus.Counter
	BackendRequestTotals *prometheus.CounterVec
}

func NewCollectors(registry prometheus.Registerer) *Collectors {
	c := &Collectors{
		HTTPRequestTotals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_http_request_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portal_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route"},
		),
		HTTPRequestInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "portal_http_request_in_flight",
				Help: "Current in-flight requests",
			},
		),
		PAExpiringReferrals: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "portal_pa_expiring_referrals",
				Help: "Approved prior authorizations expiring within the reminder window at the last sweep",
			},
		),
		PAReminderPublished: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "portal_pa_reminder_published_total",
				Help: "PA expiry reminders published",
			},
		),
		BackendRequestTotals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_backend_request_total",
				Help: "Requests sent to the referral backend",
			},
			[]string{"resource", "method", "status"},
		),
	}

	registry.MustRegister(
		c.HTTPRequestTotals,
		c.HTTPRequestDuration,
		c.HTTPRequestInFlight,
		c.PAExpiringReferrals,
		c.PAReminderPublished,
		c.BackendRequestTotals,
	)
	return c
}
