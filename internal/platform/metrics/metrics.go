// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics holds the Prometheus collectors of the client.

Metrics collected:

  - campus_api_requests_total: backend calls by method and outcome.
  - campus_api_request_duration_seconds: backend call latency by method.
  - campus_session_forced_logouts_total: logouts the user did not ask for, by reason.
  - campus_maintenance_redirects_total: 503 answers that sent the user to maintenance.

All methods are safe on a nil [*Metrics], so collectors stay optional in tests.
*/
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/taibuivan/campus/internal/platform/constants"
)

// Outcome labels for requests that never produced a status code.
const (
	OutcomeNetworkError = "network_error"
	OutcomeSkipped      = "unauthenticated"
)

// Metrics bundles the collectors registered for one process.
type Metrics struct {
	requestsTotal        *prometheus.CounterVec
	requestDuration      *prometheus.HistogramVec
	forcedLogouts        *prometheus.CounterVec
	maintenanceRedirects prometheus.Counter
}

// New registers the collectors on registerer.
func New(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: constants.AppName,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of backend calls by method and outcome",
		}, []string{"method", "outcome"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: constants.AppName,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Backend call duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),

		forcedLogouts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: constants.AppName,
			Subsystem: "session",
			Name:      "forced_logouts_total",
			Help:      "Total number of logouts triggered by the client",
		}, []string{"reason"}),

		maintenanceRedirects: factory.NewCounter(prometheus.CounterOpts{
			Namespace: constants.AppName,
			Name:      "maintenance_redirects_total",
			Help:      "Total number of maintenance answers received from the backend",
		}),
	}
}

// ObserveRequest records one finished backend call. Status 0 means the call
// never reached the backend; outcome then names why.
func (m *Metrics) ObserveRequest(method string, status int, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	if status > 0 {
		outcome = strconv.Itoa(status)
	}
	m.requestsTotal.WithLabelValues(method, outcome).Inc()
	m.requestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// ForcedLogout counts a logout triggered for reason.
func (m *Metrics) ForcedLogout(reason string) {
	if m == nil {
		return
	}
	m.forcedLogouts.WithLabelValues(reason).Inc()
}

// MaintenanceRedirect counts one 503 answer.
func (m *Metrics) MaintenanceRedirect() {
	if m == nil {
		return
	}
	m.maintenanceRedirects.Inc()
}
