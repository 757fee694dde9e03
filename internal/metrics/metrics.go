// Package metrics holds the station's prometheus collectors.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "devstation"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests processed, labeled by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Histogram of request durations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	CommandsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "terminal_commands_total",
		Help:      "Terminal command lines processed, labeled by command and result kind.",
	}, []string{"command", "kind"})

	ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "terminal_sessions_active",
		Help:      "Terminal sessions with a live interpreter.",
	})
)

var once sync.Once

// Init registers the collectors with the default registry. Later calls are
// no-ops.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(HTTPRequestsTotal, HTTPDuration, CommandsTotal, ActiveSessions)
	})
}
