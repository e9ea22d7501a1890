// Package metrics holds the Prometheus instruments of the forum server.
package metrics

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophforum/internal/fielderrors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gophforum"

// Metrics counts RPCs and the field errors mutations report.
type Metrics struct {
	registry    *prometheus.Registry
	rpcTotal    *prometheus.CounterVec
	rpcDuration *prometheus.HistogramVec
	fieldErrors *prometheus.CounterVec
}

// New registers the forum instruments, plus the Go and process collectors,
// on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		rpcTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_total",
			Help:      "Total number of handled RPCs",
		}, []string{"method", "code"}),

		rpcDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC handling duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),

		fieldErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "field_errors_total",
			Help:      "Validation errors returned to clients, by type",
		}, []string{"method", "type"}),
	}
}

// ObserveRPC records one finished RPC.
func (m *Metrics) ObserveRPC(method, code string, d time.Duration) {
	m.rpcTotal.WithLabelValues(method, code).Inc()
	m.rpcDuration.WithLabelValues(method).Observe(d.Seconds())
}

// ObserveFieldErrors counts each error in errs by its type.
func (m *Metrics) ObserveFieldErrors(method string, errs []fielderrors.FieldError) {
	for _, e := range errs {
		m.fieldErrors.WithLabelValues(method, e.Type).Inc()
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
