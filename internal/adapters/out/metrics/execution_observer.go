// Package metrics exposes the execution recorder's activity to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fulfillment"

// ExecutionObserver counts recorded and rejected executions and order status
// transitions.
type ExecutionObserver struct {
	recorded    *prometheus.CounterVec
	latency     prometheus.Histogram
	rejected    *prometheus.CounterVec
	transitions *prometheus.CounterVec
}

func NewExecutionObserver(reg prometheus.Registerer) *ExecutionObserver {
	factory := promauto.With(reg)

	return &ExecutionObserver{
		recorded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "executions_recorded_total",
			Help:      "Executions committed, by whether the entitlement was already used up.",
		}, []string{"overage"}),
		latency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "execution_record_seconds",
			Help:      "Time to record one execution, including the order lock wait.",
			Buckets:   prometheus.DefBuckets,
		}),
		rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "executions_rejected_total",
			Help:      "Executions refused, by reason.",
		}, []string{"reason"}),
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_status_transitions_total",
			Help:      "Committed order status changes.",
		}, []string{"from", "to"}),
	}
}

func (o *ExecutionObserver) ExecutionRecorded(elapsed time.Duration, overage bool) {
	o.recorded.WithLabelValues(strconv.FormatBool(overage)).Inc()
	o.latency.Observe(elapsed.Seconds())
}

func (o *ExecutionObserver) ExecutionRejected(reason string) {
	o.rejected.WithLabelValues(reason).Inc()
}

func (o *ExecutionObserver) OrderStatusChanged(from, to string) {
	o.transitions.WithLabelValues(from, to).Inc()
}

// NewRegistry returns a registry preloaded with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
