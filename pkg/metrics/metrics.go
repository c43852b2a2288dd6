package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Cluster metrics
	WorkersTotal = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lightflus_workers_total",
			Help: "Total number of known workers by liveness status",
		},
		[]string{"status"},
	)

	DataflowsTotal = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lightflus_dataflows_total",
			Help: "Number of dataflows deployed by create_dataflow, by lifecycle status (not decremented on termination)",
		},
		[]string{"status"},
	)

	// RPC Gateway metrics
	RPCCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lightflus_rpc_calls_total",
			Help: "Total number of outbound RPC calls by peer, method and result code",
		},
		[]string{"peer", "method", "code"},
	)

	RPCCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lightflus_rpc_call_duration_seconds",
			Help:    "Outbound RPC call duration in seconds by method",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// Coordinator lifecycle metrics
	DataflowCreateDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lightflus_dataflow_create_duration_seconds",
			Help:    "Time taken for a create_dataflow submission to complete",
			Buckets: prometheus.DefBuckets,
		},
	)

	DataflowTerminateDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lightflus_dataflow_terminate_duration_seconds",
			Help:    "Time taken for a terminate_dataflow call to complete",
			Buckets: prometheus.DefBuckets,
		},
	)

	DataflowsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lightflus_dataflows_failed_total",
			Help: "Total number of dataflow submissions that failed, by reason",
		},
		[]string{"reason"},
	)

	// Liveness probe metrics
	ProbeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lightflus_probe_duration_seconds",
			Help:    "Time taken for one probe_state cycle across all workers",
			Buckets: prometheus.DefBuckets,
		},
	)

	ProbeCyclesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lightflus_probe_cycles_total",
			Help: "Total number of probe_state cycles completed",
		},
	)

	// Ack/Heartbeat metrics
	HeartbeatsReceivedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lightflus_heartbeats_received_total",
			Help: "Total number of inbound heartbeats, by sender node type",
		},
		[]string{"node_type"},
	)

	AcksReceivedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lightflus_acks_received_total",
			Help: "Total number of inbound acks, by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(WorkersTotal)
	prometheus.MustRegister(DataflowsTotal)
	prometheus.MustRegister(RPCCallsTotal)
	prometheus.MustRegister(RPCCallDuration)
	prometheus.MustRegister(DataflowCreateDuration)
	prometheus.MustRegister(DataflowTerminateDuration)
	prometheus.MustRegister(DataflowsFailed)
	prometheus.MustRegister(ProbeDuration)
	prometheus.MustRegister(ProbeCyclesTotal)
	prometheus.MustRegister(HeartbeatsReceivedTotal)
	prometheus.MustRegister(AcksReceivedTotal)
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the duration to a histogram.
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	histogram.Observe(time.Since(t.start).Seconds())
}

// ObserveDurationVec records the duration to a histogram vec with labels.
func (t *Timer) ObserveDurationVec(histogram prometheus.ObserverVec, labels ...string) {
	histogram.WithLabelValues(labels...).Observe(time.Since(t.start).Seconds())
}

// Duration returns the elapsed time since the timer started.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
