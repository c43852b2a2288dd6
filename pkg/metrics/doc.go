/*
Package metrics provides Prometheus metrics collection and exposition for
the coordination plane, plus the /health, /ready, and /live HTTP endpoints
the coordinator serves alongside /metrics.

# Architecture

	┌──────────────────── METRICS SYSTEM ──────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │          Prometheus Registry                │          │
	│  │  - Global DefaultRegisterer                 │          │
	│  │  - MustRegister at package init             │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │              Metric Families                │          │
	│  │                                              │          │
	│  │  Gauge: instant values (workers by status)   │          │
	│  │  Counter: monotonic increases (RPC calls)    │          │
	│  │  Histogram: distributions (call latency)     │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │       Health / Readiness / Liveness         │          │
	│  │  - RegisterComponent("storage", ok, msg)     │          │
	│  │  - GetHealth / GetReadiness                  │          │
	│  │  - HealthHandler / ReadyHandler / Liveness   │          │
	│  └────────────────────────────────────────────┘          │
	└────────────────────────────────────────────────────────────┘

# Metric Catalog

lightflus_workers_total{status}:
  - Type: Gauge
  - Description: known workers by liveness status (Pending/Running/Unreachable)
  - Updated: after every probe cycle, from the cluster registry snapshot

lightflus_dataflows_total{status}:
  - Type: Gauge
  - Description: dataflows deployed by create_dataflow, by lifecycle status
  - Updated: incremented on each successful create_dataflow; terminate_dataflow
    does not decrement it

lightflus_rpc_calls_total{peer, method, code}:
  - Type: Counter
  - Description: outbound RPC calls by peer, method, and result code
  - Updated: registered and exported; no gateway in this module records into it

lightflus_rpc_call_duration_seconds{method}:
  - Type: Histogram
  - Description: outbound RPC call duration by method
  - Updated: registered and exported; no gateway in this module records into it

lightflus_dataflow_create_duration_seconds:
  - Type: Histogram
  - Description: time for one create_dataflow submission to complete

lightflus_dataflow_terminate_duration_seconds:
  - Type: Histogram
  - Description: time for one terminate_dataflow call to complete

lightflus_dataflows_failed_total{reason}:
  - Type: Counter
  - Description: dataflow submissions that failed, labeled by errs.Kind

lightflus_probe_duration_seconds:
  - Type: Histogram
  - Description: time for one probe_state cycle across all workers

lightflus_probe_cycles_total:
  - Type: Counter
  - Description: probe_state cycles completed

lightflus_heartbeats_received_total{node_type}:
  - Type: Counter
  - Description: inbound heartbeats by sender node type

lightflus_acks_received_total{outcome}:
  - Type: Counter
  - Description: inbound acks by outcome

# Usage

Registering and exposing:

	import "github.com/yuan-yuan-jia/lightflus/pkg/metrics"

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/health", metrics.HealthHandler())
	mux.HandleFunc("/ready", metrics.ReadyHandler())
	mux.HandleFunc("/live", metrics.LivenessHandler())
	http.ListenAndServe(metricsAddr, mux)

Timing an operation:

	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.DataflowCreateDuration)

Reporting component health at startup:

	metrics.SetVersion(Version)
	store, err := storage.New(cfg.Storage)
	if err != nil {
		metrics.RegisterComponent("storage", false, err.Error())
		return err
	}
	metrics.RegisterComponent("storage", true, "")

# Readiness Semantics

GetReadiness checks a fixed set of critical components — currently
"storage" and "cluster" — and reports not_ready until both have been
registered healthy at least once. GetHealth uses the same list to grade
failures: an unhealthy critical component makes it report unhealthy, while
an unhealthy component outside that list only makes it report degraded.

# Monitoring

Example queries against the catalog above:

  - Ready workers: lightflus_workers_total{status="Running"}
  - Unreachable workers: lightflus_workers_total{status="Unreachable"}
  - Dataflow failure rate: rate(lightflus_dataflows_failed_total[5m])
  - p95 RPC latency: histogram_quantile(0.95, lightflus_rpc_call_duration_seconds_bucket)
  - Probe cadence: rate(lightflus_probe_cycles_total[5m])
*/
package metrics
