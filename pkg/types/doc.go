// Package types holds the coordination plane's wire and domain value types:
// identifiers, the Dataflow DAG, worker/cluster records, and the ack/heartbeat
// envelopes that flow between the coordinator and its workers.
package types
