// Package cluster implements the Cluster Model: the worker registry,
// round-robin placement, fan-out deployment/termination, and the liveness
// probe — a sync.RWMutex-guarded owned registry driven by a ticker-style
// reconciliation loop.
package cluster
