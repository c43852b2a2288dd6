// Package coordinator implements the end-to-end dataflow lifecycle —
// validate, partition, terminate any prior incarnation, persist, deploy —
// plus termination and read-through lookup. It owns a
// pkg/storage.DataflowStorage and a pkg/cluster.Cluster outright: every
// mutation to either goes through the Coordinator, never around it.
package coordinator
