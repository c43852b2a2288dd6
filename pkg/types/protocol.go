package types

import (
	"encoding/json"
	"time"
)

// NodeType discriminates the kind of process sending a Heartbeat. Opaque to
// the core beyond equality — carried through for logging and for workers
// that want to distinguish coordinator vs. worker peers.
type NodeType string

const (
	NodeTypeCoordinator NodeType = "coordinator"
	NodeTypeWorker      NodeType = "worker"
)

// Heartbeat is a periodic liveness signal, sent worker->coordinator and
// coordinator->worker.
type Heartbeat struct {
	Sender    HostAddr  `json:"sender"`
	NodeType  NodeType  `json:"node_type"`
	Timestamp time.Time `json:"timestamp"`
}

// Ack is a per-event acknowledgement, routed back to the operator instance
// that emitted EventId.
type Ack struct {
	EventId   string    `json:"event_id"`
	Sender    HostAddr  `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// TaskInfo is an opaque worker->coordinator progress report: the core
// forwards and logs it without interpreting Status or Message.
type TaskInfo struct {
	JobId      JobId     `json:"job_id"`
	ExecutorId ExecutorId `json:"executor_id"`
	Status     string    `json:"status"`
	Message    string    `json:"message,omitempty"`
	ReportedAt time.Time `json:"reported_at"`
}

// Response is the generic ack-style reply most RPCs in this protocol return.
type Response struct {
	Ok      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

func OkResponse() Response { return Response{Ok: true} }

// KeyedDataEvent is the opaque event payload forwarded to an operator
// instance via send_event_to_operator. The per-operator runtime interprets
// its contents; the core only transports it.
type KeyedDataEvent struct {
	EventId    string          `json:"event_id"`
	JobId      JobId           `json:"job_id"`
	ExecutorId ExecutorId      `json:"executor_id"`
	Key        []byte          `json:"key,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}
