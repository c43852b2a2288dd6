package types

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
)

// JobId is the stable, structured identifier of a submitted dataflow: a
// namespace plus a name. It is the key of the Dataflow Storage component and
// the identity of a running job throughout the cluster.
type JobId struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
}

// NewJobId builds a JobId from its two components.
func NewJobId(namespace, name string) JobId {
	return JobId{Namespace: namespace, Name: name}
}

func (id JobId) String() string {
	return fmt.Sprintf("%s/%s", id.Namespace, id.Name)
}

// IsZero reports whether id carries no identity at all (invariant (i) of the
// Dataflow type: job_id must be present).
func (id JobId) IsZero() bool {
	return id.Namespace == "" && id.Name == ""
}

// Hash returns a stable FNV-1a hash of the job's canonical encoding, stable
// across process restarts since it is computed, not seeded from runtime
// state. Used as the key type for the in-memory ordered-map storage backend.
func (id JobId) Hash() uint64 {
	h := fnv.New64a()
	// Canonical encoding never fails for a plain struct of strings.
	b, _ := json.Marshal(id)
	_, _ = h.Write(b)
	return h.Sum64()
}

// HashedJobId is a JobId reduced to its stable hash, used as the key of the
// in-memory ordered-map storage backend (see pkg/storage).
type HashedJobId uint64

// Hashed returns the HashedJobId for id.
func (id JobId) Hashed() HashedJobId {
	return HashedJobId(id.Hash())
}

// ExecutorId identifies one operator instance within a single dataflow. It is
// typically assigned by the submitter as a monotonically increasing integer,
// unique within that dataflow (invariant (ii)).
type ExecutorId uint32

// HostAddr is a peer identity: host plus port, equality-by-value, convertible
// to a dial URI. Used by the RPC Gateway and the Cluster Model.
type HostAddr struct {
	Host string `json:"host"`
	Port uint16 `json:"port"`
}

// NewHostAddr builds a HostAddr.
func NewHostAddr(host string, port uint16) HostAddr {
	return HostAddr{Host: host, Port: port}
}

// AsURI returns the dial target gRPC expects: "host:port".
func (a HostAddr) AsURI() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

func (a HostAddr) String() string {
	return a.AsURI()
}

// IsZero reports whether a carries no address.
func (a HostAddr) IsZero() bool {
	return a.Host == "" && a.Port == 0
}
