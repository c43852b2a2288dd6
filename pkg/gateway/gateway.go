// Package gateway implements the per-peer RPC client: lazy connect, a
// default 3s connect timeout, and strictly serialized FIFO calls per peer —
// a sync.Mutex held for the whole round trip, guarding a lazily dialed
// *grpc.ClientConn.
package gateway

import (
	"time"

	"github.com/yuan-yuan-jia/lightflus/pkg/types"
)

// DefaultConnectTimeout is the connect timeout applied unless a gateway is
// constructed with an explicit override.
const DefaultConnectTimeout = 3 * time.Second

// RpcGateway is the common capability every per-peer gateway exposes,
// regardless of which typed RPC surface it drives.
type RpcGateway interface {
	HostAddr() types.HostAddr
	// Close drops the cached channel: unlike a bare reference drop, the next
	// call reconnects from scratch.
	Close()
}
