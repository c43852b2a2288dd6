package gateway

import (
	"github.com/google/uuid"

	"github.com/yuan-yuan-jia/lightflus/pkg/log"
	"github.com/yuan-yuan-jia/lightflus/pkg/types"
)

// logCall starts a debug-level log line for one outbound RPC and tags it
// with a fresh correlation id, so a single call's dial/request/response can
// be traced through a peer's logs even when many calls are in flight across
// gateways. Returns the id for the caller to fold into a later error log.
func logCall(addr types.HostAddr, method string) string {
	id := uuid.NewString()
	log.WithRPCCall(addr.String(), method, id).Debug().Msg("rpc call started")
	return id
}

func logCallResult(addr types.HostAddr, method, correlationID string, err error) {
	logger := log.WithRPCCall(addr.String(), method, correlationID)
	if err != nil {
		logger.Warn().Err(err).Msg("rpc call finished")
		return
	}
	logger.Debug().Msg("rpc call finished")
}
