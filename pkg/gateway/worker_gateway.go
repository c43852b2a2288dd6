package gateway

import (
	"context"
	"fmt"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/yuan-yuan-jia/lightflus/api/rpcwire"
	"github.com/yuan-yuan-jia/lightflus/api/workerapi"
	"github.com/yuan-yuan-jia/lightflus/pkg/errs"
	"github.com/yuan-yuan-jia/lightflus/pkg/types"
)

// WorkerGateway is the coordinator-side client to one worker: the
// create_sub_dataflow / stop_dataflow / send_event_to_operator /
// receive_heartbeat / receive_ack surface.
//
// Calls are serialized FIFO per instance: mu is held for the full round trip
// of every method below, matching "callers queue behind a per-peer mutual
// exclusion token held for the duration of one round-trip".
// WorkerGateway is safe to share across goroutines; that serialization is
// the point.
type WorkerGateway struct {
	mu             sync.Mutex
	addr           types.HostAddr
	connectTimeout time.Duration
	conn           *grpc.ClientConn
	client         workerapi.Client
}

// NewWorkerGateway constructs a gateway for addr with the default connect
// timeout. The underlying channel is not dialed until the first call.
func NewWorkerGateway(addr types.HostAddr) *WorkerGateway {
	return NewWorkerGatewayWithTimeout(addr, DefaultConnectTimeout)
}

// NewWorkerGatewayWithTimeout is NewWorkerGateway with an explicit connect
// timeout override.
func NewWorkerGatewayWithTimeout(addr types.HostAddr, connectTimeout time.Duration) *WorkerGateway {
	return &WorkerGateway{addr: addr, connectTimeout: connectTimeout}
}

func (g *WorkerGateway) HostAddr() types.HostAddr { return g.addr }

// Close drops the cached channel under the gateway's own lock; the next call
// reconnects.
func (g *WorkerGateway) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.conn != nil {
		_ = g.conn.Close()
	}
	g.conn = nil
	g.client = nil
}

// ensureClientLocked lazily dials the peer. Caller must hold g.mu.
func (g *WorkerGateway) ensureClientLocked(ctx context.Context) (workerapi.Client, error) {
	if g.client != nil {
		return g.client, nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, g.connectTimeout)
	defer cancel()

	conn, err := grpc.DialContext(dialCtx, g.addr.AsURI(),
		append(rpcwire.DialOptions(), grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithBlock())...)
	if err != nil {
		return nil, fmt.Errorf("gateway: dial %s: %w", g.addr, err)
	}

	g.conn = conn
	g.client = workerapi.NewClient(conn)
	return g.client, nil
}

func (g *WorkerGateway) ReceiveAck(ctx context.Context, ack *types.Ack) (*types.Response, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	cid := logCall(g.addr, "ReceiveAck")

	c, err := g.ensureClientLocked(ctx)
	if err != nil {
		err = errs.Wrap(errs.RpcUnavailable, err)
		logCallResult(g.addr, "ReceiveAck", cid, err)
		return nil, err
	}
	resp, err := c.ReceiveAck(ctx, ack)
	if err != nil {
		err = errs.FromGRPCStatus(err)
		logCallResult(g.addr, "ReceiveAck", cid, err)
		return nil, err
	}
	logCallResult(g.addr, "ReceiveAck", cid, nil)
	return resp, nil
}

func (g *WorkerGateway) ReceiveHeartbeat(ctx context.Context, hb *types.Heartbeat) (*types.Response, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	cid := logCall(g.addr, "ReceiveHeartbeat")

	c, err := g.ensureClientLocked(ctx)
	if err != nil {
		err = errs.Wrap(errs.RpcUnavailable, err)
		logCallResult(g.addr, "ReceiveHeartbeat", cid, err)
		return nil, err
	}
	resp, err := c.ReceiveHeartbeat(ctx, hb)
	if err != nil {
		err = errs.FromGRPCStatus(err)
		logCallResult(g.addr, "ReceiveHeartbeat", cid, err)
		return nil, err
	}
	logCallResult(g.addr, "ReceiveHeartbeat", cid, nil)
	return resp, nil
}

func (g *WorkerGateway) SendEventToOperator(ctx context.Context, event *types.KeyedDataEvent) (*types.SendEventToOperatorResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	cid := logCall(g.addr, "SendEventToOperator")

	c, err := g.ensureClientLocked(ctx)
	if err != nil {
		err = errs.Wrap(errs.RpcUnavailable, err)
		logCallResult(g.addr, "SendEventToOperator", cid, err)
		return nil, err
	}
	resp, err := c.SendEventToOperator(ctx, event)
	if err != nil {
		err = errs.FromGRPCStatus(err)
		logCallResult(g.addr, "SendEventToOperator", cid, err)
		return nil, err
	}
	logCallResult(g.addr, "SendEventToOperator", cid, nil)
	return resp, nil
}

func (g *WorkerGateway) StopDataflow(ctx context.Context, jobID types.JobId) (*types.StopDataflowResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	cid := logCall(g.addr, "StopDataflow")

	c, err := g.ensureClientLocked(ctx)
	if err != nil {
		err = errs.Wrap(errs.RpcUnavailable, err)
		logCallResult(g.addr, "StopDataflow", cid, err)
		return nil, err
	}
	resp, err := c.StopDataflow(ctx, &jobID)
	if err != nil {
		err = errs.FromGRPCStatus(err)
		logCallResult(g.addr, "StopDataflow", cid, err)
		return nil, err
	}
	logCallResult(g.addr, "StopDataflow", cid, nil)
	return resp, nil
}

func (g *WorkerGateway) CreateSubDataflow(ctx context.Context, req *types.CreateSubDataflowRequest) (*types.CreateSubDataflowResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	cid := logCall(g.addr, "CreateSubDataflow")

	c, err := g.ensureClientLocked(ctx)
	if err != nil {
		err = errs.Wrap(errs.RpcUnavailable, err)
		logCallResult(g.addr, "CreateSubDataflow", cid, err)
		return nil, err
	}
	resp, err := c.CreateSubDataflow(ctx, req)
	if err != nil {
		err = errs.FromGRPCStatus(err)
		logCallResult(g.addr, "CreateSubDataflow", cid, err)
		return nil, err
	}
	logCallResult(g.addr, "CreateSubDataflow", cid, nil)
	return resp, nil
}
