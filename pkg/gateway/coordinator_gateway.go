package gateway

import (
	"context"
	"fmt"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/yuan-yuan-jia/lightflus/api/coordinatorapi"
	"github.com/yuan-yuan-jia/lightflus/api/rpcwire"
	"github.com/yuan-yuan-jia/lightflus/pkg/errs"
	"github.com/yuan-yuan-jia/lightflus/pkg/types"
)

// CoordinatorGateway is the worker-side client to the coordinator: the
// create_dataflow / terminate_dataflow / get_dataflow / report_task_info /
// receive_heartbeat / receive_ack surface. Same FIFO discipline as
// WorkerGateway.
type CoordinatorGateway struct {
	mu             sync.Mutex
	addr           types.HostAddr
	connectTimeout time.Duration
	conn           *grpc.ClientConn
	client         coordinatorapi.Client
}

func NewCoordinatorGateway(addr types.HostAddr) *CoordinatorGateway {
	return NewCoordinatorGatewayWithTimeout(addr, DefaultConnectTimeout)
}

func NewCoordinatorGatewayWithTimeout(addr types.HostAddr, connectTimeout time.Duration) *CoordinatorGateway {
	return &CoordinatorGateway{addr: addr, connectTimeout: connectTimeout}
}

func (g *CoordinatorGateway) HostAddr() types.HostAddr { return g.addr }

func (g *CoordinatorGateway) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.conn != nil {
		_ = g.conn.Close()
	}
	g.conn = nil
	g.client = nil
}

func (g *CoordinatorGateway) ensureClientLocked(ctx context.Context) (coordinatorapi.Client, error) {
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
	g.client = coordinatorapi.NewClient(conn)
	return g.client, nil
}

func (g *CoordinatorGateway) ReceiveAck(ctx context.Context, ack *types.Ack) (*types.Response, error) {
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

func (g *CoordinatorGateway) ReceiveHeartbeat(ctx context.Context, hb *types.Heartbeat) (*types.Response, error) {
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

func (g *CoordinatorGateway) CreateDataflow(ctx context.Context, df *types.Dataflow) (*types.Response, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	cid := logCall(g.addr, "CreateDataflow")

	c, err := g.ensureClientLocked(ctx)
	if err != nil {
		err = errs.Wrap(errs.RpcUnavailable, err)
		logCallResult(g.addr, "CreateDataflow", cid, err)
		return nil, err
	}
	resp, err := c.CreateDataflow(ctx, df)
	if err != nil {
		err = errs.FromGRPCStatus(err)
		logCallResult(g.addr, "CreateDataflow", cid, err)
		return nil, err
	}
	logCallResult(g.addr, "CreateDataflow", cid, nil)
	return resp, nil
}

func (g *CoordinatorGateway) TerminateDataflow(ctx context.Context, jobID types.JobId) (*types.Response, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	cid := logCall(g.addr, "TerminateDataflow")

	c, err := g.ensureClientLocked(ctx)
	if err != nil {
		err = errs.Wrap(errs.RpcUnavailable, err)
		logCallResult(g.addr, "TerminateDataflow", cid, err)
		return nil, err
	}
	resp, err := c.TerminateDataflow(ctx, &jobID)
	if err != nil {
		err = errs.FromGRPCStatus(err)
		logCallResult(g.addr, "TerminateDataflow", cid, err)
		return nil, err
	}
	logCallResult(g.addr, "TerminateDataflow", cid, nil)
	return resp, nil
}

func (g *CoordinatorGateway) GetDataflow(ctx context.Context, req *types.GetDataflowRequest) (*types.GetDataflowResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	cid := logCall(g.addr, "GetDataflow")

	c, err := g.ensureClientLocked(ctx)
	if err != nil {
		err = errs.Wrap(errs.RpcUnavailable, err)
		logCallResult(g.addr, "GetDataflow", cid, err)
		return nil, err
	}
	resp, err := c.GetDataflow(ctx, req)
	if err != nil {
		err = errs.FromGRPCStatus(err)
		logCallResult(g.addr, "GetDataflow", cid, err)
		return nil, err
	}
	logCallResult(g.addr, "GetDataflow", cid, nil)
	return resp, nil
}

func (g *CoordinatorGateway) ReportTaskInfo(ctx context.Context, info *types.TaskInfo) (*types.Response, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	cid := logCall(g.addr, "ReportTaskInfo")

	c, err := g.ensureClientLocked(ctx)
	if err != nil {
		err = errs.Wrap(errs.RpcUnavailable, err)
		logCallResult(g.addr, "ReportTaskInfo", cid, err)
		return nil, err
	}
	resp, err := c.ReportTaskInfo(ctx, info)
	if err != nil {
		err = errs.FromGRPCStatus(err)
		logCallResult(g.addr, "ReportTaskInfo", cid, err)
		return nil, err
	}
	logCallResult(g.addr, "ReportTaskInfo", cid, nil)
	return resp, nil
}
