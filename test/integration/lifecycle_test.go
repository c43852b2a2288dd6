// Package integration exercises the Coordinator and Cluster Model against
// real in-process gRPC workers.
package integration

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/yuan-yuan-jia/lightflus/api/workerapi"
	"github.com/yuan-yuan-jia/lightflus/pkg/coordinator"
	"github.com/yuan-yuan-jia/lightflus/pkg/errs"
	"github.com/yuan-yuan-jia/lightflus/pkg/storage"
	"github.com/yuan-yuan-jia/lightflus/pkg/types"
)

// fakeWorker is a workerapi.Server that records every call it receives and
// optionally fails every call with a fixed gRPC status, used to simulate an
// unreachable worker (scenario 6).
type fakeWorker struct {
	mu       sync.Mutex
	calls    []string
	failWith error
}

func (w *fakeWorker) record(method string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, method)
	return w.failWith
}

func (w *fakeWorker) Calls() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.calls...)
}

func (w *fakeWorker) CreateSubDataflow(ctx context.Context, req *types.CreateSubDataflowRequest) (*types.CreateSubDataflowResponse, error) {
	if err := w.record("CreateSubDataflow"); err != nil {
		return nil, err
	}
	return &types.CreateSubDataflowResponse{Status: types.DataflowStatusRunning}, nil
}

func (w *fakeWorker) StopDataflow(ctx context.Context, jobID *types.JobId) (*types.StopDataflowResponse, error) {
	if err := w.record("StopDataflow"); err != nil {
		return nil, err
	}
	return &types.StopDataflowResponse{Status: types.DataflowStatusClosed}, nil
}

func (w *fakeWorker) SendEventToOperator(ctx context.Context, event *types.KeyedDataEvent) (*types.SendEventToOperatorResponse, error) {
	if err := w.record("SendEventToOperator"); err != nil {
		return nil, err
	}
	return &types.SendEventToOperatorResponse{Response: types.OkResponse()}, nil
}

func (w *fakeWorker) ReceiveHeartbeat(ctx context.Context, hb *types.Heartbeat) (*types.Response, error) {
	if err := w.record("ReceiveHeartbeat"); err != nil {
		return nil, err
	}
	resp := types.OkResponse()
	return &resp, nil
}

func (w *fakeWorker) ReceiveAck(ctx context.Context, ack *types.Ack) (*types.Response, error) {
	if err := w.record("ReceiveAck"); err != nil {
		return nil, err
	}
	resp := types.OkResponse()
	return &resp, nil
}

// startWorker launches an in-process gRPC server backing w and returns its
// listen address plus a stop function.
func startWorker(t *testing.T, w *fakeWorker) (types.HostAddr, func()) {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := grpc.NewServer()
	workerapi.Register(srv, w)
	go srv.Serve(lis)

	tcpAddr := lis.Addr().(*net.TCPAddr)
	addr := types.NewHostAddr("127.0.0.1", uint16(tcpAddr.Port))
	return addr, srv.Stop
}

func TestIdempotentTermination(t *testing.T) {
	w0 := &fakeWorker{}
	addr0, stop0 := startWorker(t, w0)
	defer stop0()

	c := coordinator.New(storage.NewMemStore(), []types.NodeConfig{{HostAddr: addr0}})
	jobID := types.NewJobId("ns", "job-1")
	df := &types.Dataflow{JobId: jobID, Nodes: []types.OperatorSpec{{ExecutorId: 1}}}

	require.NoError(t, c.CreateDataflow(context.Background(), df))

	status1, err := c.TerminateDataflow(context.Background(), jobID)
	require.NoError(t, err)
	assert.Equal(t, types.DataflowStatusClosed, status1)

	callsAfterFirst := len(w0.Calls())

	status2, err := c.TerminateDataflow(context.Background(), jobID)
	require.NoError(t, err)
	assert.Equal(t, types.DataflowStatusClosed, status2)
	assert.Len(t, w0.Calls(), callsAfterFirst, "second terminate must not issue any further RPCs")
}

func TestReplaceOnResubmit(t *testing.T) {
	w0 := &fakeWorker{}
	addr0, stop0 := startWorker(t, w0)
	defer stop0()

	c := coordinator.New(storage.NewMemStore(), []types.NodeConfig{{HostAddr: addr0}})
	jobID := types.NewJobId("ns", "job-1")

	df1 := &types.Dataflow{JobId: jobID, Nodes: []types.OperatorSpec{{ExecutorId: 1}}}
	require.NoError(t, c.CreateDataflow(context.Background(), df1))

	df2 := &types.Dataflow{JobId: jobID, Nodes: []types.OperatorSpec{{ExecutorId: 1}, {ExecutorId: 2}}}
	require.NoError(t, c.CreateDataflow(context.Background(), df2))

	got, err := c.GetDataflow(jobID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Nodes, 2)

	calls := w0.Calls()
	stopIdx, createIdx := -1, -1
	for i, call := range calls {
		if call == "StopDataflow" && stopIdx == -1 {
			stopIdx = i
		}
		if call == "CreateSubDataflow" && i > 0 {
			createIdx = i
		}
	}
	require.NotEqual(t, -1, stopIdx)
	require.NotEqual(t, -1, createIdx)
	assert.Less(t, stopIdx, createIdx, "stop(J) must be observed before the replacement create_sub_dataflow(J)")
}

func TestHeartbeatRevivesWorkerForPlacement(t *testing.T) {
	w0 := &fakeWorker{}
	addr0, stop0 := startWorker(t, w0)
	defer stop0()
	w1 := &fakeWorker{}
	addr1, stop1 := startWorker(t, w1)
	defer stop1()

	c := coordinator.New(storage.NewMemStore(), []types.NodeConfig{{HostAddr: addr0}, {HostAddr: addr1}})

	// Make w1 fail the probe so it is marked unreachable, then revive it
	// with an inbound heartbeat.
	w1.mu.Lock()
	w1.failWith = status.Error(codes.Unavailable, "down")
	w1.mu.Unlock()

	c.ProbeState(context.Background())

	workers := c.Cluster().Workers()
	require.Len(t, workers, 2)
	require.Equal(t, types.WorkerUnreachable, workers[1].Status)

	w1.mu.Lock()
	w1.failWith = nil
	w1.mu.Unlock()

	c.ReceiveHeartbeat(types.Heartbeat{Sender: addr1, NodeType: types.NodeTypeWorker, Timestamp: time.Now()})

	jobID := types.NewJobId("ns", "job-1")
	df := &types.Dataflow{
		JobId: jobID,
		Nodes: []types.OperatorSpec{{ExecutorId: 1}, {ExecutorId: 2}},
	}
	require.NoError(t, c.CreateDataflow(context.Background(), df))

	assert.NotEmpty(t, w1.Calls())
	assert.Contains(t, w1.Calls(), "CreateSubDataflow")
}

func TestPartialDeployReturnsUnavailableThenBroadcastsStop(t *testing.T) {
	w0 := &fakeWorker{}
	addr0, stop0 := startWorker(t, w0)
	defer stop0()

	w1 := &fakeWorker{failWith: status.Error(codes.Unavailable, "down")}
	addr1, stop1 := startWorker(t, w1)
	defer stop1()

	c := coordinator.New(storage.NewMemStore(), []types.NodeConfig{{HostAddr: addr0}, {HostAddr: addr1}})

	jobID := types.NewJobId("ns", "job-1")
	df := &types.Dataflow{
		JobId: jobID,
		Nodes: []types.OperatorSpec{{ExecutorId: 1}, {ExecutorId: 2}},
	}

	err := c.CreateDataflow(context.Background(), df)
	require.Error(t, err)
	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errs.RpcUnavailable, e.Kind)

	w1.mu.Lock()
	w1.failWith = nil
	w1.mu.Unlock()

	status, err := c.TerminateDataflow(context.Background(), jobID)
	require.NoError(t, err)
	assert.Equal(t, types.DataflowStatusClosed, status)
	assert.Contains(t, w0.Calls(), "StopDataflow")
	assert.Contains(t, w1.Calls(), "StopDataflow")
}
