package gateway

import (
	"context"
	"sync"

	"github.com/yuan-yuan-jia/lightflus/pkg/errs"
	"github.com/yuan-yuan-jia/lightflus/pkg/types"
)

// MockGateway is the RpcGateway test double: it routes each RPC to a
// bounded in-memory queue instead of a network channel. A send blocks
// while the queue has no room, exactly like a buffered channel send —
// capacity bounds memory, it is not a rejection threshold. Only a closed
// receiver (CloseReceivers) surfaces as RpcDataLoss, rather than panicking
// on a send to a closed channel.
//
// Calls still serialize FIFO per instance via the same 1-slot semaphore
// discipline the real gateways use under their mutex, so concurrent
// ReceiveAck calls land on the queue in the exact order the caller invoked
// them.
type MockGateway struct {
	addr  types.HostAddr
	calls chan struct{}

	mu         sync.Mutex
	closed     bool
	acks       chan types.Ack
	heartbeats chan types.Heartbeat
}

// NewMockGateway creates a mock gateway with independently bounded ack and
// heartbeat queues.
func NewMockGateway(addr types.HostAddr, ackBufSize, heartbeatBufSize int) *MockGateway {
	g := &MockGateway{
		addr:       addr,
		calls:      make(chan struct{}, 1),
		acks:       make(chan types.Ack, ackBufSize),
		heartbeats: make(chan types.Heartbeat, heartbeatBufSize),
	}
	g.calls <- struct{}{}
	return g
}

// Acks exposes the queue test code drains to observe delivery order.
func (g *MockGateway) Acks() <-chan types.Ack { return g.acks }

// Heartbeats exposes the queue test code drains to observe delivery order.
func (g *MockGateway) Heartbeats() <-chan types.Heartbeat { return g.heartbeats }

func (g *MockGateway) HostAddr() types.HostAddr { return g.addr }

// Close is the RpcGateway lifecycle hook; it is a no-op for the mock since
// there is no cached channel to drop. To simulate a dropped receiver for
// DataLoss testing, use CloseReceivers.
func (g *MockGateway) Close() {}

// CloseReceivers closes both queues, simulating the receiving end going
// away. Subsequent ReceiveAck/ReceiveHeartbeat calls return RpcDataLoss.
func (g *MockGateway) CloseReceivers() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	g.closed = true
	close(g.acks)
	close(g.heartbeats)
}

func (g *MockGateway) acquire(ctx context.Context) error {
	select {
	case <-g.calls:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *MockGateway) release() {
	g.calls <- struct{}{}
}

func (g *MockGateway) ReceiveAck(ctx context.Context, ack *types.Ack) (*types.Response, error) {
	if err := g.acquire(ctx); err != nil {
		return nil, errs.Wrap(errs.Internal, err)
	}
	defer g.release()

	if err := sendOrDataLoss(ctx, g.acks, &g.mu, &g.closed, *ack); err != nil {
		return nil, err
	}
	resp := types.OkResponse()
	return &resp, nil
}

func (g *MockGateway) ReceiveHeartbeat(ctx context.Context, hb *types.Heartbeat) (*types.Response, error) {
	if err := g.acquire(ctx); err != nil {
		return nil, errs.Wrap(errs.Internal, err)
	}
	defer g.release()

	if err := sendOrDataLoss(ctx, g.heartbeats, &g.mu, &g.closed, *hb); err != nil {
		return nil, err
	}
	resp := types.OkResponse()
	return &resp, nil
}

// sendOrDataLoss blocks until ch has room (mirroring mpsc::Sender::send's
// backpressure) unless the receiver has been closed, in which case it
// surfaces RpcDataLoss instead of panicking on a send-to-closed-channel.
func sendOrDataLoss[T any](ctx context.Context, ch chan T, mu *sync.Mutex, closed *bool, v T) error {
	mu.Lock()
	if *closed {
		mu.Unlock()
		return errs.New(errs.RpcDataLoss, "receiver dropped")
	}
	mu.Unlock()

	select {
	case ch <- v:
		return nil
	case <-ctx.Done():
		return errs.Wrap(errs.RpcDeadlineExceeded, ctx.Err())
	}
}
