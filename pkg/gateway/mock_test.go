package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuan-yuan-jia/lightflus/pkg/errs"
	"github.com/yuan-yuan-jia/lightflus/pkg/types"
)

func TestMockGatewayPreservesCallOrder(t *testing.T) {
	g := NewMockGateway(types.NewHostAddr("worker-1", 7000), 16, 16)

	for i := 0; i < 8; i++ {
		ack := &types.Ack{EventId: string(rune('a' + i))}
		_, err := g.ReceiveAck(context.Background(), ack)
		require.NoError(t, err)
	}

	close(g.acks)
	var got []string
	for ack := range g.acks {
		got = append(got, ack.EventId)
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g", "h"}, got)
}

func TestMockGatewayDataLossAfterClose(t *testing.T) {
	g := NewMockGateway(types.NewHostAddr("worker-1", 7000), 1, 1)
	g.CloseReceivers()

	_, err := g.ReceiveAck(context.Background(), &types.Ack{EventId: "x"})
	require.Error(t, err)
	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errs.RpcDataLoss, e.Kind)

	_, err = g.ReceiveHeartbeat(context.Background(), &types.Heartbeat{})
	require.Error(t, err)
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errs.RpcDataLoss, e.Kind)
}

func TestMockGatewayCloseReceiversIsIdempotent(t *testing.T) {
	g := NewMockGateway(types.NewHostAddr("worker-1", 7000), 1, 1)
	g.CloseReceivers()
	assert.NotPanics(t, g.CloseReceivers)
}

func TestMockGatewayBlocksOnFullQueueUntilContextDone(t *testing.T) {
	g := NewMockGateway(types.NewHostAddr("worker-1", 7000), 1, 1)

	_, err := g.ReceiveAck(context.Background(), &types.Ack{EventId: "1"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = g.ReceiveAck(ctx, &types.Ack{EventId: "2"})
	require.Error(t, err)
	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errs.RpcDeadlineExceeded, e.Kind)
}
