// Package workerapi is the worker-facing RPC surface:
// create_sub_dataflow, stop_dataflow, send_event_to_operator,
// receive_heartbeat, receive_ack. See api/coordinatorapi for the
// hand-authored-generated-code rationale shared by both services.
package workerapi

import (
	"context"

	"google.golang.org/grpc"

	"github.com/yuan-yuan-jia/lightflus/api/rpcwire"
	"github.com/yuan-yuan-jia/lightflus/pkg/types"
)

const serviceName = "lightflus.worker.TaskWorkerApi"

// Server is the interface a worker process implements to back this RPC
// surface. The per-operator runtime behind it is out of scope for this
// module; cmd/worker-stub provides a minimal standalone implementation, and
// test/integration backs it with its own in-process fake worker.
type Server interface {
	CreateSubDataflow(ctx context.Context, req *types.CreateSubDataflowRequest) (*types.CreateSubDataflowResponse, error)
	StopDataflow(ctx context.Context, jobID *types.JobId) (*types.StopDataflowResponse, error)
	SendEventToOperator(ctx context.Context, event *types.KeyedDataEvent) (*types.SendEventToOperatorResponse, error)
	ReceiveHeartbeat(ctx context.Context, hb *types.Heartbeat) (*types.Response, error)
	ReceiveAck(ctx context.Context, ack *types.Ack) (*types.Response, error)
}

// Register attaches srv's implementation of Server to s.
func Register(s *grpc.Server, srv Server) {
	s.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*Server)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateSubDataflow", Handler: handleCreateSubDataflow},
		{MethodName: "StopDataflow", Handler: handleStopDataflow},
		{MethodName: "SendEventToOperator", Handler: handleSendEventToOperator},
		{MethodName: "ReceiveHeartbeat", Handler: handleReceiveHeartbeat},
		{MethodName: "ReceiveAck", Handler: handleReceiveAck},
	},
	Metadata: "lightflus/workerapi.proto",
}

func handleCreateSubDataflow(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(types.CreateSubDataflowRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(Server).CreateSubDataflow(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/CreateSubDataflow"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(Server).CreateSubDataflow(ctx, req.(*types.CreateSubDataflowRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleStopDataflow(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(types.JobId)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(Server).StopDataflow(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/StopDataflow"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(Server).StopDataflow(ctx, req.(*types.JobId))
	}
	return interceptor(ctx, in, info, handler)
}

func handleSendEventToOperator(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(types.KeyedDataEvent)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(Server).SendEventToOperator(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/SendEventToOperator"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(Server).SendEventToOperator(ctx, req.(*types.KeyedDataEvent))
	}
	return interceptor(ctx, in, info, handler)
}

func handleReceiveHeartbeat(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(types.Heartbeat)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(Server).ReceiveHeartbeat(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/ReceiveHeartbeat"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(Server).ReceiveHeartbeat(ctx, req.(*types.Heartbeat))
	}
	return interceptor(ctx, in, info, handler)
}

func handleReceiveAck(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(types.Ack)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(Server).ReceiveAck(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/ReceiveAck"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(Server).ReceiveAck(ctx, req.(*types.Ack))
	}
	return interceptor(ctx, in, info, handler)
}

// Client is the typed caller surface a gateway drives.
type Client interface {
	CreateSubDataflow(ctx context.Context, req *types.CreateSubDataflowRequest, opts ...grpc.CallOption) (*types.CreateSubDataflowResponse, error)
	StopDataflow(ctx context.Context, jobID *types.JobId, opts ...grpc.CallOption) (*types.StopDataflowResponse, error)
	SendEventToOperator(ctx context.Context, event *types.KeyedDataEvent, opts ...grpc.CallOption) (*types.SendEventToOperatorResponse, error)
	ReceiveHeartbeat(ctx context.Context, hb *types.Heartbeat, opts ...grpc.CallOption) (*types.Response, error)
	ReceiveAck(ctx context.Context, ack *types.Ack, opts ...grpc.CallOption) (*types.Response, error)
}

type client struct {
	cc *grpc.ClientConn
}

// NewClient wraps an established connection with the typed Client surface.
func NewClient(cc *grpc.ClientConn) Client {
	return &client{cc: cc}
}

func (c *client) CreateSubDataflow(ctx context.Context, req *types.CreateSubDataflowRequest, opts ...grpc.CallOption) (*types.CreateSubDataflowResponse, error) {
	out := new(types.CreateSubDataflowResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/CreateSubDataflow", req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) StopDataflow(ctx context.Context, jobID *types.JobId, opts ...grpc.CallOption) (*types.StopDataflowResponse, error) {
	out := new(types.StopDataflowResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/StopDataflow", jobID, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) SendEventToOperator(ctx context.Context, event *types.KeyedDataEvent, opts ...grpc.CallOption) (*types.SendEventToOperatorResponse, error) {
	out := new(types.SendEventToOperatorResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/SendEventToOperator", event, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) ReceiveHeartbeat(ctx context.Context, hb *types.Heartbeat, opts ...grpc.CallOption) (*types.Response, error) {
	out := new(types.Response)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/ReceiveHeartbeat", hb, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) ReceiveAck(ctx context.Context, ack *types.Ack, opts ...grpc.CallOption) (*types.Response, error) {
	out := new(types.Response)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/ReceiveAck", ack, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

var _ = rpcwire.Name
