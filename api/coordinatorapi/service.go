// Package coordinatorapi is the coordinator-facing RPC surface:
// create_dataflow, terminate_dataflow, get_dataflow, report_task_info,
// receive_heartbeat, receive_ack. It plays the role protoc-gen-go-grpc
// output would normally play — a typed client/server pair registered
// against google.golang.org/grpc — hand authored here since no protoc
// toolchain is available in this environment (see api/rpcwire for the
// wire-format rationale).
package coordinatorapi

import (
	"context"

	"google.golang.org/grpc"

	"github.com/yuan-yuan-jia/lightflus/api/rpcwire"
	"github.com/yuan-yuan-jia/lightflus/pkg/types"
)

const serviceName = "lightflus.coordinator.CoordinatorApi"

// Server is the interface the coordinator binary implements to back this
// RPC surface.
type Server interface {
	CreateDataflow(ctx context.Context, df *types.Dataflow) (*types.Response, error)
	TerminateDataflow(ctx context.Context, jobID *types.JobId) (*types.Response, error)
	GetDataflow(ctx context.Context, req *types.GetDataflowRequest) (*types.GetDataflowResponse, error)
	ReportTaskInfo(ctx context.Context, info *types.TaskInfo) (*types.Response, error)
	ReceiveHeartbeat(ctx context.Context, hb *types.Heartbeat) (*types.Response, error)
	ReceiveAck(ctx context.Context, ack *types.Ack) (*types.Response, error)
}

// Register attaches srv's implementation of Server to s under this
// package's service descriptor.
func Register(s *grpc.Server, srv Server) {
	s.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*Server)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateDataflow", Handler: handleCreateDataflow},
		{MethodName: "TerminateDataflow", Handler: handleTerminateDataflow},
		{MethodName: "GetDataflow", Handler: handleGetDataflow},
		{MethodName: "ReportTaskInfo", Handler: handleReportTaskInfo},
		{MethodName: "ReceiveHeartbeat", Handler: handleReceiveHeartbeat},
		{MethodName: "ReceiveAck", Handler: handleReceiveAck},
	},
	Metadata: "lightflus/coordinatorapi.proto",
}

func handleCreateDataflow(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(types.Dataflow)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(Server).CreateDataflow(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/CreateDataflow"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(Server).CreateDataflow(ctx, req.(*types.Dataflow))
	}
	return interceptor(ctx, in, info, handler)
}

func handleTerminateDataflow(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(types.JobId)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(Server).TerminateDataflow(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/TerminateDataflow"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(Server).TerminateDataflow(ctx, req.(*types.JobId))
	}
	return interceptor(ctx, in, info, handler)
}

func handleGetDataflow(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(types.GetDataflowRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(Server).GetDataflow(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/GetDataflow"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(Server).GetDataflow(ctx, req.(*types.GetDataflowRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleReportTaskInfo(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(types.TaskInfo)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(Server).ReportTaskInfo(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/ReportTaskInfo"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(Server).ReportTaskInfo(ctx, req.(*types.TaskInfo))
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
	CreateDataflow(ctx context.Context, df *types.Dataflow, opts ...grpc.CallOption) (*types.Response, error)
	TerminateDataflow(ctx context.Context, jobID *types.JobId, opts ...grpc.CallOption) (*types.Response, error)
	GetDataflow(ctx context.Context, req *types.GetDataflowRequest, opts ...grpc.CallOption) (*types.GetDataflowResponse, error)
	ReportTaskInfo(ctx context.Context, info *types.TaskInfo, opts ...grpc.CallOption) (*types.Response, error)
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

func (c *client) CreateDataflow(ctx context.Context, df *types.Dataflow, opts ...grpc.CallOption) (*types.Response, error) {
	out := new(types.Response)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/CreateDataflow", df, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) TerminateDataflow(ctx context.Context, jobID *types.JobId, opts ...grpc.CallOption) (*types.Response, error) {
	out := new(types.Response)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/TerminateDataflow", jobID, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) GetDataflow(ctx context.Context, req *types.GetDataflowRequest, opts ...grpc.CallOption) (*types.GetDataflowResponse, error) {
	out := new(types.GetDataflowResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/GetDataflow", req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) ReportTaskInfo(ctx context.Context, info *types.TaskInfo, opts ...grpc.CallOption) (*types.Response, error) {
	out := new(types.Response)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/ReportTaskInfo", info, out, opts...); err != nil {
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

var _ = rpcwire.Name // ensures this package pulls in codec registration via import side effect
