package coordinator

import (
	"context"
	"strconv"

	"github.com/yuan-yuan-jia/lightflus/pkg/errs"
	"github.com/yuan-yuan-jia/lightflus/pkg/log"
	"github.com/yuan-yuan-jia/lightflus/pkg/metrics"
	"github.com/yuan-yuan-jia/lightflus/pkg/types"
)

// Server adapts a Coordinator to the api/coordinatorapi.Server surface: the
// wire-level request/response shapes, translated to and from the
// Coordinator's Go-native method signatures.
type Server struct {
	coord *Coordinator
}

// NewServer wraps coord for registration with coordinatorapi.Register.
func NewServer(coord *Coordinator) *Server {
	return &Server{coord: coord}
}

func (s *Server) CreateDataflow(ctx context.Context, df *types.Dataflow) (*types.Response, error) {
	if err := s.coord.CreateDataflow(ctx, df); err != nil {
		return nil, asStatusErr(err)
	}
	resp := types.OkResponse()
	return &resp, nil
}

func (s *Server) TerminateDataflow(ctx context.Context, jobID *types.JobId) (*types.Response, error) {
	status, err := s.coord.TerminateDataflow(ctx, *jobID)
	if err != nil {
		return nil, asStatusErr(err)
	}
	return &types.Response{Ok: true, Message: status.String()}, nil
}

func (s *Server) GetDataflow(ctx context.Context, req *types.GetDataflowRequest) (*types.GetDataflowResponse, error) {
	df, err := s.coord.GetDataflow(req.JobId)
	if err != nil {
		return nil, asStatusErr(err)
	}
	if df == nil {
		return &types.GetDataflowResponse{Status: types.DataflowStatusClosed}, nil
	}
	return &types.GetDataflowResponse{Dataflow: df, Status: df.Status}, nil
}

// ReportTaskInfo is forwarded and logged without interpretation:
// the core has no per-operator runtime to act on it.
func (s *Server) ReportTaskInfo(ctx context.Context, info *types.TaskInfo) (*types.Response, error) {
	log.WithJobID(info.JobId.String()).Info().
		Str("executor_id", strconv.FormatUint(uint64(info.ExecutorId), 10)).
		Str("status", info.Status).
		Str("message", info.Message).
		Msg("task info reported")
	resp := types.OkResponse()
	return &resp, nil
}

func (s *Server) ReceiveHeartbeat(ctx context.Context, hb *types.Heartbeat) (*types.Response, error) {
	s.coord.ReceiveHeartbeat(*hb)
	resp := types.OkResponse()
	return &resp, nil
}

// ReceiveAck is the delivery-acknowledgement half of the liveness protocol:
// the coordinator has no per-event sink of its own (no operator runtime
// lives here), so it only counts the ack and logs it.
func (s *Server) ReceiveAck(ctx context.Context, ack *types.Ack) (*types.Response, error) {
	metrics.AcksReceivedTotal.WithLabelValues("received").Inc()
	log.WithPeer(ack.Sender.String()).Debug().Str("event_id", ack.EventId).Msg("ack received")
	resp := types.OkResponse()
	return &resp, nil
}

func asStatusErr(err error) error {
	if e, ok := err.(*errs.Error); ok {
		return e.Status().Err()
	}
	return err
}
