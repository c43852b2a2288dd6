// Package errs defines the typed error taxonomy surfaced by the coordination
// plane: a Kind plus message, classified at the RPC boundary into a gRPC
// status code and reconstructed on the client side from one.
package errs

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Kind enumerates the error categories the core distinguishes.
type Kind string

const (
	InvalidDataflow    Kind = "InvalidDataflow"
	NoAvailableWorker  Kind = "NoAvailableWorker"
	StorageSaveFailed  Kind = "StorageSaveFailed"
	StorageGetFailed   Kind = "StorageGetFailed"
	StorageDeleteFailed Kind = "StorageDeleteFailed"
	RpcUnavailable     Kind = "RpcUnavailable"
	RpcDeadlineExceeded Kind = "RpcDeadlineExceeded"
	RpcDataLoss        Kind = "RpcDataLoss"
	PartialTerminate   Kind = "PartialTerminate"
	Internal           Kind = "Internal"
)

// Error is the typed exception carried across the core's API boundary.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, cause error) *Error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, Message: cause.Error(), cause: cause}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// GRPCCode maps a Kind to the §7 transport-level category.
func (e *Error) GRPCCode() codes.Code {
	switch e.Kind {
	case InvalidDataflow:
		return codes.InvalidArgument
	case NoAvailableWorker:
		return codes.FailedPrecondition
	case RpcUnavailable:
		return codes.Unavailable
	case RpcDeadlineExceeded:
		return codes.DeadlineExceeded
	case RpcDataLoss:
		return codes.DataLoss
	case PartialTerminate:
		return codes.Aborted
	case StorageSaveFailed, StorageGetFailed, StorageDeleteFailed, Internal:
		return codes.Internal
	default:
		return codes.Unknown
	}
}

// Status converts the error into a gRPC status for use at an RPC boundary.
func (e *Error) Status() *status.Status {
	return status.New(e.GRPCCode(), e.Error())
}

// KindOf extracts the Kind from err if it is (or wraps) an *Error, and
// Internal otherwise. Used by callers that report the failure reason as a
// metric label without caring about the message text.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// FromGRPCStatus classifies an incoming transport error the
// counterpart of Status used by gateway callers interpreting responses from
// a peer.
func FromGRPCStatus(err error) *Error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return Wrap(Internal, err)
	}
	switch st.Code() {
	case codes.Unavailable:
		return New(RpcUnavailable, st.Message())
	case codes.DeadlineExceeded:
		return New(RpcDeadlineExceeded, st.Message())
	case codes.DataLoss:
		return New(RpcDataLoss, st.Message())
	case codes.InvalidArgument:
		return New(InvalidDataflow, st.Message())
	case codes.FailedPrecondition:
		return New(NoAvailableWorker, st.Message())
	default:
		return New(Internal, st.Message())
	}
}
