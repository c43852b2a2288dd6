package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
)

func TestGRPCCodeMapping(t *testing.T) {
	tests := []struct {
		kind Kind
		code codes.Code
	}{
		{InvalidDataflow, codes.InvalidArgument},
		{NoAvailableWorker, codes.FailedPrecondition},
		{RpcUnavailable, codes.Unavailable},
		{RpcDeadlineExceeded, codes.DeadlineExceeded},
		{RpcDataLoss, codes.DataLoss},
		{PartialTerminate, codes.Aborted},
		{StorageSaveFailed, codes.Internal},
		{Internal, codes.Internal},
	}
	for _, tt := range tests {
		e := New(tt.kind, "boom")
		assert.Equal(t, tt.code, e.GRPCCode())
	}
}

func TestFromGRPCStatusRoundTrip(t *testing.T) {
	e := New(RpcUnavailable, "peer down")
	wireErr := e.Status().Err()

	got := FromGRPCStatus(wireErr)
	assert.Equal(t, RpcUnavailable, got.Kind)
}

func TestWrapNilIsNil(t *testing.T) {
	assert.Nil(t, Wrap(Internal, nil))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.Equal(t, Internal, KindOf(errors.New("plain error")))

	e := New(StorageGetFailed, "missing")
	assert.Equal(t, StorageGetFailed, KindOf(e))

	wrapped := errors.New("context: " + e.Error())
	assert.Equal(t, Internal, KindOf(wrapped))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("underlying")
	e := Wrap(StorageGetFailed, cause)
	assert.Same(t, cause, errors.Unwrap(e))
}
