package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataflowValidate(t *testing.T) {
	tests := []struct {
		name    string
		df      Dataflow
		wantErr string
	}{
		{
			name: "valid linear graph",
			df: Dataflow{
				JobId: NewJobId("ns", "job-1"),
				Nodes: []OperatorSpec{{ExecutorId: 1}, {ExecutorId: 2}},
				Edges: []Edge{{From: 1, To: 2}},
			},
		},
		{
			name: "missing job_id",
			df: Dataflow{
				Nodes: []OperatorSpec{{ExecutorId: 1}},
			},
			wantErr: "job_id is required",
		},
		{
			name: "duplicate executor_id",
			df: Dataflow{
				JobId: NewJobId("ns", "job-1"),
				Nodes: []OperatorSpec{{ExecutorId: 1}, {ExecutorId: 1}},
			},
			wantErr: "duplicate executor_id",
		},
		{
			name: "edge references undeclared executor",
			df: Dataflow{
				JobId: NewJobId("ns", "job-1"),
				Nodes: []OperatorSpec{{ExecutorId: 1}},
				Edges: []Edge{{From: 1, To: 99}},
			},
			wantErr: "undeclared executor",
		},
		{
			name: "self loop is a cycle",
			df: Dataflow{
				JobId: NewJobId("ns", "job-1"),
				Nodes: []OperatorSpec{{ExecutorId: 1}},
				Edges: []Edge{{From: 1, To: 1}},
			},
			wantErr: "cycle",
		},
		{
			name: "longer cycle",
			df: Dataflow{
				JobId: NewJobId("ns", "job-1"),
				Nodes: []OperatorSpec{{ExecutorId: 1}, {ExecutorId: 2}, {ExecutorId: 3}},
				Edges: []Edge{{From: 1, To: 2}, {From: 2, To: 3}, {From: 3, To: 1}},
			},
			wantErr: "cycle",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.df.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDataflowPlaced(t *testing.T) {
	addr := NewHostAddr("worker-1", 7000)
	df := Dataflow{
		Nodes: []OperatorSpec{{ExecutorId: 1, HostAddr: &addr}, {ExecutorId: 2}},
	}
	assert.False(t, df.Placed())

	df.Nodes[1].HostAddr = &addr
	assert.True(t, df.Placed())
}

func TestDataflowCloneIsIndependent(t *testing.T) {
	addr := NewHostAddr("worker-1", 7000)
	orig := Dataflow{
		JobId: NewJobId("ns", "job-1"),
		Nodes: []OperatorSpec{{ExecutorId: 1, HostAddr: &addr}},
		Edges: []Edge{{From: 1, To: 1}},
	}

	clone := orig.Clone()
	clone.Nodes[0].HostAddr.Host = "mutated"
	clone.Edges[0].To = 2

	assert.Equal(t, "worker-1", orig.Nodes[0].HostAddr.Host)
	assert.Equal(t, ExecutorId(1), orig.Edges[0].To)
}

func TestJobIdHashStability(t *testing.T) {
	id := NewJobId("ns", "job-1")
	assert.Equal(t, id.Hash(), id.Hash())
	assert.Equal(t, id.Hashed(), NewJobId("ns", "job-1").Hashed())

	other := NewJobId("ns", "job-2")
	assert.NotEqual(t, id.Hash(), other.Hash())
}

func TestJobIdIsZero(t *testing.T) {
	assert.True(t, JobId{}.IsZero())
	assert.False(t, NewJobId("ns", "job-1").IsZero())
}
