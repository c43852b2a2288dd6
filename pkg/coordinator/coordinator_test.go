package coordinator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuan-yuan-jia/lightflus/pkg/errs"
	"github.com/yuan-yuan-jia/lightflus/pkg/storage"
	"github.com/yuan-yuan-jia/lightflus/pkg/types"
)

func TestCreateDataflowRejectsInvalidGraph(t *testing.T) {
	c := New(storage.NewMemStore(), nil)
	err := c.CreateDataflow(context.Background(), &types.Dataflow{})

	require.Error(t, err)
	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errs.InvalidDataflow, e.Kind)
}

func TestCreateDataflowFailsWithNoWorkers(t *testing.T) {
	c := New(storage.NewMemStore(), nil)
	df := &types.Dataflow{
		JobId: types.NewJobId("ns", "job-1"),
		Nodes: []types.OperatorSpec{{ExecutorId: 1}},
	}

	err := c.CreateDataflow(context.Background(), df)
	require.Error(t, err)
	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errs.NoAvailableWorker, e.Kind)
}

func TestTerminateDataflowIsIdempotentWhenAbsent(t *testing.T) {
	c := New(storage.NewMemStore(), nil)
	jobID := types.NewJobId("ns", "never-submitted")

	status, err := c.TerminateDataflow(context.Background(), jobID)
	require.NoError(t, err)
	assert.Equal(t, types.DataflowStatusClosed, status)

	status, err = c.TerminateDataflow(context.Background(), jobID)
	require.NoError(t, err)
	assert.Equal(t, types.DataflowStatusClosed, status)
}

func TestGetDataflowReturnsNilWhenAbsent(t *testing.T) {
	c := New(storage.NewMemStore(), nil)
	df, err := c.GetDataflow(types.NewJobId("ns", "missing"))
	require.NoError(t, err)
	assert.Nil(t, df)
}

func TestCreateDataflowValidatesBeforeTouchingStorage(t *testing.T) {
	store := storage.NewMemStore()
	c := New(store, nil)

	jobID := types.NewJobId("ns", "cyclic")
	df := &types.Dataflow{
		JobId: jobID,
		Nodes: []types.OperatorSpec{{ExecutorId: 1}},
		Edges: []types.Edge{{From: 1, To: 1}},
	}

	err := c.CreateDataflow(context.Background(), df)
	require.Error(t, err)

	exists, err := store.MayExist(jobID)
	require.NoError(t, err)
	assert.False(t, exists)
}
