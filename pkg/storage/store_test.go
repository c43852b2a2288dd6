package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuan-yuan-jia/lightflus/pkg/types"
)

func backends(t *testing.T) map[string]DataflowStorage {
	t.Helper()
	bolt, err := NewBoltStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { bolt.Close() })

	return map[string]DataflowStorage{
		"bolt": bolt,
		"mem":  NewMemStore(),
	}
}

func TestDataflowStorageSaveGetDelete(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			jobID := types.NewJobId("ns", "job-1")
			df := &types.Dataflow{JobId: jobID, Nodes: []types.OperatorSpec{{ExecutorId: 1}}}

			exists, err := store.MayExist(jobID)
			require.NoError(t, err)
			assert.False(t, exists)

			require.NoError(t, store.Save(jobID, df))

			exists, err = store.MayExist(jobID)
			require.NoError(t, err)
			assert.True(t, exists)

			got, err := store.Get(jobID)
			require.NoError(t, err)
			assert.Equal(t, jobID, got.JobId)
			assert.Equal(t, df.Nodes, got.Nodes)

			require.NoError(t, store.Delete(jobID))

			exists, err = store.MayExist(jobID)
			require.NoError(t, err)
			assert.False(t, exists)

			_, err = store.Get(jobID)
			assert.ErrorIs(t, err, ErrNotFound())
		})
	}
}

func TestDataflowStorageDeleteIsIdempotent(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			jobID := types.NewJobId("ns", "job-missing")
			assert.NoError(t, store.Delete(jobID))
			assert.NoError(t, store.Delete(jobID))
		})
	}
}

func TestDataflowStorageSaveOverwrites(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			jobID := types.NewJobId("ns", "job-1")
			require.NoError(t, store.Save(jobID, &types.Dataflow{JobId: jobID, Status: types.DataflowStatusInitialized}))
			require.NoError(t, store.Save(jobID, &types.Dataflow{JobId: jobID, Status: types.DataflowStatusRunning}))

			got, err := store.Get(jobID)
			require.NoError(t, err)
			assert.Equal(t, types.DataflowStatusRunning, got.Status)
		})
	}
}

func TestNewDispatchesOnConfig(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)

	mem, err := New(Config{Memory: &struct{}{}})
	require.NoError(t, err)
	assert.IsType(t, &MemStore{}, mem)

	bolt, err := New(Config{Persist: &PersistConfig{Path: t.TempDir()}})
	require.NoError(t, err)
	assert.IsType(t, &BoltStore{}, bolt)
	bolt.Close()
}
