package coordinator

import (
	"context"
	"time"

	"github.com/yuan-yuan-jia/lightflus/pkg/cluster"
	"github.com/yuan-yuan-jia/lightflus/pkg/errs"
	"github.com/yuan-yuan-jia/lightflus/pkg/log"
	"github.com/yuan-yuan-jia/lightflus/pkg/metrics"
	"github.com/yuan-yuan-jia/lightflus/pkg/storage"
	"github.com/yuan-yuan-jia/lightflus/pkg/types"
)

// Coordinator owns the live Cluster and the DataflowStorage exclusively
// and drives the create/terminate/get_dataflow/probe lifecycle.
type Coordinator struct {
	storage storage.DataflowStorage
	cluster *cluster.Cluster
	jobLock *keyedMutex
}

// New builds a Coordinator over a storage backend and a static cluster
// configuration.
func New(store storage.DataflowStorage, nodes []types.NodeConfig) *Coordinator {
	return &Coordinator{
		storage: store,
		cluster: cluster.New(nodes),
		jobLock: newKeyedMutex(),
	}
}

// CreateDataflow runs the full submission state machine:
// validate -> partition -> terminate any prior incarnation -> save -> deploy.
func (c *Coordinator) CreateDataflow(ctx context.Context, df *types.Dataflow) (err error) {
	timer := metrics.NewTimer()
	defer func() {
		timer.ObserveDuration(metrics.DataflowCreateDuration)
		if err != nil {
			metrics.DataflowsFailed.WithLabelValues(string(errs.KindOf(err))).Inc()
		}
	}()

	unlock := c.jobLock.Lock(df.JobId.String())
	defer unlock()

	if err = df.Validate(); err != nil {
		return errs.Wrap(errs.InvalidDataflow, err)
	}

	if err = c.cluster.PartitionDataflow(df); err != nil {
		return err
	}

	if _, err = c.terminateLocked(ctx, df.JobId); err != nil {
		return err
	}

	if err = c.storage.Save(df.JobId, df); err != nil {
		return errs.Wrap(errs.StorageSaveFailed, err)
	}

	if err = c.cluster.CreateDataflow(ctx, df); err != nil {
		return err
	}

	df.Status = types.DataflowStatusRunning
	if err = c.storage.Save(df.JobId, df); err != nil {
		return errs.Wrap(errs.StorageSaveFailed, err)
	}
	metrics.DataflowsTotal.WithLabelValues(df.Status.String()).Inc()
	return nil
}

// TerminateDataflow deletes the stored dataflow and broadcasts stop to the
// cluster. If the job is already absent from storage, it returns Closed
// immediately without touching the cluster.
func (c *Coordinator) TerminateDataflow(ctx context.Context, jobID types.JobId) (types.DataflowStatus, error) {
	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.DataflowTerminateDuration)

	unlock := c.jobLock.Lock(jobID.String())
	defer unlock()

	status, err := c.terminateLocked(ctx, jobID)
	if err != nil {
		metrics.DataflowsFailed.WithLabelValues(string(errs.KindOf(err))).Inc()
	}
	return status, err
}

func (c *Coordinator) terminateLocked(ctx context.Context, jobID types.JobId) (types.DataflowStatus, error) {
	exists, err := c.storage.MayExist(jobID)
	if err != nil {
		return types.DataflowStatusClosed, errs.Wrap(errs.StorageGetFailed, err)
	}
	if !exists {
		return types.DataflowStatusClosed, nil
	}

	if err := c.storage.Delete(jobID); err != nil {
		return types.DataflowStatusClosed, errs.Wrap(errs.StorageDeleteFailed, err)
	}

	status, err := c.cluster.TerminateDataflow(ctx, jobID)
	if err != nil {
		return status, errs.Wrap(errs.PartialTerminate, err)
	}
	return status, nil
}

// GetDataflow reads through the storage layer.
func (c *Coordinator) GetDataflow(jobID types.JobId) (*types.Dataflow, error) {
	df, err := c.storage.Get(jobID)
	if err != nil {
		if err == storage.ErrNotFound() {
			return nil, nil
		}
		return nil, err
	}
	return df, nil
}

// Cluster returns the coordinator's live cluster, for wiring ambient
// observability (health/readiness worker snapshots) without exposing
// mutation of the coordinator's internals.
func (c *Coordinator) Cluster() *cluster.Cluster {
	return c.cluster
}

// ProbeState delegates to the cluster's liveness probe.
func (c *Coordinator) ProbeState(ctx context.Context) {
	c.cluster.ProbeState(ctx)
}

// ReceiveHeartbeat applies an inbound worker heartbeat to the cluster
// registry.
func (c *Coordinator) ReceiveHeartbeat(hb types.Heartbeat) {
	c.cluster.ReceiveHeartbeat(hb)
}

// RunProbeLoop drives ProbeState on a fixed interval until ctx is canceled.
func (c *Coordinator) RunProbeLoop(ctx context.Context, interval time.Duration) {
	logger := log.WithComponent("coordinator")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.ProbeState(ctx)
		case <-ctx.Done():
			logger.Info().Msg("probe loop stopped")
			return
		}
	}
}

// Close releases the cluster's gateway connections and the storage backend.
func (c *Coordinator) Close() error {
	c.cluster.Close()
	return c.storage.Close()
}
