package cluster

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yuan-yuan-jia/lightflus/pkg/errs"
	"github.com/yuan-yuan-jia/lightflus/pkg/gateway"
	"github.com/yuan-yuan-jia/lightflus/pkg/log"
	"github.com/yuan-yuan-jia/lightflus/pkg/metrics"
	"github.com/yuan-yuan-jia/lightflus/pkg/types"
)

// Cluster owns the worker registry: one Worker record and one WorkerGateway
// per configured peer. It is the single writer of worker liveness state —
// the registry is a single structure owned by the Coordinator, never
// shared or copied.
type Cluster struct {
	mu      sync.RWMutex
	order   []types.HostAddr
	workers map[types.HostAddr]*types.Worker
	clients map[types.HostAddr]*gateway.WorkerGateway
}

// New builds a Cluster from the static node list; every worker starts
// Pending.
func New(nodes []types.NodeConfig) *Cluster {
	c := &Cluster{
		order:   make([]types.HostAddr, 0, len(nodes)),
		workers: make(map[types.HostAddr]*types.Worker, len(nodes)),
		clients: make(map[types.HostAddr]*gateway.WorkerGateway, len(nodes)),
	}
	for _, n := range nodes {
		c.order = append(c.order, n.HostAddr)
		c.workers[n.HostAddr] = &types.Worker{Addr: n.HostAddr, Status: types.WorkerPending}
		c.clients[n.HostAddr] = gateway.NewWorkerGateway(n.HostAddr)
	}
	return c
}

// Workers returns a snapshot of the current worker registry.
func (c *Cluster) Workers() []types.Worker {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]types.Worker, 0, len(c.order))
	for _, addr := range c.order {
		out = append(out, *c.workers[addr])
	}
	return out
}

// availableWorkersLocked returns the ordered list of workers not currently
// marked Unreachable. Caller must hold at least a read lock.
func (c *Cluster) availableWorkersLocked() []types.HostAddr {
	avail := make([]types.HostAddr, 0, len(c.order))
	for _, addr := range c.order {
		if c.workers[addr].Status != types.WorkerUnreachable {
			avail = append(avail, addr)
		}
	}
	return avail
}

// PartitionDataflow assigns each operator a host_addr by round-robin over
// the workers currently in {Pending, Running}, df is mutated
// in place.
func (c *Cluster) PartitionDataflow(df *types.Dataflow) error {
	c.mu.RLock()
	avail := c.availableWorkersLocked()
	c.mu.RUnlock()

	if len(avail) == 0 {
		return errs.New(errs.NoAvailableWorker, "no workers available for placement")
	}

	for i := range df.Nodes {
		addr := avail[i%len(avail)]
		hostAddr := addr
		df.Nodes[i].HostAddr = &hostAddr
	}
	return nil
}

// CreateDataflow groups df's operators by host_addr and ships one
// CreateSubDataflowRequest per worker, concurrently. The call fails on the
// first per-worker error; cleanup is left to the caller's terminate_dataflow
// path.
func (c *Cluster) CreateDataflow(ctx context.Context, df *types.Dataflow) error {
	groups := groupByHost(df)

	g, gctx := errgroup.WithContext(ctx)
	for addr, ops := range groups {
		addr, ops := addr, ops
		client, err := c.clientFor(addr)
		if err != nil {
			return err
		}

		g.Go(func() error {
			req := &types.CreateSubDataflowRequest{
				JobId:     df.JobId,
				Operators: ops,
				Edges:     edgesWithin(df.Edges, ops),
			}
			_, err := client.CreateSubDataflow(gctx, req)
			return err
		})
	}
	return g.Wait()
}

// TerminateDataflow broadcasts stop_dataflow to every known worker.
// Individual failures are collected but do not abort the broadcast; the
// overall result is Closed on full success, or the first collected error.
func (c *Cluster) TerminateDataflow(ctx context.Context, jobID types.JobId) (types.DataflowStatus, error) {
	c.mu.RLock()
	addrs := append([]types.HostAddr(nil), c.order...)
	c.mu.RUnlock()

	var (
		mu       sync.Mutex
		firstErr error
	)
	var wg sync.WaitGroup
	for _, addr := range addrs {
		addr := addr
		client, err := c.clientFor(addr)
		if err != nil {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := client.StopDataflow(ctx, jobID); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return types.DataflowStatusClosing, firstErr
	}
	return types.DataflowStatusClosed, nil
}

// ProbeState issues a liveness heartbeat to every worker: success marks
// Running and refreshes last_heartbeat_at, failure marks Unreachable.
func (c *Cluster) ProbeState(ctx context.Context) {
	timer := metrics.NewTimer()
	defer func() {
		timer.ObserveDuration(metrics.ProbeDuration)
		metrics.ProbeCyclesTotal.Inc()
		c.reportWorkerGauge()
	}()

	c.mu.RLock()
	addrs := append([]types.HostAddr(nil), c.order...)
	c.mu.RUnlock()

	logger := log.WithComponent("cluster")

	var wg sync.WaitGroup
	for _, addr := range addrs {
		addr := addr
		client, err := c.clientFor(addr)
		if err != nil {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			hb := &types.Heartbeat{
				Sender:    addr,
				NodeType:  types.NodeTypeCoordinator,
				Timestamp: time.Now(),
			}
			_, err := client.ReceiveHeartbeat(ctx, hb)
			c.mu.Lock()
			defer c.mu.Unlock()
			w := c.workers[addr]
			if err != nil {
				w.Status = types.WorkerUnreachable
				logger.Debug().Str("peer", addr.String()).Err(err).Msg("probe failed")
				return
			}
			w.Status = types.WorkerRunning
			w.LastHeartbeatAt = time.Now()
		}()
	}
	wg.Wait()
}

// reportWorkerGauge republishes the worker-status gauge from the current
// registry snapshot.
func (c *Cluster) reportWorkerGauge() {
	counts := c.WorkerCounts()
	metrics.WorkersTotal.Reset()
	for status, n := range counts {
		metrics.WorkersTotal.WithLabelValues(status).Set(float64(n))
	}
}

// WorkerCounts returns the current registry grouped by status string, for
// the metrics gauge and for health/readiness reporting.
func (c *Cluster) WorkerCounts() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	counts := make(map[string]int, len(c.workers))
	for _, w := range c.workers {
		counts[w.Status.String()]++
	}
	return counts
}

// ReceiveHeartbeat applies an inbound heartbeat from a worker: any state
// moves to Running, and last_heartbeat_at is set to the max of the current
// value and the heartbeat's timestamp, so duplicate or reordered heartbeats
// never move the clock backward.
func (c *Cluster) ReceiveHeartbeat(hb types.Heartbeat) {
	metrics.HeartbeatsReceivedTotal.WithLabelValues(string(hb.NodeType)).Inc()

	c.mu.Lock()
	defer c.mu.Unlock()
	w, ok := c.workers[hb.Sender]
	if !ok {
		return
	}
	w.Status = types.WorkerRunning
	if hb.Timestamp.After(w.LastHeartbeatAt) {
		w.LastHeartbeatAt = hb.Timestamp
	}
}

// MarkUnreachableIfStale sweeps the registry for workers whose
// last_heartbeat_at is older than timeout and marks them Unreachable.
func (c *Cluster) MarkUnreachableIfStale(timeout time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for _, w := range c.workers {
		if w.Status != types.WorkerUnreachable && now.Sub(w.LastHeartbeatAt) > timeout {
			w.Status = types.WorkerUnreachable
		}
	}
}

func (c *Cluster) clientFor(addr types.HostAddr) (*gateway.WorkerGateway, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	client, ok := c.clients[addr]
	if !ok {
		return nil, errs.New(errs.Internal, "no gateway registered for "+addr.String())
	}
	return client, nil
}

// Close releases every worker gateway's cached connection.
func (c *Cluster) Close() {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, client := range c.clients {
		client.Close()
	}
}

func groupByHost(df *types.Dataflow) map[types.HostAddr][]types.OperatorSpec {
	groups := make(map[types.HostAddr][]types.OperatorSpec)
	for _, n := range df.Nodes {
		if n.HostAddr == nil {
			continue
		}
		groups[*n.HostAddr] = append(groups[*n.HostAddr], n)
	}
	return groups
}

// edgesWithin returns the subset of edges that touch this group: either
// endpoint is one of ops' executors. Cross-worker edges are included so the
// worker can route outbound/inbound events by executor ID even though the
// peer executor itself is placed in another group — sub-graphs reference
// peer executors by ID only.
func edgesWithin(edges []types.Edge, ops []types.OperatorSpec) []types.Edge {
	in := make(map[types.ExecutorId]struct{}, len(ops))
	for _, o := range ops {
		in[o.ExecutorId] = struct{}{}
	}
	var out []types.Edge
	for _, e := range edges {
		_, fromIn := in[e.From]
		_, toIn := in[e.To]
		if fromIn || toIn {
			out = append(out, e)
		}
	}
	return out
}
