package rfp

import (
	"github.com/sirupsen/logrus"

	"github.com/satnet-rfp/satnet-rfp/sim"
	"github.com/satnet-rfp/satnet-rfp/sim/route"
)

// Disposition says what the batcher did with a route update.
type Disposition int

const (
	// Applied: pushed to the routing daemon immediately.
	Applied Disposition = iota
	// Deferred: queued until the end of the BFU period.
	Deferred
)

func (d Disposition) String() string {
	if d == Deferred {
		return "deferred"
	}
	return "applied"
}

// PendingRouteUpdate is a route update waiting for the end of the BFU period.
type PendingRouteUpdate struct {
	Node   int
	Update route.Update
}

// RouteBatcher is the route management module (RMM). While a BFU period is
// active every update is queued; EndBfuPeriod applies the queue in order, so
// per-node FIFO holds across the flush.
type RouteBatcher struct {
	daemon   Daemon
	topology sim.Topology

	active  bool
	pending []PendingRouteUpdate

	blocked int
	applied int
	failed  int
}

// NewRouteBatcher creates an RMM in the Flowing state.
func NewRouteBatcher(d Daemon, topology sim.Topology) *RouteBatcher {
	return &RouteBatcher{
		daemon:   d,
		topology: topology,
		pending:  make([]PendingRouteUpdate, 0),
	}
}

// StartBfuPeriod switches to Batching. Starting an active period is a no-op.
func (b *RouteBatcher) StartBfuPeriod(t float64) {
	if b.active {
		logrus.Debugf("[t=%.3fs] RMM: BFU period already active", t)
		return
	}
	b.active = true
	logrus.Infof("[t=%.3fs] RMM: BFU period started, route updates are queued", t)
}

// OnNewRoutingTable applies u on node, or queues it while batching.
func (b *RouteBatcher) OnNewRoutingTable(node int, u route.Update, t float64) Disposition {
	if b.active {
		b.pending = append(b.pending, PendingRouteUpdate{Node: node, Update: u})
		b.blocked++
		logrus.Debugf("[t=%.3fs] RMM: queued %s for node %d (%d pending)", t, u, node, len(b.pending))
		return Deferred
	}
	b.apply(node, u)
	return Applied
}

// EndBfuPeriod switches back to Flowing, applies every queued update in
// enqueue order and reconverges the routing protocol. It returns the number
// of updates flushed; outside a BFU period it does nothing and returns 0.
func (b *RouteBatcher) EndBfuPeriod(t float64) int {
	if !b.active {
		logrus.Debugf("[t=%.3fs] RMM: no BFU period to end", t)
		return 0
	}
	b.active = false
	queue := b.pending
	b.pending = make([]PendingRouteUpdate, 0)
	for _, p := range queue {
		b.apply(p.Node, p.Update)
	}
	nodes := b.reconverge()
	logrus.Infof("[t=%.3fs] RMM: BFU period ended, %d route updates applied, %d nodes reconverged", t, len(queue), nodes)
	return len(queue)
}

func (b *RouteBatcher) apply(node int, u route.Update) {
	if err := b.daemon.Apply(node, u); err != nil {
		b.failed++
		logDaemonError("route "+u.String(), node, err)
		return
	}
	b.applied++
}

func (b *RouteBatcher) reconverge() int {
	n := b.topology.NodeCount()
	if n > MaxReconvergeNodes {
		n = MaxReconvergeNodes
	}
	count := 0
	for i := 0; i < n; i++ {
		if !b.topology.IsValidIndex(i) {
			continue
		}
		if err := b.daemon.Reconverge(i); err != nil {
			logDaemonError("reconverge", i, err)
		}
		count++
	}
	return count
}

// IsBfuActive reports whether updates are being queued.
func (b *RouteBatcher) IsBfuActive() bool { return b.active }

// BlockedCount returns how many updates were queued so far.
func (b *RouteBatcher) BlockedCount() int { return b.blocked }

// AppliedCount returns how many updates the daemon accepted, immediately or by a flush.
func (b *RouteBatcher) AppliedCount() int { return b.applied }

// FailedCount returns how many pushes the daemon rejected.
func (b *RouteBatcher) FailedCount() int { return b.failed }

// PendingCount returns the current queue length.
func (b *RouteBatcher) PendingCount() int { return len(b.pending) }

// Pending returns a copy of the queue.
func (b *RouteBatcher) Pending() []PendingRouteUpdate {
	return append([]PendingRouteUpdate(nil), b.pending...)
}
