package rfp

import (
	"errors"
	"fmt"
	"io"
	"net/netip"

	"github.com/sirupsen/logrus"

	"github.com/satnet-rfp/satnet-rfp/sim"
	"github.com/satnet-rfp/satnet-rfp/sim/analyzer"
	"github.com/satnet-rfp/satnet-rfp/sim/route"
	"github.com/satnet-rfp/satnet-rfp/sim/telemetry"
	"github.com/satnet-rfp/satnet-rfp/sim/trace"
)

// Deps are the collaborators of a Controller. Trace and Metrics are optional.
type Deps struct {
	Scheduler sim.Scheduler
	Clock     sim.Clock
	Topology  sim.Topology
	Daemon    Daemon
	Trace     *trace.SimulationTrace
	Metrics   *telemetry.Metrics
}

// Statistics is the controller's end-of-run view.
type Statistics struct {
	EventsScheduled int
	EventsSkipped   int
	UpdatesBlocked  int
	UpdatesApplied  int
	UpdatesFailed   int
	ActiveEvents    int
	Modifications   int
	DaemonAvailable bool
}

// Controller owns TMM, LDM, RMM and the analyzer of one run and sequences
// them along the timeline of every predicted failure.
type Controller struct {
	cfg       Config
	scheduler sim.Scheduler
	clock     sim.Clock
	topology  sim.Topology
	daemon    Daemon

	tmm      *Registry
	ldm      *LinkStateTracker
	rmm      *RouteBatcher
	analyzer *analyzer.Analyzer
	trace    *trace.SimulationTrace
	metrics  *telemetry.Metrics

	scheduled     int
	skipped       int
	modifications int
	eventMods     map[int]int
}

// New builds a Controller. An empty ReactiveMode defaults to ReactiveEstimate.
func New(cfg Config, deps Deps) (*Controller, error) {
	if cfg.ReactiveMode == "" {
		cfg.ReactiveMode = ReactiveEstimate
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Scheduler == nil || deps.Clock == nil || deps.Topology == nil || deps.Daemon == nil {
		return nil, errors.New("rfp: scheduler, clock, topology and daemon are required")
	}
	tmm, err := NewRegistry(cfg.ConvergenceTime, cfg.SafetyMargin)
	if err != nil {
		return nil, err
	}
	metrics := deps.Metrics
	d := observe(deps.Daemon, func(op string, _ int, _ error) { metrics.DaemonError(op) })
	return &Controller{
		cfg:       cfg,
		scheduler: deps.Scheduler,
		clock:     deps.Clock,
		topology:  deps.Topology,
		daemon:    d,
		tmm:       tmm,
		ldm:       NewLinkStateTracker(d, deps.Topology),
		rmm:       NewRouteBatcher(d, deps.Topology),
		analyzer:  analyzer.New(deps.Clock),
		trace:     deps.Trace,
		metrics:   metrics,
		eventMods: make(map[int]int),
	}, nil
}

// Config returns the parameters in use.
func (c *Controller) Config() Config { return c.cfg }

// Registry returns the predicted-event registry.
func (c *Controller) Registry() *Registry { return c.tmm }

// LinkStates returns the link state tracker.
func (c *Controller) LinkStates() *LinkStateTracker { return c.ldm }

// Batcher returns the route update batcher.
func (c *Controller) Batcher() *RouteBatcher { return c.rmm }

// Analyzer returns the performance analyzer, for traffic sources to count packets.
func (c *Controller) Analyzer() *analyzer.Analyzer { return c.analyzer }

// RegisterLink seeds an up link the routing daemon already runs with.
func (c *Controller) RegisterLink(a, b int) error {
	if err := c.validateEndpoints(a, b); err != nil {
		return err
	}
	c.ldm.InitLink(a, b, true)
	return nil
}

// RegisterPredictedFailure registers a failure of link a-b predicted at t0 and
// schedules its four timeline actions. Invalid events are logged and skipped.
func (c *Controller) RegisterPredictedFailure(id, a, b int, t0 float64) (PredictedEvent, bool) {
	now := c.clock.Now()
	if err := c.validateEndpoints(a, b); err != nil {
		c.skip(id, now, err)
		return PredictedEvent{}, false
	}
	ev, err := c.tmm.AddPredictedEvent(id, a, b, t0)
	if err != nil {
		c.skip(id, now, err)
		return PredictedEvent{}, false
	}
	if ev.T1 < now {
		c.tmm.Deactivate(id)
		c.skip(id, now, invalid("timeline", "T1=%.3fs is before now (%.3fs)", ev.T1, now))
		ev.Active = false
		return ev, false
	}

	c.at(ev.T1, trace.PhaseT1, id, c.executeT1)
	c.at(ev.T2, trace.PhaseT2, id, c.executeT2)
	c.at(ev.T0, trace.PhaseT0, id, c.executeT0)
	c.at(ev.T3, trace.PhaseT3, id, c.executeT3)
	c.scheduled++
	c.metrics.PredictedEvent("scheduled")
	logrus.Infof("[t=%.3fs] RFP: event %d on link %s scheduled: T1=%.3fs T2=%.3fs T0=%.3fs T3=%.3fs",
		now, id, ev.Link(), ev.T1, ev.T2, ev.T0, ev.T3)
	return ev, true
}

func (c *Controller) skip(id int, now float64, err error) {
	c.skipped++
	c.metrics.PredictedEvent("skipped")
	logrus.Warnf("[t=%.3fs] RFP: skipping predicted event %d: %v", now, id, err)
}

// at schedules one timeline action of an active event. An action returning
// false has recorded its own outcome. A panic inside the action is recovered
// and logged; the rest of the schedule is unaffected.
func (c *Controller) at(t float64, phase trace.Phase, id int, action func(PredictedEvent, float64) bool) {
	c.scheduler.ScheduleAt(t, func(now float64) {
		defer func() {
			if r := recover(); r != nil {
				logrus.Errorf("[t=%.3fs] RFP: %s action of event %d failed: %v", now, phase, id, r)
			}
		}()
		ev, ok := c.tmm.Get(id)
		if !ok || !ev.Active {
			return
		}
		if !action(ev, now) {
			return
		}
		c.trace.RecordAction(trace.ActionRecord{EventID: id, Link: ev.Link().String(), Phase: phase, Clock: now})
	})
}

func (c *Controller) executeT1(ev PredictedEvent, now float64) bool {
	if err := c.validateEndpoints(ev.NodeA, ev.NodeB); err != nil {
		c.tmm.Deactivate(ev.ID)
		c.skip(ev.ID, now, err)
		c.trace.RecordAction(trace.ActionRecord{EventID: ev.ID, Link: ev.Link().String(),
			Phase: trace.PhaseT1, Clock: now, Skipped: true, Reason: err.Error()})
		return false
	}
	key := ev.Link()
	logrus.Infof("[t=%.3fs] RFP T1: event %d link %s, starting predictive link avoidance", now, ev.ID, key)

	c.analyzer.StartLinkDownEvent(key, true)
	c.ldm.ForceLinkDown(ev.NodeA, ev.NodeB, now)
	c.addModifications(ev.ID, 2)
	c.rmm.StartBfuPeriod(now)
	c.submitRouteDelta(ev.NodeA, ev.NodeB, false, now)
	return true
}

func (c *Controller) executeT2(ev PredictedEvent, now float64) bool {
	logrus.Infof("[t=%.3fs] RFP T2: event %d link %s, synchronizing forwarding tables", now, ev.ID, ev.Link())
	reconverged := c.rmm.IsBfuActive()
	flushed := c.rmm.EndBfuPeriod(now)
	c.addModifications(ev.ID, flushed)
	c.metrics.Flush(flushed)

	restarted := false
	if c.tmm.IsInBfuWindowExcept(ev.ID, now) {
		c.rmm.StartBfuPeriod(now)
		restarted = true
		logrus.Infof("[t=%.3fs] RFP T2: another predicted event is still batching, BFU restarted", now)
	}
	c.trace.RecordFlush(trace.FlushRecord{Clock: now, Flushed: flushed, Reconverged: reconverged, Restarted: restarted})
	return true
}

func (c *Controller) executeT0(ev PredictedEvent, now float64) bool {
	key := ev.Link()
	logrus.Infof("[t=%.3fs] RFP T0: event %d link %s, physical failure expected, routes already switched", now, ev.ID, key)
	c.analyzer.RecordRouteConvergence(key)
	c.analyzer.CompleteLinkEvent(key, c.eventMods[ev.ID])
	return true
}

func (c *Controller) executeT3(ev PredictedEvent, now float64) bool {
	defer c.tmm.Deactivate(ev.ID)
	defer delete(c.eventMods, ev.ID)

	if c.tmm.IsInBldWindowExcept(ev.ID, ev.NodeA, ev.NodeB, now) {
		logrus.Infof("[t=%.3fs] RFP T3: event %d link %s still masked by another event", now, ev.ID, ev.Link())
		return true
	}
	logrus.Infof("[t=%.3fs] RFP T3: event %d link %s, resuming normal link detection", now, ev.ID, ev.Link())
	c.ldm.RestoreNormalDetection(ev.NodeA, ev.NodeB, now)
	c.modifications += 2
	if c.ldm.GetRealState(ev.NodeA, ev.NodeB) {
		c.submitRouteDelta(ev.NodeA, ev.NodeB, true, now)
		c.modifications++
	}
	return true
}

func (c *Controller) addModifications(id, n int) {
	c.modifications += n
	c.eventMods[id] += n
}

// OnObservedLinkChange feeds a physical link transition into LDM. A change
// the routing daemon sees produces a route delta; a down transition no
// predicted event covers is measured as a reactive failure.
func (c *Controller) OnObservedLinkChange(a, b int, isUp bool, t float64) Change {
	if err := c.validateEndpoints(a, b); err != nil {
		logrus.Warnf("[t=%.3fs] RFP: ignoring link change: %v", t, err)
		return ChangeNone
	}
	change := c.ldm.UpdateRealLinkState(a, b, isUp, t, c.tmm)
	c.metrics.LinkChange(change.String())

	unpredicted := change == ChangeReported && !isUp
	if change.Propagated() {
		c.submitRouteDelta(a, b, isUp, t)
		c.modifications++
	}
	if unpredicted {
		c.recordUnpredicted(sim.NewLinkKey(a, b), t)
	}
	c.trace.RecordLinkChange(trace.LinkChangeRecord{
		Link:        sim.NewLinkKey(a, b).String(),
		Clock:       t,
		IsUp:        isUp,
		Outcome:     change.String(),
		Unpredicted: unpredicted,
	})
	logrus.Debugf("[t=%.3fs] RFP: physical=%s reported=%s for link %s",
		t, upDown(isUp), upDown(c.ldm.GetReportedState(a, b)), sim.NewLinkKey(a, b))
	return change
}

// recordUnpredicted measures a failure OSPF has to discover on its own.
func (c *Controller) recordUnpredicted(key sim.LinkKey, t float64) {
	logrus.Infof("[t=%.3fs] RFP: standard OSPF link-down on %s (unpredicted)", t, key)
	if c.cfg.ReactiveMode != ReactiveTimeline {
		c.analyzer.RecordLinkDownEvent(false, c.cfg.DeadInterval+c.cfg.SPFDelay,
			c.cfg.ReactivePacketLoss, c.cfg.DeadInterval, 1)
		return
	}
	c.analyzer.StartLinkDownEvent(key, false)
	detected := t + c.cfg.DeadInterval
	c.scheduler.ScheduleAt(detected, func(float64) {
		c.analyzer.RecordOspfDetection(key)
	})
	c.scheduler.ScheduleAt(detected+c.cfg.SPFDelay, func(float64) {
		c.analyzer.RecordRouteConvergence(key)
		c.analyzer.CompleteLinkEvent(key, 1)
	})
}

// submitRouteDelta hands the route change for the link a-b, as seen from a,
// to the batcher: the direct route when the link comes up, or its removal and
// a detour through the first relay when it goes down.
func (c *Controller) submitRouteDelta(a, b int, up bool, t float64) {
	prefix, err := route.NodePrefix(b)
	if err != nil {
		logrus.Warnf("[t=%.3fs] RFP: no route delta for link %s: %v", t, sim.NewLinkKey(a, b), err)
		return
	}
	direct, err := route.NodeNextHop(a)
	if err != nil {
		logrus.Warnf("[t=%.3fs] RFP: no route delta for link %s: %v", t, sim.NewLinkKey(a, b), err)
		return
	}

	var updates []route.Update
	if up {
		updates = append(updates, route.Add(prefix, direct, DirectMetric))
	} else {
		updates = append(updates, route.Delete(prefix, direct))
		if alt, ok := c.detour(a, b); ok {
			updates = append(updates, route.Add(prefix, alt, DetourMetric))
		}
	}
	for _, u := range updates {
		d := c.rmm.OnNewRoutingTable(a, u, t)
		c.metrics.RouteUpdate(d.String())
	}
}

func (c *Controller) detour(a, b int) (netip.Addr, bool) {
	for _, relay := range relays(c.topology, a, b, MaxAltRouteNodes) {
		if nh, err := route.NodeNextHop(relay); err == nil {
			return nh, true
		}
	}
	return netip.Addr{}, false
}

func (c *Controller) validateEndpoints(a, b int) error {
	if !c.topology.IsValidIndex(a) || !c.topology.IsValidIndex(b) {
		return invalid("endpoints", "link %d-%d outside topology of %d nodes", a, b, c.topology.NodeCount())
	}
	if a == b {
		return invalid("endpoints", "link %d-%d connects a node to itself", a, b)
	}
	if !route.Addressable(a) || !route.Addressable(b) {
		return invalid("endpoints", "link %d-%d outside the addressing plan (max node %d)", a, b, route.MaxNode)
	}
	return nil
}

// GetEffectiveLinkState returns the state the routing daemon believes the link is in.
func (c *Controller) GetEffectiveLinkState(a, b int) bool {
	return c.ldm.GetReportedState(a, b)
}

// Summary returns the RFP and standard OSPF aggregates.
func (c *Controller) Summary() analyzer.Summary {
	return c.analyzer.Summary()
}

// Statistics returns the controller counters at the current clock.
func (c *Controller) Statistics() Statistics {
	return Statistics{
		EventsScheduled: c.scheduled,
		EventsSkipped:   c.skipped,
		UpdatesBlocked:  c.rmm.BlockedCount(),
		UpdatesApplied:  c.rmm.AppliedCount(),
		UpdatesFailed:   c.rmm.FailedCount(),
		ActiveEvents:    len(c.tmm.ActiveEvents(c.clock.Now())),
		Modifications:   c.modifications,
		DaemonAvailable: c.daemon.Available(),
	}
}

// Report writes the controller statistics followed by the analyzer report.
func (c *Controller) Report(w io.Writer) error {
	s := c.Statistics()
	vtysh := "NO (simulated)"
	if s.DaemonAvailable {
		vtysh = "YES"
	}
	_, err := fmt.Fprintf(w, "=== SATNET-OSPF RFP Statistics ===\n"+
		"Events scheduled: %d\nEvents skipped: %d\n"+
		"Route updates blocked during BFU: %d\nRoute updates applied: %d\nRoute updates failed: %d\n"+
		"Active events: %d\nTotal daemon modifications: %d\nvtysh availability: %s\n\n",
		s.EventsScheduled, s.EventsSkipped, s.UpdatesBlocked, s.UpdatesApplied, s.UpdatesFailed,
		s.ActiveEvents, s.Modifications, vtysh)
	if err != nil {
		return err
	}
	return c.analyzer.Report(w, s.DaemonAvailable)
}
