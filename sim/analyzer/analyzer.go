package analyzer

import (
	"github.com/sirupsen/logrus"

	"github.com/satnet-rfp/satnet-rfp/sim"
)

// LinkEvent is an in-flight measurement of one link-down sequence.
type LinkEvent struct {
	Link            sim.LinkKey
	IsRFP           bool
	LinkDownTime    float64
	RouteUpdateTime float64
	Detection       float64 // delay from link down to detection
	PacketsLost     int64

	sentAtStart     int64
	receivedAtStart int64
}

// Outage returns routeUpdateTime - linkDownTime, floored at 0.
func (e LinkEvent) Outage() float64 {
	if d := e.RouteUpdateTime - e.LinkDownTime; d > 0 {
		return d
	}
	return 0
}

// Analyzer keeps at most one open LinkEvent per link; starting a new one
// replaces the old.
type Analyzer struct {
	clock    sim.Clock
	open     map[sim.LinkKey]*LinkEvent
	standard Metrics
	rfp      Metrics
	sent     int64
	received int64
}

// New creates an Analyzer timestamping with clock.
func New(clock sim.Clock) *Analyzer {
	return &Analyzer{
		clock: clock,
		open:  make(map[sim.LinkKey]*LinkEvent),
	}
}

// OnPacketSent counts a packet sent by any traffic source.
func (a *Analyzer) OnPacketSent() { a.sent++ }

// OnPacketReceived counts a packet delivered to any sink.
func (a *Analyzer) OnPacketReceived() { a.received++ }

// StartLinkDownEvent opens a measurement for key. For RFP events the routes
// are considered switched at the start and detection is immediate.
func (a *Analyzer) StartLinkDownEvent(key sim.LinkKey, isRFP bool) {
	now := a.clock.Now()
	ev := &LinkEvent{
		Link:            key,
		IsRFP:           isRFP,
		LinkDownTime:    now,
		sentAtStart:     a.sent,
		receivedAtStart: a.received,
	}
	if isRFP {
		ev.RouteUpdateTime = now
	}
	if _, replaced := a.open[key]; replaced {
		logrus.Debugf("[t=%.3fs] measurement for link %s restarted", now, key)
	}
	a.open[key] = ev
	logrus.Infof("[t=%.3fs] measurement: link-down event started on %s (rfp=%t)", now, key, isRFP)
}

// RecordOspfDetection stamps the detection delay of a standard event.
func (a *Analyzer) RecordOspfDetection(key sim.LinkKey) {
	ev, ok := a.open[key]
	if !ok || ev.IsRFP {
		return
	}
	ev.Detection = a.clock.Now() - ev.LinkDownTime
	logrus.Debugf("measurement: OSPF detected %s after %.1fms", key, ms(ev.Detection))
}

// RecordRouteConvergence stamps convergence and the packets lost since the
// event started.
func (a *Analyzer) RecordRouteConvergence(key sim.LinkKey) {
	ev, ok := a.open[key]
	if !ok {
		return
	}
	if !ev.IsRFP {
		ev.RouteUpdateTime = a.clock.Now()
	}
	lost := (a.sent - ev.sentAtStart) - (a.received - ev.receivedAtStart)
	if lost < 0 {
		lost = 0
	}
	ev.PacketsLost = lost
}

// CompleteLinkEvent folds the open event for key into its regime and closes
// it. It returns false when no event was open.
func (a *Analyzer) CompleteLinkEvent(key sim.LinkKey, mods int) bool {
	ev, ok := a.open[key]
	if !ok {
		return false
	}
	delete(a.open, key)
	outage := ev.Outage()
	a.bucket(ev.IsRFP).add(outage, ev.PacketsLost, ev.Detection, mods)
	logrus.Infof("[t=%.3fs] measurement: %s event on %s completed: outage=%.1fms packets_lost=%d mods=%d",
		a.clock.Now(), regime(ev.IsRFP), key, ms(outage), ev.PacketsLost, mods)
	return true
}

// RecordLinkDownEvent accumulates an event measured elsewhere, such as the
// reactive estimate of an unpredicted failure. Times are in seconds.
func (a *Analyzer) RecordLinkDownEvent(isRFP bool, outage float64, packetsLost int64, detection float64, mods int) {
	if outage < 0 {
		outage = 0
	}
	a.bucket(isRFP).add(outage, packetsLost, detection, mods)
	logrus.Infof("measurement: recorded %s event: outage=%.1fms packets_lost=%d mods=%d",
		regime(isRFP), ms(outage), packetsLost, mods)
}

// OpenEvent returns the in-flight measurement for key.
func (a *Analyzer) OpenEvent(key sim.LinkKey) (LinkEvent, bool) {
	ev, ok := a.open[key]
	if !ok {
		return LinkEvent{}, false
	}
	return *ev, true
}

// OpenEvents returns the number of measurements still in flight.
func (a *Analyzer) OpenEvents() int {
	return len(a.open)
}

// Summary returns a copy of the aggregates.
func (a *Analyzer) Summary() Summary {
	return Summary{
		Standard:        a.standard,
		RFP:             a.rfp,
		PacketsSent:     a.sent,
		PacketsReceived: a.received,
	}
}

func (a *Analyzer) bucket(isRFP bool) *Metrics {
	if isRFP {
		return &a.rfp
	}
	return &a.standard
}

func regime(isRFP bool) string {
	if isRFP {
		return "RFP"
	}
	return "standard OSPF"
}
