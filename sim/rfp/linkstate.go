package rfp

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/satnet-rfp/satnet-rfp/sim"
	"github.com/satnet-rfp/satnet-rfp/sim/route"
)

// LinkStateRecord is what LDM knows about one link.
type LinkStateRecord struct {
	Real       bool // last physical state observed
	Reported   bool // last state pushed to the routing daemon
	ForcedDown bool // an RFP mask is in place
}

// Change is the outcome of a real link state update.
type Change int

const (
	// ChangeNone means the real state did not change.
	ChangeNone Change = iota
	// ChangeMaskedForced means the link is forced down and the change was swallowed.
	ChangeMaskedForced
	// ChangeMaskedWindow means a BLD window covers the link and the change was swallowed.
	ChangeMaskedWindow
	// ChangeReported means the new state was pushed to the routing daemon.
	ChangeReported
)

func (c Change) String() string {
	switch c {
	case ChangeNone:
		return "none"
	case ChangeMaskedForced:
		return "masked_forced"
	case ChangeMaskedWindow:
		return "masked_window"
	case ChangeReported:
		return "reported"
	default:
		return "unknown"
	}
}

// Propagated reports whether the routing daemon saw the change.
func (c Change) Propagated() bool {
	return c == ChangeReported
}

// Masked reports whether the change was swallowed by RFP.
func (c Change) Masked() bool {
	return c == ChangeMaskedForced || c == ChangeMaskedWindow
}

// LinkMode classifies a link at an instant.
type LinkMode int

const (
	// ModeNormal: reported tracks real.
	ModeNormal LinkMode = iota
	// ModeMasked: forced down, reported pinned to down.
	ModeMasked
	// ModeBlind: inside a BLD window without a force; changes are observed only.
	ModeBlind
)

func (m LinkMode) String() string {
	switch m {
	case ModeMasked:
		return "masked"
	case ModeBlind:
		return "blind"
	default:
		return "normal"
	}
}

// WindowQuery answers whether a link is inside a BLD window.
type WindowQuery interface {
	IsInBldWindow(a, b int, t float64) bool
}

// LinkStateTracker is the link detection module (LDM). It is the only owner
// of the real and reported state of every link.
type LinkStateTracker struct {
	links    map[sim.LinkKey]*LinkStateRecord
	daemon   Daemon
	topology sim.Topology
}

// NewLinkStateTracker creates an LDM pushing state through d. topology bounds
// the relays considered for alternate routes.
func NewLinkStateTracker(d Daemon, topology sim.Topology) *LinkStateTracker {
	return &LinkStateTracker{
		links:    make(map[sim.LinkKey]*LinkStateRecord),
		daemon:   d,
		topology: topology,
	}
}

func (l *LinkStateTracker) record(a, b int) *LinkStateRecord {
	key := sim.NewLinkKey(a, b)
	rec, ok := l.links[key]
	if !ok {
		rec = &LinkStateRecord{}
		l.links[key] = rec
	}
	return rec
}

// InitLink seeds a link the routing daemon already knows about. Nothing is pushed.
func (l *LinkStateTracker) InitLink(a, b int, up bool) {
	rec := l.record(a, b)
	rec.Real = up
	rec.Reported = up
}

// ForceLinkDown masks the link: it is reported down whatever its real state,
// and precautionary routes toward b are staged on a. It returns the number
// of daemon calls issued.
func (l *LinkStateTracker) ForceLinkDown(a, b int, t float64) int {
	rec := l.record(a, b)
	rec.ForcedDown = true
	rec.Reported = false
	logrus.Infof("[t=%.3fs] LDM: forcing link %s down", t, sim.NewLinkKey(a, b))

	calls := l.push(a, b, false)
	calls += l.stageAlternateRoutes(a, b)
	return calls
}

// RestoreNormalDetection lifts the mask and reports the real state again.
func (l *LinkStateTracker) RestoreNormalDetection(a, b int, t float64) int {
	rec := l.record(a, b)
	rec.ForcedDown = false
	rec.Reported = rec.Real
	logrus.Infof("[t=%.3fs] LDM: restored normal detection for link %s (real state %s)",
		t, sim.NewLinkKey(a, b), upDown(rec.Real))
	return l.push(a, b, rec.Real)
}

// UpdateRealLinkState records a physical state change and decides whether the
// routing daemon may see it.
func (l *LinkStateTracker) UpdateRealLinkState(a, b int, isUp bool, t float64, tmm WindowQuery) Change {
	rec := l.record(a, b)
	previous := rec.Real
	rec.Real = isUp

	if rec.ForcedDown {
		logrus.Debugf("[t=%.3fs] LDM: link %s %s ignored (forced down)", t, sim.NewLinkKey(a, b), upDown(isUp))
		return ChangeMaskedForced
	}
	if tmm != nil && tmm.IsInBldWindow(a, b, t) {
		logrus.Debugf("[t=%.3fs] LDM: link %s %s blocked (BLD window)", t, sim.NewLinkKey(a, b), upDown(isUp))
		return ChangeMaskedWindow
	}
	if isUp == previous {
		return ChangeNone
	}
	rec.Reported = isUp
	l.push(a, b, isUp)
	logrus.Infof("[t=%.3fs] LDM: link %s reported %s", t, sim.NewLinkKey(a, b), upDown(isUp))
	return ChangeReported
}

// GetReportedState returns the state last pushed for the link; false if unknown.
func (l *LinkStateTracker) GetReportedState(a, b int) bool {
	rec, ok := l.links[sim.NewLinkKey(a, b)]
	return ok && rec.Reported
}

// GetRealState returns the last physical state observed; false if unknown.
func (l *LinkStateTracker) GetRealState(a, b int) bool {
	rec, ok := l.links[sim.NewLinkKey(a, b)]
	return ok && rec.Real
}

// IsForcedDown reports whether the link is masked.
func (l *LinkStateTracker) IsForcedDown(a, b int) bool {
	rec, ok := l.links[sim.NewLinkKey(a, b)]
	return ok && rec.ForcedDown
}

// Record returns a copy of the state of the link.
func (l *LinkStateTracker) Record(a, b int) (LinkStateRecord, bool) {
	rec, ok := l.links[sim.NewLinkKey(a, b)]
	if !ok {
		return LinkStateRecord{}, false
	}
	return *rec, true
}

// State classifies the link at t.
func (l *LinkStateTracker) State(a, b int, t float64, tmm WindowQuery) LinkMode {
	if l.IsForcedDown(a, b) {
		return ModeMasked
	}
	if tmm != nil && tmm.IsInBldWindow(a, b, t) {
		return ModeBlind
	}
	return ModeNormal
}

// Links returns every tracked link, sorted.
func (l *LinkStateTracker) Links() []sim.LinkKey {
	keys := make([]sim.LinkKey, 0, len(l.links))
	for k := range l.links {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].A != keys[j].A {
			return keys[i].A < keys[j].A
		}
		return keys[i].B < keys[j].B
	})
	return keys
}

// push sends the state to the interface facing the peer on both endpoints.
func (l *LinkStateTracker) push(a, b int, up bool) int {
	if err := l.daemon.SetLinkState(a, b, up); err != nil {
		logDaemonError("link state", a, err)
	}
	if err := l.daemon.SetLinkState(b, a, up); err != nil {
		logDaemonError("link state", b, err)
	}
	return 2
}

// stageAlternateRoutes installs higher-metric routes toward b on a through
// every relay among the first MaxAltRouteNodes nodes.
func (l *LinkStateTracker) stageAlternateRoutes(a, b int) int {
	prefix, err := route.NodePrefix(b)
	if err != nil {
		logrus.Warnf("LDM: no alternate routes toward node %d: %v", b, err)
		return 0
	}
	calls := 0
	for _, relay := range relays(l.topology, a, b, MaxAltRouteNodes) {
		nh, err := route.NodeNextHop(relay)
		if err != nil {
			continue
		}
		if err := l.daemon.Apply(a, route.Add(prefix, nh, AltRouteMetric)); err != nil {
			logDaemonError("alternate route", a, err)
		}
		calls++
	}
	logrus.Debugf("LDM: staged %d alternate routes toward node %d on node %d", calls, b, a)
	return calls
}

// relays returns the node indices below min(NodeCount, limit) other than a and b.
func relays(topology sim.Topology, a, b, limit int) []int {
	n := topology.NodeCount()
	if n > limit {
		n = limit
	}
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if i != a && i != b && topology.IsValidIndex(i) {
			out = append(out, i)
		}
	}
	return out
}

func upDown(up bool) string {
	if up {
		return "UP"
	}
	return "DOWN"
}
