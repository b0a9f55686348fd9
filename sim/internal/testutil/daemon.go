package testutil

import (
	"fmt"

	"github.com/satnet-rfp/satnet-rfp/sim/route"
)

// Call is one routing daemon invocation seen by RecordingDaemon.
type Call struct {
	Op     string // "link", "apply" or "reconverge"
	Node   int
	Peer   int
	Up     bool
	Update route.Update
}

func (c Call) String() string {
	switch c.Op {
	case "link":
		return fmt.Sprintf("link %d->%d up=%t", c.Node, c.Peer, c.Up)
	case "apply":
		return fmt.Sprintf("apply %d %s", c.Node, c.Update)
	default:
		return fmt.Sprintf("%s %d", c.Op, c.Node)
	}
}

// RecordingDaemon records every call in order. Err, when set, is returned by
// every call after it is recorded.
type RecordingDaemon struct {
	Real  bool
	Err   error
	Calls []Call
}

// Available returns d.Real.
func (d *RecordingDaemon) Available() bool { return d.Real }

// SetLinkState records a link state push.
func (d *RecordingDaemon) SetLinkState(node, peer int, up bool) error {
	d.Calls = append(d.Calls, Call{Op: "link", Node: node, Peer: peer, Up: up})
	return d.Err
}

// Apply records a route update.
func (d *RecordingDaemon) Apply(node int, u route.Update) error {
	d.Calls = append(d.Calls, Call{Op: "apply", Node: node, Update: u})
	return d.Err
}

// Reconverge records a reconvergence request.
func (d *RecordingDaemon) Reconverge(node int) error {
	d.Calls = append(d.Calls, Call{Op: "reconverge", Node: node})
	return d.Err
}

// Ops returns the calls with the given op.
func (d *RecordingDaemon) Ops(op string) []Call {
	var out []Call
	for _, c := range d.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets all recorded calls.
func (d *RecordingDaemon) Reset() { d.Calls = nil }
