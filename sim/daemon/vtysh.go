package daemon

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/satnet-rfp/satnet-rfp/sim/route"
)

// Runner delivers a vtysh session to the routing process of a node.
type Runner interface {
	Run(node int, cmds []string) error
}

// Vtysh drives the routing daemons through vtysh sessions. With a nil
// Runner every session is simulated: logged and reported as successful.
type Vtysh struct {
	runner     Runner
	rib        *RIB
	transcript *Transcript
}

// NewVtysh creates a Vtysh adapter. rib and transcript may be nil; a nil rib
// is replaced by an empty one.
func NewVtysh(runner Runner, rib *RIB, transcript *Transcript) *Vtysh {
	if rib == nil {
		rib = NewRIB()
	}
	return &Vtysh{runner: runner, rib: rib, transcript: transcript}
}

// Available reports whether sessions reach a real vtysh.
func (d *Vtysh) Available() bool {
	return d.runner != nil
}

// RIB returns the simulated routing table mirror.
func (d *Vtysh) RIB() *RIB {
	return d.rib
}

// Transcript returns the session log, or nil if none was configured.
func (d *Vtysh) Transcript() *Transcript {
	return d.transcript
}

// SetLinkState shuts down or re-enables, on node, the interface facing peer.
func (d *Vtysh) SetLinkState(node, peer int, up bool) error {
	return d.session(node, LinkStateCommands(peer, up))
}

// Apply pushes a route update to node and mirrors it into the RIB.
func (d *Vtysh) Apply(node int, u route.Update) error {
	cmds, err := UpdateCommands(u)
	if err != nil {
		return &CommandError{Node: node, Command: u.String(), Err: err}
	}
	if node >= 0 {
		d.rib.Apply(node, u)
	}
	return d.session(node, cmds)
}

// Reconverge forces an SPF run on node.
func (d *Vtysh) Reconverge(node int) error {
	return d.session(node, ReconvergeCommands())
}

func (d *Vtysh) session(node int, cmds []string) error {
	if node < 0 {
		return &CommandError{Node: node, Command: strings.Join(cmds, " ; "), Err: ErrInvalidNode}
	}
	for _, c := range cmds {
		if len(c) > MaxCommandLength {
			return &CommandError{Node: node, Command: c[:50] + "...", Err: ErrCommandTooLong}
		}
	}
	d.transcript.Record(node, cmds)
	if !d.Available() {
		logrus.Debugf("SIMULATED vtysh on node %d: %s", node, strings.Join(cmds, " ; "))
		return nil
	}
	if err := d.runner.Run(node, cmds); err != nil {
		return &CommandError{Node: node, Command: strings.Join(cmds, " ; "), Err: err}
	}
	logrus.Debugf("vtysh on node %d: %s", node, strings.Join(cmds, " ; "))
	return nil
}

// Detect reports whether a vtysh binary exists at path.
func Detect(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		logrus.Warnf("vtysh not found at %s: %v", path, err)
		return false
	}
	return !info.IsDir()
}
