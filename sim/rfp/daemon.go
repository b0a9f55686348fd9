package rfp

import (
	"github.com/sirupsen/logrus"

	"github.com/satnet-rfp/satnet-rfp/sim/route"
)

//go:generate mockgen -destination=mock_daemon_test.go -package=rfp -write_package_comment=false github.com/satnet-rfp/satnet-rfp/sim/rfp Daemon

// Daemon is the routing daemon command channel used by LDM and RMM.
// Errors are reported per call; callers log them and carry on.
type Daemon interface {
	Available() bool
	SetLinkState(node, peer int, up bool) error
	Apply(node int, u route.Update) error
	Reconverge(node int) error
}

// errorHook is called for every failed daemon call.
type errorHook func(op string, node int, err error)

// observedDaemon forwards to a Daemon and reports failures to a hook.
// Logging stays with the callers.
type observedDaemon struct {
	Daemon
	onError errorHook
}

func observe(d Daemon, hook errorHook) Daemon {
	if hook == nil {
		return d
	}
	return &observedDaemon{Daemon: d, onError: hook}
}

func (d *observedDaemon) SetLinkState(node, peer int, up bool) error {
	err := d.Daemon.SetLinkState(node, peer, up)
	if err != nil {
		d.onError("link", node, err)
	}
	return err
}

func (d *observedDaemon) Apply(node int, u route.Update) error {
	err := d.Daemon.Apply(node, u)
	if err != nil {
		d.onError("route", node, err)
	}
	return err
}

func (d *observedDaemon) Reconverge(node int) error {
	err := d.Daemon.Reconverge(node)
	if err != nil {
		d.onError("reconverge", node, err)
	}
	return err
}

func logDaemonError(op string, node int, err error) {
	logrus.Errorf("daemon %s on node %d failed, continuing in simulated mode: %v", op, node, err)
}
