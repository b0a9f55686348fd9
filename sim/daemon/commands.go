// Package daemon is the command channel to the routing process (zebra/ospfd
// driven through vtysh) running on each node.
//
// Every operation is translated into one vtysh session: an ordered list of
// CLI directives. When no vtysh binary is available the sessions are logged
// as simulated and succeed; the simulated RIB is updated either way.
package daemon

import (
	"fmt"

	"github.com/satnet-rfp/satnet-rfp/sim/route"
)

// MaxCommandLength is the longest single directive accepted.
const MaxCommandLength = 200

const (
	cmdConfigure      = "configure terminal"
	cmdRouterOSPF     = "router ospf"
	cmdRedistribute   = "redistribute static"
	cmdClearDatabase  = "clear ip ospf database"
	cmdStubBackbone   = "area 0.0.0.0 stub"
	cmdNoStubBackbone = "no area 0.0.0.0 stub"
)

// LinkStateCommands shuts down or re-enables the interface facing peer.
func LinkStateCommands(peer int, up bool) []string {
	state := "shutdown"
	if up {
		state = "no shutdown"
	}
	return []string{cmdConfigure, "interface " + route.InterfaceName(peer), state}
}

// AddRouteCommands installs a static route and redistributes it into OSPF.
func AddRouteCommands(u route.Update) []string {
	return []string{
		cmdConfigure,
		fmt.Sprintf("ip route %s %s %d", u.Prefix, u.NextHop, u.Metric),
		cmdRouterOSPF,
		cmdRedistribute,
	}
}

// DeleteRouteCommands removes a static route.
func DeleteRouteCommands(u route.Update) []string {
	return []string{cmdConfigure, fmt.Sprintf("no ip route %s %s", u.Prefix, u.NextHop)}
}

// UpdateCommands returns the session for any kind of route update.
// A replace is a delete followed by an add.
func UpdateCommands(u route.Update) ([]string, error) {
	switch u.Kind {
	case route.KindAdd:
		return AddRouteCommands(u), nil
	case route.KindDelete:
		return DeleteRouteCommands(u), nil
	case route.KindReplace:
		return append(DeleteRouteCommands(u), AddRouteCommands(u)...), nil
	default:
		return nil, fmt.Errorf("unknown route update kind %v", u.Kind)
	}
}

// ReconvergeCommands flushes the link-state database and toggles the
// backbone stub flag, forcing ospfd to rerun SPF.
func ReconvergeCommands() []string {
	return []string{cmdClearDatabase, cmdRouterOSPF, cmdStubBackbone, cmdNoStubBackbone}
}
