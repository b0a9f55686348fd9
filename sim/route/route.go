// Package route defines the route deltas exchanged between the RFP core and
// the routing daemon, and the addressing plan that maps nodes to prefixes
// and next hops.
package route

import (
	"fmt"
	"net/netip"
)

// Kind tags a route Update.
type Kind int

const (
	KindAdd Kind = iota
	KindDelete
	KindReplace
)

func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "ADD"
	case KindDelete:
		return "DEL"
	case KindReplace:
		return "UPDATE"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Update is one static-route change destined for a single node.
// Metric is ignored for KindDelete.
type Update struct {
	Kind    Kind
	Prefix  netip.Prefix
	NextHop netip.Addr
	Metric  int
}

// Add installs prefix via nexthop with the given metric.
func Add(prefix netip.Prefix, nexthop netip.Addr, metric int) Update {
	return Update{Kind: KindAdd, Prefix: prefix, NextHop: nexthop, Metric: metric}
}

// Delete removes the route to prefix via nexthop.
func Delete(prefix netip.Prefix, nexthop netip.Addr) Update {
	return Update{Kind: KindDelete, Prefix: prefix, NextHop: nexthop}
}

// Replace removes then reinstalls prefix via nexthop with a new metric.
func Replace(prefix netip.Prefix, nexthop netip.Addr, metric int) Update {
	return Update{Kind: KindReplace, Prefix: prefix, NextHop: nexthop, Metric: metric}
}

func (u Update) String() string {
	if u.Kind == KindDelete {
		return fmt.Sprintf("%s %s %s", u.Kind, u.Prefix, u.NextHop)
	}
	return fmt.Sprintf("%s %s %s %d", u.Kind, u.Prefix, u.NextHop, u.Metric)
}
