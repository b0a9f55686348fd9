package daemon

import (
	"net/netip"
	"slices"
	"sort"

	"github.com/gaissmai/bart"

	"github.com/satnet-rfp/satnet-rfp/sim/route"
)

// NextHop is one static route entry for a prefix.
type NextHop struct {
	Addr   netip.Addr
	Metric int
}

// RIB mirrors the static routes pushed to every node, so forwarding state
// can be inspected even when the daemon is simulated.
type RIB struct {
	tables map[int]*bart.Table[[]NextHop]
}

// NewRIB creates an empty RIB.
func NewRIB() *RIB {
	return &RIB{tables: make(map[int]*bart.Table[[]NextHop])}
}

func (r *RIB) table(node int) *bart.Table[[]NextHop] {
	t, ok := r.tables[node]
	if !ok {
		t = new(bart.Table[[]NextHop])
		r.tables[node] = t
	}
	return t
}

// Apply folds a route update into the node's table.
func (r *RIB) Apply(node int, u route.Update) {
	switch u.Kind {
	case route.KindAdd:
		r.add(node, u.Prefix, NextHop{Addr: u.NextHop, Metric: u.Metric})
	case route.KindDelete:
		r.remove(node, u.Prefix, u.NextHop)
	case route.KindReplace:
		r.remove(node, u.Prefix, u.NextHop)
		r.add(node, u.Prefix, NextHop{Addr: u.NextHop, Metric: u.Metric})
	}
}

func (r *RIB) add(node int, p netip.Prefix, nh NextHop) {
	t := r.table(node)
	hops, _ := t.Get(p)
	hops = slices.DeleteFunc(slices.Clone(hops), func(h NextHop) bool { return h.Addr == nh.Addr })
	hops = append(hops, nh)
	sort.SliceStable(hops, func(i, j int) bool { return hops[i].Metric < hops[j].Metric })
	t.Insert(p, hops)
}

func (r *RIB) remove(node int, p netip.Prefix, addr netip.Addr) {
	t, ok := r.tables[node]
	if !ok {
		return
	}
	hops, ok := t.Get(p)
	if !ok {
		return
	}
	hops = slices.DeleteFunc(slices.Clone(hops), func(h NextHop) bool { return h.Addr == addr })
	if len(hops) == 0 {
		t.Delete(p)
		return
	}
	t.Insert(p, hops)
}

// Routes returns the next hops installed for exactly p on node, best first.
func (r *RIB) Routes(node int, p netip.Prefix) []NextHop {
	t, ok := r.tables[node]
	if !ok {
		return nil
	}
	hops, _ := t.Get(p)
	return slices.Clone(hops)
}

// Lookup returns the best next hop for dst on node (longest prefix, lowest metric).
func (r *RIB) Lookup(node int, dst netip.Addr) (NextHop, bool) {
	t, ok := r.tables[node]
	if !ok {
		return NextHop{}, false
	}
	hops, ok := t.Lookup(dst)
	if !ok || len(hops) == 0 {
		return NextHop{}, false
	}
	return hops[0], true
}

// Size returns the number of prefixes installed on node.
func (r *RIB) Size(node int) int {
	t, ok := r.tables[node]
	if !ok {
		return 0
	}
	return t.Size()
}

// Nodes returns the nodes that have received at least one route, sorted.
func (r *RIB) Nodes() []int {
	nodes := make([]int, 0, len(r.tables))
	for n := range r.tables {
		nodes = append(nodes, n)
	}
	sort.Ints(nodes)
	return nodes
}
