package sim

import (
	"fmt"
	"sort"
)

// StaticTopology is a fixed set of nodes and the links between them.
type StaticTopology struct {
	nodes int
	links map[LinkKey]struct{}
}

// NewStaticTopology creates a topology with nodes 0..nodes-1 and the given links.
// Returns an error for links with out-of-range or identical endpoints.
func NewStaticTopology(nodes int, links [][2]int) (*StaticTopology, error) {
	if nodes < 0 {
		return nil, fmt.Errorf("node count must be >= 0, got %d", nodes)
	}
	t := &StaticTopology{nodes: nodes, links: make(map[LinkKey]struct{}, len(links))}
	for _, l := range links {
		if !t.IsValidIndex(l[0]) || !t.IsValidIndex(l[1]) {
			return nil, fmt.Errorf("link %d-%d: endpoint out of range [0,%d)", l[0], l[1], nodes)
		}
		if l[0] == l[1] {
			return nil, fmt.Errorf("link %d-%d: identical endpoints", l[0], l[1])
		}
		t.links[NewLinkKey(l[0], l[1])] = struct{}{}
	}
	return t, nil
}

// NodeCount returns the number of nodes.
func (t *StaticTopology) NodeCount() int {
	return t.nodes
}

// IsValidIndex reports whether i names a node of the topology.
func (t *StaticTopology) IsValidIndex(i int) bool {
	return i >= 0 && i < t.nodes
}

// HasLink reports whether a and b are directly connected.
func (t *StaticTopology) HasLink(a, b int) bool {
	_, ok := t.links[NewLinkKey(a, b)]
	return ok
}

// Links returns all links sorted by endpoints.
func (t *StaticTopology) Links() []LinkKey {
	keys := make([]LinkKey, 0, len(t.links))
	for k := range t.links {
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
