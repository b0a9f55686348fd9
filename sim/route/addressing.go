package route

import (
	"fmt"
	"net/netip"
)

// MaxNode is the highest node index the addressing plan can express.
const MaxNode = 255

// Addressable reports whether node n fits the 10.n.0.0/16 plan.
func Addressable(n int) bool {
	return n >= 0 && n <= MaxNode
}

// NodePrefix returns the destination prefix owned by node n (10.n.0.0/16).
func NodePrefix(n int) (netip.Prefix, error) {
	if !Addressable(n) {
		return netip.Prefix{}, fmt.Errorf("node %d outside addressing plan [0,%d]", n, MaxNode)
	}
	return netip.PrefixFrom(netip.AddrFrom4([4]byte{10, byte(n), 0, 0}), 16), nil
}

// NodeNextHop returns the next-hop address used to reach node n (10.0.n.1).
func NodeNextHop(n int) (netip.Addr, error) {
	if !Addressable(n) {
		return netip.Addr{}, fmt.Errorf("node %d outside addressing plan [0,%d]", n, MaxNode)
	}
	return netip.AddrFrom4([4]byte{10, 0, byte(n), 1}), nil
}

// InterfaceName is the name of the interface facing peer.
func InterfaceName(peer int) string {
	return fmt.Sprintf("sat%d", peer)
}
