package engine

import (
	. "github.com/onsi/gomega"

	"github.com/satnet-rfp/satnet-rfp/sim"
)

func newTopology(nodes int, links ...[2]int) *sim.StaticTopology {
	topo, err := sim.NewStaticTopology(nodes, links)
	Expect(err).NotTo(HaveOccurred())
	return topo
}
