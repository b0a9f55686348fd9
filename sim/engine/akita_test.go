package engine

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/satnet-rfp/satnet-rfp/sim/internal/testutil"
	"github.com/satnet-rfp/satnet-rfp/sim/rfp"
)

var _ = Describe("AkitaScheduler", func() {
	var s *SerialLoop

	BeforeEach(func() {
		s = NewSerial(100)
	})

	It("should run callbacks in time order", func() {
		var order []float64
		for _, t := range []float64{3, 1, 2} {
			s.ScheduleAt(t, func(now float64) { order = append(order, now) })
		}

		Expect(s.Run()).To(Succeed())
		Expect(order).To(Equal([]float64{1, 2, 3}))
		Expect(s.Now()).To(Equal(3.0))
	})

	It("should keep scheduling order for the same instant", func() {
		var order []string
		s.ScheduleAt(5, func(float64) { order = append(order, "a") })
		s.ScheduleAt(5, func(float64) {
			order = append(order, "b")
			s.ScheduleAt(5, func(float64) { order = append(order, "d") })
		})
		s.ScheduleAt(5, func(float64) { order = append(order, "c") })

		Expect(s.Run()).To(Succeed())
		Expect(order).To(Equal([]string{"a", "b", "c", "d"}))
	})

	It("should run past callbacks at the current time", func() {
		var at float64
		s.ScheduleAt(10, func(float64) {
			s.ScheduleAt(4, func(now float64) { at = now })
		})

		Expect(s.Run()).To(Succeed())
		Expect(at).To(Equal(10.0))
	})

	It("should drop callbacks beyond the horizon", func() {
		ran := false
		s.ScheduleAt(150, func(float64) { ran = true })

		Expect(s.Run()).To(Succeed())
		Expect(ran).To(BeFalse())
		Expect(s.Dropped()).To(Equal(1))
		Expect(s.Horizon()).To(Equal(100.0))
	})

	It("should report an unbounded horizon as infinite", func() {
		Expect(NewSerial(0).Horizon()).To(Equal(math.Inf(1)))
	})

	It("should drive a predicted failure end to end", func() {
		d := &testutil.RecordingDaemon{}
		topo := newTopology(25, [2]int{2, 5})
		c, err := rfp.New(rfp.DefaultConfig(), rfp.Deps{
			Scheduler: s, Clock: s, Topology: topo, Daemon: d,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(c.RegisterLink(2, 5)).To(Succeed())
		_, ok := c.RegisterPredictedFailure(1, 2, 5, 20)
		Expect(ok).To(BeTrue())

		var forcedAtT1, batchingAtT1 bool
		s.ScheduleAt(17, func(float64) {
			forcedAtT1 = c.LinkStates().IsForcedDown(2, 5)
			batchingAtT1 = c.Batcher().IsBfuActive()
		})
		s.ScheduleAt(20, func(now float64) { c.OnObservedLinkChange(2, 5, false, now) })

		Expect(s.Run()).To(Succeed())
		Expect(forcedAtT1).To(BeTrue())
		Expect(batchingAtT1).To(BeTrue())
		Expect(c.LinkStates().IsForcedDown(2, 5)).To(BeFalse())
		Expect(c.GetEffectiveLinkState(2, 5)).To(BeFalse())
		Expect(c.Summary().RFP.Events).To(Equal(1))
		Expect(c.Summary().Standard.Events).To(Equal(0))
	})
})
