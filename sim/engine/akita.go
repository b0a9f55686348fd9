// Package engine runs the RFP controller on top of the akita discrete-event
// engine instead of the built-in heap simulator.
package engine

import (
	"math"

	"github.com/sirupsen/logrus"
	"gitlab.com/akita/akita/v3/sim"

	rfpsim "github.com/satnet-rfp/satnet-rfp/sim"
)

var (
	_ rfpsim.Scheduler = (*AkitaScheduler)(nil)
	_ rfpsim.Clock     = (*AkitaScheduler)(nil)
	_ sim.Handler      = (*AkitaScheduler)(nil)
)

type callbackEvent struct {
	time    sim.VTimeInSec
	handler sim.Handler
}

func (e callbackEvent) Time() sim.VTimeInSec {
	return e.time
}

func (e callbackEvent) Handler() sim.Handler {
	return e.handler
}

func (e callbackEvent) IsSecondary() bool {
	return false
}

type bucket struct {
	fns []func(now float64)
}

// An AkitaScheduler adapts an akita EventScheduler and TimeTeller to the
// sim.Scheduler and sim.Clock capabilities. One akita event is scheduled per
// distinct instant; the callbacks of that instant run in scheduling order.
type AkitaScheduler struct {
	sim.EventScheduler
	sim.TimeTeller

	horizon float64
	buckets map[sim.VTimeInSec]*bucket
	dropped int
}

// NewAkitaScheduler creates a scheduler on es and tt. Callbacks scheduled
// after horizon are dropped; a non-positive horizon means no limit.
func NewAkitaScheduler(es sim.EventScheduler, tt sim.TimeTeller, horizon float64) *AkitaScheduler {
	return &AkitaScheduler{
		EventScheduler: es,
		TimeTeller:     tt,
		horizon:        horizon,
		buckets:        make(map[sim.VTimeInSec]*bucket),
	}
}

// ScheduleAt runs fn once the engine reaches t. Times in the past run at the
// current time.
func (s *AkitaScheduler) ScheduleAt(t float64, fn func(now float64)) {
	now := s.Now()
	if t < now {
		t = now
	}
	if s.horizon > 0 && t > s.horizon {
		s.dropped++
		logrus.Debugf("[t=%.3fs] callback at %.3fs beyond horizon %.3fs dropped", now, t, s.horizon)
		return
	}
	vt := sim.VTimeInSec(t)
	if b, ok := s.buckets[vt]; ok {
		b.fns = append(b.fns, fn)
		return
	}
	s.buckets[vt] = &bucket{fns: []func(float64){fn}}
	s.Schedule(callbackEvent{time: vt, handler: s})
}

// Now returns the engine time in seconds.
func (s *AkitaScheduler) Now() float64 {
	return float64(s.CurrentTime())
}

// Handle drains the callbacks of the event's instant, including the ones
// scheduled for that same instant while draining.
func (s *AkitaScheduler) Handle(e sim.Event) error {
	b, ok := s.buckets[e.Time()]
	if !ok {
		return nil
	}
	now := float64(e.Time())
	for i := 0; i < len(b.fns); i++ {
		b.fns[i](now)
	}
	delete(s.buckets, e.Time())
	return nil
}

// Horizon returns the last instant callbacks may run at; +Inf when unbounded.
func (s *AkitaScheduler) Horizon() float64 {
	if s.horizon <= 0 {
		return math.Inf(1)
	}
	return s.horizon
}

// Dropped returns the number of callbacks discarded beyond the horizon.
func (s *AkitaScheduler) Dropped() int {
	return s.dropped
}

// SerialLoop is an AkitaScheduler bound to its own akita serial engine.
type SerialLoop struct {
	*AkitaScheduler
	engine sim.Engine
}

// NewSerial creates an akita serial engine and a scheduler on top of it.
func NewSerial(horizon float64) *SerialLoop {
	engine := sim.NewSerialEngine()
	return &SerialLoop{
		AkitaScheduler: NewAkitaScheduler(engine, engine, horizon),
		engine:         engine,
	}
}

// Run processes events until none are left.
func (s *SerialLoop) Run() error {
	err := s.engine.Run()
	logrus.Infof("[t=%.3fs] Simulation ended (akita engine, %d callbacks dropped)", s.Now(), s.dropped)
	return err
}
