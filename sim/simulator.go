// sim/simulator.go
package sim

import (
	"math"

	"github.com/sirupsen/logrus"
)

// Simulator is the default engine: it holds simulation time and the event loop.
// It implements Scheduler and Clock.
type Simulator struct {
	clock   float64
	horizon float64
	events  *EventHeap
	nextID  uint64
	hasRun  bool
	// Executed counts events processed by Run.
	Executed int
}

// NewSimulator creates a Simulator that stops once the next event lies beyond horizon.
// A non-positive horizon means no limit.
func NewSimulator(horizon float64) *Simulator {
	if horizon <= 0 {
		horizon = math.Inf(1)
	}
	return &Simulator{
		horizon: horizon,
		events:  NewEventHeap(),
	}
}

// ScheduleAt pushes a callback into the event queue. Times in the past run at
// the current clock, after everything already scheduled for that instant.
func (s *Simulator) ScheduleAt(t float64, fn func(now float64)) {
	if t < s.clock {
		logrus.Debugf("[t=%.3fs] event scheduled in the past (%.3fs), running at now", s.clock, t)
		t = s.clock
	}
	s.nextID++
	s.events.Schedule(NewCallbackEvent(t, s.nextID, fn))
}

// Now returns the current simulation time in seconds.
func (s *Simulator) Now() float64 {
	return s.clock
}

// Horizon returns the configured stop time.
func (s *Simulator) Horizon() float64 {
	return s.horizon
}

// Pending returns the number of events waiting in the queue.
func (s *Simulator) Pending() int {
	return s.events.Len()
}

// Run drains the event queue in timestamp order until it is empty or the next
// event lies beyond the horizon. Panics if called more than once.
func (s *Simulator) Run() {
	if s.hasRun {
		panic("Simulator.Run() called more than once")
	}
	s.hasRun = true
	for s.events.Len() > 0 {
		if next := s.events.Peek(); next.Timestamp() > s.horizon {
			s.clock = s.horizon
			break
		}
		ev := s.events.PopNext()
		s.clock = ev.Timestamp()
		logrus.Tracef("[t=%.3fs] executing event %d", s.clock, ev.EventID())
		ev.Execute(s.clock)
		s.Executed++
	}
	logrus.Infof("[t=%.3fs] Simulation ended (%d events executed, %d pending)", s.clock, s.Executed, s.events.Len())
}
