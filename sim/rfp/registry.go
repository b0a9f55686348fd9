package rfp

import (
	"github.com/sirupsen/logrus"

	"github.com/satnet-rfp/satnet-rfp/sim"
)

// PredictedEvent is one anticipated link failure. Only Active changes after
// registration.
type PredictedEvent struct {
	ID     int
	NodeA  int
	NodeB  int
	Active bool
	Timeline
}

// Link returns the canonical key of the failing link.
func (e PredictedEvent) Link() sim.LinkKey {
	return sim.NewLinkKey(e.NodeA, e.NodeB)
}

// Registry is the topology management module (TMM): the history of every
// predicted failure, in registration order. Events are never removed.
type Registry struct {
	convergenceTime float64
	safetyMargin    float64
	events          []*PredictedEvent
	byID            map[int]*PredictedEvent
}

// NewRegistry creates an empty registry computing timelines with tc and dt.
func NewRegistry(tc, dt float64) (*Registry, error) {
	if err := nonNegative("convergence time", tc); err != nil {
		return nil, err
	}
	if err := nonNegative("safety margin", dt); err != nil {
		return nil, err
	}
	return &Registry{
		convergenceTime: tc,
		safetyMargin:    dt,
		byID:            make(map[int]*PredictedEvent),
	}, nil
}

// AddPredictedEvent registers a failure of the link a-b at t0. Only the ids
// are checked here; whether the nodes exist is left to the caller.
func (r *Registry) AddPredictedEvent(id, a, b int, t0 float64) (PredictedEvent, error) {
	if a == b {
		return PredictedEvent{}, invalid("endpoints", "event %d links node %d to itself", id, a)
	}
	if _, dup := r.byID[id]; dup {
		return PredictedEvent{}, invalid("event id", "event %d already registered", id)
	}
	tl, err := ComputeTimeline(t0, r.convergenceTime, r.safetyMargin)
	if err != nil {
		return PredictedEvent{}, err
	}
	if tl.Shifted {
		logrus.Warnf("event %d: T0=%.3fs too close to start, timeline shifted (T0 now %.3fs)", id, t0, tl.T0)
	}
	ev := &PredictedEvent{ID: id, NodeA: a, NodeB: b, Active: true, Timeline: tl}
	r.events = append(r.events, ev)
	r.byID[id] = ev
	return *ev, nil
}

// Get returns the event registered under id.
func (r *Registry) Get(id int) (PredictedEvent, bool) {
	ev, ok := r.byID[id]
	if !ok {
		return PredictedEvent{}, false
	}
	return *ev, true
}

// Deactivate marks an event as finished. It reports whether the event was
// active.
func (r *Registry) Deactivate(id int) bool {
	ev, ok := r.byID[id]
	if !ok || !ev.Active {
		return false
	}
	ev.Active = false
	return true
}

// IsInBldWindow reports whether an active event on the link a-b covers t.
func (r *Registry) IsInBldWindow(a, b int, t float64) bool {
	return r.inBld(nil, sim.NewLinkKey(a, b), t)
}

// IsInBldWindowExcept is IsInBldWindow ignoring the event registered under id.
func (r *Registry) IsInBldWindowExcept(id, a, b int, t float64) bool {
	return r.inBld(&id, sim.NewLinkKey(a, b), t)
}

// IsInBfuWindow reports whether any active event is batching at t.
func (r *Registry) IsInBfuWindow(t float64) bool {
	return r.inBfu(nil, t)
}

// IsInBfuWindowExcept is IsInBfuWindow ignoring the event registered under id.
func (r *Registry) IsInBfuWindowExcept(id int, t float64) bool {
	return r.inBfu(&id, t)
}

func (r *Registry) inBld(skip *int, key sim.LinkKey, t float64) bool {
	for _, ev := range r.events {
		if ev.Active && !skipped(skip, ev) && ev.Link() == key && ev.InBld(t) {
			return true
		}
	}
	return false
}

func (r *Registry) inBfu(skip *int, t float64) bool {
	for _, ev := range r.events {
		if ev.Active && !skipped(skip, ev) && ev.InBfu(t) {
			return true
		}
	}
	return false
}

func skipped(skip *int, ev *PredictedEvent) bool {
	return skip != nil && *skip == ev.ID
}

// ActiveEvents returns the active events whose BLD window covers t, in
// registration order. For reporting only.
func (r *Registry) ActiveEvents(t float64) []PredictedEvent {
	out := make([]PredictedEvent, 0)
	for _, ev := range r.events {
		if ev.Active && ev.InBld(t) {
			out = append(out, *ev)
		}
	}
	return out
}

// ListEvents returns every registered event in registration order.
func (r *Registry) ListEvents() []PredictedEvent {
	out := make([]PredictedEvent, len(r.events))
	for i, ev := range r.events {
		out[i] = *ev
	}
	return out
}

// Len returns the number of registered events.
func (r *Registry) Len() int {
	return len(r.events)
}
