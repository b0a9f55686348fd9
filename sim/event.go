package sim

// Event defines the interface for all simulation events.
// Each event has a Timestamp (in seconds), a monotonically increasing EventID
// assigned by the simulator that created it, and an Execute method that
// advances simulation state when invoked.
type Event interface {
	Timestamp() float64
	EventID() uint64
	Execute(now float64)
}

// BaseEvent provides common event fields.
type BaseEvent struct {
	timestamp float64
	eventID   uint64
}

func (e *BaseEvent) Timestamp() float64 {
	return e.timestamp
}

func (e *BaseEvent) EventID() uint64 {
	return e.eventID
}

// CallbackEvent runs a plain function at its timestamp.
type CallbackEvent struct {
	BaseEvent
	fn func(now float64)
}

// NewCallbackEvent creates a CallbackEvent. Callers normally go through
// Simulator.ScheduleAt, which assigns the event ID.
func NewCallbackEvent(timestamp float64, eventID uint64, fn func(now float64)) *CallbackEvent {
	return &CallbackEvent{
		BaseEvent: BaseEvent{timestamp: timestamp, eventID: eventID},
		fn:        fn,
	}
}

// Execute invokes the wrapped callback.
func (e *CallbackEvent) Execute(now float64) {
	e.fn(now)
}
