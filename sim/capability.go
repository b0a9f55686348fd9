package sim

// Scheduler invokes a callback once simulation time reaches a given instant.
// Callbacks for the same instant run in scheduling order.
type Scheduler interface {
	ScheduleAt(t float64, fn func(now float64))
}

// Clock reports the current simulation time in seconds.
type Clock interface {
	Now() float64
}

// Topology is the node lookup capability used to validate endpoints.
type Topology interface {
	NodeCount() int
	IsValidIndex(i int) bool
}
