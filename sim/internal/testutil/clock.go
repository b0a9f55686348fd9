package testutil

// ManualClock is a sim.Clock set by hand.
type ManualClock struct {
	T float64
}

// Now returns the current time.
func (c *ManualClock) Now() float64 { return c.T }

// Set moves the clock to t.
func (c *ManualClock) Set(t float64) { c.T = t }
