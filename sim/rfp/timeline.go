package rfp

import "math"

// shiftedStart is where T1 lands when the naive timeline would start before zero.
const shiftedStart = 0.1

// Timeline is the four-point schedule of one predicted failure.
type Timeline struct {
	T0 float64 // physical failure
	T1 float64 // BLD and BFU start
	T2 float64 // BFU end, forwarding tables synchronized
	T3 float64 // BLD end
	// Shifted is set when T1 would have been negative and the whole schedule
	// was moved forward; T0 is then later than requested.
	Shifted bool
}

// ComputeTimeline derives the schedule for a failure predicted at t0 with
// convergence time tc and safety margin dt.
func ComputeTimeline(t0, tc, dt float64) (Timeline, error) {
	if err := nonNegative("convergence time", tc); err != nil {
		return Timeline{}, err
	}
	if err := nonNegative("safety margin", dt); err != nil {
		return Timeline{}, err
	}
	if math.IsNaN(t0) || math.IsInf(t0, 0) {
		return Timeline{}, invalid("failure time", "must be finite, got %v", t0)
	}

	tl := Timeline{
		T0: t0,
		T1: t0 - tc - 2*dt,
		T2: t0 - dt,
		T3: t0 + dt,
	}
	if tl.T1 < 0 {
		tl.T1 = shiftedStart
		tl.T2 = tl.T1 + tc + dt
		tl.T3 = tl.T2 + 2*dt
		tl.T0 = tl.T3 - dt
		tl.Shifted = true
	}
	if !tl.Valid() {
		return Timeline{}, invalid("timeline", "T1=%v T2=%v T0=%v T3=%v out of order", tl.T1, tl.T2, tl.T0, tl.T3)
	}
	return tl, nil
}

// Valid reports whether T1 <= T2 <= T0 <= T3.
func (tl Timeline) Valid() bool {
	return tl.T1 <= tl.T2 && tl.T2 <= tl.T0 && tl.T0 <= tl.T3
}

// InBld reports whether t lies in the blind link detection window [T1, T3].
func (tl Timeline) InBld(t float64) bool {
	return t >= tl.T1 && t <= tl.T3
}

// InBfu reports whether t lies in the blind forwarding update window [T1, T2].
func (tl Timeline) InBfu(t float64) bool {
	return t >= tl.T1 && t <= tl.T2
}
