package rfp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTimeline_NominalExample(t *testing.T) {
	// GIVEN Tc=2.0, dT=0.5 and a failure at T0=10
	// WHEN the timeline is computed
	tl, err := ComputeTimeline(10, 2.0, 0.5)

	// THEN T1=7, T2=9.5, T3=10.5 and nothing is shifted
	require.NoError(t, err)
	assert.InDelta(t, 7.0, tl.T1, 1e-12)
	assert.InDelta(t, 9.5, tl.T2, 1e-12)
	assert.InDelta(t, 10.0, tl.T0, 1e-12)
	assert.InDelta(t, 10.5, tl.T3, 1e-12)
	assert.False(t, tl.Shifted)
}

func TestComputeTimeline_TooEarly_ShiftsForward(t *testing.T) {
	// GIVEN a failure at T0=1 whose naive T1 would be -2
	tl, err := ComputeTimeline(1, 2.0, 0.5)

	// THEN the schedule starts at 0.1 and T0 moves to 3.1
	require.NoError(t, err)
	assert.True(t, tl.Shifted)
	assert.InDelta(t, 0.1, tl.T1, 1e-12)
	assert.InDelta(t, 2.6, tl.T2, 1e-12)
	assert.InDelta(t, 3.6, tl.T3, 1e-12)
	assert.InDelta(t, 3.1, tl.T0, 1e-12)
}

func TestComputeTimeline_OrderingAndSpacing_HoldForAllParameters(t *testing.T) {
	// GIVEN a grid of non-negative parameters, including ones forcing a shift
	for _, tc := range []float64{0, 0.5, 2, 7.25} {
		for _, dt := range []float64{0, 0.1, 0.5, 3} {
			for _, t0 := range []float64{0, 0.05, 1, 2.6, 10, 123.4} {
				tl, err := ComputeTimeline(t0, tc, dt)
				require.NoError(t, err)

				// THEN T1 <= T2 <= T0 <= T3
				assert.True(t, tl.Valid(), "tc=%v dt=%v t0=%v: %+v", tc, dt, t0, tl)
				assert.GreaterOrEqual(t, tl.T1, 0.0)

				// AND the relative spacing is preserved
				assert.InDelta(t, tc+dt, tl.T2-tl.T1, 1e-9)
				assert.InDelta(t, 2*dt, tl.T3-tl.T2, 1e-9)
				assert.InDelta(t, dt, tl.T3-tl.T0, 1e-9)
			}
		}
	}
}

func TestComputeTimeline_InvalidParameters(t *testing.T) {
	tests := []struct {
		name       string
		t0, tc, dt float64
	}{
		{"negative tc", 10, -1, 0.5},
		{"negative dt", 10, 2, -0.1},
		{"NaN dt", 10, 2, math.NaN()},
		{"infinite t0", math.Inf(1), 2, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeTimeline(tt.t0, tt.tc, tt.dt)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestTimeline_Windows_AreClosedIntervals(t *testing.T) {
	tl, err := ComputeTimeline(20, 2, 0.5)
	require.NoError(t, err)

	assert.True(t, tl.InBld(17))
	assert.True(t, tl.InBld(20.5))
	assert.False(t, tl.InBld(20.6))
	assert.True(t, tl.InBfu(19.5))
	assert.False(t, tl.InBfu(19.6))
	assert.False(t, tl.InBfu(16.9))
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.ReactiveMode = ""
	assert.NoError(t, cfg.Validate())

	cfg.ReactiveMode = "guess"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.DeadInterval = -40
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.ReactivePacketLoss = -1
	assert.Error(t, cfg.Validate())
}
