package rfp

import "math"

const (
	// DefaultConvergenceTime is Tc, the time OSPF needs to converge once a link is reported down.
	DefaultConvergenceTime = 2.0
	// DefaultSafetyMargin is dT, the slack around T0.
	DefaultSafetyMargin = 0.5
	// DefaultDeadInterval is the OSPF dead interval used by the reactive baseline.
	DefaultDeadInterval = 40.0
	// DefaultSPFDelay is the nominal SPF run time used by the reactive baseline.
	DefaultSPFDelay = 0.1
	// DefaultReactivePacketLoss is the packet loss charged to an unpredicted failure.
	DefaultReactivePacketLoss = 15
)

const (
	// MaxAltRouteNodes bounds the node indices scanned for alternate relays.
	MaxAltRouteNodes = 10
	// MaxReconvergeNodes bounds the nodes reconverged after a flush.
	MaxReconvergeNodes = 20
	// AltRouteMetric is the metric of the precautionary routes staged at T1.
	AltRouteMetric = 10
	// DetourMetric is the metric of the detour in a link-down route delta.
	DetourMetric = 5
	// DirectMetric is the metric of the direct route in a link-up route delta.
	DirectMetric = 1
)

// ReactiveMode selects how unpredicted failures are measured.
type ReactiveMode string

const (
	// ReactiveEstimate charges the dead interval plus SPF delay as a fixed estimate.
	ReactiveEstimate ReactiveMode = "estimate"
	// ReactiveTimeline schedules detection and convergence milestones on the scheduler.
	ReactiveTimeline ReactiveMode = "timeline"
)

// IsValidReactiveMode returns true if mode is a recognized reactive mode.
func IsValidReactiveMode(mode string) bool {
	switch ReactiveMode(mode) {
	case ReactiveEstimate, ReactiveTimeline, "":
		return true
	}
	return false
}

// Config holds the RFP protocol parameters. Times are in seconds.
type Config struct {
	ConvergenceTime    float64      `yaml:"convergence_time"`
	SafetyMargin       float64      `yaml:"safety_margin"`
	DeadInterval       float64      `yaml:"dead_interval"`
	SPFDelay           float64      `yaml:"spf_delay"`
	ReactivePacketLoss int64        `yaml:"reactive_packet_loss"`
	ReactiveMode       ReactiveMode `yaml:"reactive_mode"`
}

// DefaultConfig returns the parameters of the reference deployment.
func DefaultConfig() Config {
	return Config{
		ConvergenceTime:    DefaultConvergenceTime,
		SafetyMargin:       DefaultSafetyMargin,
		DeadInterval:       DefaultDeadInterval,
		SPFDelay:           DefaultSPFDelay,
		ReactivePacketLoss: DefaultReactivePacketLoss,
		ReactiveMode:       ReactiveEstimate,
	}
}

// Validate checks that every parameter is usable. An empty ReactiveMode is
// accepted and treated as ReactiveEstimate.
func (c Config) Validate() error {
	if err := nonNegative("convergence time", c.ConvergenceTime); err != nil {
		return err
	}
	if err := nonNegative("safety margin", c.SafetyMargin); err != nil {
		return err
	}
	if err := nonNegative("dead interval", c.DeadInterval); err != nil {
		return err
	}
	if err := nonNegative("spf delay", c.SPFDelay); err != nil {
		return err
	}
	if c.ReactivePacketLoss < 0 {
		return invalid("reactive packet loss", "must be >= 0, got %d", c.ReactivePacketLoss)
	}
	if !IsValidReactiveMode(string(c.ReactiveMode)) {
		return invalid("reactive mode", "unknown mode %q (want estimate or timeline)", c.ReactiveMode)
	}
	return nil
}

func nonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return invalid(field, "must be a finite value >= 0, got %v", v)
	}
	return nil
}
