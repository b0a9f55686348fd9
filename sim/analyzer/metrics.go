// Package analyzer measures link-down events and compares the RFP regime
// with reactive OSPF.
package analyzer

// Metrics aggregates the link-down events of one regime. Times are in
// seconds. Totals only ever grow.
type Metrics struct {
	Events         int
	OutageTotal    float64
	DetectionTotal float64
	PacketsLost    int64
	Modifications  int
}

// AvgOutage returns the mean outage, 0 with no events.
func (m Metrics) AvgOutage() float64 {
	if m.Events == 0 {
		return 0
	}
	return m.OutageTotal / float64(m.Events)
}

// AvgDetection returns the mean detection delay, 0 with no events.
func (m Metrics) AvgDetection() float64 {
	if m.Events == 0 {
		return 0
	}
	return m.DetectionTotal / float64(m.Events)
}

func (m *Metrics) add(outage float64, packetsLost int64, detection float64, mods int) {
	m.Events++
	m.OutageTotal += outage
	m.DetectionTotal += detection
	m.PacketsLost += packetsLost
	m.Modifications += mods
}

// Summary holds both regimes and the packet counters.
type Summary struct {
	Standard        Metrics
	RFP             Metrics
	PacketsSent     int64
	PacketsReceived int64
}

// improvementEpsilon (ms) keeps the improvement factor finite when RFP outage is 0.
const improvementEpsilon = 0.001

// OutageImprovement returns avgStandard / (avgRFP + 0.001), both in ms, or 0
// without a standard baseline.
func (s Summary) OutageImprovement() float64 {
	return improvement(s.Standard.AvgOutage(), s.RFP.AvgOutage())
}

// DetectionImprovement is OutageImprovement for detection delays.
func (s Summary) DetectionImprovement() float64 {
	return improvement(s.Standard.AvgDetection(), s.RFP.AvgDetection())
}

func improvement(standard, rfp float64) float64 {
	if standard <= 0 {
		return 0
	}
	return ms(standard) / (ms(rfp) + improvementEpsilon)
}

// TotalModifications sums the routing daemon modifications of both regimes.
func (s Summary) TotalModifications() int {
	return s.Standard.Modifications + s.RFP.Modifications
}

func ms(seconds float64) float64 {
	return seconds * 1000
}
