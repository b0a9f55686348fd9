// Package trace records the decisions taken by the RFP controller: timeline
// actions, link state changes and BFU flushes.
// This package has no dependencies on sim/ or sim/rfp/; it stores pure data types.
package trace

// Phase names a step of a predicted-event timeline.
type Phase string

const (
	PhaseT1 Phase = "T1"
	PhaseT2 Phase = "T2"
	PhaseT0 Phase = "T0"
	PhaseT3 Phase = "T3"
)

// ActionRecord captures one timeline action of a predicted event.
type ActionRecord struct {
	EventID int
	Link    string
	Phase   Phase
	Clock   float64
	Skipped bool
	Reason  string
}

// LinkChangeRecord captures one observed physical link change and what LDM made of it.
type LinkChangeRecord struct {
	Link        string
	Clock       float64
	IsUp        bool
	Outcome     string // "none", "masked_forced", "masked_window" or "reported"
	Unpredicted bool
}

// FlushRecord captures the end of a BFU period.
type FlushRecord struct {
	Clock       float64
	Flushed     int
	Reconverged bool
	Restarted   bool // another event's BFU window kept batching on
}
