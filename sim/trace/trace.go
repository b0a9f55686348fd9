package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelTimeline captures timeline actions and flushes.
	TraceLevelTimeline TraceLevel = "timeline"
	// TraceLevelDetailed also captures every observed link change.
	TraceLevelDetailed TraceLevel = "detailed"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:     true,
	TraceLevelTimeline: true,
	TraceLevelDetailed: true,
	"":                 true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects decision records during a run. All Record methods
// are safe on a nil trace.
type SimulationTrace struct {
	Config      TraceConfig
	Actions     []ActionRecord
	LinkChanges []LinkChangeRecord
	Flushes     []FlushRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording, or nil
// when the level disables tracing.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	if config.Level == TraceLevelNone || config.Level == "" {
		return nil
	}
	return &SimulationTrace{
		Config:      config,
		Actions:     make([]ActionRecord, 0),
		LinkChanges: make([]LinkChangeRecord, 0),
		Flushes:     make([]FlushRecord, 0),
	}
}

// RecordAction appends a timeline action record.
func (st *SimulationTrace) RecordAction(record ActionRecord) {
	if st == nil {
		return
	}
	st.Actions = append(st.Actions, record)
}

// RecordLinkChange appends a link change record at the detailed level.
func (st *SimulationTrace) RecordLinkChange(record LinkChangeRecord) {
	if st == nil || st.Config.Level != TraceLevelDetailed {
		return
	}
	st.LinkChanges = append(st.LinkChanges, record)
}

// RecordFlush appends a flush record.
func (st *SimulationTrace) RecordFlush(record FlushRecord) {
	if st == nil {
		return
	}
	st.Flushes = append(st.Flushes, record)
}

// ActionsFor returns the actions of one predicted event, in order.
func (st *SimulationTrace) ActionsFor(eventID int) []ActionRecord {
	if st == nil {
		return nil
	}
	var out []ActionRecord
	for _, a := range st.Actions {
		if a.EventID == eventID {
			out = append(out, a)
		}
	}
	return out
}
