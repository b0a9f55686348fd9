package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalActions      int
	SkippedActions    int
	ActionsByPhase    map[Phase]int
	LinkChanges       int
	MaskedChanges     int
	PropagatedChanges int
	Unpredicted       int
	Flushes           int
	FlushedUpdates    int
	MaxFlush          int
	MeanFlush         float64
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ActionsByPhase: make(map[Phase]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalActions = len(st.Actions)
	for _, a := range st.Actions {
		summary.ActionsByPhase[a.Phase]++
		if a.Skipped {
			summary.SkippedActions++
		}
	}

	summary.LinkChanges = len(st.LinkChanges)
	for _, c := range st.LinkChanges {
		switch c.Outcome {
		case "masked_forced", "masked_window":
			summary.MaskedChanges++
		case "reported":
			summary.PropagatedChanges++
		}
		if c.Unpredicted {
			summary.Unpredicted++
		}
	}

	summary.Flushes = len(st.Flushes)
	for _, f := range st.Flushes {
		summary.FlushedUpdates += f.Flushed
		if f.Flushed > summary.MaxFlush {
			summary.MaxFlush = f.Flushed
		}
	}
	if summary.Flushes > 0 {
		summary.MeanFlush = float64(summary.FlushedUpdates) / float64(summary.Flushes)
	}

	return summary
}
