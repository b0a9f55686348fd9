package trace

import (
	"testing"
)

func TestSimulationTrace_RecordAction_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for timeline actions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelTimeline})

	// WHEN a T1 action is recorded
	st.RecordAction(ActionRecord{EventID: 1, Link: "2-5", Phase: PhaseT1, Clock: 17})

	// THEN the trace contains one action record with correct data
	if len(st.Actions) != 1 {
		t.Fatalf("expected 1 action, got %d", len(st.Actions))
	}
	if st.Actions[0].Link != "2-5" {
		t.Errorf("expected link 2-5, got %s", st.Actions[0].Link)
	}
	if st.Actions[0].Phase != PhaseT1 {
		t.Errorf("expected phase T1, got %s", st.Actions[0].Phase)
	}
}

func TestSimulationTrace_LinkChanges_OnlyAtDetailedLevel(t *testing.T) {
	// GIVEN a timeline-level trace and a detailed-level trace
	timeline := NewSimulationTrace(TraceConfig{Level: TraceLevelTimeline})
	detailed := NewSimulationTrace(TraceConfig{Level: TraceLevelDetailed})

	// WHEN the same link change is recorded on both
	rec := LinkChangeRecord{Link: "2-5", Clock: 19, IsUp: false, Outcome: "masked_forced"}
	timeline.RecordLinkChange(rec)
	detailed.RecordLinkChange(rec)

	// THEN only the detailed trace keeps it
	if len(timeline.LinkChanges) != 0 {
		t.Errorf("expected no link changes at timeline level, got %d", len(timeline.LinkChanges))
	}
	if len(detailed.LinkChanges) != 1 {
		t.Errorf("expected 1 link change at detailed level, got %d", len(detailed.LinkChanges))
	}
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	// GIVEN a trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelTimeline})

	// WHEN the four actions of two events are interleaved
	st.RecordAction(ActionRecord{EventID: 1, Phase: PhaseT1, Clock: 17})
	st.RecordAction(ActionRecord{EventID: 2, Phase: PhaseT1, Clock: 18})
	st.RecordAction(ActionRecord{EventID: 1, Phase: PhaseT2, Clock: 19.5})
	st.RecordAction(ActionRecord{EventID: 1, Phase: PhaseT0, Clock: 20})
	st.RecordAction(ActionRecord{EventID: 1, Phase: PhaseT3, Clock: 20.5})

	// THEN per-event order is preserved
	got := st.ActionsFor(1)
	want := []Phase{PhaseT1, PhaseT2, PhaseT0, PhaseT3}
	if len(got) != len(want) {
		t.Fatalf("expected %d actions for event 1, got %d", len(want), len(got))
	}
	for i, p := range want {
		if got[i].Phase != p {
			t.Errorf("action %d: expected %s, got %s", i, p, got[i].Phase)
		}
	}
}

func TestNewSimulationTrace_NoneLevel_NilAndSafe(t *testing.T) {
	// GIVEN tracing disabled
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelNone})

	// WHEN records are added
	st.RecordAction(ActionRecord{EventID: 1})
	st.RecordLinkChange(LinkChangeRecord{Link: "0-1"})
	st.RecordFlush(FlushRecord{Flushed: 3})

	// THEN nothing panics and no trace exists
	if st != nil {
		t.Fatal("expected nil trace for level none")
	}
	if st.ActionsFor(1) != nil {
		t.Error("expected nil actions from nil trace")
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"", true},
		{"none", true},
		{"timeline", true},
		{"detailed", true},
		{"decisions", false},
		{"verbose", false},
	}
	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.valid {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
		}
	}
}
