package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.TotalEvents)
	assert.NotNil(t, s.KindCounts)
}

func TestSummarize_CountsAndExtremes(t *testing.T) {
	// GIVEN a trace with an escalation, a stale timeout and varying room usage
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})
	st.Observe(EventRecord{Clock: at, Kind: "TICK", PatientID: NoPatient, FreeRooms: 2, Waiting: 0})
	st.Observe(EventRecord{Clock: at, Kind: "TRIAGE", PatientID: 0, Before: "NEW", After: "YELLOW", FreeRooms: 2, Waiting: 3})
	st.Observe(EventRecord{Clock: at, Kind: "TIMEOUT", PatientID: 0, Before: "YELLOW", After: "RED", FreeRooms: 2, Waiting: 3})
	st.Observe(EventRecord{Clock: at, Kind: "FREE_ROOM", PatientID: NoPatient, FreeRooms: 0, Waiting: 2})
	st.Observe(EventRecord{Clock: at, Kind: "TIMEOUT", PatientID: 1, Before: "TREATING", After: "TREATING", FreeRooms: 0, Waiting: 2})

	// WHEN summarized
	s := Summarize(st)

	// THEN
	assert.Equal(t, 5, s.TotalEvents)
	assert.Equal(t, 2, s.KindCounts["TIMEOUT"])
	assert.Equal(t, 1, s.Escalations)
	assert.Equal(t, 1, s.StaleTimeout)
	assert.Equal(t, 3, s.PeakWaiting)
	assert.Equal(t, 0, s.MinFreeRooms)
}
