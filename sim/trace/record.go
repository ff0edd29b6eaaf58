// Package trace provides per-event trace recording for simulation runs.
// This package has no dependencies on sim/: it stores pure data types, so
// observers can never reach back into engine state.
package trace

import (
	"fmt"
	"time"
)

// NoPatient is the PatientID of events that do not concern a patient
// (FREE_ROOM, TICK).
const NoPatient = -1

// EventRecord captures one dispatched event and the state it left behind.
type EventRecord struct {
	Clock     time.Time
	Kind      string
	PatientID int
	Before    string // patient state before the handler ran ("" when NoPatient)
	After     string // patient state after the handler ran ("" when NoPatient)
	FreeRooms int
	Waiting   int // waiting-room size after the handler ran
}

// Changed reports whether the handler moved the patient to another state.
func (r EventRecord) Changed() bool {
	return r.Before != r.After
}

func (r EventRecord) String() string {
	if r.PatientID == NoPatient {
		return fmt.Sprintf("[%s] %-9s free=%d waiting=%d", r.Clock.Format("15:04"), r.Kind, r.FreeRooms, r.Waiting)
	}
	return fmt.Sprintf("[%s] %-9s patient=%d %s->%s free=%d waiting=%d",
		r.Clock.Format("15:04"), r.Kind, r.PatientID, r.Before, r.After, r.FreeRooms, r.Waiting)
}
