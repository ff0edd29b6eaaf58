// Defines the Patient struct that models an individual patient in the simulation.
// Tracks identity, arrival time and the severity/lifecycle state.

package sim

import (
	"fmt"
	"time"
)

// Severity is the triage color of a patient, extended with the lifecycle
// states a patient passes through before and after waiting.
type Severity string

const (
	SeverityNew      Severity = "NEW"      // arrived, triage pending
	SeverityWhite    Severity = "WHITE"    // waiting, lowest urgency
	SeverityYellow   Severity = "YELLOW"   // waiting
	SeverityRed      Severity = "RED"      // waiting, highest urgency
	SeverityBlack    Severity = "BLACK"    // died while waiting (terminal)
	SeverityTreating Severity = "TREATING" // in a treatment room
	SeverityOut      Severity = "OUT"      // left the department (terminal)
)

// waitingRank orders the waiting colors. Higher = more urgent.
// Non-waiting states rank 0.
var waitingRank = map[Severity]int{
	SeverityWhite:  1,
	SeverityYellow: 2,
	SeverityRed:    3,
}

// Rank returns the waiting-room priority of s. Only WHITE, YELLOW and RED
// have a non-zero rank.
func (s Severity) Rank() int {
	return waitingRank[s]
}

// IsTerminal reports whether no further transition may leave s.
func (s Severity) IsTerminal() bool {
	return s == SeverityBlack || s == SeverityOut
}

// IsWaiting reports whether s is one of the triage colors a patient holds
// while in the waiting room.
func (s Severity) IsWaiting() bool {
	return waitingRank[s] > 0
}

// Patient models a single patient's lifecycle in the simulation.
// ID and ArrivalTime are fixed at creation; State is changed only by
// the Simulator's event handlers.
type Patient struct {
	ID          int       // Unique, assigned sequentially at arrival
	ArrivalTime time.Time // Simulation time the patient entered the department
	State       Severity  // NEW, triage color, TREATING, or a terminal state
}

// NewPatient creates a patient in state NEW.
func NewPatient(id int, arrival time.Time) *Patient {
	return &Patient{
		ID:          id,
		ArrivalTime: arrival,
		State:       SeverityNew,
	}
}

// This method returns a human-readable string representation of a Patient.
func (p Patient) String() string {
	return fmt.Sprintf("Patient: (ID: %d, ArrivalTime: %s, State: %s)", p.ID, p.ArrivalTime.Format("15:04"), p.State)
}
