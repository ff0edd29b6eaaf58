package sim

import "time"

// EventKind names the transition an event triggers.
type EventKind string

const (
	EventKindArrival  EventKind = "ARRIVAL"
	EventKindTriage   EventKind = "TRIAGE"
	EventKindTimeout  EventKind = "TIMEOUT"
	EventKindFreeRoom EventKind = "FREE_ROOM"
	EventKindTreated  EventKind = "TREATED"
	EventKindTick     EventKind = "TICK"
)

// Event defines the interface for all simulation events.
// Each event has a Timestamp, a Kind, a scheduling sequence number used
// to break timestamp ties, and an Execute method that advances simulation
// state when invoked. The concrete types below are the only implementations.
type Event interface {
	Timestamp() time.Time
	Kind() EventKind
	Seq() uint64
	Execute(*Simulator)
}

// baseEvent provides the fields shared by every event.
type baseEvent struct {
	time time.Time
	seq  uint64
}

func (e *baseEvent) Timestamp() time.Time { return e.time }
func (e *baseEvent) Seq() uint64          { return e.seq }

// ArrivalEvent represents a patient entering the department.
type ArrivalEvent struct {
	baseEvent
	Patient *Patient
}

func (e *ArrivalEvent) Kind() EventKind { return EventKindArrival }

// Execute schedules the patient's triage.
func (e *ArrivalEvent) Execute(sim *Simulator) {
	sim.handleArrival(e)
}

// TriageEvent represents the end of a patient's triage.
type TriageEvent struct {
	baseEvent
	Patient *Patient
}

func (e *TriageEvent) Kind() EventKind { return EventKindTriage }

// Execute assigns a color and moves the patient into the waiting room.
func (e *TriageEvent) Execute(sim *Simulator) {
	sim.handleTriage(e)
}

// TimeoutEvent fires when a patient's waiting limit expires. It may be
// stale by the time it is popped; the handler ignores it then.
type TimeoutEvent struct {
	baseEvent
	Patient *Patient
}

func (e *TimeoutEvent) Kind() EventKind { return EventKindTimeout }

// Execute abandons, escalates or loses the patient depending on its color.
func (e *TimeoutEvent) Execute(sim *Simulator) {
	sim.handleTimeout(e)
}

// FreeRoomEvent is an opportunity to admit the highest-priority waiting
// patient into a free treatment room.
type FreeRoomEvent struct {
	baseEvent
}

func (e *FreeRoomEvent) Kind() EventKind { return EventKindFreeRoom }

// Execute admits a patient if both a room and a patient are available.
func (e *FreeRoomEvent) Execute(sim *Simulator) {
	sim.handleFreeRoom(e)
}

// TreatedEvent represents the end of a patient's treatment.
type TreatedEvent struct {
	baseEvent
	Patient *Patient
}

func (e *TreatedEvent) Kind() EventKind { return EventKindTreated }

// Execute discharges the patient and releases the room.
func (e *TreatedEvent) Execute(sim *Simulator) {
	sim.handleTreated(e)
}

// TickEvent is the periodic re-check that keeps rooms from idling while
// patients wait.
type TickEvent struct {
	baseEvent
}

func (e *TickEvent) Kind() EventKind { return EventKindTick }

// Execute triggers a room assignment if possible and schedules the next tick.
func (e *TickEvent) Execute(sim *Simulator) {
	sim.handleTick(e)
}

// eventPatient returns the patient an event concerns, or nil for
// FREE_ROOM and TICK.
func eventPatient(ev Event) *Patient {
	switch e := ev.(type) {
	case *ArrivalEvent:
		return e.Patient
	case *TriageEvent:
		return e.Patient
	case *TimeoutEvent:
		return e.Patient
	case *TreatedEvent:
		return e.Patient
	default:
		return nil
	}
}
