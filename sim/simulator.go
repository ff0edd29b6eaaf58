// sim/simulator.go
package sim

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/edsim/edsim/sim/trace"
)

// Observer is notified after every dispatched event. It receives a value
// copy of what happened and has no handle on engine state.
type Observer interface {
	Observe(trace.EventRecord)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(trace.EventRecord)

func (f ObserverFunc) Observe(r trace.EventRecord) { f(r) }

// Option customizes a Simulator at construction.
type Option func(*Simulator)

// WithAllocator replaces the default round-robin triage policy.
func WithAllocator(a ColorAllocator) Option {
	return func(s *Simulator) {
		s.allocator = a
	}
}

// WithObserver subscribes o to every dispatched event.
func WithObserver(o Observer) Option {
	return func(s *Simulator) {
		s.observers = append(s.observers, o)
	}
}

// Simulator is the core object that holds simulation time, department
// state, and the event loop. It is single-threaded: each event's handler
// runs to completion before the next event is popped.
type Simulator struct {
	Clock  time.Time
	Config Config
	// Metrics holds the output counters; read it after Run returns.
	Metrics *Metrics
	// Patients lists every generated patient in ID order.
	Patients  []*Patient
	StepCount int

	queue        *EventQueue
	waitingRoom  *WaitingRoom
	freeRooms    int
	allocator    ColorAllocator
	tickSchedule cron.Schedule
	observers    []Observer
	nextSeq      uint64
}

// NewSimulator validates cfg and returns a simulator seeded with the first
// TICK and all ARRIVAL events.
func NewSimulator(cfg Config, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulator{
		Clock:        cfg.Start,
		Config:       cfg,
		Metrics:      NewMetrics(),
		queue:        NewEventQueue(),
		waitingRoom:  NewWaitingRoom(),
		freeRooms:    cfg.TotalRooms,
		allocator:    NewRoundRobinAllocator(),
		tickSchedule: cron.Every(cfg.tickInterval()),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.allocator == nil {
		return nil, fmt.Errorf("%w: allocator must not be nil", ErrInvalidConfig)
	}
	s.seed()
	return s, nil
}

// seed injects the first TICK and the arrivals at Start, Start+Interarrival, ...
// for up to NumPatients patients while the arrival time is before End.
func (sim *Simulator) seed() {
	cfg := sim.Config
	sim.Schedule(&TickEvent{baseEvent: sim.newBase(cfg.Start)})

	for t := cfg.Start; t.Before(cfg.End) && len(sim.Patients) < cfg.NumPatients; t = t.Add(cfg.Interarrival) {
		p := NewPatient(len(sim.Patients), t)
		sim.Patients = append(sim.Patients, p)
		sim.Schedule(&ArrivalEvent{baseEvent: sim.newBase(t), Patient: p})
	}
	sim.Metrics.Generated = len(sim.Patients)
	logrus.Debugf("Seeded %d arrivals between %s and %s", len(sim.Patients), cfg.Start.Format("15:04"), cfg.End.Format("15:04"))
}

// newBase stamps an event with its time and the next sequence number.
func (sim *Simulator) newBase(t time.Time) baseEvent {
	sim.nextSeq++
	return baseEvent{time: t, seq: sim.nextSeq}
}

// Schedule pushes an event into the simulator's event queue.
func (sim *Simulator) Schedule(ev Event) {
	if ev.Timestamp().Before(sim.Clock) {
		logrus.Warnf("[%s] %s scheduled in the past at %s", sim.Clock.Format("15:04"), ev.Kind(), ev.Timestamp().Format("15:04"))
	}
	sim.queue.Schedule(ev)
}

// Step pops and dispatches the earliest event. It returns false once the
// queue is empty.
func (sim *Simulator) Step() bool {
	ev := sim.queue.PopNext()
	if ev == nil {
		return false
	}
	// advance the clock
	sim.Clock = ev.Timestamp()
	sim.StepCount++

	p := eventPatient(ev)
	before := ""
	if p != nil {
		before = string(p.State)
	}
	logrus.Debugf("[%s] Executing %T", sim.Clock.Format("15:04"), ev)

	ev.Execute(sim)

	if len(sim.observers) > 0 {
		sim.notify(ev, p, before)
	}
	return true
}

// Run processes events until the queue is empty.
func (sim *Simulator) Run() {
	logrus.Infof("Starting simulation: %d rooms, %d patients, %s-%s",
		sim.Config.TotalRooms, len(sim.Patients), sim.Config.Start.Format("15:04"), sim.Config.End.Format("15:04"))
	for sim.Step() {
	}
	sim.Metrics.SimEndedTime = sim.Clock
	logrus.Infof("[%s] Simulation ended after %d events: treated=%d abandoned=%d dead=%d",
		sim.Clock.Format("15:04"), sim.StepCount, sim.Metrics.Treated, sim.Metrics.Abandoned, sim.Metrics.Dead)
}

func (sim *Simulator) notify(ev Event, p *Patient, before string) {
	rec := trace.EventRecord{
		Clock:     ev.Timestamp(),
		Kind:      string(ev.Kind()),
		PatientID: trace.NoPatient,
		FreeRooms: sim.freeRooms,
		Waiting:   sim.waitingRoom.Len(),
	}
	if p != nil {
		rec.PatientID = p.ID
		rec.Before = before
		rec.After = string(p.State)
	}
	for _, o := range sim.observers {
		o.Observe(rec)
	}
}

// FreeRooms returns the number of unoccupied treatment rooms.
func (sim *Simulator) FreeRooms() int {
	return sim.freeRooms
}

// Waiting returns the waiting patients in admission order.
func (sim *Simulator) Waiting() []*Patient {
	return sim.waitingRoom.Items()
}

// Pending returns the number of scheduled, not yet dispatched events.
func (sim *Simulator) Pending() int {
	return sim.queue.Len()
}

func (sim *Simulator) handleArrival(e *ArrivalEvent) {
	sim.Schedule(&TriageEvent{
		baseEvent: sim.newBase(e.time.Add(sim.Config.TriageDuration)),
		Patient:   e.Patient,
	})
}

// handleTriage assigns the triage color and starts the waiting clock.
// The timeout delay is selected from the patient's state *before* the new
// color is assigned, so a freshly arrived (NEW) patient always gets the RED
// timeout. Tests pin this behavior.
func (sim *Simulator) handleTriage(e *TriageEvent) {
	p := e.Patient
	prev := p.State
	p.State = sim.allocator.Next()

	var delay time.Duration
	switch prev {
	case SeverityWhite:
		delay = sim.Config.Timeout.White
	case SeverityYellow:
		delay = sim.Config.Timeout.Yellow
	default:
		delay = sim.Config.Timeout.Red
	}
	sim.Schedule(&TimeoutEvent{baseEvent: sim.newBase(e.time.Add(delay)), Patient: p})
	sim.waitingRoom.Insert(p)
}

func (sim *Simulator) handleTimeout(e *TimeoutEvent) {
	p := e.Patient
	switch p.State {
	case SeverityWhite:
		sim.waitingRoom.Remove(p)
		p.State = SeverityOut
		sim.Metrics.Abandoned++
	case SeverityYellow:
		// the ordering key changes, so the patient must be re-queued
		sim.waitingRoom.Remove(p)
		p.State = SeverityRed
		sim.Schedule(&TimeoutEvent{baseEvent: sim.newBase(e.time.Add(sim.Config.Timeout.Red)), Patient: p})
		sim.waitingRoom.Insert(p)
	case SeverityRed:
		sim.waitingRoom.Remove(p)
		p.State = SeverityBlack
		sim.Metrics.Dead++
	default:
		// stale: patient is being treated or has already left
	}
}

func (sim *Simulator) handleFreeRoom(e *FreeRoomEvent) {
	if sim.freeRooms == 0 {
		return
	}
	p := sim.waitingRoom.PopHighestPriority()
	if p == nil {
		return
	}
	d, ok := sim.Config.Treatment.For(p.State)
	if !ok {
		panic(fmt.Sprintf("patient %d admitted from waiting room in state %s", p.ID, p.State))
	}
	sim.Schedule(&TreatedEvent{baseEvent: sim.newBase(e.time.Add(d)), Patient: p})
	p.State = SeverityTreating
	sim.freeRooms--
}

func (sim *Simulator) handleTreated(e *TreatedEvent) {
	sim.Metrics.Treated++
	e.Patient.State = SeverityOut
	sim.freeRooms++
	// admit the next patient now rather than at the next tick
	sim.Schedule(&FreeRoomEvent{baseEvent: sim.newBase(e.time)})
}

func (sim *Simulator) handleTick(e *TickEvent) {
	if sim.freeRooms > 0 && sim.waitingRoom.Len() > 0 {
		sim.Schedule(&FreeRoomEvent{baseEvent: sim.newBase(e.time)})
	}
	if e.time.Before(sim.Config.End) {
		sim.Schedule(&TickEvent{baseEvent: sim.newBase(sim.tickSchedule.Next(e.time))})
	}
}
