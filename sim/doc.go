// Package sim provides the discrete-event simulation engine for edsim, an
// emergency-department patient-flow simulator.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - patient.go: Patient lifecycle (NEW → color → TREATING → OUT, or BLACK)
//   - event.go: Event types that drive the simulation (Arrival, Triage, Timeout, FreeRoom, Treated, Tick)
//   - simulator.go: The event loop and the transition handler for each event kind
//
// Supporting structures:
//   - event_queue.go: time-ordered heap, ties broken by scheduling order
//   - waiting_room.go: severity-ordered heap with remove-by-identity
//   - triage.go: ColorAllocator policies (round robin, fixed)
//   - config.go: run parameters and validation
//   - metrics.go: treated / abandoned / dead counters and reporting
//
// # Observing a run
//
// Observers registered with WithObserver receive a trace.EventRecord after
// every dispatched event. The sim/trace package records and summarizes them.
package sim
