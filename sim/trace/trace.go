package trace

// TraceLevel controls the verbosity of event tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelEvents captures every dispatched event.
	TraceLevelEvents TraceLevel = "events"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelEvents: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects event records during a simulation.
type SimulationTrace struct {
	Config  TraceConfig
	Records []EventRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:  config,
		Records: make([]EventRecord, 0),
	}
}

// Observe appends an event record unless tracing is disabled.
func (st *SimulationTrace) Observe(record EventRecord) {
	if st.Config.Level != TraceLevelEvents {
		return
	}
	st.Records = append(st.Records, record)
}

// ForPatient returns the records concerning one patient, in dispatch order.
func (st *SimulationTrace) ForPatient(id int) []EventRecord {
	var out []EventRecord
	for _, r := range st.Records {
		if r.PatientID == id {
			out = append(out, r)
		}
	}
	return out
}
