package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalEvents  int
	KindCounts   map[string]int // event kind → number dispatched
	Escalations  int            // TIMEOUT transitions YELLOW → RED
	StaleTimeout int            // TIMEOUT events dropped because the patient had moved on
	PeakWaiting  int
	MinFreeRooms int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		KindCounts: make(map[string]int),
	}
	if st == nil || len(st.Records) == 0 {
		return summary
	}

	summary.TotalEvents = len(st.Records)
	summary.MinFreeRooms = st.Records[0].FreeRooms
	for _, r := range st.Records {
		summary.KindCounts[r.Kind]++
		if r.Kind == "TIMEOUT" && r.Before == "YELLOW" && r.After == "RED" {
			summary.Escalations++
		}
		if r.Kind == "TIMEOUT" && !r.Changed() {
			summary.StaleTimeout++
		}
		if r.Waiting > summary.PeakWaiting {
			summary.PeakWaiting = r.Waiting
		}
		if r.FreeRooms < summary.MinFreeRooms {
			summary.MinFreeRooms = r.FreeRooms
		}
	}
	return summary
}
