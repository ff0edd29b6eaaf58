package sim

// ColorAllocator decides the triage color assigned at each TRIAGE event.
// Next is called exactly once per triage and must return one of WHITE,
// YELLOW or RED.
type ColorAllocator interface {
	Next() Severity
}

// RoundRobinAllocator cycles WHITE -> YELLOW -> RED -> WHITE, simulating an
// even case mix without randomness.
type RoundRobinAllocator struct {
	last Severity
}

// NewRoundRobinAllocator returns an allocator whose first color is WHITE.
func NewRoundRobinAllocator() *RoundRobinAllocator {
	return &RoundRobinAllocator{last: SeverityRed}
}

// Next advances the cycle and returns the new color.
func (a *RoundRobinAllocator) Next() Severity {
	switch a.last {
	case SeverityWhite:
		a.last = SeverityYellow
	case SeverityYellow:
		a.last = SeverityRed
	default:
		a.last = SeverityWhite
	}
	return a.last
}

// Last returns the most recently assigned color.
func (a *RoundRobinAllocator) Last() Severity {
	return a.last
}

// FixedAllocator assigns the same color to every patient.
type FixedAllocator struct {
	Color Severity
}

func (f FixedAllocator) Next() Severity {
	return f.Color
}
