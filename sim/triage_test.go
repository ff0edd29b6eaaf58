package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundRobinAllocator_FirstColorIsWhite(t *testing.T) {
	a := NewRoundRobinAllocator()
	assert.Equal(t, SeverityRed, a.Last())
	assert.Equal(t, SeverityWhite, a.Next())
}

func TestRoundRobinAllocator_CyclesWhiteYellowRed(t *testing.T) {
	// GIVEN a fresh allocator
	a := NewRoundRobinAllocator()
	cycle := []Severity{SeverityWhite, SeverityYellow, SeverityRed}

	// WHEN it is called N times
	// THEN the colors repeat WHITE, YELLOW, RED with no reset
	for i := 0; i < 31; i++ {
		got := a.Next()
		if got != cycle[i%3] {
			t.Fatalf("call %d: got %s, want %s", i, got, cycle[i%3])
		}
		assert.Equal(t, got, a.Last())
	}
}

func TestFixedAllocator_AlwaysSameColor(t *testing.T) {
	a := FixedAllocator{Color: SeverityYellow}
	for i := 0; i < 5; i++ {
		assert.Equal(t, SeverityYellow, a.Next())
	}
}
