package sim

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitingPatient(id int, arrival time.Time, s Severity) *Patient {
	p := NewPatient(id, arrival)
	p.State = s
	return p
}

func TestWaitingRoom_Pop_SeverityThenArrival(t *testing.T) {
	// GIVEN patients of every color inserted out of order
	wr := NewWaitingRoom()
	w1 := waitingPatient(0, ClockTime(8, 0), SeverityWhite)
	y1 := waitingPatient(1, ClockTime(8, 5), SeverityYellow)
	r1 := waitingPatient(2, ClockTime(8, 10), SeverityRed)
	w2 := waitingPatient(3, ClockTime(8, 15), SeverityWhite)
	r2 := waitingPatient(4, ClockTime(7, 50), SeverityRed)
	for _, p := range []*Patient{w2, w1, r1, y1, r2} {
		wr.Insert(p)
	}

	// WHEN patients are popped
	// THEN RED comes before YELLOW before WHITE, earlier arrival first within a color
	want := []*Patient{r2, r1, y1, w1, w2}
	for i, w := range want {
		got := wr.PopHighestPriority()
		require.NotNil(t, got)
		if got != w {
			t.Errorf("pop %d: got patient %d, want %d", i, got.ID, w.ID)
		}
	}
	assert.Nil(t, wr.PopHighestPriority())
}

func TestWaitingRoom_Remove_ByIdentity_KeepsOthers(t *testing.T) {
	wr := NewWaitingRoom()
	a := waitingPatient(0, ClockTime(8, 0), SeverityWhite)
	b := waitingPatient(1, ClockTime(8, 5), SeverityYellow)
	c := waitingPatient(2, ClockTime(8, 10), SeverityRed)
	wr.Insert(a)
	wr.Insert(b)
	wr.Insert(c)

	assert.True(t, wr.Remove(b))
	assert.False(t, wr.Remove(b), "second removal must report absence")
	assert.False(t, wr.Contains(b))
	assert.Equal(t, 2, wr.Len())
	assert.Equal(t, []*Patient{c, a}, wr.Items())
}

func TestWaitingRoom_Escalation_RequiresReinsert(t *testing.T) {
	// GIVEN a YELLOW patient queued behind an earlier YELLOW
	wr := NewWaitingRoom()
	early := waitingPatient(0, ClockTime(8, 0), SeverityYellow)
	late := waitingPatient(1, ClockTime(8, 30), SeverityYellow)
	wr.Insert(early)
	wr.Insert(late)

	// WHEN the later patient is escalated through remove + reinsert
	require.True(t, wr.Remove(late))
	late.State = SeverityRed
	wr.Insert(late)

	// THEN the escalated patient is admitted first
	assert.Same(t, late, wr.Peek())
	assert.Same(t, late, wr.PopHighestPriority())
	assert.Same(t, early, wr.PopHighestPriority())
}

func TestWaitingRoom_Insert_Duplicate_Panics(t *testing.T) {
	wr := NewWaitingRoom()
	p := waitingPatient(0, ClockTime(8, 0), SeverityWhite)
	wr.Insert(p)
	assert.Panics(t, func() { wr.Insert(p) })
	assert.Panics(t, func() { wr.Insert(nil) })
}

func TestWaitingRoom_Empty(t *testing.T) {
	wr := NewWaitingRoom()
	assert.Equal(t, 0, wr.Len())
	assert.Nil(t, wr.Peek())
	assert.Nil(t, wr.PopHighestPriority())
	assert.False(t, wr.Remove(waitingPatient(0, ClockTime(8, 0), SeverityRed)))
	assert.Equal(t, "[]", wr.String())
}

// TestWaitingRoom_RandomMix_PopsInOrder inserts, removes and escalates
// patients in a seeded random order and checks that the pop sequence never
// violates the ordering.
func TestWaitingRoom_RandomMix_PopsInOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	colors := []Severity{SeverityWhite, SeverityYellow, SeverityRed}
	wr := NewWaitingRoom()

	var queued []*Patient
	for i := 0; i < 200; i++ {
		p := waitingPatient(i, ClockTime(8, 0).Add(time.Duration(rng.Intn(240))*time.Minute), colors[rng.Intn(3)])
		wr.Insert(p)
		queued = append(queued, p)
	}
	// escalate every YELLOW at an even index, drop every 7th patient
	for i, p := range queued {
		if i%7 == 0 {
			require.True(t, wr.Remove(p))
			continue
		}
		if i%2 == 0 && p.State == SeverityYellow {
			require.True(t, wr.Remove(p))
			p.State = SeverityRed
			wr.Insert(p)
		}
	}

	var prev *Patient
	n := 0
	for p := wr.PopHighestPriority(); p != nil; p = wr.PopHighestPriority() {
		if prev != nil && waitingLess(p, prev) {
			t.Fatalf("patient %d (%s, %s) popped after %d (%s, %s)",
				p.ID, p.State, p.ArrivalTime.Format("15:04"), prev.ID, prev.State, prev.ArrivalTime.Format("15:04"))
		}
		prev = p
		n++
	}
	assert.Equal(t, 200-29, n) // ids 0,7,...,196 removed
}
