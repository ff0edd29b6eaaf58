package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tickAt(t time.Time, seq uint64) *TickEvent {
	return &TickEvent{baseEvent: baseEvent{time: t, seq: seq}}
}

// TestEventQueue_TimestampOrdering tests that events are popped in timestamp order
func TestEventQueue_TimestampOrdering(t *testing.T) {
	q := NewEventQueue()

	// Add events with different timestamps in random order
	q.Schedule(tickAt(ClockTime(9, 0), 1))
	q.Schedule(tickAt(ClockTime(8, 30), 2))
	q.Schedule(tickAt(ClockTime(9, 30), 3))

	want := []time.Time{ClockTime(8, 30), ClockTime(9, 0), ClockTime(9, 30)}
	for i, w := range want {
		ev := q.PopNext()
		require.NotNil(t, ev)
		if !ev.Timestamp().Equal(w) {
			t.Errorf("event %d timestamp = %s, want %s", i, ev.Timestamp().Format("15:04"), w.Format("15:04"))
		}
	}
	assert.Equal(t, 0, q.Len())
}

// TestEventQueue_SameTimestamp_ScheduleOrder tests that ties pop in sequence order
func TestEventQueue_SameTimestamp_ScheduleOrder(t *testing.T) {
	q := NewEventQueue()
	at := ClockTime(8, 0)
	p := NewPatient(0, at)

	// Add in non-increasing sequence order
	q.Schedule(&FreeRoomEvent{baseEvent: baseEvent{time: at, seq: 3}})
	q.Schedule(&ArrivalEvent{baseEvent: baseEvent{time: at, seq: 1}, Patient: p})
	q.Schedule(tickAt(at, 2))

	assert.Equal(t, EventKindArrival, q.PopNext().Kind())
	assert.Equal(t, EventKindTick, q.PopNext().Kind())
	assert.Equal(t, EventKindFreeRoom, q.PopNext().Kind())
}

func TestEventQueue_Empty_ReturnsNil(t *testing.T) {
	q := NewEventQueue()
	assert.Nil(t, q.PopNext())
	assert.Nil(t, q.Peek())
}

func TestEventQueue_Peek_DoesNotRemove(t *testing.T) {
	q := NewEventQueue()
	q.Schedule(tickAt(ClockTime(8, 0), 1))

	first := q.Peek()
	require.NotNil(t, first)
	assert.Equal(t, 1, q.Len())
	assert.Same(t, first, q.PopNext())
}

func TestEventPatient_OnlyPatientKindsCarryOne(t *testing.T) {
	at := ClockTime(8, 0)
	p := NewPatient(1, at)
	b := baseEvent{time: at}

	assert.Same(t, p, eventPatient(&ArrivalEvent{baseEvent: b, Patient: p}))
	assert.Same(t, p, eventPatient(&TriageEvent{baseEvent: b, Patient: p}))
	assert.Same(t, p, eventPatient(&TimeoutEvent{baseEvent: b, Patient: p}))
	assert.Same(t, p, eventPatient(&TreatedEvent{baseEvent: b, Patient: p}))
	assert.Nil(t, eventPatient(&FreeRoomEvent{baseEvent: b}))
	assert.Nil(t, eventPatient(&TickEvent{baseEvent: b}))
}
