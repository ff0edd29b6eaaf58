// Implements the WaitingRoom, which holds all triaged patients waiting for a
// treatment room. Patients are inserted at triage and leave either by
// admission, abandonment or death.

package sim

import (
	"container/heap"
	"fmt"
	"sort"
	"strings"
)

// WaitingRoom is a severity-ordered priority queue of patients.
// Ordering: severity rank (RED, YELLOW, WHITE) → arrival time → patient ID.
//
// The ordering key is read from Patient.State, which the engine mutates.
// A queued patient's State must never change in place: Remove it, change
// the state, then Insert it again.
type WaitingRoom struct {
	patients []*Patient
	index    map[*Patient]int // position of each queued patient in patients
}

// NewWaitingRoom creates an empty waiting room.
func NewWaitingRoom() *WaitingRoom {
	return &WaitingRoom{
		patients: make([]*Patient, 0),
		index:    make(map[*Patient]int),
	}
}

// waitingLess reports whether a must be admitted before b.
func waitingLess(a, b *Patient) bool {
	if a.State.Rank() != b.State.Rank() {
		return a.State.Rank() > b.State.Rank()
	}
	if !a.ArrivalTime.Equal(b.ArrivalTime) {
		return a.ArrivalTime.Before(b.ArrivalTime)
	}
	return a.ID < b.ID
}

// heap.Interface, unexported through the wrapper type so callers only see
// Insert/Remove/PopHighestPriority.
type waitingHeap WaitingRoom

func (h *waitingHeap) Len() int           { return len(h.patients) }
func (h *waitingHeap) Less(i, j int) bool { return waitingLess(h.patients[i], h.patients[j]) }
func (h *waitingHeap) Swap(i, j int) {
	h.patients[i], h.patients[j] = h.patients[j], h.patients[i]
	h.index[h.patients[i]] = i
	h.index[h.patients[j]] = j
}

func (h *waitingHeap) Push(x any) {
	p := x.(*Patient)
	h.index[p] = len(h.patients)
	h.patients = append(h.patients, p)
}

func (h *waitingHeap) Pop() any {
	old := h.patients
	n := len(old)
	p := old[n-1]
	old[n-1] = nil
	h.patients = old[:n-1]
	delete(h.index, p)
	return p
}

// Insert adds a patient to the waiting room. Inserting a patient that is
// already queued panics.
func (wr *WaitingRoom) Insert(p *Patient) {
	if p == nil {
		panic("Insert: patient must not be nil")
	}
	if _, ok := wr.index[p]; ok {
		panic(fmt.Sprintf("Insert: patient %d already in waiting room", p.ID))
	}
	heap.Push((*waitingHeap)(wr), p)
}

// PopHighestPriority removes and returns the next patient to admit.
// Returns nil if the waiting room is empty.
func (wr *WaitingRoom) PopHighestPriority() *Patient {
	if len(wr.patients) == 0 {
		return nil
	}
	return heap.Pop((*waitingHeap)(wr)).(*Patient)
}

// Remove takes a specific patient out of the waiting room, leaving all
// other patients queued. Returns false if p was not waiting.
func (wr *WaitingRoom) Remove(p *Patient) bool {
	i, ok := wr.index[p]
	if !ok {
		return false
	}
	heap.Remove((*waitingHeap)(wr), i)
	return true
}

// Contains reports whether p is currently waiting.
func (wr *WaitingRoom) Contains(p *Patient) bool {
	_, ok := wr.index[p]
	return ok
}

// Len returns the number of waiting patients.
func (wr *WaitingRoom) Len() int {
	return len(wr.patients)
}

// Peek returns the next patient to admit without removing it.
// Returns nil if the waiting room is empty.
func (wr *WaitingRoom) Peek() *Patient {
	if len(wr.patients) == 0 {
		return nil
	}
	return wr.patients[0]
}

// Items returns a copy of the waiting patients in admission order.
func (wr *WaitingRoom) Items() []*Patient {
	out := make([]*Patient, len(wr.patients))
	copy(out, wr.patients)
	sort.SliceStable(out, func(i, j int) bool {
		return waitingLess(out[i], out[j])
	})
	return out
}

func (wr *WaitingRoom) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range wr.Items() {
		sb.WriteString(fmt.Sprintf("%d:%s", p.ID, p.State))
		if i < len(wr.patients)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
