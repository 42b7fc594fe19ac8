package simulation

import (
	"fmt"

	"github.com/opticalmesh/eonsim/pkg/rmsa"
	"github.com/opticalmesh/eonsim/pkg/topology"
)

// CallState is the lifecycle state of one call (§3).
type CallState int

const (
	StatePending CallState = iota
	StateActive
	StateBlocked
	StateCleared
)

func (s CallState) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateBlocked:
		return "blocked"
	case StateCleared:
		return "cleared"
	default:
		return "pending"
	}
}

// Call is one offered call: source/destination, requested bitrate, and
// the admission outcome once the RMSA pipeline has run.
type Call struct {
	ID          string
	Source      topology.NodeID
	Destination topology.NodeID
	BitrateGbps float64
	ArrivalTime float64
	Duration    float64
	State       CallState

	Result rmsa.Result
	Cause  rmsa.Cause
}

// EventType distinguishes arrival from departure events in the priority
// queue (§4.6).
type EventType int

const (
	EventArrival EventType = iota
	EventDeparture
)

func (e EventType) String() string {
	if e == EventDeparture {
		return "departure"
	}
	return "arrival"
}

// Event is one entry of the event queue, ordered by (Time, Seq) so that
// same-time ties are broken deterministically (§5).
type Event struct {
	Time float64
	Seq  int64
	Type EventType
	Call *Call
}

func (e Event) String() string {
	return fmt.Sprintf("%s@%.6f#%d(%s)", e.Type, e.Time, e.Seq, e.Call.ID)
}

// eventHeap is a container/heap priority queue keyed on (Time, Seq), the
// same idiom pkg/topology/shortestpath.go uses for Dijkstra's frontier.
type eventHeap []Event

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	return h[i].Seq < h[j].Seq
}
func (h eventHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x interface{}) { *h = append(*h, x.(Event)) }
func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
