package topology

import "fmt"

// Reservation is a handle to the resources one admitted call holds: a set
// of slot windows on a sequence of links, and any regenerators acquired
// along the way. It is released as a single unit when the call departs,
// the same "release everything this task acquired" shape the original
// cleanup coordinator used for chaos artifacts.
type Reservation struct {
	Links        []LinkID
	SlotStart    []int
	SlotLength   []int
	Regenerators []NodeID
}

// ReleaseLedger records every slot/regenerator release so a run can be
// audited after the fact, adapted from the teacher's cleanup audit log.
type ReleaseLedger struct {
	entries []AuditEntry
}

// AuditEntry is one release action.
type AuditEntry struct {
	Action  string
	Target  string
	Success bool
	Details string
}

// NewReleaseLedger returns an empty ledger.
func NewReleaseLedger() *ReleaseLedger {
	return &ReleaseLedger{}
}

// Release frees every slot window and regenerator a reservation holds,
// recording one audit entry per resource. Release is idempotent with
// respect to the arena's bitmaps: releasing an already-free window is a
// no-op on the bitmap, but still logged so a departing call that raced a
// prior release is visible in the audit trail.
func (rl *ReleaseLedger) Release(a *Arena, callID string, res Reservation) {
	for i, lid := range res.Links {
		l := a.Link(lid)
		if l == nil {
			rl.log("release_slots", callID, false, fmt.Sprintf("link %d not found", lid))
			continue
		}
		l.Slots().Release(res.SlotStart[i], res.SlotLength[i])
		rl.log("release_slots", callID, true,
			fmt.Sprintf("link %d [%d,%d)", lid, res.SlotStart[i], res.SlotStart[i]+res.SlotLength[i]))
	}

	for _, nid := range res.Regenerators {
		n := a.Node(nid)
		if n == nil {
			rl.log("release_regenerator", callID, false, fmt.Sprintf("node %d not found", nid))
			continue
		}
		n.ReleaseRegenerator()
		rl.log("release_regenerator", callID, true, fmt.Sprintf("node %d", nid))
	}
}

func (rl *ReleaseLedger) log(action, target string, success bool, details string) {
	rl.entries = append(rl.entries, AuditEntry{
		Action:  action,
		Target:  target,
		Success: success,
		Details: details,
	})
}

// Entries returns the full audit log.
func (rl *ReleaseLedger) Entries() []AuditEntry { return rl.entries }

// Summary tallies the audit log the way the teacher's CleanupSummary does.
type Summary struct {
	TotalActions int
	Succeeded    int
	Failed       int
}

func (rl *ReleaseLedger) Summary() Summary {
	s := Summary{TotalActions: len(rl.entries)}
	for _, e := range rl.entries {
		if e.Success {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("release summary: %d total, %d succeeded, %d failed",
		s.TotalActions, s.Succeeded, s.Failed)
}
