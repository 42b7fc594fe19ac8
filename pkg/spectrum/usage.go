package spectrum

import (
	"math/rand"

	"github.com/opticalmesh/eonsim/pkg/topology"
)

func init() {
	Register("most-used", func() Policy { return usageFit{preferMost: true} })
	Register("least-used", func() Policy { return usageFit{preferMost: false} })
}

// usageFit scores each candidate window by how heavily its starting slot
// index is already used across the whole topology. Most-Used consolidates
// new calls into already-busy indices to keep fragmentation low;
// Least-Used spreads calls across lightly used indices.
type usageFit struct {
	preferMost bool
}

func (u usageFit) Assign(a *topology.Arena, links []topology.LinkID, length int, _ *rand.Rand) (topology.Window, bool) {
	windows := commonWindows(a, links, length)
	if len(windows) == 0 {
		return topology.Window{}, false
	}

	usage := slotUsage(a)

	best := windows[0]
	bestScore := usage[best.Start]
	for _, w := range windows[1:] {
		score := usage[w.Start]
		better := false
		if u.preferMost {
			better = score > bestScore || (score == bestScore && w.Start < best.Start)
		} else {
			better = score < bestScore || (score == bestScore && w.Start < best.Start)
		}
		if better {
			best = w
			bestScore = score
		}
	}
	return topology.Window{Start: best.Start, Length: length}, true
}

// slotUsage counts, per slot index, how many links in the whole topology
// currently hold that slot.
func slotUsage(a *topology.Arena) []int {
	if len(a.Links) == 0 {
		return nil
	}
	n := a.Links[0].Slots().Len()
	counts := make([]int, n)
	for _, l := range a.Links {
		snap := l.Slots().Snapshot()
		for i, free := range snap {
			if !free {
				counts[i]++
			}
		}
	}
	return counts
}
