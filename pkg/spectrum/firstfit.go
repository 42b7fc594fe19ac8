package spectrum

import (
	"math/rand"

	"github.com/opticalmesh/eonsim/pkg/topology"
)

func init() {
	Register("first-fit", func() Policy { return firstFit{} })
}

// firstFit returns the lowest-index window that satisfies the request,
// if any exists.
type firstFit struct{}

func (firstFit) Assign(a *topology.Arena, links []topology.LinkID, length int, _ *rand.Rand) (topology.Window, bool) {
	windows := commonWindows(a, links, length)
	if len(windows) == 0 {
		return topology.Window{}, false
	}
	best := windows[0]
	for _, w := range windows[1:] {
		if w.Start < best.Start {
			best = w
		}
	}
	return topology.Window{Start: best.Start, Length: length}, true
}
