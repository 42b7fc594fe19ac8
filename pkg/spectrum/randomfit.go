package spectrum

import (
	"math/rand"

	"github.com/opticalmesh/eonsim/pkg/topology"
)

func init() {
	Register("random-fit", func() Policy { return randomFit{} })
}

// randomFit selects uniformly among the maximal windows long enough for
// the request, taking each window's own start — it never offers a
// sub-window shifted within a larger maximal run.
type randomFit struct{}

func (randomFit) Assign(a *topology.Arena, links []topology.LinkID, length int, rng *rand.Rand) (topology.Window, bool) {
	windows := commonWindows(a, links, length)
	if len(windows) == 0 {
		return topology.Window{}, false
	}
	chosen := windows[rng.Intn(len(windows))]
	return topology.Window{Start: chosen.Start, Length: length}, true
}
