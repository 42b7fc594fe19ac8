package spectrum

import (
	"math/rand"

	"github.com/opticalmesh/eonsim/pkg/topology"
)

func init() {
	Register("exact-fit", func() Policy { return exactFit{} })
}

// exactFit prefers a window whose size exactly matches the request, to
// avoid fragmenting a larger free run; it reduces to First-Fit iff no
// exact-size free run exists. Reproduced from the original simulator's
// ExactFit.cpp.
type exactFit struct{}

func (exactFit) Assign(a *topology.Arena, links []topology.LinkID, length int, _ *rand.Rand) (topology.Window, bool) {
	windows := commonWindows(a, links, length)
	if len(windows) == 0 {
		return topology.Window{}, false
	}

	exactFound := false
	var exact topology.Window
	var firstAny topology.Window
	firstAnySet := false

	for _, w := range windows {
		if !firstAnySet || w.Start < firstAny.Start {
			firstAny = w
			firstAnySet = true
		}
		if w.Length == length && (!exactFound || w.Start < exact.Start) {
			exact = w
			exactFound = true
		}
	}

	if exactFound {
		return topology.Window{Start: exact.Start, Length: length}, true
	}
	return topology.Window{Start: firstAny.Start, Length: length}, true
}
