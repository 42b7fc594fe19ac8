package routing

import "github.com/opticalmesh/eonsim/pkg/topology"

func init() {
	Register("shortest-path", func(Config) Algorithm { return minHops{} })
	Register("minimum-hops", func(Config) Algorithm { return minHops{} })
}

// minHops routes on hop count alone, via the arena's cached BFS — the
// static routing family that never looks at slot occupancy.
type minHops struct{}

func (minHops) Route(a *topology.Arena, src, dst topology.NodeID) ([]topology.LinkID, bool) {
	return a.ShortestPathHops(src, dst)
}
