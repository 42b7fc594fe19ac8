package routing

import "github.com/opticalmesh/eonsim/pkg/topology"

func init() {
	Register("shortest-length", func(cfg Config) Algorithm { return shortestLength{cfg: cfg} })
}

// shortestLength is the static family's other representative: routes on
// cumulative physical length rather than hop count, via Dijkstra with a
// constant-per-call (state-independent) cost. Unlike the cost-based
// family it never re-reads occupancy, so it is as cacheable as
// minHops — it just weights by length instead of by 1.
type shortestLength struct {
	cfg Config
}

func (shortestLength) Route(a *topology.Arena, src, dst topology.NodeID) ([]topology.LinkID, bool) {
	cost := func(l *topology.Link, _ topology.NodeID) float64 {
		return l.LengthKm
	}
	return a.ShortestPathCost(src, dst, cost)
}
