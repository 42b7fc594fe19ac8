package routing

import "github.com/opticalmesh/eonsim/pkg/topology"

func init() {
	Register("length-occupation-availability", func(cfg Config) Algorithm {
		return lengthOccupationAvailability{cfg: cfg}
	})
}

// lengthOccupationAvailability is a dynamic, cost-based routing algorithm:
// c = 1 + L/L_max + A/N_slots, where L is the link length and A is the
// number of slots currently held on that link. Reproduced from the
// original simulator's LengthOccupationRoutingAvailability cost formula.
// Never cached — occupancy changes on every event.
type lengthOccupationAvailability struct {
	cfg Config
}

func (d lengthOccupationAvailability) Route(a *topology.Arena, src, dst topology.NodeID) ([]topology.LinkID, bool) {
	lMax := d.cfg.LMaxKm
	if lMax <= 0 {
		lMax = 1
	}
	numSlots := d.cfg.NumSlots
	if numSlots <= 0 {
		numSlots = 1
	}

	cost := func(l *topology.Link, _ topology.NodeID) float64 {
		held := l.Slots().Len() - l.Slots().FreeCount()
		return 1 + l.LengthKm/lMax + float64(held)/float64(numSlots)
	}

	return a.ShortestPathCost(src, dst, cost)
}
