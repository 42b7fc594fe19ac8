package routing

import "github.com/opticalmesh/eonsim/pkg/topology"

func init() {
	Register("adaptive-weighting", func(cfg Config) Algorithm { return adaptiveWeighting{cfg: cfg} })
	Register("power-series-routing", func(cfg Config) Algorithm { return adaptiveWeighting{cfg: cfg} })
}

// numAdaptiveFeatures is the dimensionality of the β vector (§4.3): one
// coefficient each for length, occupancy, contiguity, and fragmentation.
const numAdaptiveFeatures = 4

// adaptiveWeighting (PowerSeriesRouting) is the cost-based family's
// tunable member: c = Σ_k β_k·φ_k(link, call). The β vector is exactly
// the decision variable PSO's fitness oracle mutates between runs (§4.7)
// — this algorithm never mutates it itself, it just evaluates the cost
// the caller configured it with.
type adaptiveWeighting struct {
	cfg Config
}

func (d adaptiveWeighting) Route(a *topology.Arena, src, dst topology.NodeID) ([]topology.LinkID, bool) {
	beta := d.cfg.Beta
	if len(beta) == 0 {
		beta = make([]float64, numAdaptiveFeatures)
		beta[0] = 1
	}

	lMax := d.cfg.LMaxKm
	if lMax <= 0 {
		lMax = 1
	}
	numSlots := d.cfg.NumSlots
	if numSlots <= 0 {
		numSlots = 1
	}

	cost := func(l *topology.Link, _ topology.NodeID) float64 {
		features := adaptiveFeatures(l, lMax, numSlots)
		var c float64
		for i, phi := range features {
			if i < len(beta) {
				c += beta[i] * phi
			}
		}
		return c
	}

	return a.ShortestPathCost(src, dst, cost)
}

// adaptiveFeatures computes φ_k(link, call) for k = length, occupancy,
// contiguity, fragmentation, each normalised to a roughly [0,1] range so
// a single β vector is comparable across links of different sizes.
func adaptiveFeatures(l *topology.Link, lMax float64, numSlots int) [numAdaptiveFeatures]float64 {
	slots := l.Slots()
	held := slots.Len() - slots.FreeCount()
	windows := slots.MaximalFreeWindows()

	var largest int
	for _, w := range windows {
		if w.Length > largest {
			largest = w.Length
		}
	}

	length := l.LengthKm / lMax
	occupancy := float64(held) / float64(numSlots)
	// Contiguity: fraction of free capacity lying outside the single
	// largest window — 0 means fully contiguous, near 1 means shattered.
	contiguity := 0.0
	if free := slots.FreeCount(); free > 0 {
		contiguity = 1 - float64(largest)/float64(free)
	}
	// Fragmentation: number of distinct free windows, normalised by the
	// worst case (every other slot free, forming N/2 singleton windows).
	fragmentation := 0.0
	if numSlots > 1 {
		fragmentation = float64(len(windows)) / (float64(numSlots) / 2)
	}

	return [numAdaptiveFeatures]float64{length, occupancy, contiguity, fragmentation}
}
