package simulation

import (
	"math/rand"

	"github.com/opticalmesh/eonsim/pkg/topology"
)

// BitrateProfile is one (bitrate, probability) entry of the traffic mix a
// CallGenerator draws requested bitrates from (§6 "Simulation config").
type BitrateProfile struct {
	Gbps        float64
	Probability float64
}

// CallGenerator produces Poisson call arrivals at rate λ = load·μ with
// exponentially distributed holding times of mean 1/μ, μ=1 by
// convention (§4.6), drawing endpoints uniformly among distinct node
// pairs and bitrates from the configured traffic mix. All draws route
// through the generator's own *rand.Rand so a fixed seed reproduces a
// simulation bit-for-bit (§5).
type CallGenerator struct {
	rng      *rand.Rand
	rate     float64 // λ
	nodes    []topology.NodeID
	cumProb  []float64
	bitrates []float64
}

// NewCallGenerator builds a generator over the given candidate endpoint
// nodes and traffic mix. offeredLoad is the Erlang load (λ since μ=1).
func NewCallGenerator(offeredLoad float64, bitrates []BitrateProfile, nodes []topology.NodeID, rng *rand.Rand) *CallGenerator {
	g := &CallGenerator{rng: rng, rate: offeredLoad, nodes: nodes}

	var total float64
	for _, b := range bitrates {
		total += b.Probability
	}
	if total <= 0 {
		total = 1
	}

	cum := 0.0
	for _, b := range bitrates {
		cum += b.Probability / total
		g.cumProb = append(g.cumProb, cum)
		g.bitrates = append(g.bitrates, b.Gbps)
	}

	return g
}

// NextInterarrival draws the time to the next Poisson arrival.
func (g *CallGenerator) NextInterarrival() float64 {
	if g.rate <= 0 {
		return 0
	}
	return g.rng.ExpFloat64() / g.rate
}

// NextHoldingTime draws an exponential holding time of mean 1/μ = 1.
func (g *CallGenerator) NextHoldingTime() float64 {
	return g.rng.ExpFloat64()
}

// NextBitrate draws a requested bitrate from the configured traffic mix.
func (g *CallGenerator) NextBitrate() float64 {
	if len(g.bitrates) == 0 {
		return 0
	}
	x := g.rng.Float64()
	for i, cum := range g.cumProb {
		if x <= cum {
			return g.bitrates[i]
		}
	}
	return g.bitrates[len(g.bitrates)-1]
}

// NextEndpoints draws a distinct, uniformly random source/destination
// pair from the generator's candidate node set.
func (g *CallGenerator) NextEndpoints() (topology.NodeID, topology.NodeID) {
	if len(g.nodes) < 2 {
		return 0, 0
	}
	src := g.nodes[g.rng.Intn(len(g.nodes))]
	dst := src
	for dst == src {
		dst = g.nodes[g.rng.Intn(len(g.nodes))]
	}
	return src, dst
}
