package regen

import "math/rand"

// NodeUsageStat is one node's regenerator-usage statistic gathered from a
// prior simulation run, the input NX_MostSimultaneouslyUsed placement
// needs.
type NodeUsageStat struct {
	NodeIndex       int
	MaxSimultaneous int
}

// MostSimultaneouslyUsed decides which nodes become translucent across
// runs, not which calls use them within one run (that is pkg/regen's
// assignment job): it greedily picks the n nodes with the highest
// max-simultaneous-regenerator-usage statistic from history, breaking
// ties uniformly at random, and equips each with regeneratorsPerNode
// regenerators. Reproduced from the original simulator's
// NX_MostSimultaneouslyUsed placement pass. Returns a per-node
// regenerator-count vector sized numNodes.
func MostSimultaneouslyUsed(history []NodeUsageStat, numNodes, n, regeneratorsPerNode int, rng *rand.Rand) []int {
	counts := make([]int, numNodes)
	if n <= 0 {
		return counts
	}

	remaining := append([]NodeUsageStat(nil), history...)

	for iter := 0; iter < n && len(remaining) > 0; iter++ {
		maxUsed := remaining[0].MaxSimultaneous
		for _, s := range remaining {
			if s.MaxSimultaneous > maxUsed {
				maxUsed = s.MaxSimultaneous
			}
		}

		var candidates []int // indices into remaining
		for i, s := range remaining {
			if s.MaxSimultaneous == maxUsed {
				candidates = append(candidates, i)
			}
		}

		chosen := candidates[rng.Intn(len(candidates))]
		node := remaining[chosen]
		if node.NodeIndex >= 0 && node.NodeIndex < numNodes {
			counts[node.NodeIndex] = regeneratorsPerNode
		}

		remaining = append(remaining[:chosen], remaining[chosen+1:]...)
	}

	return counts
}
