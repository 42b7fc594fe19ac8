package nsga2

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opticalmesh/eonsim/pkg/config"
	"github.com/opticalmesh/eonsim/pkg/reporting"
)

// syntheticFitness models a trade-off between regenerator count and
// blocking probability without running a real simulation: more
// regenerators (higher genome sum) monotonically lower a synthetic
// blocking figure, the same shape a real RMSA pipeline would produce.
func syntheticFitness(_ context.Context, genome []int) ([2]float64, error) {
	var sum int
	for _, g := range genome {
		sum += g
	}
	blocking := 1.0 / float64(1+sum)
	return [2]float64{float64(sum), blocking}, nil
}

func TestRun_FirstFrontImprovesOverGenerations(t *testing.T) {
	cfg := config.NSGA2Config{
		PopulationSize:      20,
		Generations:         10,
		NoImprovementLimit:  0,
		MaxRegeneratorsNode: 5,
		CrossoverEta:        20,
		MutationEta:         20,
		MutationProbability: 0.2,
	}
	bounds := Bounds{NumNodes: 3, RMax: 5}
	rng := rand.New(rand.NewSource(42))

	res, err := Run(context.Background(), cfg, bounds, syntheticFitness, rng)
	assert.NoError(t, err)
	assert.NotEmpty(t, res.FirstFrontHistory)

	gen0 := res.FirstFrontHistory[0]
	final := res.FirstFrontHistory[len(res.FirstFrontHistory)-1]
	assert.Less(t, meanObjectiveSum(final), meanObjectiveSum(gen0))
}

func meanObjectiveSum(points []reporting.ParetoPoint) float64 {
	var sum float64
	for _, p := range points {
		for _, o := range p.Objectives {
			sum += o
		}
	}
	if len(points) == 0 {
		return 0
	}
	return sum / float64(len(points))
}

func TestDominates_BothObjectivesMinimised(t *testing.T) {
	a := Individual{Objectives: [2]float64{1, 1}}
	b := Individual{Objectives: [2]float64{2, 2}}
	assert.True(t, dominates(a, b))
	assert.False(t, dominates(b, a))
}

func TestFastNonDominatedSort_AssignsRankZeroToFront(t *testing.T) {
	pop := []Individual{
		{Objectives: [2]float64{0, 5}},
		{Objectives: [2]float64{5, 0}},
		{Objectives: [2]float64{3, 3}},
		{Objectives: [2]float64{10, 10}}, // dominated by every other point
	}
	fastNonDominatedSort(pop)
	assert.Equal(t, 0, pop[0].rank)
	assert.Equal(t, 0, pop[1].rank)
	assert.Greater(t, pop[3].rank, 0)
}

func TestSelectNextGeneration_KeepsPopulationSizeFixed(t *testing.T) {
	pop := make([]Individual, 30)
	for i := range pop {
		pop[i] = Individual{Objectives: [2]float64{float64(i), float64(30 - i)}}
	}
	fastNonDominatedSort(pop)
	assignCrowdingDistances(pop)
	next := selectNextGeneration(pop, 20)
	assert.Len(t, next, 20)
}
