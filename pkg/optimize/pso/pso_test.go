package pso

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opticalmesh/eonsim/pkg/config"
)

func sphereFitness(_ context.Context, x []float64) (float64, error) {
	var sum float64
	for _, xi := range x {
		sum += xi * xi
	}
	return sum, nil
}

func TestRun_SphereFunction_ConvergesNearOrigin(t *testing.T) {
	cfg := config.PSOConfig{
		Particles:   20,
		Generations: 50,
		Dimensions:  2,
		XMin:        -5,
		XMax:        5,
		VMin:        -2,
		VMax:        2,
	}
	rng := rand.New(rand.NewSource(42))

	res, err := Run(context.Background(), cfg, sphereFitness, rng)
	assert.NoError(t, err)

	var norm float64
	for _, xi := range res.GlobalBestPosition {
		norm += xi * xi
	}
	assert.Less(t, math.Sqrt(norm), 1e-2)
	assert.Len(t, res.History, cfg.Generations)
}

func TestConstrictionFactor_MatchesClercCoefficient(t *testing.T) {
	assert.InDelta(t, 0.7298, chi, 1e-4)
}

func TestRun_CancelledContext_PropagatesError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := config.PSOConfig{Particles: 4, Generations: 3, Dimensions: 2, XMin: -1, XMax: 1, VMin: -1, VMax: 1}
	blocking := func(ctx context.Context, _ []float64) (float64, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	}

	_, err := Run(ctx, cfg, blocking, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

func TestUpdateVelocitiesAndPositions_RingNeighborhoodPullsTowardBetterNeighbor(t *testing.T) {
	cfg := config.PSOConfig{Dimensions: 1, XMin: -10, XMax: 10, VMin: -5, VMax: 5}
	swarm := []Particle{
		{Position: []float64{0}, Velocity: []float64{0}, BestPosition: []float64{5}, BestFitness: 1},
		{Position: []float64{0}, Velocity: []float64{0}, BestPosition: []float64{0}, BestFitness: 100},
		{Position: []float64{0}, Velocity: []float64{0}, BestPosition: []float64{-5}, BestFitness: 1},
	}

	// particle 1's ring neighbours are indices 0 and 2 (no wrap-around is
	// involved for i=1), both of which beat its own (worse) personal best.
	updateVelocitiesAndPositions(swarm, cfg, rand.New(rand.NewSource(3)))
	assert.NotEqual(t, 0.0, swarm[1].Velocity[0])
}
