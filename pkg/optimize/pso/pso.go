// Package pso implements the §4.7 particle swarm optimiser: a ring-
// topology swarm of particles in a real-valued box, evaluated against a
// black-box FitnessFunc — typically a full simulation run, one particle
// per cloned topology, concurrently evaluated per generation the way the
// teacher's orchestrator ran one goroutine per injected fault.
package pso

import (
	"context"
	"math"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/opticalmesh/eonsim/pkg/config"
	"github.com/opticalmesh/eonsim/pkg/reporting"
)

// FitnessFunc evaluates one candidate position and returns its fitness
// (lower is better). Implementations that clone per-call state (a
// topology.Arena, an RMSA pipeline) must do so internally — a FitnessFunc
// may be invoked concurrently from distinct goroutines for distinct
// particles within the same generation.
type FitnessFunc func(ctx context.Context, position []float64) (float64, error)

// Particle is one swarm member's position, velocity, and personal best.
type Particle struct {
	Position []float64
	Velocity []float64

	BestPosition []float64
	BestFitness  float64

	Fitness float64
}

// Result is the optimiser's final state plus a per-generation trace,
// the §6 "Optimiser IO" shape for PSO.
type Result struct {
	GlobalBestPosition []float64
	GlobalBestFitness  float64
	History            []reporting.PSOGenerationResult
}

// chi is Clerc's constriction factor for φ = c1 + c2 = 4.1, c1 = c2 =
// 2.05 (§4.7): χ = 2 / |2 − φ − √(φ²−4φ)| ≈ 0.7298.
const (
	c1 = 2.05
	c2 = 2.05
)

var chi = constrictionFactor(c1 + c2)

func constrictionFactor(phi float64) float64 {
	d := phi*phi - 4*phi
	return 2 / math.Abs(2-phi-math.Sqrt(d))
}

// Run executes cfg.Generations generations of the swarm against fitness,
// seeded from rng for both the initial population and the per-update
// ε1/ε2 draws, so a fixed seed reproduces a run bit-for-bit. Run returns
// ctx.Err() (via the errgroup) the first time a generation's fitness
// evaluation is cancelled; partially completed generations are not
// recorded in the returned Result's History.
func Run(ctx context.Context, cfg config.PSOConfig, fitness FitnessFunc, rng *rand.Rand) (*Result, error) {
	swarm := newSwarm(cfg, rng)
	res := &Result{GlobalBestFitness: math.Inf(1)}

	for gen := 0; gen < cfg.Generations; gen++ {
		if err := evaluateGeneration(ctx, swarm, fitness); err != nil {
			return res, err
		}

		for i := range swarm {
			p := &swarm[i]
			if p.Fitness < p.BestFitness {
				p.BestFitness = p.Fitness
				p.BestPosition = append([]float64(nil), p.Position...)
			}
			if p.BestFitness < res.GlobalBestFitness {
				res.GlobalBestFitness = p.BestFitness
				res.GlobalBestPosition = append([]float64(nil), p.BestPosition...)
			}
		}

		updateVelocitiesAndPositions(swarm, cfg, rng)

		res.History = append(res.History, reporting.PSOGenerationResult{
			Generation:  gen,
			BestFitness: res.GlobalBestFitness,
			BestPos:     append([]float64(nil), res.GlobalBestPosition...),
		})
	}

	return res, nil
}

func newSwarm(cfg config.PSOConfig, rng *rand.Rand) []Particle {
	swarm := make([]Particle, cfg.Particles)
	for i := range swarm {
		pos := make([]float64, cfg.Dimensions)
		vel := make([]float64, cfg.Dimensions)
		for d := 0; d < cfg.Dimensions; d++ {
			pos[d] = cfg.XMin + rng.Float64()*(cfg.XMax-cfg.XMin)
			vel[d] = cfg.VMin + rng.Float64()*(cfg.VMax-cfg.VMin)
		}
		swarm[i] = Particle{
			Position:     pos,
			Velocity:     vel,
			BestPosition: append([]float64(nil), pos...),
			BestFitness:  math.Inf(1),
		}
	}
	return swarm
}

// evaluateGeneration runs fitness for every particle concurrently via an
// errgroup, matching §5's "independent fitness evaluations may run as
// parallel tasks" concurrency model. The first evaluation error (fatal
// fault or cancellation) cancels the remaining in-flight evaluations.
func evaluateGeneration(ctx context.Context, swarm []Particle, fitness FitnessFunc) error {
	g, gctx := errgroup.WithContext(ctx)
	for i := range swarm {
		i := i
		g.Go(func() error {
			f, err := fitness(gctx, swarm[i].Position)
			if err != nil {
				return err
			}
			swarm[i].Fitness = f
			return nil
		})
	}
	return g.Wait()
}

// updateVelocitiesAndPositions applies the constriction-factor velocity
// update (§4.7) with a ring neighbourhood: particle i's neighbourhood
// best is the best personal best among {(i-1+P) mod P, i, (i+1) mod P}
// — explicitly the add-P-then-modulo form, never a bare `(i-1)%P`
// (which in Go yields -1, an out-of-range index, when i=0).
func updateVelocitiesAndPositions(swarm []Particle, cfg config.PSOConfig, rng *rand.Rand) {
	P := len(swarm)
	neighborBest := make([][]float64, P)
	for i := range swarm {
		left := (i - 1 + P) % P
		right := (i + 1) % P
		best := i
		if swarm[left].BestFitness < swarm[best].BestFitness {
			best = left
		}
		if swarm[right].BestFitness < swarm[best].BestFitness {
			best = right
		}
		neighborBest[i] = swarm[best].BestPosition
	}

	for i := range swarm {
		p := &swarm[i]
		nBest := neighborBest[i]
		for d := 0; d < cfg.Dimensions; d++ {
			e1, e2 := rng.Float64(), rng.Float64()
			v := chi * (p.Velocity[d] + c1*e1*(p.BestPosition[d]-p.Position[d]) + c2*e2*(nBest[d]-p.Position[d]))
			v = clip(v, cfg.VMin, cfg.VMax)
			p.Velocity[d] = v
			p.Position[d] = clip(p.Position[d]+v, cfg.XMin, cfg.XMax)
		}
	}
}

func clip(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
