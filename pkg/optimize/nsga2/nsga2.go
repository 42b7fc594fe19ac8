// Package nsga2 implements the §4.8 NSGA-II optimiser over an integer
// genome — one regenerator count per node — evaluated bi-objectively
// against (number of regenerators, blocking probability). Each
// individual's fitness is typically a full simulation run owning a
// privately cloned topology (§5), evaluated concurrently across the
// population the way pso.Run evaluates particles.
package nsga2

import (
	"context"
	"math"
	"math/rand"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/opticalmesh/eonsim/pkg/config"
	"github.com/opticalmesh/eonsim/pkg/reporting"
)

// numObjectives is fixed at 2 (§4.8: number of regenerators, blocking
// probability), both minimised.
const numObjectives = 2

// FitnessFunc evaluates one candidate genome (per-node regenerator
// counts) and returns its (regenerator count, blocking probability)
// objective pair, both to be minimised.
type FitnessFunc func(ctx context.Context, genome []int) ([2]float64, error)

// Individual is one population member: its genome, evaluated objectives,
// and the bookkeeping fast non-dominated sort / crowding distance need.
type Individual struct {
	Genome     []int
	Objectives [2]float64

	rank             int
	crowding         float64
	dominationCount  int
	dominatedByMe    []int
}

// Result is the optimiser's final population summarised as Pareto fronts,
// the §6 "Optimiser IO" shape for NSGA-II: front zero (rank 0) of the
// final generation plus the same for every intermediate generation so a
// caller can plot hypervolume growth.
type Result struct {
	FinalPopulation []Individual
	FirstFrontHistory [][]reporting.ParetoPoint
}

// Bounds describes the integer genome's per-gene bounds: length numNodes,
// each gene in [0, RMax].
type Bounds struct {
	NumNodes int
	RMax     int
}

// Run executes the standard NSGA-II pipeline (§4.8) for cfg.Generations
// generations, or until the first front shows no improvement in
// hypervolume proxy (mean of the summed objectives over the first front) for
// cfg.NoImprovementLimit consecutive generations.
func Run(ctx context.Context, cfg config.NSGA2Config, bounds Bounds, fitness FitnessFunc, rng *rand.Rand) (*Result, error) {
	pop := initialPopulation(cfg, bounds, rng)
	if err := evaluate(ctx, pop, fitness); err != nil {
		return nil, err
	}
	fastNonDominatedSort(pop)
	assignCrowdingDistances(pop)

	res := &Result{}
	res.FirstFrontHistory = append(res.FirstFrontHistory, frontPoints(pop, 0))

	bestFirstFrontScore := hypervolumeProxy(pop)
	staleGenerations := 0

	for gen := 1; gen <= cfg.Generations; gen++ {
		offspring := makeOffspring(pop, cfg, bounds, rng)
		if err := evaluate(ctx, offspring, fitness); err != nil {
			return res, err
		}

		combined := append(append([]Individual(nil), pop...), offspring...)
		fastNonDominatedSort(combined)
		pop = selectNextGeneration(combined, cfg.PopulationSize)
		assignCrowdingDistances(pop)

		res.FirstFrontHistory = append(res.FirstFrontHistory, frontPoints(pop, gen))

		score := hypervolumeProxy(pop)
		if score >= bestFirstFrontScore-1e-12 {
			staleGenerations++
		} else {
			staleGenerations = 0
			bestFirstFrontScore = score
		}
		if cfg.NoImprovementLimit > 0 && staleGenerations >= cfg.NoImprovementLimit {
			break
		}
	}

	res.FinalPopulation = pop
	return res, nil
}

func initialPopulation(cfg config.NSGA2Config, bounds Bounds, rng *rand.Rand) []Individual {
	pop := make([]Individual, cfg.PopulationSize)
	for i := range pop {
		genome := make([]int, bounds.NumNodes)
		for g := range genome {
			genome[g] = rng.Intn(bounds.RMax + 1)
		}
		pop[i] = Individual{Genome: genome}
	}
	return pop
}

// evaluate runs fitness for every individual concurrently via an
// errgroup, matching §5's concurrency model.
func evaluate(ctx context.Context, pop []Individual, fitness FitnessFunc) error {
	g, gctx := errgroup.WithContext(ctx)
	for i := range pop {
		i := i
		g.Go(func() error {
			obj, err := fitness(gctx, pop[i].Genome)
			if err != nil {
				return err
			}
			pop[i].Objectives = obj
			return nil
		})
	}
	return g.Wait()
}

// dominates reports whether a Pareto-dominates b: no worse in every
// objective, strictly better in at least one (both objectives minimised).
func dominates(a, b Individual) bool {
	betterSomewhere := false
	for k := 0; k < numObjectives; k++ {
		if a.Objectives[k] > b.Objectives[k] {
			return false
		}
		if a.Objectives[k] < b.Objectives[k] {
			betterSomewhere = true
		}
	}
	return betterSomewhere
}

// fastNonDominatedSort assigns each individual's rank in place (§4.8
// step 2), the standard O(MN^2) sweep: for each individual, count how
// many dominate it and track who it dominates, then peel off
// successive fronts.
func fastNonDominatedSort(pop []Individual) {
	n := len(pop)
	for i := range pop {
		pop[i].dominationCount = 0
		pop[i].dominatedByMe = nil
	}

	var fronts [][]int
	front0 := []int{}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if dominates(pop[i], pop[j]) {
				pop[i].dominatedByMe = append(pop[i].dominatedByMe, j)
			} else if dominates(pop[j], pop[i]) {
				pop[i].dominationCount++
			}
		}
		if pop[i].dominationCount == 0 {
			pop[i].rank = 0
			front0 = append(front0, i)
		}
	}
	fronts = append(fronts, front0)

	for f := 0; len(fronts[f]) > 0; f++ {
		var next []int
		for _, i := range fronts[f] {
			for _, j := range pop[i].dominatedByMe {
				pop[j].dominationCount--
				if pop[j].dominationCount == 0 {
					pop[j].rank = f + 1
					next = append(next, j)
				}
			}
		}
		if len(next) == 0 {
			break
		}
		fronts = append(fronts, next)
	}
}

// assignCrowdingDistances computes each individual's crowding distance
// within its own rank (§4.8 step 3), normalised by each objective's
// range across that front; boundary individuals get +Inf so they are
// never discarded by a partial-front cut.
func assignCrowdingDistances(pop []Individual) {
	byRank := make(map[int][]int)
	for i, ind := range pop {
		byRank[ind.rank] = append(byRank[ind.rank], i)
	}

	for i := range pop {
		pop[i].crowding = 0
	}

	for _, idxs := range byRank {
		for k := 0; k < numObjectives; k++ {
			sort.Slice(idxs, func(a, b int) bool {
				return pop[idxs[a]].Objectives[k] < pop[idxs[b]].Objectives[k]
			})
			lo := pop[idxs[0]].Objectives[k]
			hi := pop[idxs[len(idxs)-1]].Objectives[k]
			pop[idxs[0]].crowding = math.Inf(1)
			pop[idxs[len(idxs)-1]].crowding = math.Inf(1)

			rng := hi - lo
			if rng <= 0 {
				continue
			}
			for p := 1; p < len(idxs)-1; p++ {
				if math.IsInf(pop[idxs[p]].crowding, 1) {
					continue
				}
				delta := pop[idxs[p+1]].Objectives[k] - pop[idxs[p-1]].Objectives[k]
				pop[idxs[p]].crowding += delta / rng
			}
		}
	}
}

// crowdedBetter implements NSGA-II's (rank, crowding) partial order used
// by both tournament selection and elitist replacement: lower rank wins,
// ties broken by larger crowding distance (more isolated = preferred).
func crowdedBetter(a, b Individual) bool {
	if a.rank != b.rank {
		return a.rank < b.rank
	}
	return a.crowding > b.crowding
}

// binaryTournament picks the better of two uniformly drawn individuals.
func binaryTournament(pop []Individual, rng *rand.Rand) Individual {
	a := pop[rng.Intn(len(pop))]
	b := pop[rng.Intn(len(pop))]
	if crowdedBetter(a, b) {
		return a
	}
	return b
}

// makeOffspring produces len(pop) children via binary tournament
// selection, simulated binary crossover, and polynomial mutation on the
// integer genome (§4.8 steps 4-5).
func makeOffspring(pop []Individual, cfg config.NSGA2Config, bounds Bounds, rng *rand.Rand) []Individual {
	offspring := make([]Individual, 0, len(pop))
	for len(offspring) < len(pop) {
		p1 := binaryTournament(pop, rng)
		p2 := binaryTournament(pop, rng)
		c1, c2 := simulatedBinaryCrossover(p1.Genome, p2.Genome, cfg.CrossoverEta, bounds, rng)
		polynomialMutate(c1, cfg.MutationEta, cfg.MutationProbability, bounds, rng)
		polynomialMutate(c2, cfg.MutationEta, cfg.MutationProbability, bounds, rng)
		offspring = append(offspring, Individual{Genome: c1}, Individual{Genome: c2})
	}
	return offspring[:len(pop)]
}

// simulatedBinaryCrossover applies SBX per-gene, rounding the real-valued
// result back to the nearest integer and clamping to [0, RMax].
func simulatedBinaryCrossover(g1, g2 []int, eta float64, bounds Bounds, rng *rand.Rand) ([]int, []int) {
	c1 := make([]int, len(g1))
	c2 := make([]int, len(g2))
	for i := range g1 {
		x1, x2 := float64(g1[i]), float64(g2[i])
		u := rng.Float64()

		var beta float64
		if u <= 0.5 {
			beta = math.Pow(2*u, 1/(eta+1))
		} else {
			beta = math.Pow(1/(2*(1-u)), 1/(eta+1))
		}

		child1 := 0.5 * ((1+beta)*x1 + (1-beta)*x2)
		child2 := 0.5 * ((1-beta)*x1 + (1+beta)*x2)

		c1[i] = clampInt(round(child1), 0, bounds.RMax)
		c2[i] = clampInt(round(child2), 0, bounds.RMax)
	}
	return c1, c2
}

// polynomialMutate mutates each gene independently with probability
// mutationProb, then clamps back to [0, RMax] (§4.8 step 5).
func polynomialMutate(genome []int, eta, mutationProb float64, bounds Bounds, rng *rand.Rand) {
	for i := range genome {
		if rng.Float64() >= mutationProb {
			continue
		}
		x := float64(genome[i])
		lo, hi := 0.0, float64(bounds.RMax)
		if hi <= lo {
			continue
		}
		delta1 := (x - lo) / (hi - lo)
		delta2 := (hi - x) / (hi - lo)
		u := rng.Float64()

		var deltaq float64
		mutPow := 1 / (eta + 1)
		if u <= 0.5 {
			xy := 1 - delta1
			val := 2*u + (1-2*u)*math.Pow(xy, eta+1)
			deltaq = math.Pow(val, mutPow) - 1
		} else {
			xy := 1 - delta2
			val := 2*(1-u) + 2*(u-0.5)*math.Pow(xy, eta+1)
			deltaq = 1 - math.Pow(val, mutPow)
		}

		x = x + deltaq*(hi-lo)
		genome[i] = clampInt(round(x), 0, bounds.RMax)
	}
}

func round(x float64) int { return int(math.Round(x)) }

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// selectNextGeneration implements elitist (μ+λ) replacement (§4.8 step
// 6): sorted combined population filled front by front, the partial
// front trimmed by descending crowding distance.
func selectNextGeneration(combined []Individual, populationSize int) []Individual {
	byRank := make(map[int][]Individual)
	maxRank := 0
	for _, ind := range combined {
		byRank[ind.rank] = append(byRank[ind.rank], ind)
		if ind.rank > maxRank {
			maxRank = ind.rank
		}
	}

	var next []Individual
	for r := 0; r <= maxRank && len(next) < populationSize; r++ {
		front := byRank[r]
		if len(next)+len(front) <= populationSize {
			next = append(next, front...)
			continue
		}
		sort.Slice(front, func(a, b int) bool {
			return front[a].crowding > front[b].crowding
		})
		remaining := populationSize - len(next)
		next = append(next, front[:remaining]...)
	}
	return next
}

// hypervolumeProxy is a cheap monotone stand-in for full hypervolume:
// the mean of both objectives across the current first front, used only
// to detect no-improvement termination (§4.8), never reported as the
// optimiser's actual hypervolume.
func hypervolumeProxy(pop []Individual) float64 {
	var sum float64
	var n int
	for _, ind := range pop {
		if ind.rank != 0 {
			continue
		}
		sum += ind.Objectives[0] + ind.Objectives[1]
		n++
	}
	if n == 0 {
		return math.Inf(1)
	}
	return sum / float64(n)
}

func frontPoints(pop []Individual, generation int) []reporting.ParetoPoint {
	var points []reporting.ParetoPoint
	for _, ind := range pop {
		if ind.rank != 0 {
			continue
		}
		points = append(points, reporting.ParetoPoint{
			Generation: generation,
			Genome:     append([]int(nil), ind.Genome...),
			Objectives: []float64{ind.Objectives[0], ind.Objectives[1]},
		})
	}
	return points
}
