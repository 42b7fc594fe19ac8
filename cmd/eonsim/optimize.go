package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/opticalmesh/eonsim/pkg/config"
	"github.com/opticalmesh/eonsim/pkg/optimize/nsga2"
	"github.com/opticalmesh/eonsim/pkg/optimize/pso"
	"github.com/opticalmesh/eonsim/pkg/reporting"
	"github.com/opticalmesh/eonsim/pkg/rmsa"
	"github.com/opticalmesh/eonsim/pkg/simulation"
	"github.com/opticalmesh/eonsim/pkg/topology"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Drive PSO or NSGA-II against the simulator as a fitness oracle",
}

var optimizePSOCmd = &cobra.Command{
	Use:   "pso",
	Args:  cobra.NoArgs,
	Short: "Tune the adaptive-weighting routing coefficients with PSO (§4.7)",
	RunE:  runOptimizePSO,
}

var optimizeNSGA2Cmd = &cobra.Command{
	Use:   "nsga2",
	Args:  cobra.NoArgs,
	Short: "Evolve per-node regenerator counts with NSGA-II (§4.8)",
	RunE:  runOptimizeNSGA2,
}

func init() {
	optimizePSOCmd.Flags().StringArray("set", []string{}, "override config values (e.g., --set pso.generations=100)")
	optimizeNSGA2Cmd.Flags().StringArray("set", []string{}, "override config values")

	optimizeCmd.AddCommand(optimizePSOCmd)
	optimizeCmd.AddCommand(optimizeNSGA2Cmd)
}

// runOptimizePSO treats one full simulation run, seeded with a
// candidate Beta coefficient vector, as the PSO fitness: lower
// call-blocking probability is a better particle. Each evaluation
// clones the arena privately (§5) so concurrent particles in the same
// generation never share mutable topology state.
func runOptimizePSO(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := buildLogger(cfg)

	baseArena, err := cfg.BuildArena()
	if err != nil {
		return fmt.Errorf("failed to build topology: %w", err)
	}

	fitness := func(ctx context.Context, position []float64) (float64, error) {
		return evaluateBlockingForBeta(ctx, cfg, baseArena, position)
	}

	rng := rand.New(rand.NewSource(cfg.Simulation.Seed))
	result, err := pso.Run(cmd.Context(), cfg.PSO, fitness, rng)
	if err != nil {
		return fmt.Errorf("pso run failed: %w", err)
	}

	logger.Info("pso optimisation completed",
		"best_fitness", result.GlobalBestFitness,
		"best_position", fmt.Sprintf("%v", result.GlobalBestPosition))

	return writeOptimizerOutput(cfg, logger, "pso", result)
}

// evaluateBlockingForBeta runs one full simulation against a cloned
// arena and an AdaptiveWeighting-routed pipeline built from beta,
// returning the call-blocking probability as the scalar fitness PSO
// minimises.
func evaluateBlockingForBeta(ctx context.Context, cfg *config.Config, baseArena *topology.Arena, beta []float64) (float64, error) {
	arena := baseArena.Clone()

	rmsaCfg := cfg.RMSAConfig()
	rmsaCfg.Beta = beta
	rmsaCfg.RoutingNickname = "adaptive-weighting"
	pipeline, err := rmsa.New(rmsaCfg)
	if err != nil {
		return 0, err
	}

	sim := simulation.New(simulation.Config{
		Arena:                arena,
		Pipeline:             pipeline,
		DeviceChain:          cfg.DeviceChain,
		NumCalls:             cfg.Simulation.NumCalls,
		WarmupCalls:          cfg.Simulation.WarmupCalls,
		OfferedLoad:          cfg.Simulation.OfferedLoad,
		Bitrates:             toSimulationBitrates(cfg.Simulation.Bitrates),
		Seed:                 cfg.Simulation.Seed,
		RegeneratorCapExCost: cfg.Simulation.RegeneratorCapExCost,
		RegeneratorOpExCost:  cfg.Simulation.RegeneratorOpExCost,
		ConfigName:           cfg.Simulation.Name,
	})

	report, err := sim.Run(ctx)
	if err != nil {
		return 0, err
	}
	return report.CallBlockingProbability, nil
}

// runOptimizeNSGA2 evolves a per-node regenerator-count genome against
// the simulator's (regenerators used, blocking probability) objective
// pair (§4.8), one cloned arena per individual evaluation.
func runOptimizeNSGA2(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := buildLogger(cfg)

	baseArena, err := cfg.BuildArena()
	if err != nil {
		return fmt.Errorf("failed to build topology: %w", err)
	}
	pipeline, err := rmsa.New(cfg.RMSAConfig())
	if err != nil {
		return fmt.Errorf("failed to build RMSA pipeline: %w", err)
	}

	bounds := nsga2.Bounds{
		NumNodes: len(baseArena.Nodes),
		RMax:     cfg.NSGA2.MaxRegeneratorsNode,
	}

	fitness := func(ctx context.Context, genome []int) ([2]float64, error) {
		return evaluateObjectivesForGenome(ctx, cfg, baseArena, pipeline, genome)
	}

	rng := rand.New(rand.NewSource(cfg.Simulation.Seed))
	result, err := nsga2.Run(cmd.Context(), cfg.NSGA2, bounds, fitness, rng)
	if err != nil {
		return fmt.Errorf("nsga2 run failed: %w", err)
	}

	logger.Info("nsga2 optimisation completed",
		"population_size", len(result.FinalPopulation),
		"generations", len(result.FirstFrontHistory)-1)

	return writeOptimizerOutput(cfg, logger, "nsga2", result)
}

// evaluateObjectivesForGenome assigns genome's regenerator counts onto
// a freshly cloned arena, runs one simulation, and returns (total
// regenerators used, call-blocking probability) as the objective pair
// NSGA-II minimises.
func evaluateObjectivesForGenome(ctx context.Context, cfg *config.Config, baseArena *topology.Arena, pipeline *rmsa.Pipeline, genome []int) ([2]float64, error) {
	arena := baseArena.Clone()
	for i, n := range arena.Nodes {
		if i < len(genome) {
			n.TotalRegenerators = genome[i]
		}
	}

	sim := simulation.New(simulation.Config{
		Arena:                arena,
		Pipeline:             pipeline,
		DeviceChain:          cfg.DeviceChain,
		NumCalls:             cfg.Simulation.NumCalls,
		WarmupCalls:          cfg.Simulation.WarmupCalls,
		OfferedLoad:          cfg.Simulation.OfferedLoad,
		Bitrates:             toSimulationBitrates(cfg.Simulation.Bitrates),
		Seed:                 cfg.Simulation.Seed,
		RegeneratorCapExCost: cfg.Simulation.RegeneratorCapExCost,
		RegeneratorOpExCost:  cfg.Simulation.RegeneratorOpExCost,
		ConfigName:           cfg.Simulation.Name,
	})

	report, err := sim.Run(ctx)
	if err != nil {
		return [2]float64{}, err
	}
	return [2]float64{float64(report.RegeneratorsUsedTotal), report.CallBlockingProbability}, nil
}

// writeOptimizerOutput persists one optimiser's result as a JSON file
// under the reporting output directory, the §6 "Optimiser IO" contract
// (PSO per-generation best coefficients, NSGA-II's first-Pareto-front
// history), the same JSON-to-rotated-directory idiom Storage.SaveReport
// uses for simulation reports.
func writeOptimizerOutput(cfg *config.Config, logger *reporting.Logger, kind string, result interface{}) error {
	if err := os.MkdirAll(cfg.Reporting.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := fmt.Sprintf("%s-%s.json", kind, time.Now().Format("20060102-150405"))
	path := filepath.Join(cfg.Reporting.OutputDir, filename)

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s result: %w", kind, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s result: %w", kind, err)
	}

	logger.Info(fmt.Sprintf("%s result saved", kind), "path", path)
	return nil
}
