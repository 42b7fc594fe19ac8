package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opticalmesh/eonsim/pkg/config"
	"github.com/opticalmesh/eonsim/pkg/reporting"
	"github.com/opticalmesh/eonsim/pkg/simulation"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Args:  cobra.NoArgs,
	Short: "Execute a single simulation run",
	Long:  `Loads a topology/config file and runs one discrete-event simulation, printing the blocking statistics.`,
	RunE:  runSimulation,
}

func init() {
	runCmd.Flags().StringArray("set", []string{}, "override config values (e.g., --set offered_load=150)")
	runCmd.Flags().String("format", "text", "progress output format (text, json)")
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := buildLogger(cfg)
	outputFormat, _ := cmd.Flags().GetString("format")
	progress := reporting.NewProgressReporter(reporting.OutputFormat(outputFormat), logger)

	logger.Info("eonsim starting", "version", version, "config", cfg.Simulation.Name)

	arena, pipeline, err := buildPipeline(cfg, nil)
	if err != nil {
		return err
	}

	storage, err := reporting.NewStorage(cfg.Reporting.OutputDir, cfg.Reporting.KeepLastN, logger)
	if err != nil {
		return fmt.Errorf("failed to create report storage: %w", err)
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
		Metrics:              buildMetricsRegistry(cfg),
		Logger:               logger,
		Progress:             progress,
	})

	report, err := sim.Run(context.Background())
	if err != nil {
		return fmt.Errorf("simulation run failed: %w", err)
	}

	runLogger := logger.WithRunID(report.RunID)

	if _, err := storage.SaveReport(report); err != nil {
		runLogger.Warn("failed to save report", "error", err)
	}

	if !report.Success {
		return fmt.Errorf("simulation run did not complete successfully: %s", report.Message)
	}

	runLogger.Info("eonsim run completed")
	return nil
}

func toSimulationBitrates(bitrates []config.BitrateProfile) []simulation.BitrateProfile {
	out := make([]simulation.BitrateProfile, len(bitrates))
	for i, b := range bitrates {
		out[i] = simulation.BitrateProfile{Gbps: b.Gbps, Probability: b.Probability}
	}
	return out
}
