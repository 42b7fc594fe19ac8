package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opticalmesh/eonsim/pkg/config"
	"github.com/opticalmesh/eonsim/pkg/metrics"
	"github.com/opticalmesh/eonsim/pkg/reporting"
	"github.com/opticalmesh/eonsim/pkg/rmsa"
	"github.com/opticalmesh/eonsim/pkg/topology"
)

// loadConfig loads the configuration from file, falling back to the
// built-in defaults when the file does not exist (config.Load already
// does this), then applies any --set overrides and validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath := cfgFile
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	setFlags, _ := cmd.Flags().GetStringArray("set")
	if len(setFlags) > 0 {
		overrides, err := config.ParseOverrides(setFlags)
		if err != nil {
			return nil, fmt.Errorf("failed to parse overrides: %w", err)
		}
		if err := config.ApplyOverrides(cfg, overrides); err != nil {
			return nil, fmt.Errorf("failed to apply overrides: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// buildLogger constructs the run's zerolog-backed Logger from the
// config's logging section, bumping the level to debug under --verbose.
func buildLogger(cfg *config.Config) *reporting.Logger {
	level := reporting.LogLevel(cfg.Logging.Level)
	if verbose {
		level = reporting.LogLevelDebug
	}
	return reporting.NewLogger(reporting.LoggerConfig{
		Level:  level,
		Format: reporting.LogFormat(cfg.Logging.Format),
		Output: os.Stdout,
	})
}

// buildPipeline assembles the arena and RMSA pipeline a single
// simulation or fitness evaluation needs. beta overrides the adaptive
// routing coefficients when non-nil (the PSO decision vector).
func buildPipeline(cfg *config.Config, beta []float64) (*topology.Arena, *rmsa.Pipeline, error) {
	arena, err := cfg.BuildArena()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build topology: %w", err)
	}

	rmsaCfg := cfg.RMSAConfig()
	rmsaCfg.Beta = beta
	pipeline, err := rmsa.New(rmsaCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build RMSA pipeline: %w", err)
	}

	return arena, pipeline, nil
}

func buildMetricsRegistry(cfg *config.Config) *metrics.Registry {
	if !cfg.Metrics.Enabled {
		return nil
	}
	return metrics.New()
}
