package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Args:  cobra.NoArgs,
	Short: "Parse and validate a topology/config pair without simulating",
	Long: `Loads the config file, applies any --set overrides, builds the
topology arena and the RMSA pipeline, and reports any ConfigError (§7)
without running a single call. Exits non-zero on an invalid topology or
an unrecognised algorithm nickname, the --dry-run idiom a CI pipeline
runs before committing to a full simulation.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringArray("set", []string{}, "override config values (e.g., --set routing=length-occupation-availability)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	arena, _, err := buildPipeline(cfg, nil)
	if err != nil {
		return err
	}

	fmt.Printf("config %q is valid: %d nodes, %d links, routing=%s spectrum=%s regen=%s\n",
		cfg.Simulation.Name, len(arena.Nodes), len(arena.Links),
		cfg.Simulation.RoutingNickname, cfg.Simulation.SpectrumNickname, cfg.Simulation.RegenNickname)
	return nil
}
