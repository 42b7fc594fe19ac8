package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	version = "dev" // Will be set by build flags
)

var rootCmd = &cobra.Command{
	Use:   "eonsim",
	Short: "Translucent elastic optical network simulator",
	Long: `eonsim simulates call-blocking performance of a translucent elastic
optical network: routing, modulation selection, spectrum assignment, and
regenerator placement/assignment, driven by a Poisson call-arrival event
loop. It also hosts PSO and NSGA-II metaheuristics that treat the
simulator as a fitness oracle for routing coefficients and regenerator
placement.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Commands are defined in separate files:
	// - runCmd in run.go
	// - optimizeCmd (pso/nsga2 subcommands) in optimize.go
	// - validateCmd in validate.go
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
