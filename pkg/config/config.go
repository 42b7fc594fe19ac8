// Package config loads the YAML configuration that builds a
// SimulationContext: physical-layer defaults, algorithm nicknames,
// traffic profile, PRNG seed, and optimiser hyperparameters (§6, §9).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level simulation configuration file shape.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Topology   TopologyConfig   `yaml:"topology"`
	Logging    LoggingConfig    `yaml:"logging"`
	Reporting  ReportingConfig  `yaml:"reporting"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	PSO        PSOConfig        `yaml:"pso"`
	NSGA2      NSGA2Config      `yaml:"nsga2"`
}

// SimulationConfig carries the §9 SimulationContext globals: physical
// defaults, algorithm nicknames, the call generator's traffic profile,
// and the run's seed.
type SimulationConfig struct {
	Name string `yaml:"name"`

	NumSlots         int     `yaml:"num_slots"`
	AlphaFiberDBKm   float64 `yaml:"alpha_fiber_db_km"`
	InputPowerDBm    float64 `yaml:"input_power_dbm"`
	InputOSNRDB      float64 `yaml:"input_osnr_db"`
	ConsiderAseNoise bool    `yaml:"consider_ase_noise"`
	ConsiderFilterImperfection bool `yaml:"consider_filter_imperfection"`

	RoutingNickname  string `yaml:"routing_nickname"`
	SpectrumNickname string `yaml:"spectrum_nickname"`
	RegenNickname    string `yaml:"regen_nickname"`

	NumCalls    int     `yaml:"num_calls"`
	WarmupCalls int     `yaml:"warmup_calls"`
	OfferedLoad float64 `yaml:"offered_load_erlang"`
	Bitrates    []BitrateProfile `yaml:"bitrates"`

	Seed int64 `yaml:"seed"`

	RegeneratorCapExCost float64 `yaml:"regenerator_capex_cost"`
	RegeneratorOpExCost  float64 `yaml:"regenerator_opex_cost"`
}

// BitrateProfile is one (bitrate, probability) entry of the traffic mix
// a CallGenerator draws requested bitrates from.
type BitrateProfile struct {
	Gbps        float64 `yaml:"gbps"`
	Probability float64 `yaml:"probability"`
}

// TopologyConfig is the §6 "Topology input": nodes with type/regenerator
// count, and links with endpoints/length/span length.
type TopologyConfig struct {
	Nodes []NodeConfig `yaml:"nodes"`
	Links []LinkConfig `yaml:"links"`
}

// NodeConfig describes one node of the topology file.
type NodeConfig struct {
	Name              string `yaml:"name"`
	Type              string `yaml:"type"` // transparent | translucent | opaque
	TotalRegenerators int    `yaml:"total_regenerators"`
}

// LinkConfig describes one bidirectional fibre link.
type LinkConfig struct {
	From         string  `yaml:"from"`
	To           string  `yaml:"to"`
	LengthKm     float64 `yaml:"length_km"`
	SpanLengthKm float64 `yaml:"span_length_km"`
}

// LoggingConfig configures the zerolog-backed Logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ReportingConfig configures report persistence and progress output.
type ReportingConfig struct {
	OutputDir    string `yaml:"output_dir"`
	KeepLastN    int    `yaml:"keep_last_n"`
	ProgressForm string `yaml:"progress_format"` // text | json
}

// MetricsConfig configures the Prometheus metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// PSOConfig is §4.7's swarm hyperparameters.
type PSOConfig struct {
	Particles   int       `yaml:"particles"`
	Generations int       `yaml:"generations"`
	Dimensions  int       `yaml:"dimensions"`
	XMin        float64   `yaml:"x_min"`
	XMax        float64   `yaml:"x_max"`
	VMin        float64   `yaml:"v_min"`
	VMax        float64   `yaml:"v_max"`
}

// NSGA2Config is §4.8's population hyperparameters.
type NSGA2Config struct {
	PopulationSize      int `yaml:"population_size"`
	Generations         int `yaml:"generations"`
	NoImprovementLimit  int `yaml:"no_improvement_limit"`
	MaxRegeneratorsNode int `yaml:"max_regenerators_per_node"`
	CrossoverEta        float64 `yaml:"crossover_eta"`
	MutationEta         float64 `yaml:"mutation_eta"`
	MutationProbability float64 `yaml:"mutation_probability"`
}

// DefaultConfig returns the simulator's built-in defaults (§4.1, §4.2,
// §6 default N_slots=320, α=0.2 dB/km).
func DefaultConfig() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Name:                       "default",
			NumSlots:                   320,
			AlphaFiberDBKm:             0.2,
			InputPowerDBm:              0,
			InputOSNRDB:                35,
			ConsiderAseNoise:           true,
			ConsiderFilterImperfection: false,
			RoutingNickname:            "shortest-path",
			SpectrumNickname:           "first-fit",
			RegenNickname:              "flr",
			NumCalls:                   10000,
			WarmupCalls:                1000,
			OfferedLoad:                100,
			Bitrates: []BitrateProfile{
				{Gbps: 100, Probability: 0.5},
				{Gbps: 200, Probability: 0.3},
				{Gbps: 400, Probability: 0.2},
			},
			Seed:                 42,
			RegeneratorCapExCost: 1000,
			RegeneratorOpExCost:  10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Reporting: ReportingConfig{
			OutputDir:    "./reports",
			KeepLastN:    50,
			ProgressForm: "text",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9300",
		},
		PSO: PSOConfig{
			Particles:   20,
			Generations: 50,
			Dimensions:  4,
			XMin:        -5,
			XMax:        5,
			VMin:        -2,
			VMax:        2,
		},
		NSGA2: NSGA2Config{
			PopulationSize:      20,
			Generations:         50,
			NoImprovementLimit:  10,
			MaxRegeneratorsNode: 10,
			CrossoverEta:        20,
			MutationEta:         20,
			MutationProbability: 0.1,
		},
	}
}

// Load reads and parses a YAML config file, expanding ${VAR}/$VAR
// environment references before unmarshalling, and falling back to
// DefaultConfig when path does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = "config.yaml"
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := []byte(os.ExpandEnv(string(data)))

	if err := yaml.Unmarshal(expanded, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the required fields and obvious ranges, surfacing a
// ConfigError per §7 before the simulation core ever runs.
func (c *Config) Validate() error {
	s := c.Simulation

	if s.NumSlots <= 0 {
		return fmt.Errorf("simulation.num_slots must be positive")
	}
	if s.RoutingNickname == "" {
		return fmt.Errorf("simulation.routing_nickname is required")
	}
	if s.SpectrumNickname == "" {
		return fmt.Errorf("simulation.spectrum_nickname is required")
	}
	if s.RegenNickname == "" {
		return fmt.Errorf("simulation.regen_nickname is required")
	}
	if s.NumCalls <= 0 {
		return fmt.Errorf("simulation.num_calls must be positive")
	}
	if s.OfferedLoad <= 0 {
		return fmt.Errorf("simulation.offered_load_erlang must be positive")
	}
	if len(s.Bitrates) == 0 {
		return fmt.Errorf("simulation.bitrates must have at least one entry")
	}

	var totalProb float64
	for _, b := range s.Bitrates {
		totalProb += b.Probability
	}
	if totalProb <= 0 {
		return fmt.Errorf("simulation.bitrates probabilities must sum to a positive value")
	}

	if len(c.Topology.Nodes) == 0 {
		return fmt.Errorf("topology.nodes must have at least one entry")
	}
	if len(c.Topology.Links) == 0 {
		return fmt.Errorf("topology.links must have at least one entry")
	}

	if c.Reporting.OutputDir == "" {
		return fmt.Errorf("reporting.output_dir is required")
	}

	return nil
}
