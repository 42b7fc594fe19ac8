package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseOverrides parses CLI override strings of the form "key=value",
// reproduced from the teacher's --set flag parser.
func ParseOverrides(overrides []string) (map[string]string, error) {
	result := make(map[string]string)

	for _, override := range overrides {
		parts := strings.SplitN(override, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid override format: %s (expected key=value)", override)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if key == "" {
			return nil, fmt.Errorf("empty key in override: %s", override)
		}

		result[key] = value
	}

	return result, nil
}

// ApplyOverrides applies parsed CLI overrides to a Config, supporting
// the dotted keys a --set flag would name for the fields a benchmark
// sweep typically varies.
func ApplyOverrides(c *Config, overrides map[string]string) error {
	for key, value := range overrides {
		switch key {
		case "seed", "simulation.seed":
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid seed override: %w", err)
			}
			c.Simulation.Seed = n

		case "num_calls", "simulation.num_calls":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid num_calls override: %w", err)
			}
			c.Simulation.NumCalls = n

		case "offered_load", "simulation.offered_load_erlang":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("invalid offered_load override: %w", err)
			}
			c.Simulation.OfferedLoad = f

		case "routing", "simulation.routing_nickname":
			c.Simulation.RoutingNickname = value

		case "spectrum", "simulation.spectrum_nickname":
			c.Simulation.SpectrumNickname = value

		case "regen", "simulation.regen_nickname":
			c.Simulation.RegenNickname = value

		case "num_slots", "simulation.num_slots":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid num_slots override: %w", err)
			}
			c.Simulation.NumSlots = n

		case "output_dir", "reporting.output_dir":
			c.Reporting.OutputDir = value

		case "pso.particles":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid pso.particles override: %w", err)
			}
			c.PSO.Particles = n

		case "pso.generations":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid pso.generations override: %w", err)
			}
			c.PSO.Generations = n

		case "nsga2.population_size":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid nsga2.population_size override: %w", err)
			}
			c.NSGA2.PopulationSize = n

		case "nsga2.generations":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid nsga2.generations override: %w", err)
			}
			c.NSGA2.Generations = n

		default:
			return fmt.Errorf("unsupported override key: %s", key)
		}
	}

	return nil
}
