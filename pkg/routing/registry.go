// Package routing selects a path between a call's source and destination
// node. Algorithms are registered under a nickname at package init and
// looked up by name at configuration time — the same nickname-dispatch
// shape the teacher uses for its fault-injection families, applied here
// to a routing-strategy family instead.
package routing

import (
	"fmt"

	"github.com/opticalmesh/eonsim/pkg/topology"
)

// Algorithm computes a path from src to dst in a, or reports that none
// exists.
type Algorithm interface {
	Route(a *topology.Arena, src, dst topology.NodeID) ([]topology.LinkID, bool)
}

// Constructor builds an Algorithm from its configuration.
type Constructor func(cfg Config) Algorithm

var registry = map[string]Constructor{}

// Register adds a constructor under a nickname. Called from package init
// functions only; the registry is built once at startup and never
// mutated afterwards.
func Register(nickname string, ctor Constructor) {
	registry[nickname] = ctor
}

// Config carries the parameters every routing algorithm may need. Fields
// unused by a given algorithm are ignored.
type Config struct {
	// LMaxKm normalises the length term of cost-based routing.
	LMaxKm float64
	// NumSlots normalises the occupancy term of cost-based routing.
	NumSlots int
	// Beta is the AdaptiveWeighting/PowerSeriesRouting coefficient vector
	// β_k (§4.3), the decision variable PSO optimises. Order: length,
	// occupancy, contiguity, fragmentation.
	Beta []float64
}

// New looks up nickname in the registry and constructs it, returning
// ConfigError-class failure (a non-nil error) for an unknown
// nickname — the RMSA pipeline surfaces that as a fatal configuration
// error, not a blocked call.
func New(nickname string, cfg Config) (Algorithm, error) {
	ctor, ok := registry[nickname]
	if !ok {
		return nil, fmt.Errorf("routing: unrecognized algorithm nickname %q", nickname)
	}
	return ctor(cfg), nil
}

// Names returns the registered nicknames, mainly for CLI help/validation.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	return names
}
