// Package spectrum assigns a contiguous, continuous slot window to a call
// across every link of a transparent segment. Policies are registered
// under a nickname the same way pkg/routing registers routing families.
package spectrum

import (
	"fmt"
	"math/rand"

	"github.com/opticalmesh/eonsim/pkg/topology"
)

// Policy picks a slot window of the given length that is free on every
// link in the path, or reports none exists.
type Policy interface {
	Assign(a *topology.Arena, links []topology.LinkID, length int, rng *rand.Rand) (topology.Window, bool)
}

// Constructor builds a Policy.
type Constructor func() Policy

var registry = map[string]Constructor{}

// Register adds a constructor under a nickname.
func Register(nickname string, ctor Constructor) {
	registry[nickname] = ctor
}

// New looks up and constructs a policy by nickname.
func New(nickname string) (Policy, error) {
	ctor, ok := registry[nickname]
	if !ok {
		return nil, fmt.Errorf("spectrum: unrecognized assignment algorithm nickname %q", nickname)
	}
	return ctor(), nil
}

// Names returns the registered nicknames.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	return names
}

// commonWindows intersects the maximal free windows of every link in the
// path, then filters to those long enough for length, satisfying both
// contiguity (consecutive indices) and continuity (same indices on every
// link of the segment) in one pass.
func commonWindows(a *topology.Arena, links []topology.LinkID, length int) []topology.Window {
	if len(links) == 0 {
		return nil
	}

	first := a.Link(links[0]).Slots()
	n := first.Len()
	free := make([]bool, n)
	for i := 0; i < n; i++ {
		free[i] = true
	}

	for _, lid := range links {
		snap := a.Link(lid).Slots().Snapshot()
		for i := 0; i < n; i++ {
			free[i] = free[i] && snap[i]
		}
	}

	var windows []topology.Window
	start := -1
	for i := 0; i <= n; i++ {
		ok := i < n && free[i]
		if ok && start == -1 {
			start = i
		}
		if !ok && start != -1 {
			if i-start >= length {
				windows = append(windows, topology.Window{Start: start, Length: i - start})
			}
			start = -1
		}
	}
	return windows
}
