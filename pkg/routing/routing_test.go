package routing

import (
	"testing"

	"github.com/opticalmesh/eonsim/pkg/topology"
	"github.com/stretchr/testify/assert"
)

func buildTriangle() *topology.Arena {
	a := topology.NewArena()
	n0 := a.AddNode("A", false, 0)
	n1 := a.AddNode("B", false, 0)
	n2 := a.AddNode("C", false, 0)
	a.AddLink(n0, n1, 100, 100, 10)
	a.AddLink(n1, n2, 100, 100, 10)
	a.AddLink(n0, n2, 500, 100, 10)
	return a
}

func TestShortestPath_PrefersFewerHops(t *testing.T) {
	a := buildTriangle()
	algo, err := New("shortest-path", Config{})
	assert.NoError(t, err)

	path, ok := algo.Route(a, 0, 2)
	assert.True(t, ok)
	assert.Len(t, path, 1)
}

func TestLengthOccupationAvailability_DirectLinkBeatsTwoHopsWhenIdle(t *testing.T) {
	a := buildTriangle()
	algo, err := New("length-occupation-availability", Config{LMaxKm: 500, NumSlots: 10})
	assert.NoError(t, err)

	path, ok := algo.Route(a, 0, 2)
	assert.True(t, ok)
	assert.Len(t, path, 1, "the per-link constant makes two idle 100km hops (2.4) cost more than one idle 500km link (2.0)")
}

func TestShortestLength_PrefersLowerTotalLength(t *testing.T) {
	a := buildTriangle()
	algo, err := New("shortest-length", Config{})
	assert.NoError(t, err)

	path, ok := algo.Route(a, 0, 2)
	assert.True(t, ok)
	assert.Len(t, path, 2, "200km via B beats the direct 500km link")
}

func TestAdaptiveWeighting_LengthOnlyBetaMatchesShortestLength(t *testing.T) {
	a := buildTriangle()
	algo, err := New("adaptive-weighting", Config{LMaxKm: 500, NumSlots: 10, Beta: []float64{1, 0, 0, 0}})
	assert.NoError(t, err)

	path, ok := algo.Route(a, 0, 2)
	assert.True(t, ok)
	assert.Len(t, path, 2)
}

func TestAdaptiveWeighting_DefaultsToLengthWhenBetaEmpty(t *testing.T) {
	a := buildTriangle()
	algo, err := New("adaptive-weighting", Config{LMaxKm: 500, NumSlots: 10})
	assert.NoError(t, err)

	path, ok := algo.Route(a, 0, 2)
	assert.True(t, ok)
	assert.Len(t, path, 2)
}

func TestNew_UnknownNickname(t *testing.T) {
	_, err := New("does-not-exist", Config{})
	assert.Error(t, err)
}
