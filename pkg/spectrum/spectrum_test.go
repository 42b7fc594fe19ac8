package spectrum

import (
	"math/rand"
	"testing"

	"github.com/opticalmesh/eonsim/pkg/topology"
	"github.com/stretchr/testify/assert"
)

func buildScenario3() (*topology.Arena, []topology.LinkID) {
	a := topology.NewArena()
	n0 := a.AddNode("A", false, 0)
	n1 := a.AddNode("B", false, 0)
	lid := a.AddLink(n0, n1, 80, 80, 13)
	_ = a.Link(lid).Slots().Reserve(5, 3) // hold 5,6,7 to leave {0..4, 8..12} free
	return a, []topology.LinkID{lid}
}

func TestFirstFit_Scenario3(t *testing.T) {
	a, links := buildScenario3()
	policy, _ := New("first-fit")
	w, ok := policy.Assign(a, links, 5, rand.New(rand.NewSource(1)))
	assert.True(t, ok)
	assert.Equal(t, 0, w.Start)
}

func TestExactFit_Scenario3(t *testing.T) {
	a, links := buildScenario3()
	policy, _ := New("exact-fit")
	w, ok := policy.Assign(a, links, 5, rand.New(rand.NewSource(1)))
	assert.True(t, ok)
	assert.Equal(t, 0, w.Start)
}

func TestExactFit_FallsBackToFirstFit(t *testing.T) {
	a := topology.NewArena()
	n0 := a.AddNode("A", false, 0)
	n1 := a.AddNode("B", false, 0)
	lid := a.AddLink(n0, n1, 80, 80, 10)
	_ = a.Link(lid).Slots().Reserve(3, 1) // only runs of length != 2 remain contiguous around it
	ff, _ := New("first-fit")
	ef, _ := New("exact-fit")
	wantFF, _ := ff.Assign(a, []topology.LinkID{lid}, 2, nil)
	gotEF, ok := ef.Assign(a, []topology.LinkID{lid}, 2, nil)
	assert.True(t, ok)
	assert.Equal(t, wantFF.Start, gotEF.Start)
}

func TestRandomFit_OnlyOffersMaximalStarts(t *testing.T) {
	a, links := buildScenario3()
	policy, _ := New("random-fit")
	seen := map[int]bool{}
	for seed := int64(0); seed < 50; seed++ {
		w, ok := policy.Assign(a, links, 5, rand.New(rand.NewSource(seed)))
		assert.True(t, ok)
		seen[w.Start] = true
	}
	for start := range seen {
		assert.Contains(t, []int{0, 8}, start)
	}
}

func TestNew_UnknownNickname(t *testing.T) {
	_, err := New("nonexistent")
	assert.Error(t, err)
}
