package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func buildLine(numSlots int) (*Arena, NodeID, NodeID) {
	a := NewArena()
	n0 := a.AddNode("A", false, 0)
	n1 := a.AddNode("B", true, 2)
	n2 := a.AddNode("C", false, 0)
	a.AddLink(n0, n1, 80, 80, numSlots)
	a.AddLink(n1, n2, 80, 80, numSlots)
	return a, n0, n2
}

func TestSlotBitmap_ConservationInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 64).Draw(t, "n")
		b := NewSlotBitmap(n)

		ops := rapid.SliceOfN(rapid.IntRange(0, n-1), 0, 20).Draw(t, "starts")
		for _, start := range ops {
			length := 1
			if b.Free(start, length) {
				_ = b.Reserve(start, length)
			}
		}

		held := 0
		for _, f := range b.Snapshot() {
			if !f {
				held++
			}
		}
		assert.Equal(t, n, b.FreeCount()+held)
	})
}

func TestArena_ShortestPathHops(t *testing.T) {
	a, src, dst := buildLine(10)
	path, ok := a.ShortestPathHops(src, dst)
	assert.True(t, ok)
	assert.Len(t, path, 2)
}

func TestArena_Clone_Independent(t *testing.T) {
	a, n0, _ := buildLine(10)
	clone := a.Clone()

	_ = clone.Link(0).Slots().Reserve(0, 4)

	assert.True(t, a.Link(0).Slots().Free(0, 4))
	assert.False(t, clone.Link(0).Slots().Free(0, 4))
	assert.Equal(t, a.Node(n0).Name, clone.Node(n0).Name)
}

func TestNode_RegeneratorAccounting(t *testing.T) {
	n := &Node{TotalRegenerators: 2}
	assert.True(t, n.AcquireRegenerator())
	assert.True(t, n.AcquireRegenerator())
	assert.False(t, n.AcquireRegenerator())
	assert.LessOrEqual(t, n.InUse(), n.TotalRegenerators)
	n.ReleaseRegenerator()
	assert.Equal(t, 1, n.InUse())
	assert.GreaterOrEqual(t, n.MaxSimultaneous(), n.InUse())
}
