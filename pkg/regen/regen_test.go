package regen

import (
	"math/rand"
	"testing"

	"github.com/opticalmesh/eonsim/pkg/devices"
	"github.com/opticalmesh/eonsim/pkg/modulation"
	"github.com/opticalmesh/eonsim/pkg/spectrum"
	"github.com/opticalmesh/eonsim/pkg/topology"
	"github.com/opticalmesh/eonsim/pkg/units"
	"github.com/stretchr/testify/assert"
)

func shortReachChain(l *topology.Link) []devices.Device {
	return []devices.Device{
		devices.NewAmplifier(devices.Booster, 16, 5),
		devices.NewFiber(l.LengthKm),
		devices.NewAmplifier(devices.PreAmplifier, 16, 5),
	}
}

func buildScenario2(middleTranslucent bool) Request {
	a := topology.NewArena()
	regens := 0
	if middleTranslucent {
		regens = 2
	}
	n0 := a.AddNode("A", false, 0)
	n1 := a.AddNode("B", middleTranslucent, regens)
	n2 := a.AddNode("C", false, 0)
	l0 := a.AddLink(n0, n1, 50, 50, 10)
	l1 := a.AddLink(n1, n2, 50, 50, 10)

	ff, _ := spectrum.New("first-fit")

	return Request{
		Arena:       a,
		Path:        []topology.LinkID{l0, l1},
		Nodes:       []topology.NodeID{n0, n1, n2},
		BitrateGbps: 100,
		Schemes: []modulation.Scheme{
			{Name: "QPSK", BitsPerSymbol: 2, OSNRThresholdDB: 0, ReachKm: 60, SlotBaudRate: 12.5e9},
		},
		SpectrumPolicy:   ff,
		RNG:              rand.New(rand.NewSource(1)),
		InputPower:       units.PowerDBm(0),
		InputOSNR:        units.GainDB(35),
		ConsiderAseNoise: true,
		DeviceChain:      shortReachChain,
	}
}

func TestFLR_NoTranslucentCandidate_ReturnsNoRegenerator(t *testing.T) {
	req := buildScenario2(false)
	algo, err := New("flr")
	assert.NoError(t, err)

	_, err = algo.AssignRegenerators(req)
	assert.ErrorIs(t, err, ErrNoRegenerator)
}

func TestFNS_MiddleTranslucent_AdmitsWithOneRegenerator(t *testing.T) {
	req := buildScenario2(true)
	algo, err := New("fns")
	assert.NoError(t, err)

	segments, err := algo.AssignRegenerators(req)
	assert.NoError(t, err)
	assert.Len(t, segments, 2)
	assert.Equal(t, 1, segments[0].NumRegUsed)
	assert.Equal(t, req.Nodes[1], segments[0].EndNode)
}

func TestNoRegeneration_RequiresWholePathFeasible(t *testing.T) {
	req := buildScenario2(true)
	algo, _ := New("no-regeneration")
	_, err := algo.AssignRegenerators(req)
	assert.ErrorIs(t, err, ErrOSNRThreshold, "the 100km path exceeds the scheme's 60km reach, an OSNR/reach failure, not a spectrum one")
}

func TestFLR_OpaqueNodeForcesRegenerationEvenWhenReachSuffices(t *testing.T) {
	a := topology.NewArena()
	n0 := a.AddNode("A", false, 0)
	n1 := a.AddNodeType("B", topology.Opaque, 2)
	n2 := a.AddNode("C", false, 0)
	l0 := a.AddLink(n0, n1, 20, 50, 10)
	l1 := a.AddLink(n1, n2, 20, 50, 10)

	ff, _ := spectrum.New("first-fit")
	req := Request{
		Arena:       a,
		Path:        []topology.LinkID{l0, l1},
		Nodes:       []topology.NodeID{n0, n1, n2},
		BitrateGbps: 100,
		Schemes: []modulation.Scheme{
			{Name: "QPSK", BitsPerSymbol: 2, OSNRThresholdDB: 0, ReachKm: 200, SlotBaudRate: 12.5e9},
		},
		SpectrumPolicy:   ff,
		RNG:              rand.New(rand.NewSource(1)),
		InputPower:       units.PowerDBm(0),
		InputOSNR:        units.GainDB(35),
		ConsiderAseNoise: true,
		DeviceChain:      shortReachChain,
	}

	algo, _ := New("flr")
	segments, err := algo.AssignRegenerators(req)
	assert.NoError(t, err)
	assert.Len(t, segments, 2, "the Opaque node must split the path even though reach would allow a single segment")
	assert.Equal(t, req.Nodes[1], segments[0].EndNode)
}

func TestMostSimultaneouslyUsed_PicksHighestUsageNodes(t *testing.T) {
	history := []NodeUsageStat{
		{NodeIndex: 0, MaxSimultaneous: 3},
		{NodeIndex: 1, MaxSimultaneous: 9},
		{NodeIndex: 2, MaxSimultaneous: 1},
	}
	counts := MostSimultaneouslyUsed(history, 3, 1, 4, rand.New(rand.NewSource(7)))
	assert.Equal(t, 4, counts[1])
	assert.Equal(t, 0, counts[0])
	assert.Equal(t, 0, counts[2])
}
