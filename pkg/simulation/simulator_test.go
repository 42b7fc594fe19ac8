package simulation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opticalmesh/eonsim/pkg/devices"
	"github.com/opticalmesh/eonsim/pkg/modulation"
	"github.com/opticalmesh/eonsim/pkg/rmsa"
	"github.com/opticalmesh/eonsim/pkg/topology"
	"github.com/opticalmesh/eonsim/pkg/units"
)

func shortChain(l *topology.Link) []devices.Device {
	return []devices.Device{
		devices.NewAmplifier(devices.Booster, 16, 5),
		devices.NewFiber(l.LengthKm),
		devices.NewAmplifier(devices.PreAmplifier, 16, 5),
	}
}

func twoNodeArena() *topology.Arena {
	a := topology.NewArena()
	n0 := a.AddNode("A", false, 0)
	n1 := a.AddNode("B", false, 0)
	a.AddLink(n0, n1, 80, 80, 40)
	return a
}

func buildPipeline(t *testing.T) *rmsa.Pipeline {
	t.Helper()
	p, err := rmsa.New(rmsa.Config{
		RoutingNickname:  "shortest-path",
		SpectrumNickname: "first-fit",
		RegenNickname:    "no-regeneration",
		LMaxKm:           4000,
		NumSlots:         40,
		Schemes:          modulation.DefaultSchemes(),
		InputPower:       units.PowerDBm(0),
		InputOSNR:        units.GainDB(35),
		ConsiderAseNoise: true,
		DeviceChain:      shortChain,
	})
	assert.NoError(t, err)
	return p
}

func TestSimulator_Run_ProducesBlockingStatistics(t *testing.T) {
	cfg := Config{
		Arena:       twoNodeArena(),
		Pipeline:    buildPipeline(t),
		DeviceChain: shortChain,
		NumCalls:    200,
		WarmupCalls: 20,
		OfferedLoad: 5,
		Bitrates:    []BitrateProfile{{Gbps: 100, Probability: 1}},
		Seed:        7,
		ConfigName:  "two-node-smoke",
	}

	sim := New(cfg)
	report, err := sim.Run(context.Background())
	assert.NoError(t, err)
	assert.True(t, report.Success)
	assert.Equal(t, 200, report.CallsOffered)
	assert.GreaterOrEqual(t, report.CallsBlocked, 0)
	assert.LessOrEqual(t, report.CallBlockingProbability, 1.0)
	assert.GreaterOrEqual(t, report.CallBlockingProbability, 0.0)
}

func TestSimulator_Run_LeavesNoResourcesHeldAfterDrain(t *testing.T) {
	arena := twoNodeArena()
	cfg := Config{
		Arena:       arena,
		Pipeline:    buildPipeline(t),
		NumCalls:    500,
		OfferedLoad: 20,
		Bitrates:    []BitrateProfile{{Gbps: 100, Probability: 1}},
		Seed:        11,
	}

	sim := New(cfg)
	_, err := sim.Run(context.Background())
	assert.NoError(t, err)

	for _, l := range arena.Links {
		assert.Equal(t, l.Slots().Len(), l.Slots().FreeCount(),
			"every slot must be free once the run has fully drained")
	}
	for _, n := range arena.Nodes {
		assert.Equal(t, 0, n.InUse(), "every regenerator must be released once the run has fully drained")
	}
}

func TestSimulator_Run_RejectsInvalidConfig(t *testing.T) {
	sim := New(Config{})
	_, err := sim.Run(context.Background())
	assert.Error(t, err)
}

func TestSimulator_Run_CancelledContextReturnsErrCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := Config{
		Arena:       twoNodeArena(),
		Pipeline:    buildPipeline(t),
		NumCalls:    1000,
		OfferedLoad: 5,
		Bitrates:    []BitrateProfile{{Gbps: 100, Probability: 1}},
		Seed:        3,
	}
	sim := New(cfg)
	_, err := sim.Run(ctx)
	assert.ErrorIs(t, err, ErrCancelled)
}
