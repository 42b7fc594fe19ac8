package eonsignal

import (
	"testing"

	"github.com/opticalmesh/eonsim/pkg/devices"
	"github.com/opticalmesh/eonsim/pkg/units"
	"github.com/stretchr/testify/assert"
)

func newTestSignal() *Signal {
	return New(units.PowerDBm(0), units.GainDB(35), 4, 0)
}

func TestSignal_OSNR_MonotoneNonIncreasing(t *testing.T) {
	sig := newTestSignal()
	chain := []devices.Device{
		devices.NewAmplifier(devices.Booster, 16, 5),
		devices.NewFiber(80),
		devices.NewAmplifier(devices.PreAmplifier, 16, 5),
	}

	prev := sig.OSNR().DB()
	for _, d := range chain {
		sig.ApplyGain(d.Gain())
		sig.AddNoise(d.NoisePower())
		cur := sig.OSNR().DB()
		assert.LessOrEqualf(t, cur, prev+1e-9, "OSNR must not increase across a device")
		prev = cur
	}
}

func TestPropagate_Regenerator_Resets(t *testing.T) {
	sig := newTestSignal()
	before := sig.OSNR().DB()

	chain := []devices.Device{
		devices.NewFiber(200),
		devices.NewRegenerator(),
	}
	err := Propagate(sig, chain, true, func() (float64, float64) {
		return units.PowerDBm(0).Watts, 35
	})
	assert.NoError(t, err)
	assert.InDelta(t, before, sig.OSNR().DB(), 1e-6)
}

func TestSignal_PowerRatio_UnfilteredIsOne(t *testing.T) {
	sig := newTestSignal()
	assert.InDelta(t, 1.0, sig.PowerRatio(), 1e-9)
}

func TestSignal_PowerRatio_NarrowsUnderFilter(t *testing.T) {
	sig := newTestSignal()
	sss := devices.NewSSS(2*units.SlotWidthHz, 3, true)
	tf, ok := sss.TransferFunction(0)
	assert.True(t, ok)
	sig.ApplyTransferFunction(tf)
	assert.LessOrEqual(t, sig.PowerRatio(), 1.0)
}
