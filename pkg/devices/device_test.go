package devices

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFiber_GainIsLoss(t *testing.T) {
	f := NewFiber(80)
	assert.InDelta(t, -16, f.Gain().DB(), 1e-9)
}

func TestAmplifier_NoisePower_Positive(t *testing.T) {
	a := NewAmplifier(Booster, 16, 5)
	n := a.NoisePower()
	assert.Greater(t, n.Watts, 0.0)
}

func TestAmplifier_Clone_Independent(t *testing.T) {
	a := NewAmplifier(PreAmplifier, 20, 4.5)
	clone := a.Clone().(*Amplifier)
	clone.GainDB = 0
	assert.NotEqual(t, a.GainDB, clone.GainDB)
}

func TestSSS_TransferFunction_DisabledIsNoop(t *testing.T) {
	s := NewSSS(37.5e9, 4, false)
	_, ok := s.TransferFunction(0)
	assert.False(t, ok)
}

func TestSSS_TransferFunction_Enabled(t *testing.T) {
	s := NewSSS(37.5e9, 4, true)
	tf, ok := s.TransferFunction(0)
	assert.True(t, ok)
	assert.InDelta(t, 1.0, tf.ValueAt(0), 1e-9)
}

func TestRegenerator_IsRegenerator(t *testing.T) {
	var d Device = NewRegenerator()
	reg, ok := d.(Regenerating)
	assert.True(t, ok)
	assert.True(t, reg.IsRegenerator())
}
