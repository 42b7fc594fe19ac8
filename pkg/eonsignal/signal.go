// Package eonsignal implements the Signal type that propagates across a
// link's device chain, accumulating gain and noise and tracking spectral
// narrowing, and the OSNR/power-ratio readouts the RMSA pipeline consults.
package eonsignal

import "github.com/opticalmesh/eonsim/pkg/units"

// Signal carries a signal power, a noise power, and an optional spectral
// density, the way the original simulator's Signal class does.
type Signal struct {
	NumSlots    int
	SlotOffset  int
	signalPower units.Power
	noisePower  units.Power
	density     *units.SpectralDensity

	// originalPower is the density sum at construction/regeneration time,
	// cached the way the original's originalSpecDensityCache is, used as
	// the denominator of PowerRatio.
	originalPower float64
}

// New builds a signal launched at inputPower/inputOSNR occupying numSlots
// slots starting at slotOffset slots from its own centre (0 for a signal
// centred on its own allocation).
func New(inputPower units.Power, inputOSNR units.Gain, numSlots, slotOffset int) *Signal {
	s := &Signal{NumSlots: numSlots, SlotOffset: slotOffset}
	s.reset(inputPower, inputOSNR)
	return s
}

func (s *Signal) reset(inputPower units.Power, inputOSNR units.Gain) {
	s.signalPower = inputPower
	noiseRatio := inputOSNR.Linear()
	s.noisePower = units.PowerWatts(inputPower.Watts / noiseRatio)
	s.density = units.NewSpectralDensity(s.NumSlots, s.SlotOffset)
	s.originalPower = s.density.Sum()
}

// Regenerate resets the signal to the network's launch defaults and
// restarts its spectral density, the effect of passing through a
// Regenerator device.
func (s *Signal) Regenerate(inputPower units.Power, inputOSNR units.Gain) {
	s.reset(inputPower, inputOSNR)
}

// ApplyGain implements `P_s <- P_s . G`; `P_n <- P_n . G`.
func (s *Signal) ApplyGain(g units.Gain) {
	s.signalPower = s.signalPower.Scale(&g)
	s.noisePower = s.noisePower.Scale(&g)
}

// AddNoise implements `P_n <- P_n + N`.
func (s *Signal) AddNoise(n units.Power) {
	s.noisePower = s.noisePower.Add(n)
}

// ApplyTransferFunction implements `D <- D . H`. Callers only invoke this
// when a device actually returned a transfer function (TransferFunction's
// second return value was true); there is no enabled/disabled branch here,
// keeping the no-op behaviour entirely in the device layer.
func (s *Signal) ApplyTransferFunction(tf units.TransferFunction) {
	s.density = s.density.Multiply(tf)
}

// OSNR returns P_s / P_n expressed in decibels, referenced to B_ref.
func (s *Signal) OSNR() units.Gain {
	return s.signalPower.RatioDB(s.noisePower)
}

// SignalPower returns the current signal power.
func (s *Signal) SignalPower() units.Power { return s.signalPower }

// NoisePower returns the current accumulated noise power.
func (s *Signal) NoisePower() units.Power { return s.noisePower }

// SpectralPower returns the power carried along the current spectral
// density curve.
func (s *Signal) SpectralPower() float64 {
	if s.density == nil {
		return 0
	}
	return s.density.Sum()
}

// PowerRatio returns the ratio of this signal's original and final
// spectral density power, the readout filter-cascade narrowing feeds to
// modulation feasibility checks.
func (s *Signal) PowerRatio() float64 {
	if s.originalPower == 0 {
		return 1
	}
	return s.SpectralPower() / s.originalPower
}

// Clone returns an independent copy, used when a call's transparent
// segment forks during route evaluation.
func (s *Signal) Clone() *Signal {
	clone := *s
	if s.density != nil {
		clone.density = s.density.Clone()
	}
	return &clone
}
