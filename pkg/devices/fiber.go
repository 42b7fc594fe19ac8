package devices

import "github.com/opticalmesh/eonsim/pkg/units"

// Fiber is a passive fibre span. It attenuates but adds no ASE noise and
// applies no spectral filtering.
type Fiber struct {
	// LengthKm is the span length.
	LengthKm float64
	// AlphaDBPerKm is the attenuation coefficient, 0.2 dB/km by default.
	AlphaDBPerKm float64
	// CapExPerKm and OpExPerKm are deployment/operating cost rates.
	CapExPerKm float64
	OpExPerKm  float64
}

// NewFiber builds a fibre span of the given length using the default
// attenuation coefficient.
func NewFiber(lengthKm float64) *Fiber {
	return &Fiber{LengthKm: lengthKm, AlphaDBPerKm: units.DefaultAlphaFiberDBPerKm}
}

func (f *Fiber) Gain() units.Gain { return units.GainDB(-f.AlphaDBPerKm * f.LengthKm) }

func (f *Fiber) NoisePower() units.Power { return units.PowerWatts(0) }

func (f *Fiber) TransferFunction(float64) (units.TransferFunction, bool) {
	return units.TransferFunction{}, false
}

func (f *Fiber) CapEx() float64 { return f.CapExPerKm * f.LengthKm }
func (f *Fiber) OpEx() float64  { return f.OpExPerKm * f.LengthKm }

func (f *Fiber) Clone() Device {
	clone := *f
	return &clone
}
