package devices

import "github.com/opticalmesh/eonsim/pkg/units"

// SSS is a wavelength-selective switch. It is lossless in this model but
// applies a super-Gaussian passband filter, the source of filter-cascade
// narrowing across many hops.
type SSS struct {
	FilterOrder       int
	PassbandHz        float64
	ConsiderFilterImperfection bool
	CapExCost         float64
	OpExCost          float64
}

func NewSSS(passbandHz float64, filterOrder int, considerFilterImperfection bool) *SSS {
	return &SSS{
		FilterOrder:                filterOrder,
		PassbandHz:                 passbandHz,
		ConsiderFilterImperfection: considerFilterImperfection,
	}
}

func (s *SSS) Gain() units.Gain { return units.GainDB(0) }

func (s *SSS) NoisePower() units.Power { return units.PowerWatts(0) }

// TransferFunction is a no-op when filter-imperfection tracking is
// disabled — the flag is purely an enable switch, never a different
// numeric path.
func (s *SSS) TransferFunction(offsetHz float64) (units.TransferFunction, bool) {
	if !s.ConsiderFilterImperfection {
		return units.TransferFunction{}, false
	}
	return units.TransferFunction{
		Order:       s.FilterOrder,
		BandwidthHz: s.PassbandHz,
		OffsetHz:    offsetHz,
	}, true
}

func (s *SSS) CapEx() float64 { return s.CapExCost }
func (s *SSS) OpEx() float64  { return s.OpExCost }

func (s *SSS) Clone() Device {
	clone := *s
	return &clone
}
