package devices

import "github.com/opticalmesh/eonsim/pkg/units"

// Regenerator performs optical-electrical-optical regeneration: it resets
// a signal back to the network's launch defaults and starts a new
// transparent segment. Gain/NoisePower are reported as zero here because
// the reset itself is applied by the signal layer (pkg/eonsignal), not by
// a gain/noise contribution on the device chain.
type Regenerator struct {
	CapExCost float64
	OpExCost  float64
}

func NewRegenerator() *Regenerator { return &Regenerator{} }

func (r *Regenerator) Gain() units.Gain { return units.GainDB(0) }

func (r *Regenerator) NoisePower() units.Power { return units.PowerWatts(0) }

func (r *Regenerator) TransferFunction(float64) (units.TransferFunction, bool) {
	return units.TransferFunction{}, false
}

func (r *Regenerator) CapEx() float64 { return r.CapExCost }
func (r *Regenerator) OpEx() float64  { return r.OpExCost }

func (r *Regenerator) IsRegenerator() bool { return true }

func (r *Regenerator) Clone() Device {
	clone := *r
	return &clone
}

var _ Regenerating = (*Regenerator)(nil)
