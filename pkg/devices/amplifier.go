package devices

import "github.com/opticalmesh/eonsim/pkg/units"

// AmplifierRole distinguishes the three amplifier placements the RMSA
// pipeline composes a link from; the physics is identical, only the
// position in the device chain differs.
type AmplifierRole int

const (
	Booster AmplifierRole = iota
	InLineAmplifier
	PreAmplifier
)

func (r AmplifierRole) String() string {
	switch r {
	case Booster:
		return "booster"
	case InLineAmplifier:
		return "inline"
	case PreAmplifier:
		return "preamp"
	default:
		return "amplifier"
	}
}

// Amplifier is an EDFA-class device: configured gain, noise figure, and
// the ASE noise it injects, N = h*f*(G-1)*NF*B_ref*n_pol.
type Amplifier struct {
	Role         AmplifierRole
	GainDB       float64
	NoiseFigureDB float64
	CapExCost    float64
	OpExCost     float64

	gain units.Gain
}

func NewAmplifier(role AmplifierRole, gainDB, noiseFigureDB float64) *Amplifier {
	return &Amplifier{
		Role:          role,
		GainDB:        gainDB,
		NoiseFigureDB: noiseFigureDB,
		gain:          units.GainDB(gainDB),
	}
}

func (a *Amplifier) Gain() units.Gain { return units.GainDB(a.GainDB) }

// NoisePower implements N = h*f*(G-1)*NF*B_ref*n_pol.
func (a *Amplifier) NoisePower() units.Power {
	g := a.Gain()
	gLinear := g.Linear()
	nfGain := units.GainDB(a.NoiseFigureDB)
	nf := nfGain.Linear()
	watts := units.PlanckConstant * units.CarrierFrequency * (gLinear - 1) * nf *
		units.ReferenceBandwidth * units.NumPolarizations
	if watts < 0 {
		watts = 0
	}
	return units.PowerWatts(watts)
}

func (a *Amplifier) TransferFunction(float64) (units.TransferFunction, bool) {
	return units.TransferFunction{}, false
}

func (a *Amplifier) CapEx() float64 { return a.CapExCost }
func (a *Amplifier) OpEx() float64  { return a.OpExCost }

func (a *Amplifier) Clone() Device {
	clone := *a
	return &clone
}
