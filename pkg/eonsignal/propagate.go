package eonsignal

import (
	"errors"
	"fmt"
	"math"

	"github.com/opticalmesh/eonsim/pkg/devices"
	"github.com/opticalmesh/eonsim/pkg/units"
)

// ErrNumericFault is returned when a propagation step produces a NaN or
// infinite power. Per the error-handling design, this always indicates
// model misuse (zero input power, negative reference bandwidth, …) and is
// fatal: callers must abort the run rather than treat it as a blocked
// call.
var ErrNumericFault = errors.New("eonsignal: numeric fault (NaN or Inf)")

// Propagate pushes sig through chain in order, applying each device's
// gain, optionally its ASE noise, and its spectral filter if it has one.
// A Regenerator in the chain resets sig instead of attenuating it.
func Propagate(sig *Signal, chain []devices.Device, considerAseNoise bool, inputPower func() (float64, float64)) error {
	for _, d := range chain {
		if reg, ok := d.(devices.Regenerating); ok && reg.IsRegenerator() {
			p, osnrDB := inputPower()
			sig.Regenerate(units.PowerWatts(p), units.GainDB(osnrDB))
			continue
		}

		sig.ApplyGain(d.Gain())
		if considerAseNoise {
			sig.AddNoise(d.NoisePower())
		}
		if tf, ok := d.TransferFunction(0); ok {
			sig.ApplyTransferFunction(tf)
		}

		if err := checkFinite(sig); err != nil {
			return err
		}
	}
	return nil
}

func checkFinite(sig *Signal) error {
	p := sig.SignalPower().Watts
	n := sig.NoisePower().Watts
	if math.IsNaN(p) || math.IsInf(p, 0) || math.IsNaN(n) || math.IsInf(n, 0) {
		return fmt.Errorf("%w: signal=%v noise=%v", ErrNumericFault, p, n)
	}
	return nil
}
