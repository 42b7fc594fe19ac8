// Package devices models the physical-layer device chain a signal passes
// through on a link: fibre spans, amplifiers, wavelength-selective
// switches, and regenerators. Each device is a small, cloneable value
// object; the composition order is owned by pkg/topology.
package devices

import "github.com/opticalmesh/eonsim/pkg/units"

// Device is the capability interface every physical-layer element
// implements, mirroring the original simulator's Device base class.
type Device interface {
	// Gain returns the device's power gain (negative for lossy devices
	// such as fibre).
	Gain() units.Gain
	// NoisePower returns the ASE (or equivalent) noise the device adds.
	NoisePower() units.Power
	// TransferFunction returns the device's spectral filter centred
	// offsetHz away from the signal's own centre frequency, and whether
	// the device filters at all (fibre and plain amplifiers do not).
	TransferFunction(offsetHz float64) (units.TransferFunction, bool)
	CapEx() float64
	OpEx() float64
	// Clone returns an independent copy so a fitness evaluation can own
	// a private topology.
	Clone() Device
}

// Regenerating is implemented by devices that reset a signal back to its
// launch power and OSNR instead of merely attenuating/amplifying it.
type Regenerating interface {
	Device
	IsRegenerator() bool
}
