// Package units holds the small numeric types the physical layer is built
// from: decibel/linear gain, power, and the spectral-density curves that
// track filter-cascade distortion.
package units

// Physical constants used throughout the physical-layer model. Mirrors
// the original simulator's PhysicalConstants table.
const (
	// SpeedOfLight is c, in metres per second.
	SpeedOfLight = 299792458.0
	// PlanckConstant is h, in joule-seconds.
	PlanckConstant = 6.62606957e-34
	// CarrierWavelength is the nominal carrier wavelength, in metres.
	CarrierWavelength = 1550e-9
	// CarrierFrequency is the nominal carrier frequency, in hertz.
	CarrierFrequency = 193.4e12
	// ReferenceBandwidth is the OSNR reference bandwidth B_ref, in hertz.
	ReferenceBandwidth = 12.5e9
	// NumPolarizations is the number of polarizations carrying the signal.
	NumPolarizations = 2

	// DefaultAlphaFiberDBPerKm is the default fibre attenuation coefficient.
	DefaultAlphaFiberDBPerKm = 0.2
	// DefaultNumSlots is the default slot count per link.
	DefaultNumSlots = 320
	// SlotWidthHz is the width of one frequency slot.
	SlotWidthHz = ReferenceBandwidth
)
