package units

import (
	"math"
	"sync"
)

// gridPoints is the resolution of the shared frequency grid every spectral
// density is sampled on. Fixed process-wide so two densities can be
// multiplied pointwise without resampling.
const gridPoints = 129

// gridSpanHz is the total span of the shared grid, wide enough to hold the
// widest signal plus guard band the simulator is expected to carry.
const gridSpanHz = 20 * ReferenceBandwidth

var (
	gridOnce   sync.Once
	sharedGrid []float64
)

// grid returns the process-wide frequency-offset grid (Hz from carrier),
// building it once on first use.
func grid() []float64 {
	gridOnce.Do(func() {
		sharedGrid = make([]float64, gridPoints)
		step := gridSpanHz / float64(gridPoints-1)
		start := -gridSpanHz / 2
		for i := range sharedGrid {
			sharedGrid[i] = start + float64(i)*step
		}
	})
	return sharedGrid
}

// TransferFunction is a super-Gaussian filter shape, the model the original
// simulator uses for SSS/WSS channel filtering.
type TransferFunction struct {
	// Order controls filter steepness; order 1 is Gaussian, higher orders
	// approach a brick wall.
	Order int
	// BandwidthHz is the passband width at whose edges (OffsetHz ±
	// BandwidthHz/2) the transmission has fallen to 1/e.
	BandwidthHz float64
	// OffsetHz is the centre of the passband relative to the signal carrier.
	OffsetHz float64
}

// ValueAt evaluates the filter's linear power transmission at frequency
// offset f (Hz from carrier).
func (tf TransferFunction) ValueAt(f float64) float64 {
	if tf.BandwidthHz <= 0 {
		return 0
	}
	x := 2 * (f - tf.OffsetHz) / tf.BandwidthHz
	return math.Exp(-math.Pow(x*x, float64(tf.Order)))
}

// SpectralDensity is a sampled power-spectral-density curve over the shared
// frequency grid, cached per (numSlots, slotOffset) the way the original
// simulator's originalSpecDensityCache works: the flat nominal shape for a
// given slot width is built once and cloned for every signal that needs it.
type SpectralDensity struct {
	samples []float64
}

var (
	densityCacheMu sync.Mutex
	densityCache   = map[densityKey][]float64{}
)

type densityKey struct {
	numSlots   int
	slotOffset int
}

// NewSpectralDensity returns the nominal flat-top density for a signal
// occupying numSlots slots, starting slotOffset slots away from the
// signal's own centre frequency (0 for a signal centred on its own slots).
func NewSpectralDensity(numSlots, slotOffset int) *SpectralDensity {
	key := densityKey{numSlots: numSlots, slotOffset: slotOffset}

	densityCacheMu.Lock()
	cached, ok := densityCache[key]
	densityCacheMu.Unlock()

	if ok {
		return &SpectralDensity{samples: append([]float64(nil), cached...)}
	}

	halfWidth := float64(numSlots) * SlotWidthHz / 2
	center := float64(slotOffset) * SlotWidthHz
	g := grid()
	samples := make([]float64, len(g))
	for i, f := range g {
		if math.Abs(f-center) <= halfWidth {
			samples[i] = 1.0
		}
	}

	densityCacheMu.Lock()
	densityCache[key] = append([]float64(nil), samples...)
	densityCacheMu.Unlock()

	return &SpectralDensity{samples: samples}
}

// Multiply returns a new density equal to d filtered by tf, leaving d
// untouched — the `D <- D . H` combinator of the physical layer.
func (d *SpectralDensity) Multiply(tf TransferFunction) *SpectralDensity {
	g := grid()
	out := make([]float64, len(d.samples))
	for i, s := range d.samples {
		out[i] = s * tf.ValueAt(g[i])
	}
	return &SpectralDensity{samples: out}
}

// Clone returns an independent copy of d.
func (d *SpectralDensity) Clone() *SpectralDensity {
	return &SpectralDensity{samples: append([]float64(nil), d.samples...)}
}

// Sum is the integral of the density over the shared grid, proportional to
// the signal power it carries. Used to derive the power ratio between a
// filtered and an unfiltered density.
func (d *SpectralDensity) Sum() float64 {
	var total float64
	for _, s := range d.samples {
		total += s
	}
	return total
}
