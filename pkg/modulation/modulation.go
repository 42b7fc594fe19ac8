// Package modulation selects the most spectrally-efficient modulation
// format whose OSNR threshold and reach are met, and derives the slot
// count a call needs at that format.
package modulation

import (
	"math"

	"github.com/opticalmesh/eonsim/pkg/units"
)

// Scheme is one modulation format: BPSK, QPSK, 8-QAM, 16-QAM, …
type Scheme struct {
	Name string
	// BitsPerSymbol sets the spectral efficiency: a higher order packs
	// more bits per slot but tolerates less noise.
	BitsPerSymbol float64
	// OSNRThresholdDB is the minimum OSNR this scheme can operate at.
	OSNRThresholdDB float64
	// ReachKm is the modulation reach: the maximum path length at which
	// the threshold is still met under the nominal physical-layer model.
	ReachKm float64
	// SlotBaudRate is the symbol rate one slot carries, in Hz.
	SlotBaudRate float64
}

// NumSlots returns the slot count needed to carry bitrateGbps at this
// scheme.
func (s Scheme) NumSlots(bitrateGbps float64) int {
	bitsPerSecondPerSlot := s.BitsPerSymbol * s.SlotBaudRate * units.NumPolarizations
	gbpsPerSlot := bitsPerSecondPerSlot / 1e9
	if gbpsPerSlot <= 0 {
		return 0
	}
	n := int(math.Ceil(bitrateGbps / gbpsPerSlot))
	if n < 1 {
		n = 1
	}
	return n
}

// DefaultSchemes are the modulation formats the original simulator's RWA
// headers enumerate, ordered from least to most spectrally efficient.
// Baud rate assumes a 12.5GHz slot used at its full reference bandwidth.
func DefaultSchemes() []Scheme {
	baud := 12.5e9
	return []Scheme{
		{Name: "BPSK", BitsPerSymbol: 1, OSNRThresholdDB: 6.0, ReachKm: 4000, SlotBaudRate: baud},
		{Name: "QPSK", BitsPerSymbol: 2, OSNRThresholdDB: 9.0, ReachKm: 2000, SlotBaudRate: baud},
		{Name: "8QAM", BitsPerSymbol: 3, OSNRThresholdDB: 12.0, ReachKm: 1000, SlotBaudRate: baud},
		{Name: "16QAM", BitsPerSymbol: 4, OSNRThresholdDB: 15.5, ReachKm: 500, SlotBaudRate: baud},
	}
}

// SelectMostEfficient returns the most spectrally-efficient scheme whose
// OSNR threshold is met by osnrDB and whose reach covers lengthKm, out of
// candidates ordered least-to-most efficient. Returns ok=false if none
// qualifies.
func SelectMostEfficient(candidates []Scheme, osnrDB, lengthKm float64) (Scheme, bool) {
	best := Scheme{}
	found := false
	for _, c := range candidates {
		if osnrDB < c.OSNRThresholdDB {
			continue
		}
		if lengthKm > c.ReachKm {
			continue
		}
		if !found || c.BitsPerSymbol > best.BitsPerSymbol {
			best = c
			found = true
		}
	}
	return best, found
}
