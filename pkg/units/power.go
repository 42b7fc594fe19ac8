package units

import "math"

// Power is an absolute power level in watts. Signal and noise powers are
// both represented this way; dBm is only a presentation convenience at the
// edges (config parsing, reporting).
type Power struct {
	Watts float64
}

// PowerWatts builds a Power directly from watts.
func PowerWatts(w float64) Power { return Power{Watts: w} }

// PowerDBm builds a Power from a dBm value: P[W] = 1e-3 * 10^(dBm/10).
func PowerDBm(dbm float64) Power {
	return Power{Watts: 1e-3 * math.Pow(10, dbm/10)}
}

// DBm reports the power in dBm.
func (p Power) DBm() float64 {
	return 10*math.Log10(p.Watts) + 30
}

// Add sums two powers (incoherent combination, as used for noise
// accumulation).
func (p Power) Add(o Power) Power { return Power{Watts: p.Watts + o.Watts} }

// Scale applies a linear gain to a power, e.g. attenuation through a fibre
// or amplification through an EDFA.
func (p Power) Scale(g *Gain) Power { return Power{Watts: p.Watts * g.Linear()} }

// Ratio returns p/o as a dimensionless linear ratio.
func (p Power) Ratio(o Power) float64 { return p.Watts / o.Watts }

// RatioDB returns p/o expressed in decibels.
func (p Power) RatioDB(o Power) Gain { return GainDB(10 * math.Log10(p.Watts/o.Watts)) }
