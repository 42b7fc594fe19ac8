package units

import "math"

// Gain is a power ratio carried in decibels, with its linear form computed
// lazily and cached on first use. Mirrors the original simulator's Gain
// class: dB is the value of record, Linear is derived from it.
type Gain struct {
	db     float64
	linear float64
	cached bool
}

// GainDB builds a Gain from a decibel value.
func GainDB(db float64) Gain {
	return Gain{db: db}
}

// GainLinear builds a Gain from a linear power ratio. x must be strictly
// positive; a Gain has no dB representation of zero or negative ratios.
func GainLinear(x float64) Gain {
	return Gain{db: 10 * math.Log10(x), linear: x, cached: true}
}

// DB returns the gain expressed in decibels.
func (g Gain) DB() float64 { return g.db }

// Linear returns the gain as a linear power ratio, computing and caching it
// on first call.
func (g *Gain) Linear() float64 {
	if !g.cached {
		g.linear = math.Pow(10, 0.1*g.db)
		g.cached = true
	}
	return g.linear
}

// Add combines two gains in series (dB addition).
func (g Gain) Add(o Gain) Gain { return GainDB(g.db + o.db) }

// Sub removes a gain from another (dB subtraction), e.g. margin above a
// threshold.
func (g Gain) Sub(o Gain) Gain { return GainDB(g.db - o.db) }

// Neg returns the inverse gain (attenuation becomes amplification and vice
// versa).
func (g Gain) Neg() Gain { return GainDB(-g.db) }

func (g Gain) GreaterThan(o Gain) bool { return g.db > o.db }
func (g Gain) LessThan(o Gain) bool    { return g.db < o.db }
func (g Gain) AtLeast(o Gain) bool     { return g.db >= o.db }
func (g Gain) AtMost(o Gain) bool      { return g.db <= o.db }
