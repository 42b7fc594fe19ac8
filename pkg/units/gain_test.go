package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestGain_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		x := rapid.Float64Range(1e-9, 1e9).Draw(t, "x")

		g := GainLinear(x)
		db := g.DB()

		back := GainDB(db)
		assert.InDeltaf(t, x, back.Linear(), x*1e-12+1e-12,
			"linear(dB(%v)) should round-trip", x)
	})
}

func TestGain_Add(t *testing.T) {
	a := GainDB(3)
	b := GainDB(-1.5)
	assert.InDelta(t, 1.5, a.Add(b).DB(), 1e-9)
}

func TestGain_Neg(t *testing.T) {
	g := GainDB(6)
	assert.InDelta(t, -6, g.Neg().DB(), 1e-9)
}

func TestGain_LinearMonotone(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Float64Range(-50, 50).Draw(t, "a")
		b := rapid.Float64Range(-50, 50).Draw(t, "b")
		ga, gb := GainDB(a), GainDB(b)
		if a < b {
			assert.Less(t, ga.Linear(), gb.Linear())
		}
	})
}

func TestPower_RatioDB(t *testing.T) {
	p := PowerWatts(2)
	q := PowerWatts(1)
	assert.InDelta(t, 10*math.Log10(2), p.RatioDB(q).DB(), 1e-9)
}
