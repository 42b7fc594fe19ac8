package config

import (
	"github.com/opticalmesh/eonsim/pkg/modulation"
	"github.com/opticalmesh/eonsim/pkg/rmsa"
	"github.com/opticalmesh/eonsim/pkg/units"
)

// lMaxKm is the reference length the LengthOccupationAvailability routing
// cost (§4.3) normalises against: the longest reach of the default
// modulation set (BPSK at 4000km).
const lMaxKm = 4000

// RMSAConfig assembles an rmsa.Config from the simulation section, wiring
// the device-chain and SSS factories built from this same config.
func (c *Config) RMSAConfig() rmsa.Config {
	return rmsa.Config{
		RoutingNickname:  c.Simulation.RoutingNickname,
		SpectrumNickname: c.Simulation.SpectrumNickname,
		RegenNickname:    c.Simulation.RegenNickname,
		LMaxKm:           lMaxKm,
		NumSlots:         c.Simulation.NumSlots,
		Schemes:          modulation.DefaultSchemes(),
		InputPower:       units.PowerDBm(c.Simulation.InputPowerDBm),
		InputOSNR:        units.GainDB(c.Simulation.InputOSNRDB),
		ConsiderAseNoise: c.Simulation.ConsiderAseNoise,
		DeviceChain:      c.DeviceChain,
		SSSFactory:       c.SSSFactory,
	}
}
