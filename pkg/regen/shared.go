// Package regen decides which nodes along a call's route regenerate the
// signal, splitting the route into transparent segments each (except the
// last) ending at a translucent node with a free regenerator.
package regen

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/opticalmesh/eonsim/pkg/devices"
	"github.com/opticalmesh/eonsim/pkg/eonsignal"
	"github.com/opticalmesh/eonsim/pkg/modulation"
	"github.com/opticalmesh/eonsim/pkg/spectrum"
	"github.com/opticalmesh/eonsim/pkg/topology"
	"github.com/opticalmesh/eonsim/pkg/units"
)

// ErrOSNRThreshold means every modulation scheme's OSNR threshold or
// reach was violated over the segment (§7's OSNRFailure cause).
var ErrOSNRThreshold = errors.New("regen: no modulation scheme meets osnr threshold over segment")

// ErrSpectrumWindow means a modulation scheme was found but the spectrum
// policy could not find it a contiguous/continuous free window (§7's
// NoSpectrum cause).
var ErrSpectrumWindow = errors.New("regen: no contiguous free spectrum window")

// RegeneratorBitrateGbps is the maximum bitrate a single regenerator can
// regenerate.
const RegeneratorBitrateGbps = 100

// TransparentSegment is one regeneration-free stretch of a call's route.
type TransparentSegment struct {
	Links      []topology.LinkID
	StartNode  topology.NodeID
	EndNode    topology.NodeID
	Scheme     modulation.Scheme
	Window     topology.Window
	NumRegUsed int
}

// Request bundles everything an assignment algorithm needs to evaluate
// feasibility along a path, the Go analogue of the original simulator's
// (Call, Links) pair plus its topology/RWA context.
type Request struct {
	Arena           *topology.Arena
	Path            []topology.LinkID
	Nodes           []topology.NodeID // len(Path)+1
	BitrateGbps     float64
	Schemes         []modulation.Scheme
	SpectrumPolicy  spectrum.Policy
	RNG             *rand.Rand
	InputPower      units.Power
	InputOSNR       units.Gain
	ConsiderAseNoise bool
	// DeviceChain builds the booster->(fibre+inline amp)xk->pre-amp device
	// chain for one physical link.
	DeviceChain func(l *topology.Link) []devices.Device
	// SSSFactory builds the switching element a signal passes through at
	// every intermediate node crossing within a transparent segment (§2,
	// §4.1). Nil means no SSS filtering is modelled.
	SSSFactory func() devices.Device
}

// Algorithm decides how to partition a request's path into transparent
// segments.
type Algorithm interface {
	AssignRegenerators(req Request) ([]TransparentSegment, error)
}

// Constructor builds an Algorithm.
type Constructor func() Algorithm

var registry = map[string]Constructor{}

// Register adds a constructor under a nickname.
func Register(nickname string, ctor Constructor) {
	registry[nickname] = ctor
}

// New looks up and constructs an algorithm by nickname.
func New(nickname string) (Algorithm, error) {
	ctor, ok := registry[nickname]
	if !ok {
		return nil, fmt.Errorf("regen: unrecognized algorithm nickname %q", nickname)
	}
	return ctor(), nil
}

// Names returns the registered nicknames.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	return names
}

// NumNeededRegenerators returns how many parallel 100Gbps regenerators a
// call of this bitrate needs at each regeneration point.
func NumNeededRegenerators(bitrateGbps float64) int {
	return int(math.Ceil(bitrateGbps / RegeneratorBitrateGbps))
}

// lengthKm sums the length of a link subset.
func lengthKm(a *topology.Arena, links []topology.LinkID) float64 {
	var total float64
	for _, lid := range links {
		total += a.Link(lid).LengthKm
	}
	return total
}

// isThereSpectrumAndOSNR propagates a signal across links[from:to] and
// reports the scheme/window it found, or a distinguishable reason it
// didn't: eonsignal.ErrNumericFault (fatal, §7), ErrOSNRThreshold (no
// scheme met its threshold/reach), or ErrSpectrumWindow (a scheme
// qualified but no contiguous/continuous window was free). Mirrors the
// original's isThereSpectrumAndOSNR/getMostEfficientScheme.
func isThereSpectrumAndOSNR(req Request, from, to int) (modulation.Scheme, topology.Window, error) {
	links := req.Path[from:to]
	length := lengthKm(req.Arena, links)

	sig := eonsignal.New(req.InputPower, req.InputOSNR, 1, 0)
	for i, lid := range links {
		chain := req.DeviceChain(req.Arena.Link(lid))
		// Every node crossing between two consecutive links passes
		// through that node's switching element (§2, §4.1); the last
		// link's egress is the segment endpoint, not an interior
		// crossing, so it gets no SSS.
		if i > 0 && req.SSSFactory != nil {
			chain = append([]devices.Device{req.SSSFactory()}, chain...)
		}
		if err := eonsignal.Propagate(sig, chain, req.ConsiderAseNoise, func() (float64, float64) {
			return req.InputPower.Watts, req.InputOSNR.DB()
		}); err != nil {
			return modulation.Scheme{}, topology.Window{}, err
		}
	}

	scheme, ok := modulation.SelectMostEfficient(req.Schemes, sig.OSNR().DB(), length)
	if !ok {
		return modulation.Scheme{}, topology.Window{}, ErrOSNRThreshold
	}

	numSlots := scheme.NumSlots(req.BitrateGbps)
	window, ok := req.SpectrumPolicy.Assign(req.Arena, links, numSlots, req.RNG)
	if !ok {
		return modulation.Scheme{}, topology.Window{}, ErrSpectrumWindow
	}

	return scheme, window, nil
}

// releaseRegeneratorAt releases numReg regenerators previously acquired
// at node index idx.
func releaseRegeneratorAt(req Request, idx int, numReg int) {
	node := req.Arena.Node(req.Nodes[idx])
	if node == nil {
		return
	}
	for i := 0; i < numReg; i++ {
		node.ReleaseRegenerator()
	}
}

// createTransparentSegment builds a TransparentSegment for req.Path[from:to]
// once feasibility has already been confirmed.
func createTransparentSegment(req Request, from, to int, scheme modulation.Scheme, window topology.Window, numRegUsed int) TransparentSegment {
	return TransparentSegment{
		Links:      append([]topology.LinkID(nil), req.Path[from:to]...),
		StartNode:  req.Nodes[from],
		EndNode:    req.Nodes[to],
		Scheme:     scheme,
		Window:     window,
		NumRegUsed: numRegUsed,
	}
}
