// Package rmsa composes routing, modulation selection, spectrum
// assignment, and regenerator placement into the single assignCall
// operation the event loop calls for every arrival, and carries the
// tagged failure taxonomy the call-blocking statistics are built from.
package rmsa

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/opticalmesh/eonsim/pkg/devices"
	"github.com/opticalmesh/eonsim/pkg/eonsignal"
	"github.com/opticalmesh/eonsim/pkg/modulation"
	"github.com/opticalmesh/eonsim/pkg/regen"
	"github.com/opticalmesh/eonsim/pkg/routing"
	"github.com/opticalmesh/eonsim/pkg/spectrum"
	"github.com/opticalmesh/eonsim/pkg/topology"
	"github.com/opticalmesh/eonsim/pkg/units"
)

// Cause tags why a call was blocked, the taxonomy of §7.
type Cause string

const (
	NoRoute       Cause = "NoRoute"
	NoSpectrum    Cause = "NoSpectrum"
	OSNRFailure   Cause = "OSNRFailure"
	NoRegenerator Cause = "NoRegenerator"
	ConfigError   Cause = "ConfigError"
)

// BlockedError is returned for the first four causes: recorded as a
// blocking statistic, never terminates the simulation.
type BlockedError struct {
	Cause Cause
	Err   error
}

func (e *BlockedError) Error() string { return fmt.Sprintf("%s: %v", e.Cause, e.Err) }
func (e *BlockedError) Unwrap() error { return e.Err }

// ErrConfig wraps a ConfigError-class failure: unrecognised nickname or
// missing required field. Unlike BlockedError, this surfaces outside the
// core and aborts configuration, not just one call.
type ErrConfig struct{ Err error }

func (e *ErrConfig) Error() string { return fmt.Sprintf("%s: %v", ConfigError, e.Err) }
func (e *ErrConfig) Unwrap() error { return e.Err }

// Config selects the algorithm nicknames and physical-layer defaults the
// pipeline is built from.
type Config struct {
	RoutingNickname  string
	SpectrumNickname string
	RegenNickname    string
	LMaxKm           float64
	NumSlots         int
	Schemes          []modulation.Scheme
	InputPower       units.Power
	InputOSNR        units.Gain
	ConsiderAseNoise bool
	DeviceChain      func(l *topology.Link) []devices.Device
	SSSFactory       func() devices.Device

	// Beta is the AdaptiveWeighting/PowerSeriesRouting coefficient vector
	// (§4.3), the PSO decision variable. Ignored by routing nicknames that
	// don't consult it.
	Beta []float64
}

// Pipeline is a configured, reusable assignCall operation.
type Pipeline struct {
	cfg      Config
	router   routing.Algorithm
	spectrum spectrum.Policy
	regenAlg regen.Algorithm
}

// New builds a Pipeline, resolving each algorithm nickname against its
// registry. An unrecognised nickname is a ConfigError.
func New(cfg Config) (*Pipeline, error) {
	router, err := routing.New(cfg.RoutingNickname, routing.Config{LMaxKm: cfg.LMaxKm, NumSlots: cfg.NumSlots, Beta: cfg.Beta})
	if err != nil {
		return nil, &ErrConfig{Err: err}
	}
	spec, err := spectrum.New(cfg.SpectrumNickname)
	if err != nil {
		return nil, &ErrConfig{Err: err}
	}
	ra, err := regen.New(cfg.RegenNickname)
	if err != nil {
		return nil, &ErrConfig{Err: err}
	}
	return &Pipeline{cfg: cfg, router: router, spectrum: spec, regenAlg: ra}, nil
}

// Result is a successfully admitted call's resource assignment.
type Result struct {
	Segments []regen.TransparentSegment
}

// AssignCall routes src->dst, selects modulation/spectrum/regenerators,
// and reserves the resources it found, all-or-nothing. On any failure no
// resource is left reserved.
func (p *Pipeline) AssignCall(a *topology.Arena, src, dst topology.NodeID, bitrateGbps float64, rng *rand.Rand) (Result, error) {
	path, ok := p.router.Route(a, src, dst)
	if !ok {
		return Result{}, &BlockedError{Cause: NoRoute, Err: errors.New("no path from source to destination")}
	}

	nodes, err := pathNodes(a, src, path)
	if err != nil {
		return Result{}, &ErrConfig{Err: err}
	}

	req := regen.Request{
		Arena:            a,
		Path:             path,
		Nodes:            nodes,
		BitrateGbps:      bitrateGbps,
		Schemes:          p.cfg.Schemes,
		SpectrumPolicy:   p.spectrum,
		RNG:              rng,
		InputPower:       p.cfg.InputPower,
		InputOSNR:        p.cfg.InputOSNR,
		ConsiderAseNoise: p.cfg.ConsiderAseNoise,
		DeviceChain:      p.cfg.DeviceChain,
		SSSFactory:       p.cfg.SSSFactory,
	}

	segments, err := p.regenAlg.AssignRegenerators(req)
	if err != nil {
		return Result{}, classifyRegenFailure(err)
	}

	if err := reserve(a, segments); err != nil {
		release(a, segments)
		return Result{}, &BlockedError{Cause: NoSpectrum, Err: err}
	}

	return Result{Segments: segments}, nil
}

// Release frees every slot window and regenerator a prior AssignCall
// result holds, used on call departure.
func Release(a *topology.Arena, res Result) {
	release(a, res.Segments)
}

func pathNodes(a *topology.Arena, src topology.NodeID, path []topology.LinkID) ([]topology.NodeID, error) {
	nodes := make([]topology.NodeID, 0, len(path)+1)
	nodes = append(nodes, src)
	cur := src
	for _, lid := range path {
		l := a.Link(lid)
		next, err := l.Other(cur)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, next)
		cur = next
	}
	return nodes, nil
}

// classifyRegenFailure tags a regen.Algorithm failure with its §7 blocking
// cause. A numeric fault (NaN/Inf from model misuse) is fatal per §7 and
// must propagate unwrapped rather than being folded into the blocking
// taxonomy; a regenerator shortage and a spectrum-window exhaustion are
// each tagged precisely, and everything else (no scheme met its OSNR
// threshold/reach over some segment) is an OSNR failure.
func classifyRegenFailure(err error) error {
	switch {
	case errors.Is(err, eonsignal.ErrNumericFault):
		return err
	case errors.Is(err, regen.ErrNoRegenerator):
		return &BlockedError{Cause: NoRegenerator, Err: err}
	case errors.Is(err, regen.ErrSpectrumWindow):
		return &BlockedError{Cause: NoSpectrum, Err: err}
	default:
		return &BlockedError{Cause: OSNRFailure, Err: err}
	}
}

func reserve(a *topology.Arena, segments []regen.TransparentSegment) error {
	for _, seg := range segments {
		for _, lid := range seg.Links {
			if err := a.Link(lid).Slots().Reserve(seg.Window.Start, seg.Window.Length); err != nil {
				return err
			}
		}
	}
	return nil
}

func release(a *topology.Arena, segments []regen.TransparentSegment) {
	for _, seg := range segments {
		for _, lid := range seg.Links {
			a.Link(lid).Slots().Release(seg.Window.Start, seg.Window.Length)
		}
		if seg.NumRegUsed > 0 {
			node := a.Node(seg.EndNode)
			for i := 0; i < seg.NumRegUsed && node != nil; i++ {
				node.ReleaseRegenerator()
			}
		}
	}
}
