package regen

import (
	"errors"

	"github.com/opticalmesh/eonsim/pkg/eonsignal"
	"github.com/opticalmesh/eonsim/pkg/modulation"
	"github.com/opticalmesh/eonsim/pkg/topology"
)

func init() {
	Register("flr", func() Algorithm { return flr{} })
}

// ErrNoRegenerator means the route has no feasible translucent
// partitioning: every candidate cut point either lacks regeneration
// capability or has no free regenerator.
var ErrNoRegenerator = errors.New("regen: no feasible regenerator placement")

// ErrInfeasibleSegment means even a single-link segment from the current
// start fails OSNR or spectrum, so no cut point exists to try.
var ErrInfeasibleSegment = errors.New("regen: no feasible transparent segment")

// flr greedily extends each transparent segment as far as it can reach
// before backtracking to the furthest translucent node with a free
// regenerator. Reproduced in spirit from the original's greedy
// assignRegenerators with backtrack-to-last-candidate behaviour.
type flr struct{}

func (flr) AssignRegenerators(req Request) (_ []TransparentSegment, err error) {
	n := len(req.Nodes)
	numReg := NumNeededRegenerators(req.BitrateGbps)

	var segments []TransparentSegment
	segStart := 0
	defer func() {
		if err == nil {
			return
		}
		for _, seg := range segments {
			if node := req.Arena.Node(seg.EndNode); node != nil {
				for i := 0; i < seg.NumRegUsed; i++ {
					node.ReleaseRegenerator()
				}
			}
		}
	}()

	for segStart < n-1 {
		end, scheme, window, err := extendFurthest(req, segStart)
		if end == segStart {
			if err == nil {
				err = ErrInfeasibleSegment
			}
			return nil, err
		}

		// An Opaque node forces a segment boundary even if the signal
		// could physically reach further (§3: Opaque ⇒ all calls
		// regenerated).
		if forced := firstOpaqueBetween(req, segStart, end); forced != -1 && forced != end {
			end = forced
			scheme, window, err = isThereSpectrumAndOSNR(req, segStart, end)
			if err != nil {
				return nil, err
			}
		}

		if end == n-1 {
			segments = append(segments, createTransparentSegment(req, segStart, end, scheme, window, 0))
			break
		}

		cut := end
		for cut > segStart && !acquireRegeneratorAt(req, cut, numReg) {
			cut--
		}
		if cut == segStart {
			return nil, ErrNoRegenerator
		}
		if cut != end {
			scheme, window, err = isThereSpectrumAndOSNR(req, segStart, cut)
			if err != nil {
				releaseRegeneratorAt(req, cut, numReg)
				return nil, err
			}
			end = cut
		}

		segments = append(segments, createTransparentSegment(req, segStart, end, scheme, window, numReg))
		segStart = end
	}

	return segments, nil
}

// extendFurthest returns the furthest node index reachable from segStart
// in one transparent segment (segStart itself if even one hop fails),
// the scheme/window that made the furthest extension feasible, and the
// reason extension stopped (nil if it ran all the way to the path end).
// A numeric fault (eonsignal.ErrNumericFault) aborts immediately,
// discarding any partial extension, since it is fatal regardless of how
// far the segment had already reached (§7).
func extendFurthest(req Request, segStart int) (int, modulation.Scheme, topology.Window, error) {
	n := len(req.Nodes)
	best := segStart
	var bestScheme modulation.Scheme
	var bestWindow topology.Window
	var lastErr error

	for end := segStart + 1; end < n; end++ {
		scheme, window, err := isThereSpectrumAndOSNR(req, segStart, end)
		if err != nil {
			if errors.Is(err, eonsignal.ErrNumericFault) {
				return segStart, modulation.Scheme{}, topology.Window{}, err
			}
			lastErr = err
			break
		}
		best = end
		bestScheme = scheme
		bestWindow = window
		lastErr = nil
	}
	return best, bestScheme, bestWindow, lastErr
}

// firstOpaqueBetween returns the index of the first Opaque node strictly
// between from and to (exclusive of both endpoints), or -1 if none.
func firstOpaqueBetween(req Request, from, to int) int {
	for idx := from + 1; idx < to; idx++ {
		if node := req.Arena.Node(req.Nodes[idx]); node != nil && node.ForcesRegeneration() {
			return idx
		}
	}
	return -1
}

// acquireRegeneratorAt reserves numReg regenerators at node index idx if
// the node can regenerate and has enough free, releasing any partial
// acquisition on failure.
func acquireRegeneratorAt(req Request, idx int, numReg int) bool {
	node := req.Arena.Node(req.Nodes[idx])
	if node == nil || !node.CanRegenerate() {
		return false
	}
	acquired := 0
	for acquired < numReg {
		if !node.AcquireRegenerator() {
			for ; acquired > 0; acquired-- {
				node.ReleaseRegenerator()
			}
			return false
		}
		acquired++
	}
	return true
}
