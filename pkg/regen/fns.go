package regen

import (
	"errors"

	"github.com/opticalmesh/eonsim/pkg/eonsignal"
	"github.com/opticalmesh/eonsim/pkg/modulation"
	"github.com/opticalmesh/eonsim/pkg/topology"
)

func init() {
	Register("fns", func() Algorithm { return fns{} })
}

// fns (FirstNarrowestRegeneratable) cuts a transparent segment at the
// first translucent node with a free regenerator it reaches while
// scanning forward, rather than extending as far as flr would before
// backtracking. It trades spectrum/OSNR margin for narrower, earlier
// segments — useful when translucent nodes are scarce along the route.
type fns struct{}

func (fns) AssignRegenerators(req Request) (_ []TransparentSegment, err error) {
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
		lastFeasibleEnd := segStart
		var lastScheme modulation.Scheme
		var lastWindow topology.Window
		var lastErr error
		cut := -1

		for end := segStart + 1; end < n; end++ {
			scheme, window, err := isThereSpectrumAndOSNR(req, segStart, end)
			if err != nil {
				if errors.Is(err, eonsignal.ErrNumericFault) {
					return nil, err
				}
				lastErr = err
				break
			}
			lastFeasibleEnd = end
			lastScheme = scheme
			lastWindow = window
			lastErr = nil

			if end == n-1 {
				break
			}
			if node := req.Arena.Node(req.Nodes[end]); node != nil {
				if node.ForcesRegeneration() {
					cut = end
					break
				}
				if node.Type == topology.Translucent && node.TotalRegenerators-node.InUse() >= numReg {
					cut = end
					break
				}
			}
		}

		if lastFeasibleEnd == segStart {
			if lastErr == nil {
				lastErr = ErrInfeasibleSegment
			}
			return nil, lastErr
		}

		if cut == -1 && lastFeasibleEnd == n-1 {
			segments = append(segments, createTransparentSegment(req, segStart, lastFeasibleEnd, lastScheme, lastWindow, 0))
			break
		}

		end := cut
		if end == -1 {
			end = lastFeasibleEnd
		}
		if !acquireRegeneratorAt(req, end, numReg) {
			return nil, ErrNoRegenerator
		}
		scheme, window, err := isThereSpectrumAndOSNR(req, segStart, end)
		if err != nil {
			releaseRegeneratorAt(req, end, numReg)
			return nil, err
		}

		segments = append(segments, createTransparentSegment(req, segStart, end, scheme, window, numReg))
		segStart = end
	}

	return segments, nil
}
