package regen

func init() {
	Register("no-regeneration", func() Algorithm { return noRegeneration{} })
}

// noRegeneration never places a regenerator: the whole path must be one
// transparent segment or the call is blocked. An Opaque node anywhere on
// the interior of the path makes this infeasible by construction (§3:
// Opaque ⇒ all calls regenerated).
type noRegeneration struct{}

func (noRegeneration) AssignRegenerators(req Request) ([]TransparentSegment, error) {
	n := len(req.Nodes)
	if firstOpaqueBetween(req, 0, n-1) != -1 {
		return nil, ErrNoRegenerator
	}
	scheme, window, err := isThereSpectrumAndOSNR(req, 0, n-1)
	if err != nil {
		return nil, err
	}
	return []TransparentSegment{
		createTransparentSegment(req, 0, n-1, scheme, window, 0),
	}, nil
}
