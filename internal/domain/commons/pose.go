package commons

// Pose is an agent's position and facing on the grid. Poses are immutable
// values: every move produces a new Pose, so a rejected move simply keeps
// the old one.
type Pose struct {
	X      int         `json:"x"`
	Y      int         `json:"y"`
	Facing Orientation `json:"facing"`
}

func (p Pose) translate(dx, dy int) Pose {
	return Pose{X: p.X + dx, Y: p.Y + dy, Facing: p.Facing}
}

// Apply resolves an action into the candidate pose it aims at. The result
// is kinematic only: feasibility against bounds and occupancy is the
// caller's concern. Movement is relative to the agent's facing, not to the
// world axes.
func (p Pose) Apply(a Action) Pose {
	switch a {
	case StepForward:
		dx, dy := p.Facing.Forward()
		return p.translate(dx, dy)
	case StepBackward:
		dx, dy := p.Facing.Forward()
		return p.translate(-dx, -dy)
	case StepLeft:
		dx, dy := p.Facing.LeftHand()
		return p.translate(dx, dy)
	case StepRight:
		dx, dy := p.Facing.LeftHand()
		return p.translate(-dx, -dy)
	case RotateLeft:
		return Pose{X: p.X, Y: p.Y, Facing: p.Facing.RotateLeft()}
	case RotateRight:
		return Pose{X: p.X, Y: p.Y, Facing: p.Facing.RotateRight()}
	case StandStill, Tag:
		// Tagging has no pose effect; the beam never moves the tagger.
		return p
	}
	return p
}
