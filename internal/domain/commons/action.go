package commons

import "math/rand"

// Action is a discrete action id as emitted by a policy head.
type Action int

const (
	StepForward Action = iota
	StepBackward
	StepLeft
	StepRight
	RotateLeft
	RotateRight
	StandStill
	Tag

	// ActionCount is the size of the discrete action space.
	ActionCount = 8
)

func (a Action) Valid() bool {
	return a >= StepForward && a < ActionCount
}

// RandomAction samples uniformly from the action space.
func RandomAction(rng *rand.Rand) Action {
	return Action(rng.Intn(ActionCount))
}

func (a Action) String() string {
	switch a {
	case StepForward:
		return "step_forward"
	case StepBackward:
		return "step_backward"
	case StepLeft:
		return "step_left"
	case StepRight:
		return "step_right"
	case RotateLeft:
		return "rotate_left"
	case RotateRight:
		return "rotate_right"
	case StandStill:
		return "stand_still"
	case Tag:
		return "tag"
	}
	return "invalid"
}
