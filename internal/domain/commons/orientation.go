package commons

// Orientation is one of the 4 cardinal directions an agent can face.
// The zero value is Up.
type Orientation int

const (
	Up Orientation = iota
	Right
	Down
	Left

	orientationCount = 4
)

func (o Orientation) Valid() bool {
	return o >= Up && o < orientationCount
}

// RotateLeft returns the orientation after a 90° counter-clockwise turn.
func (o Orientation) RotateLeft() Orientation {
	return Orientation((int(o) + orientationCount - 1) % orientationCount)
}

// RotateRight returns the orientation after a 90° clockwise turn.
func (o Orientation) RotateRight() Orientation {
	return Orientation((int(o) + 1) % orientationCount)
}

// Forward returns the unit displacement of one step ahead. The grid origin
// is the upper-left corner, so y grows downward.
func (o Orientation) Forward() (dx, dy int) {
	switch o {
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	}
	return 0, 0
}

// LeftHand returns the unit displacement toward the agent's own left side.
func (o Orientation) LeftHand() (dx, dy int) {
	fx, fy := o.Forward()
	// Rotating (fx, fy) by 90° counter-clockwise in screen coordinates.
	return fy, -fx
}

func (o Orientation) String() string {
	switch o {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	}
	return "invalid"
}
