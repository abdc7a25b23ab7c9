package commons

import "fmt"

// Color is an RGB triple in the 0..1 range; multiply by 255 at render time.
type Color [3]float64

var (
	ColorEmpty    = Color{0, 0, 0}
	ColorResource = Color{0, 0.5, 0}
	ColorAgent    = Color{1, 0, 0}
	ColorSelf     = Color{0, 0, 1}
)

// Observation is a per-agent field of view rendered as an RGB image of
// shape (front, 2*side+1, 3). Row 0 is the agent's own row, with the agent
// at the lateral center marked in the self color; rows grow away from the
// agent along its facing.
type Observation [][]Color

func cellColor(kind CellKind) Color {
	switch kind {
	case CellResource:
		return ColorResource
	case CellAgent:
		return ColorAgent
	}
	return ColorEmpty
}

// extractFOV computes the orientation-normalized window around a pose.
// Instead of materializing a rotated copy of the whole grid, each window
// cell (r, c) is mapped straight to the world cell
//
//	pose + r*forward + (c-side)*leftHand
//
// which is exactly the cell the rotate/pad/crop pipeline would have read:
// columns grow toward the agent's left hand, and anything outside the grid
// reads as empty padding.
func extractFOV(g *Grid, pose Pose, front, side int) Observation {
	if front <= 0 || side < 0 {
		panic(fmt.Sprintf("fov extraction with invalid extents front=%d side=%d", front, side))
	}
	fx, fy := pose.Facing.Forward()
	lx, ly := pose.Facing.LeftHand()

	width := 2*side + 1
	obs := make(Observation, front)
	for r := 0; r < front; r++ {
		row := make([]Color, width)
		for c := 0; c < width; c++ {
			lat := c - side
			x := pose.X + r*fx + lat*lx
			y := pose.Y + r*fy + lat*ly
			row[c] = cellColor(g.At(x, y))
		}
		obs[r] = row
	}

	// The viewing agent always sits at the window's own-row center.
	obs[0][side] = ColorSelf
	return obs
}
