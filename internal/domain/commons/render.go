package commons

// Render converts the full grid into an RGB image, one color triple per
// cell, row-major from the upper-left corner. Agents render in the agent
// color; there is no self marker in the global view.
func (e *Environment) Render() [][]Color {
	img := make([][]Color, e.grid.Height())
	for y := 0; y < e.grid.Height(); y++ {
		row := make([]Color, e.grid.Width())
		for x := 0; x < e.grid.Width(); x++ {
			row[x] = cellColor(e.grid.At(x, y))
		}
		img[y] = row
	}
	return img
}
