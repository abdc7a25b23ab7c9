package commons

import "math/rand"

// ballMask is the set of integer offsets inside a disk of the configured
// radius (Euclidean distance <= radius). It is precomputed once per
// environment and reused for every density count.
type ballMask struct {
	radius  int
	offsets [][2]int
}

func newBallMask(radius int) ballMask {
	m := ballMask{radius: radius}
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				m.offsets = append(m.offsets, [2]int{dx, dy})
			}
		}
	}
	return m
}

// resourcesWithin counts resource cells inside the disk centered on (x, y).
// Off-grid neighbors count as empty.
func (m ballMask) resourcesWithin(g *Grid, x, y int) int {
	n := 0
	for _, off := range m.offsets {
		if g.At(x+off[0], y+off[1]) == CellResource {
			n++
		}
	}
	return n
}

// respawnProbability maps the local resource density to the per-tick
// probability of an empty cell growing a new resource.
func respawnProbability(density int) float64 {
	switch {
	case density >= 1 && density <= 2:
		return 0.01
	case density >= 3 && density <= 4:
		return 0.05
	case density > 4:
		return 0.1
	}
	return 0
}

// respawnResources runs one regrowth pass over the grid: every empty cell
// independently becomes a resource with a probability driven by the number
// of resources in the surrounding ball. The grid is updated in place while
// scanning columns left to right, so a cell spawned earlier in the pass
// contributes to the density seen by later cells.
func respawnResources(g *Grid, mask ballMask, rng *rand.Rand) int {
	spawned := 0
	for x := 0; x < g.Width(); x++ {
		for y := 0; y < g.Height(); y++ {
			if g.At(x, y) != CellEmpty {
				continue
			}
			p := respawnProbability(mask.resourcesWithin(g, x, y))
			if p > 0 && rng.Float64() < p {
				g.PlaceResource(x, y)
				spawned++
			}
		}
	}
	return spawned
}
