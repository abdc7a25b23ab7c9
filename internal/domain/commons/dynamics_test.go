package commons

import (
	"math"
	"math/rand"
	"testing"
)

func TestRespawnProbabilityTable(t *testing.T) {
	cases := []struct {
		density int
		want    float64
	}{
		{0, 0}, {1, 0.01}, {2, 0.01}, {3, 0.05}, {4, 0.05}, {5, 0.1}, {12, 0.1},
	}
	for _, c := range cases {
		if got := respawnProbability(c.density); got != c.want {
			t.Fatalf("respawnProbability(%d) = %v, want %v", c.density, got, c.want)
		}
	}
}

func TestBallMaskIsEuclideanDisk(t *testing.T) {
	// Radius 2 disk on the integer lattice has 13 cells.
	m := newBallMask(2)
	if len(m.offsets) != 13 {
		t.Fatalf("radius-2 mask has %d offsets, want 13", len(m.offsets))
	}
	for _, off := range m.offsets {
		if off[0]*off[0]+off[1]*off[1] > 4 {
			t.Fatalf("offset (%d,%d) outside radius-2 disk", off[0], off[1])
		}
	}
	// Corners of the bounding square must be excluded.
	for _, off := range m.offsets {
		if off[0]*off[0] == 4 && off[1]*off[1] == 4 {
			t.Fatalf("square corner (%d,%d) leaked into the disk", off[0], off[1])
		}
	}
}

func TestBallMaskCountsEdgesAsEmpty(t *testing.T) {
	g := NewGrid(3, 3)
	g.PlaceResource(0, 0)
	m := newBallMask(2)
	// Centered on the corner, most of the disk hangs off the grid.
	if got := m.resourcesWithin(g, 0, 0); got != 1 {
		t.Fatalf("resourcesWithin corner = %d, want 1", got)
	}
}

func TestRespawnRateConvergesAtDensityThree(t *testing.T) {
	// Build a 5x5 world where the center is the only empty cell and its
	// radius-2 ball holds exactly 3 resources, then measure the empirical
	// spawn rate of that one cell over repeated independent passes.
	build := func() *Grid {
		g := NewGrid(5, 5)
		for y := 0; y < 5; y++ {
			for x := 0; x < 5; x++ {
				g.PlaceAgent(Pose{X: x, Y: y})
			}
		}
		g.set(2, 2, CellEmpty)
		g.set(2, 1, CellResource)
		g.set(1, 2, CellResource)
		g.set(3, 3, CellResource)
		return g
	}

	mask := newBallMask(2)
	rng := rand.New(rand.NewSource(7))
	const trials = 20000
	spawned := 0
	for i := 0; i < trials; i++ {
		g := build()
		if got := mask.resourcesWithin(g, 2, 2); got != 3 {
			t.Fatalf("density = %d, want 3", got)
		}
		respawnResources(g, mask, rng)
		if g.At(2, 2) == CellResource {
			spawned++
		}
	}

	rate := float64(spawned) / trials
	if math.Abs(rate-0.05) > 0.01 {
		t.Fatalf("empirical respawn rate = %v, want ~0.05", rate)
	}
}

func TestRespawnOnlyFillsEmptyCells(t *testing.T) {
	g := NewGrid(4, 4)
	g.PlaceAgent(Pose{X: 0, Y: 0})
	g.PlaceResource(1, 1)
	g.PlaceResource(2, 2)
	before := g.Count(CellAgent)

	respawnResources(g, newBallMask(2), rand.New(rand.NewSource(1)))

	if g.At(0, 0) != CellAgent {
		t.Fatalf("agent cell was overwritten")
	}
	if got := g.Count(CellAgent); got != before {
		t.Fatalf("agent count changed from %d to %d", before, got)
	}
}
