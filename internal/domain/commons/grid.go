package commons

// CellKind is what occupies a single grid cell. Exactly one kind per cell:
// a cell is never agent and resource at the same time.
type CellKind byte

const (
	CellEmpty CellKind = iota
	CellResource
	CellAgent
)

// Grid is the shared 2D world state, stored row-major as [row=y][col=x].
// Mutation goes through the Set* helpers only, so the set of agent cells
// stays in 1:1 correspondence with the environment's pose list.
type Grid struct {
	width  int
	height int
	cells  []CellKind
}

func NewGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]CellKind, width*height),
	}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) is a valid grid coordinate.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At is a bounds-checked read. Coordinates outside the grid read as empty,
// which is also the padding value used by FOV extraction and the respawn
// neighborhood.
func (g *Grid) At(x, y int) CellKind {
	if !g.InBounds(x, y) {
		return CellEmpty
	}
	return g.cells[y*g.width+x]
}

func (g *Grid) set(x, y int, kind CellKind) {
	g.cells[y*g.width+x] = kind
}

// MoveAgent clears the departed cell and occupies the target one. The
// caller must have validated the target against bounds and occupancy;
// moving onto a resource consumes it.
func (g *Grid) MoveAgent(from, to Pose) {
	g.set(from.X, from.Y, CellEmpty)
	g.set(to.X, to.Y, CellAgent)
}

// PlaceAgent marks a cell as occupied during initial placement.
func (g *Grid) PlaceAgent(p Pose) {
	g.set(p.X, p.Y, CellAgent)
}

// PlaceResource marks an empty cell as holding a resource. Cells already
// occupied by an agent are left untouched.
func (g *Grid) PlaceResource(x, y int) {
	if g.At(x, y) == CellEmpty {
		g.set(x, y, CellResource)
	}
}

// Count returns how many cells currently hold the given kind.
func (g *Grid) Count(kind CellKind) int {
	n := 0
	for _, c := range g.cells {
		if c == kind {
			n++
		}
	}
	return n
}

// Depleted reports whether no resource is left anywhere on the grid.
func (g *Grid) Depleted() bool {
	for _, c := range g.cells {
		if c == CellResource {
			return false
		}
	}
	return true
}

// Encode returns a copy of the raw row-major cell buffer, for persistence.
func (g *Grid) Encode() []byte {
	out := make([]byte, len(g.cells))
	for i, c := range g.cells {
		out[i] = byte(c)
	}
	return out
}

// DecodeGrid rebuilds a grid from an encoded cell buffer.
func DecodeGrid(width, height int, cells []byte) (*Grid, bool) {
	if width <= 0 || height <= 0 || len(cells) != width*height {
		return nil, false
	}
	g := NewGrid(width, height)
	for i, b := range cells {
		kind := CellKind(b)
		if kind != CellEmpty && kind != CellResource && kind != CellAgent {
			return nil, false
		}
		g.cells[i] = kind
	}
	return g, true
}
