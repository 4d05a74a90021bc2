package hexmap

import "math/rand"

// Grid is the hex battlefield: an axial square of cells with q and r
// each ranging over [-size/2, size/2].
type Grid struct {
	size  int
	half  int
	cells map[Axial]*Cell
}

// terrainTable drives weighted random generation: 8 plain, 1 forest,
// 1 wall out of every 10 cells on average.
var terrainTable = []Terrain{
	TerrainPlain, TerrainPlain, TerrainPlain, TerrainPlain,
	TerrainPlain, TerrainPlain, TerrainPlain, TerrainPlain,
	TerrainForest, TerrainWall,
}

// NewEmptyGrid creates a grid of the given size with every cell plain.
func NewEmptyGrid(size int) *Grid {
	g := &Grid{
		size:  size,
		half:  size / 2,
		cells: make(map[Axial]*Cell, (size+1)*(size+1)),
	}
	for q := -g.half; q <= g.half; q++ {
		for r := -g.half; r <= g.half; r++ {
			c := Axial{Q: q, R: r}
			g.cells[c] = &Cell{Coord: c, Terrain: TerrainPlain}
		}
	}
	return g
}

// NewGrid creates a grid with weighted random terrain drawn from a
// source seeded with the given seed. The same size and seed always
// produce the same terrain.
func NewGrid(size int, seed int64) *Grid {
	g := NewEmptyGrid(size)
	rng := rand.New(rand.NewSource(seed))
	g.Each(func(c *Cell) {
		c.Terrain = terrainTable[rng.Intn(len(terrainTable))]
	})
	return g
}

// Size returns the size the grid was created with.
func (g *Grid) Size() int {
	return g.size
}

// Bounds returns the inclusive coordinate range [lo, hi] covered by
// both axes.
func (g *Grid) Bounds() (lo, hi int) {
	return -g.half, g.half
}

// Cell returns the cell at the coordinate, or nil when the coordinate
// is outside the grid.
func (g *Grid) Cell(a Axial) *Cell {
	return g.cells[a]
}

// Contains reports whether the coordinate lies on the grid.
func (g *Grid) Contains(a Axial) bool {
	return g.cells[a] != nil
}

// CostAt returns the movement cost of entering the cell and whether it
// can be entered. Coordinates off the grid, wall terrain, and cells
// carrying a search marker are all impassable.
func (g *Grid) CostAt(a Axial) (int, bool) {
	c := g.cells[a]
	if c == nil || c.blocked {
		return 0, false
	}
	return c.Terrain.MoveCost()
}

// Neighbors returns the six adjacent coordinates of a in canonical
// order, off-grid ones included.
func (g *Grid) Neighbors(a Axial) [6]Axial {
	return Neighbors(a)
}

// Block marks the cell as a search obstacle. Blocking a coordinate
// outside the grid is a no-op.
func (g *Grid) Block(a Axial) {
	if c := g.cells[a]; c != nil {
		c.blocked = true
	}
}

// Unblock clears the cell's search marker.
func (g *Grid) Unblock(a Axial) {
	if c := g.cells[a]; c != nil {
		c.blocked = false
	}
}

// SetTerrain overwrites the terrain at the coordinate. Used by tests
// and fixtures; coordinates off the grid are ignored.
func (g *Grid) SetTerrain(a Axial, t Terrain) {
	if c := g.cells[a]; c != nil {
		c.Terrain = t
	}
}

// Each visits every cell in deterministic order (q ascending, then r).
func (g *Grid) Each(fn func(*Cell)) {
	for q := -g.half; q <= g.half; q++ {
		for r := -g.half; r <= g.half; r++ {
			if c := g.cells[Axial{Q: q, R: r}]; c != nil {
				fn(c)
			}
		}
	}
}

// CellState is the wire form of a single cell, used when a grid is
// shipped to the validation authority.
type CellState struct {
	Q       int    `json:"q"`
	R       int    `json:"r"`
	Terrain string `json:"terrain"`
	Blocked bool   `json:"blocked,omitempty"`
}

// Snapshot returns every cell in deterministic order, including any
// search markers active at call time.
func (g *Grid) Snapshot() []CellState {
	out := make([]CellState, 0, len(g.cells))
	g.Each(func(c *Cell) {
		out = append(out, CellState{
			Q:       c.Coord.Q,
			R:       c.Coord.R,
			Terrain: c.Terrain.String(),
			Blocked: c.blocked,
		})
	})
	return out
}

// FromSnapshot rebuilds a grid from wire cells. Unknown terrain names
// come back as walls so a corrupt snapshot fails closed.
func FromSnapshot(size int, cells []CellState) *Grid {
	g := NewEmptyGrid(size)
	for _, cs := range cells {
		c := g.cells[Axial{Q: cs.Q, R: cs.R}]
		if c == nil {
			continue
		}
		c.Terrain = terrainByName(cs.Terrain)
		c.blocked = cs.Blocked
	}
	return g
}

func terrainByName(name string) Terrain {
	switch name {
	case "plain":
		return TerrainPlain
	case "forest":
		return TerrainForest
	default:
		return TerrainWall
	}
}
