package hexmap

// Terrain classifies a cell's ground type.
type Terrain int

const (
	// TerrainPlain is open ground, movement cost 1.
	TerrainPlain Terrain = iota
	// TerrainForest is rough ground, movement cost 2.
	TerrainForest
	// TerrainWall is impassable.
	TerrainWall
)

// String returns the terrain name.
func (t Terrain) String() string {
	switch t {
	case TerrainPlain:
		return "plain"
	case TerrainForest:
		return "forest"
	case TerrainWall:
		return "wall"
	default:
		return "unknown"
	}
}

// MoveCost returns the cost of entering a cell with this terrain and
// whether it can be entered at all.
func (t Terrain) MoveCost() (int, bool) {
	switch t {
	case TerrainPlain:
		return 1, true
	case TerrainForest:
		return 2, true
	default:
		return 0, false
	}
}

// Rune returns the terrain's display character.
func (t Terrain) Rune() rune {
	switch t {
	case TerrainForest:
		return '♣'
	case TerrainWall:
		return '#'
	default:
		return '.'
	}
}

// Cell is a single hex on the grid. The blocked flag is a transient
// search marker set around pathfinding calls; it is not the long-lived
// occupancy record, which lives with the actors themselves.
type Cell struct {
	Coord   Axial
	Terrain Terrain
	blocked bool
}

// Blocked reports whether the cell is currently marked as a search
// obstacle.
func (c *Cell) Blocked() bool {
	return c.blocked
}

// Passable reports whether the cell can be entered right now: terrain
// allows it and no search marker is set.
func (c *Cell) Passable() bool {
	if c.blocked {
		return false
	}
	_, ok := c.Terrain.MoveCost()
	return ok
}
