// Package hexmap provides axial hex coordinates and the terrain grid.
package hexmap

import "fmt"

// Axial is a hex coordinate in axial form. The third cube coordinate
// is derived: s = -q - r.
type Axial struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// Directions lists the six neighbor offsets in the canonical order.
// Pathfinding tie-breaks and goal scans depend on this order staying
// fixed, so it must never be reordered.
var Directions = [6]Axial{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// S returns the derived cube coordinate.
func (a Axial) S() int {
	return -a.Q - a.R
}

// Add returns the component-wise sum of two coordinates.
func (a Axial) Add(b Axial) Axial {
	return Axial{Q: a.Q + b.Q, R: a.R + b.R}
}

// String formats the coordinate as "(q,r)".
func (a Axial) String() string {
	return fmt.Sprintf("(%d,%d)", a.Q, a.R)
}

// Distance returns the hex distance between two coordinates.
func Distance(a, b Axial) int {
	dq := a.Q - b.Q
	dr := a.R - b.R
	return (abs(dq) + abs(dq+dr) + abs(dr)) / 2
}

// Neighbors returns the six adjacent coordinates in canonical order.
// Callers must bounds-check against the grid; coordinates outside it
// are returned as-is.
func Neighbors(a Axial) [6]Axial {
	var out [6]Axial
	for i, d := range Directions {
		out[i] = a.Add(d)
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
