// Package gateway validates movement plans against a remote authority
// without blocking the simulation.
package gateway

import "github.com/ajmoran/hexfray/internal/hexmap"

// moveRequest is the wire form of a validation request. The grid
// snapshot carries any search markers active when the plan was made,
// so the authority sees the same obstacles the planner did.
type moveRequest struct {
	PlanID   string             `json:"plan_id"`
	Start    hexmap.Axial       `json:"start"`
	Goal     hexmap.Axial       `json:"goal"`
	GameMode string             `json:"game_mode"`
	GridSize int                `json:"grid_size"`
	Cells    []hexmap.CellState `json:"cells"`
}

// moveResponse is the authority's verdict. An empty approved path is
// a rejection.
type moveResponse struct {
	PlanID       string         `json:"plan_id"`
	ApprovedPath []hexmap.Axial `json:"approved_path"`
}
