// Package behavior drives enemy decisions: what stance to take each
// round and where to move for it.
package behavior

import (
	"math/rand"

	"github.com/ajmoran/hexfray/internal/entity"
	"github.com/ajmoran/hexfray/internal/hexmap"
)

// State is an enemy's stance for the current round. Stances carry no
// memory; every decision cycle recomputes them from the world as it
// stands.
type State int

const (
	// StateChase closes on the player.
	StateChase State = iota
	// StatePatrol wanders to a random reachable cell.
	StatePatrol
	// StateRetreat maximizes distance from the player.
	StateRetreat
)

// String returns the stance name.
func (s State) String() string {
	switch s {
	case StateChase:
		return "chase"
	case StatePatrol:
		return "patrol"
	case StateRetreat:
		return "retreat"
	default:
		return "unknown"
	}
}

// World is the view of the battlefield a deciding enemy consults. The
// occupancy check must exclude the deciding enemy itself, so that its
// own cell never counts as taken.
type World interface {
	// PlayerPos returns the player's cell and false when the player
	// is dead.
	PlayerPos() (hexmap.Axial, bool)
	// Occupied reports whether a living actor other than the deciding
	// enemy stands on the cell.
	Occupied(hexmap.Axial) bool
	// CostAt reports terrain cost and passability.
	CostAt(hexmap.Axial) (int, bool)
	// RNG is the session's seeded source; patrol picks with it.
	RNG() *rand.Rand
}

const (
	defaultChaseDistance   = 10
	defaultRetreatFraction = 0.3
)

// Decider turns world state into stances and goals.
type Decider struct {
	// ChaseDistance applies to enemies that carry none of their own.
	ChaseDistance int
	// RetreatFraction is the HP fraction at or below which an enemy
	// breaks off, adjacency to the player notwithstanding.
	RetreatFraction float64
}

// NewDecider creates a decider, substituting defaults for zero values.
func NewDecider(chaseDistance int, retreatFraction float64) *Decider {
	if chaseDistance <= 0 {
		chaseDistance = defaultChaseDistance
	}
	if retreatFraction <= 0 {
		retreatFraction = defaultRetreatFraction
	}
	return &Decider{
		ChaseDistance:   chaseDistance,
		RetreatFraction: retreatFraction,
	}
}

// Decide returns the stance for this round. Priority: a dead player
// flips everyone to patrol; low HP forces retreat; a player within
// chase distance draws a chase; otherwise patrol.
func (d *Decider) Decide(e *entity.Actor, w World) State {
	playerPos, alive := w.PlayerPos()
	if !alive {
		return StatePatrol
	}
	if e.HPFraction() <= d.RetreatFraction {
		return StateRetreat
	}
	chase := e.ChaseDistance
	if chase <= 0 {
		chase = d.ChaseDistance
	}
	if hexmap.Distance(e.Pos, playerPos) <= chase {
		return StateChase
	}
	return StatePatrol
}

// Goal picks the destination cell for the stance. It returns false
// when the stance has no reachable goal this round; the enemy then
// stays put. The player's own cell is never a goal.
func (d *Decider) Goal(e *entity.Actor, s State, w World) (hexmap.Axial, bool) {
	switch s {
	case StateChase:
		return d.chaseGoal(e, w)
	case StateRetreat:
		return d.retreatGoal(e, w)
	default:
		return d.patrolGoal(e, w)
	}
}

// chaseGoal targets the open cell beside the player that is closest to
// the enemy. An enemy already adjacent holds its ground.
func (d *Decider) chaseGoal(e *entity.Actor, w World) (hexmap.Axial, bool) {
	playerPos, alive := w.PlayerPos()
	if !alive {
		return hexmap.Axial{}, false
	}
	if hexmap.Distance(e.Pos, playerPos) == 1 {
		return e.Pos, true
	}

	radius := scanRadius(e)
	var best hexmap.Axial
	bestDist := -1
	for _, c := range hexmap.Neighbors(playerPos) {
		if hexmap.Distance(e.Pos, c) > radius {
			continue
		}
		if _, ok := w.CostAt(c); !ok {
			continue
		}
		if w.Occupied(c) {
			continue
		}
		dist := hexmap.Distance(e.Pos, c)
		if bestDist == -1 || dist < bestDist {
			best, bestDist = c, dist
		}
	}
	if bestDist == -1 {
		return hexmap.Axial{}, false
	}
	return best, true
}

// retreatGoal walks the scan disk for the passable open cell farthest
// from the player. The enemy's own cell is the baseline, so retreat
// always yields a goal even when standing still is the best option.
func (d *Decider) retreatGoal(e *entity.Actor, w World) (hexmap.Axial, bool) {
	playerPos, alive := w.PlayerPos()
	if !alive {
		return hexmap.Axial{}, false
	}

	best := e.Pos
	bestDist := hexmap.Distance(e.Pos, playerPos)
	eachDiskCell(e.Pos, scanRadius(e), func(c hexmap.Axial) {
		if w.Occupied(c) {
			return
		}
		if _, ok := w.CostAt(c); !ok {
			return
		}
		if dist := hexmap.Distance(c, playerPos); dist > bestDist {
			best, bestDist = c, dist
		}
	})
	return best, true
}

// patrolGoal picks uniformly among the open cells of the scan disk.
// A living player occupies its cell, so it is excluded like any other
// actor's.
func (d *Decider) patrolGoal(e *entity.Actor, w World) (hexmap.Axial, bool) {
	var candidates []hexmap.Axial
	eachDiskCell(e.Pos, scanRadius(e), func(c hexmap.Axial) {
		if c == e.Pos || w.Occupied(c) {
			return
		}
		if _, ok := w.CostAt(c); !ok {
			return
		}
		candidates = append(candidates, c)
	})
	if len(candidates) == 0 {
		return hexmap.Axial{}, false
	}
	return candidates[w.RNG().Intn(len(candidates))], true
}

// eachDiskCell visits every cell within radius of center in a fixed
// scan order (dq ascending, then dr).
func eachDiskCell(center hexmap.Axial, radius int, fn func(hexmap.Axial)) {
	for dq := -radius; dq <= radius; dq++ {
		for dr := -radius; dr <= radius; dr++ {
			if dq+dr > radius || dq+dr < -radius {
				continue
			}
			fn(center.Add(hexmap.Axial{Q: dq, R: dr}))
		}
	}
}

func scanRadius(e *entity.Actor) int {
	if e.Move < 1 {
		return 1
	}
	return e.Move
}
