// Package game runs the lockstep session: plans are laid during a
// planning phase, committed simultaneously on the round tick, walked
// to completion, and resolved into attacks, all on one simulation
// goroutine.
package game

// Phase is the stage the combat round machine is in.
type Phase int

const (
	// PhasePlanning - plans are being stored for the next commit
	PhasePlanning Phase = iota
	// PhaseExecuting - committed plans are walking their paths
	PhaseExecuting
	// PhaseResolving - movement has finished and attacks land
	PhaseResolving
	// PhaseVictory - every enemy is down, or the objective was reached
	PhaseVictory
	// PhaseDefeat - the player fell
	PhaseDefeat
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhasePlanning:
		return "planning"
	case PhaseExecuting:
		return "executing"
	case PhaseResolving:
		return "resolving"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase absorbs; no further rounds run
// once a battle is won or lost.
func (p Phase) Terminal() bool {
	return p == PhaseVictory || p == PhaseDefeat
}

// Mode selects how movement is driven.
type Mode int

const (
	// ModeExplore walks the player freely; enemies lay no plans and
	// no attacks resolve.
	ModeExplore Mode = iota
	// ModeCombat runs the lockstep round machine.
	ModeCombat
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeExplore:
		return "explore"
	case ModeCombat:
		return "combat"
	default:
		return "unknown"
	}
}
