// Package entity defines the actors that move and fight on the grid.
package entity

import (
	"github.com/ajmoran/hexfray/internal/combat"
	"github.com/ajmoran/hexfray/internal/hexmap"
)

// Kind separates the player from its opposition.
type Kind int

const (
	// KindPlayer is the human-controlled actor.
	KindPlayer Kind = iota
	// KindEnemy is a behavior-driven opponent.
	KindEnemy
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Actor is a single combatant on the grid.
type Actor struct {
	ID    string
	Name  string
	Kind  Kind
	Pos   hexmap.Axial
	HP    int
	MaxHP int

	// Move is the step budget per committed plan. For enemies it also
	// bounds the goal scan radius.
	Move int
	// ChaseDistance is how far away this actor notices the player.
	ChaseDistance int
	// Ranged marks actors that can attack beyond adjacency.
	Ranged bool

	Glyph rune
	Color string
}

// Ensure Actor satisfies the resolver's view of a combatant.
var _ combat.Combatant = (*Actor)(nil)

// GetName returns the actor's display name.
func (a *Actor) GetName() string {
	return a.Name
}

// IsAlive returns true while the actor has hit points left.
func (a *Actor) IsAlive() bool {
	return a.HP > 0
}

// Position returns the actor's current cell.
func (a *Actor) Position() hexmap.Axial {
	return a.Pos
}

// IsRanged reports whether the actor can attack beyond adjacency.
func (a *Actor) IsRanged() bool {
	return a.Ranged
}

// TakeDamage applies damage and returns the amount actually applied.
// HP never drops below zero and negative damage is ignored.
func (a *Actor) TakeDamage(n int) int {
	if n < 0 {
		n = 0
	}
	if n > a.HP {
		n = a.HP
	}
	a.HP -= n
	return n
}

// Heal restores hit points and returns the amount actually restored.
// HP never exceeds MaxHP.
func (a *Actor) Heal(n int) int {
	if n < 0 {
		n = 0
	}
	if a.HP+n > a.MaxHP {
		n = a.MaxHP - a.HP
	}
	a.HP += n
	return n
}

// HPFraction returns remaining HP as a fraction of the maximum.
func (a *Actor) HPFraction() float64 {
	if a.MaxHP <= 0 {
		return 0
	}
	return float64(a.HP) / float64(a.MaxHP)
}
