// Package combat resolves attacks between actors on the hex grid.
package combat

import "github.com/ajmoran/hexfray/internal/hexmap"

// Combatant is the view of an actor that attack resolution needs.
// Entities implement it; the resolver never sees concrete actor types.
type Combatant interface {
	GetName() string
	IsAlive() bool
	Position() hexmap.Axial
	IsRanged() bool
	// TakeDamage applies up to n damage and returns the amount
	// actually applied after clamping at zero HP.
	TakeDamage(n int) int
}
