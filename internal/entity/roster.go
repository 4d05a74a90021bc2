package entity

import (
	"fmt"

	"github.com/ajmoran/hexfray/internal/hexmap"
)

// Roster holds every actor in a session in a stable order. Dead actors
// stay listed so reports and the renderer can still see them; the
// Alive views skip them.
type Roster struct {
	actors []*Actor
	byID   map[string]*Actor
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{byID: make(map[string]*Actor)}
}

// Add appends an actor. IDs must be unique.
func (r *Roster) Add(a *Actor) error {
	if _, exists := r.byID[a.ID]; exists {
		return fmt.Errorf("entity: duplicate actor id %q", a.ID)
	}
	r.actors = append(r.actors, a)
	r.byID[a.ID] = a
	return nil
}

// Get returns the actor with the given ID, or nil.
func (r *Roster) Get(id string) *Actor {
	return r.byID[id]
}

// All returns every actor, dead ones included, in insertion order.
func (r *Roster) All() []*Actor {
	return r.actors
}

// Player returns the player actor, or nil if none was added.
func (r *Roster) Player() *Actor {
	for _, a := range r.actors {
		if a.Kind == KindPlayer {
			return a
		}
	}
	return nil
}

// Alive returns the living actors in insertion order.
func (r *Roster) Alive() []*Actor {
	out := make([]*Actor, 0, len(r.actors))
	for _, a := range r.actors {
		if a.IsAlive() {
			out = append(out, a)
		}
	}
	return out
}

// AliveEnemies returns the living enemies in insertion order.
func (r *Roster) AliveEnemies() []*Actor {
	out := make([]*Actor, 0, len(r.actors))
	for _, a := range r.actors {
		if a.Kind == KindEnemy && a.IsAlive() {
			out = append(out, a)
		}
	}
	return out
}

// AliveEnemyCount returns how many enemies are still standing.
func (r *Roster) AliveEnemyCount() int {
	n := 0
	for _, a := range r.actors {
		if a.Kind == KindEnemy && a.IsAlive() {
			n++
		}
	}
	return n
}

// OccupiedBy returns the living actor standing on the cell, or nil.
// Dead actors never occupy a cell.
func (r *Roster) OccupiedBy(at hexmap.Axial) *Actor {
	for _, a := range r.actors {
		if a.IsAlive() && a.Pos == at {
			return a
		}
	}
	return nil
}
