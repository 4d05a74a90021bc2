package game

import (
	"github.com/google/uuid"

	"github.com/ajmoran/hexfray/internal/hexmap"
)

// PathPlan is one actor's movement intent for a round. The ID is what
// tells a current plan apart from a stale one when validation verdicts
// arrive late.
type PathPlan struct {
	ID      uuid.UUID
	ActorID string
	Path    []hexmap.Axial
}

// NewPathPlan mints a plan with a fresh identity.
func NewPathPlan(actorID string, path []hexmap.Axial) *PathPlan {
	return &PathPlan{
		ID:      uuid.New(),
		ActorID: actorID,
		Path:    path,
	}
}

// Steps returns how many cells the plan actually moves.
func (p *PathPlan) Steps() int {
	if p == nil || len(p.Path) == 0 {
		return 0
	}
	return len(p.Path) - 1
}

// PlanBook stores the plans laid during a planning phase until the
// round tick commits them all at once. One plan per actor.
type PlanBook struct {
	plans map[string]*PathPlan
}

// NewPlanBook creates an empty book.
func NewPlanBook() *PlanBook {
	return &PlanBook{plans: make(map[string]*PathPlan)}
}

// Set stores a plan, replacing the actor's previous one.
func (b *PlanBook) Set(p *PathPlan) {
	b.plans[p.ActorID] = p
}

// Get returns the actor's stored plan, or nil.
func (b *PlanBook) Get(actorID string) *PathPlan {
	return b.plans[actorID]
}

// Delete drops the actor's stored plan.
func (b *PlanBook) Delete(actorID string) {
	delete(b.plans, actorID)
}

// Clear drops every stored plan.
func (b *PlanBook) Clear() {
	clear(b.plans)
}

// Len returns how many actors have a stored plan.
func (b *PlanBook) Len() int {
	return len(b.plans)
}
