package game

import (
	"github.com/google/uuid"

	"github.com/ajmoran/hexfray/internal/entity"
	"github.com/ajmoran/hexfray/internal/hexmap"
)

// Mover walks one actor along its committed path at a fixed speed,
// hopping to the next cell each time a segment's worth of time has
// elapsed. The actor's position updates on the hop; occupancy follows
// positions, never partial progress.
type Mover struct {
	Actor  *entity.Actor
	PlanID uuid.UUID

	path     []hexmap.Axial
	seg      int
	progress float64
	speed    float64 // cells per second
}

// NewMover creates a mover for a committed plan. Non-positive speeds
// fall back to one cell per second.
func NewMover(a *entity.Actor, plan *PathPlan, speed float64) *Mover {
	if speed <= 0 {
		speed = 1
	}
	return &Mover{
		Actor:  a,
		PlanID: plan.ID,
		path:   plan.Path,
		speed:  speed,
	}
}

// Done reports whether the path has been fully walked or cut short.
func (m *Mover) Done() bool {
	return m.seg >= len(m.path)-1
}

// Progress returns the fraction of the current segment already walked.
func (m *Mover) Progress() float64 {
	return m.progress
}

// Remaining returns the cells still ahead of the actor on this path.
func (m *Mover) Remaining() []hexmap.Axial {
	if m.Done() {
		return nil
	}
	return m.path[m.seg+1:]
}

// Halt cuts the path at the actor's current cell; the mover is done
// after this.
func (m *Mover) Halt() {
	m.path = m.path[:m.seg+1]
	m.progress = 0
}

// Advance walks dt seconds of movement. canEnter vetoes each hop as it
// comes up; a vetoed hop halts the mover at the boundary it reached
// rather than passing through.
func (m *Mover) Advance(dt float64, canEnter func(hexmap.Axial) bool) {
	if m.Done() {
		return
	}
	m.progress += dt * m.speed
	for m.progress >= 1 && !m.Done() {
		next := m.path[m.seg+1]
		if !canEnter(next) {
			m.Halt()
			return
		}
		m.Actor.Pos = next
		m.seg++
		m.progress--
	}
	if m.Done() {
		m.progress = 0
	}
}
