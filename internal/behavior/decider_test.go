package behavior

import (
	"math/rand"
	"testing"

	"github.com/ajmoran/hexfray/internal/entity"
	"github.com/ajmoran/hexfray/internal/hexmap"
)

// fakeWorld is a test implementation of the World interface. The
// living player occupies its own cell, like the real session view.
type fakeWorld struct {
	playerPos   hexmap.Axial
	playerAlive bool
	grid        *hexmap.Grid
	occupied    map[hexmap.Axial]bool
	rng         *rand.Rand
}

func newFakeWorld(playerPos hexmap.Axial) *fakeWorld {
	return &fakeWorld{
		playerPos:   playerPos,
		playerAlive: true,
		grid:        hexmap.NewEmptyGrid(12),
		occupied:    map[hexmap.Axial]bool{},
		rng:         rand.New(rand.NewSource(1)),
	}
}

func (f *fakeWorld) PlayerPos() (hexmap.Axial, bool) {
	return f.playerPos, f.playerAlive
}

func (f *fakeWorld) Occupied(c hexmap.Axial) bool {
	if f.playerAlive && c == f.playerPos {
		return true
	}
	return f.occupied[c]
}

func (f *fakeWorld) CostAt(c hexmap.Axial) (int, bool) {
	return f.grid.CostAt(c)
}

func (f *fakeWorld) RNG() *rand.Rand {
	return f.rng
}

func testEnemy(pos hexmap.Axial, hp, maxHP int) *entity.Actor {
	return &entity.Actor{
		ID:            "grunt",
		Name:          "Grunt",
		Kind:          entity.KindEnemy,
		Pos:           pos,
		HP:            hp,
		MaxHP:         maxHP,
		Move:          6,
		ChaseDistance: 10,
	}
}

func TestDecide(t *testing.T) {
	d := NewDecider(10, 0.3)

	tests := []struct {
		name        string
		enemy       *entity.Actor
		playerAlive bool
		want        State
	}{
		{"hurt enemy retreats even when adjacent", testEnemy(hexmap.Axial{Q: 1, R: 0}, 3, 10), true, StateRetreat},
		{"hp exactly at threshold retreats", testEnemy(hexmap.Axial{Q: 4, R: 0}, 3, 10), true, StateRetreat},
		{"healthy enemy in range chases", testEnemy(hexmap.Axial{Q: 4, R: 0}, 10, 10), true, StateChase},
		{"healthy enemy out of range patrols", testEnemy(hexmap.Axial{Q: 5, R: 6}, 10, 10), true, StatePatrol},
		{"dead player overrides everything", testEnemy(hexmap.Axial{Q: 1, R: 0}, 3, 10), false, StatePatrol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newFakeWorld(hexmap.Axial{Q: 0, R: 0})
			w.playerAlive = tt.playerAlive
			if got := d.Decide(tt.enemy, w); got != tt.want {
				t.Errorf("Decide() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChaseGoalPicksNearestOpenCellBesideThePlayer(t *testing.T) {
	d := NewDecider(10, 0.3)
	w := newFakeWorld(hexmap.Axial{Q: 0, R: 0})
	enemy := testEnemy(hexmap.Axial{Q: 3, R: 0}, 10, 10)

	goal, ok := d.Goal(enemy, StateChase, w)
	if !ok {
		t.Fatal("expected a chase goal")
	}
	if hexmap.Distance(goal, w.playerPos) != 1 {
		t.Errorf("chase goal %v is not beside the player", goal)
	}
	if goal != (hexmap.Axial{Q: 1, R: 0}) {
		t.Errorf("chase goal = %v, want the nearest flank (1,0)", goal)
	}
}

func TestChaseGoalSkipsOccupiedCells(t *testing.T) {
	d := NewDecider(10, 0.3)
	w := newFakeWorld(hexmap.Axial{Q: 0, R: 0})
	w.occupied[hexmap.Axial{Q: 1, R: 0}] = true // another enemy already holds the near flank
	enemy := testEnemy(hexmap.Axial{Q: 3, R: 0}, 10, 10)

	goal, ok := d.Goal(enemy, StateChase, w)
	if !ok {
		t.Fatal("expected a chase goal")
	}
	if goal == (hexmap.Axial{Q: 1, R: 0}) {
		t.Error("chase goal landed on an occupied cell")
	}
	if hexmap.Distance(goal, w.playerPos) != 1 {
		t.Errorf("chase goal %v is not beside the player", goal)
	}
}

func TestChaseGoalWhenAlreadyAdjacent(t *testing.T) {
	d := NewDecider(10, 0.3)
	w := newFakeWorld(hexmap.Axial{Q: 0, R: 0})
	enemy := testEnemy(hexmap.Axial{Q: 1, R: 0}, 10, 10)

	goal, ok := d.Goal(enemy, StateChase, w)
	if !ok || goal != enemy.Pos {
		t.Errorf("adjacent enemy should hold its cell, got %v, %v", goal, ok)
	}
}

func TestChaseGoalFullySurroundedPlayer(t *testing.T) {
	d := NewDecider(10, 0.3)
	w := newFakeWorld(hexmap.Axial{Q: 0, R: 0})
	for _, n := range hexmap.Neighbors(w.playerPos) {
		w.occupied[n] = true
	}
	enemy := testEnemy(hexmap.Axial{Q: 4, R: 0}, 10, 10)

	if _, ok := d.Goal(enemy, StateChase, w); ok {
		t.Error("expected no goal when every flank is taken")
	}
}

func TestRetreatGoalMovesAway(t *testing.T) {
	d := NewDecider(10, 0.3)
	w := newFakeWorld(hexmap.Axial{Q: 0, R: 0})
	enemy := testEnemy(hexmap.Axial{Q: 1, R: 0}, 3, 10)

	goal, ok := d.Goal(enemy, StateRetreat, w)
	if !ok {
		t.Fatal("expected a retreat goal")
	}
	before := hexmap.Distance(enemy.Pos, w.playerPos)
	after := hexmap.Distance(goal, w.playerPos)
	if after <= before {
		t.Errorf("retreat goal %v is no farther from the player (%d vs %d)", goal, after, before)
	}
}

func TestRetreatGoalHoldsWhenBoxedIn(t *testing.T) {
	// Wall off everything except the enemy's own cell; the best
	// retreat is to stand still.
	d := NewDecider(10, 0.3)
	w := newFakeWorld(hexmap.Axial{Q: 0, R: 0})
	enemy := testEnemy(hexmap.Axial{Q: 2, R: 0}, 3, 10)

	w.grid.Each(func(c *hexmap.Cell) {
		if c.Coord != enemy.Pos && c.Coord != w.playerPos {
			w.grid.SetTerrain(c.Coord, hexmap.TerrainWall)
		}
	})

	goal, ok := d.Goal(enemy, StateRetreat, w)
	if !ok || goal != enemy.Pos {
		t.Errorf("boxed-in retreat should hold at %v, got %v, %v", enemy.Pos, goal, ok)
	}
}

func TestPatrolGoal(t *testing.T) {
	d := NewDecider(10, 0.3)
	enemy := testEnemy(hexmap.Axial{Q: 0, R: 0}, 10, 10)

	t.Run("seeded pick is deterministic", func(t *testing.T) {
		w1 := newFakeWorld(hexmap.Axial{Q: 5, R: 5})
		w2 := newFakeWorld(hexmap.Axial{Q: 5, R: 5})

		g1, ok1 := d.Goal(enemy, StatePatrol, w1)
		g2, ok2 := d.Goal(enemy, StatePatrol, w2)
		if !ok1 || !ok2 || g1 != g2 {
			t.Errorf("same seed picked different patrol goals: %v vs %v", g1, g2)
		}
		if g1 == enemy.Pos {
			t.Error("patrol picked the enemy's own cell")
		}
	})

	t.Run("no open cells means no goal", func(t *testing.T) {
		w := newFakeWorld(hexmap.Axial{Q: 5, R: 5})
		w.grid.Each(func(c *hexmap.Cell) {
			if c.Coord != enemy.Pos {
				w.grid.SetTerrain(c.Coord, hexmap.TerrainWall)
			}
		})
		if _, ok := d.Goal(enemy, StatePatrol, w); ok {
			t.Error("expected no patrol goal on a walled grid")
		}
	})
}
