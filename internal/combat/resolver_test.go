package combat

import (
	"testing"

	"github.com/ajmoran/hexfray/internal/hexmap"
)

// mockCombatant is a test implementation of the Combatant interface.
type mockCombatant struct {
	name   string
	hp     int
	pos    hexmap.Axial
	ranged bool
}

func (m *mockCombatant) GetName() string { return m.name }
func (m *mockCombatant) IsAlive() bool { return m.hp > 0 }
func (m *mockCombatant) Position() hexmap.Axial { return m.pos }
func (m *mockCombatant) IsRanged() bool { return m.ranged }

func (m *mockCombatant) TakeDamage(amount int) int {
	if amount < 0 {
		amount = 0
	}
	if amount > m.hp {
		amount = m.hp
	}
	m.hp -= amount
	return amount
}

// countingRoller records how many times it was asked to roll.
type countingRoller struct {
	value int
	calls int
}

func (c *countingRoller) Roll() int {
	c.calls++
	return c.value
}

func TestDiceRange(t *testing.T) {
	d := NewDice(6, 42)
	for i := 0; i < 1000; i++ {
		roll := d.Roll()
		if roll < 1 || roll > 6 {
			t.Fatalf("roll %d out of range [1,6]", roll)
		}
	}
}

func TestDiceDeterministic(t *testing.T) {
	d1 := NewDice(6, 7)
	d2 := NewDice(6, 7)
	for i := 0; i < 20; i++ {
		if r1, r2 := d1.Roll(), d2.Roll(); r1 != r2 {
			t.Fatalf("roll %d differs between identically seeded dice: %d != %d", i, r1, r2)
		}
	}
}

func TestResolveMeleeSingleRoll(t *testing.T) {
	roller := &countingRoller{value: 4}
	r := NewResolver(roller, false, 3)

	att := &mockCombatant{name: "Grunt", hp: 10, pos: hexmap.Axial{Q: 1, R: 0}}
	def := &mockCombatant{name: "Vanguard", hp: 10, pos: hexmap.Axial{Q: 0, R: 0}}

	rep := r.ResolveMelee(att, def)

	if roller.calls != 1 {
		t.Errorf("melee made %d rolls, want exactly 1", roller.calls)
	}
	if rep.Damage != 4 || def.hp != 6 {
		t.Errorf("melee applied %d damage leaving %d hp, want 4 and 6", rep.Damage, def.hp)
	}
	if rep.Kind != AttackMelee {
		t.Errorf("report kind = %v, want melee", rep.Kind)
	}
}

func TestResolveRangedFalloff(t *testing.T) {
	tests := []struct {
		name     string
		enabled  bool
		roll     int
		dist     int
		wantOK   bool
		wantDmg  int
	}{
		{"adjacent is not ranged", true, 5, 1, false, 0},
		{"two cells", true, 5, 2, true, 4},
		{"three cells", true, 5, 3, true, 3},
		{"clamped at zero", true, 1, 3, true, 0},
		{"out of reach", true, 5, 4, false, 0},
		{"disabled", false, 5, 2, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(FixedRoller(tt.roll), tt.enabled, 3)
			att := &mockCombatant{name: "Archer", hp: 8, ranged: true}
			def := &mockCombatant{name: "Vanguard", hp: 10}

			rep, ok := r.ResolveRanged(att, def, tt.dist)
			if ok != tt.wantOK {
				t.Fatalf("ResolveRanged ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && rep.Damage != tt.wantDmg {
				t.Errorf("ranged damage = %d, want %d", rep.Damage, tt.wantDmg)
			}
		})
	}
}

func TestResolveRoundPlayerStrikesClosestOnce(t *testing.T) {
	roller := &countingRoller{value: 3}
	r := NewResolver(roller, false, 3)

	player := &mockCombatant{name: "Vanguard", hp: 10, pos: hexmap.Axial{Q: 0, R: 0}}
	near := &mockCombatant{name: "Grunt", hp: 10, pos: hexmap.Axial{Q: 1, R: 0}}
	alsoNear := &mockCombatant{name: "Skulker", hp: 10, pos: hexmap.Axial{Q: 0, R: 1}}

	reports := r.ResolveRound(player, []Combatant{near, alsoNear})

	autos := 0
	for _, rep := range reports {
		if rep.Kind == AttackAuto {
			autos++
		}
	}
	if autos != 1 {
		t.Errorf("player made %d automatic attacks with two adjacent enemies, want 1", autos)
	}
	// One auto strike plus both enemies striking back.
	if len(reports) != 3 {
		t.Errorf("round produced %d reports, want 3", len(reports))
	}
	if roller.calls != 3 {
		t.Errorf("round made %d rolls, want 3", roller.calls)
	}
}

func TestResolveRoundKilledEnemyDoesNotStrike(t *testing.T) {
	// The player's automatic strike lands first; a grunt it kills
	// never gets its own attack.
	r := NewResolver(FixedRoller(6), false, 3)

	player := &mockCombatant{name: "Vanguard", hp: 10, pos: hexmap.Axial{Q: 0, R: 0}}
	dying := &mockCombatant{name: "Grunt", hp: 2, pos: hexmap.Axial{Q: 1, R: 0}}

	reports := r.ResolveRound(player, []Combatant{dying})

	if len(reports) != 1 {
		t.Fatalf("round produced %d reports, want only the killing strike", len(reports))
	}
	if !reports[0].Killed {
		t.Error("killing strike not marked as a kill")
	}
	if player.hp != 10 {
		t.Errorf("dead enemy still dealt damage, player hp = %d", player.hp)
	}
}

func TestResolveRoundDeadAreSkipped(t *testing.T) {
	r := NewResolver(FixedRoller(4), false, 3)

	player := &mockCombatant{name: "Vanguard", hp: 10, pos: hexmap.Axial{Q: 0, R: 0}}
	corpse := &mockCombatant{name: "Grunt", hp: 0, pos: hexmap.Axial{Q: 1, R: 0}}
	far := &mockCombatant{name: "Skulker", hp: 10, pos: hexmap.Axial{Q: 4, R: 0}}

	reports := r.ResolveRound(player, []Combatant{corpse, far})

	if len(reports) != 0 {
		t.Errorf("expected no attacks (corpse adjacent, live enemy out of reach), got %v", reports)
	}
}

func TestResolveRoundRangedEnemy(t *testing.T) {
	r := NewResolver(FixedRoller(5), true, 3)

	player := &mockCombatant{name: "Vanguard", hp: 10, pos: hexmap.Axial{Q: 0, R: 0}}
	archer := &mockCombatant{name: "Archer", hp: 8, pos: hexmap.Axial{Q: 3, R: 0}, ranged: true}

	reports := r.ResolveRound(player, []Combatant{archer})

	if len(reports) != 1 {
		t.Fatalf("expected one ranged report, got %d", len(reports))
	}
	rep := reports[0]
	if rep.Kind != AttackRanged {
		t.Errorf("report kind = %v, want ranged", rep.Kind)
	}
	if rep.Damage != 3 { // roll 5 minus fall-off 2
		t.Errorf("ranged damage = %d, want 3", rep.Damage)
	}
}
