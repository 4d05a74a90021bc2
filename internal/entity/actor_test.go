package entity

import (
	"testing"

	"github.com/ajmoran/hexfray/internal/hexmap"
)

func TestActorTakeDamage(t *testing.T) {
	tests := []struct {
		name        string
		hp          int
		damage      int
		wantApplied int
		wantHP      int
	}{
		{"normal hit", 10, 4, 4, 6},
		{"overkill clamps", 3, 9, 3, 0},
		{"exact kill", 5, 5, 5, 0},
		{"zero damage", 10, 0, 0, 10},
		{"negative damage ignored", 10, -3, 0, 10},
		{"already dead", 0, 2, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Actor{Name: "Grunt", HP: tt.hp, MaxHP: 10}
			applied := a.TakeDamage(tt.damage)
			if applied != tt.wantApplied {
				t.Errorf("TakeDamage(%d) returned %d, want %d", tt.damage, applied, tt.wantApplied)
			}
			if a.HP != tt.wantHP {
				t.Errorf("HP after damage = %d, want %d", a.HP, tt.wantHP)
			}
		})
	}
}

func TestActorHeal(t *testing.T) {
	tests := []struct {
		name       string
		hp         int
		heal       int
		wantHealed int
		wantHP     int
	}{
		{"normal heal", 4, 3, 3, 7},
		{"overheal clamps", 8, 5, 2, 10},
		{"at max", 10, 5, 0, 10},
		{"negative heal ignored", 4, -2, 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Actor{HP: tt.hp, MaxHP: 10}
			healed := a.Heal(tt.heal)
			if healed != tt.wantHealed {
				t.Errorf("Heal(%d) returned %d, want %d", tt.heal, healed, tt.wantHealed)
			}
			if a.HP != tt.wantHP {
				t.Errorf("HP after heal = %d, want %d", a.HP, tt.wantHP)
			}
		})
	}
}

func TestActorHPFraction(t *testing.T) {
	a := &Actor{HP: 3, MaxHP: 10}
	if got := a.HPFraction(); got != 0.3 {
		t.Errorf("HPFraction() = %v, want 0.3", got)
	}

	broken := &Actor{HP: 5, MaxHP: 0}
	if got := broken.HPFraction(); got != 0 {
		t.Errorf("HPFraction() with zero MaxHP = %v, want 0", got)
	}
}

func TestRosterViews(t *testing.T) {
	r := NewRoster()
	player := &Actor{ID: "player", Kind: KindPlayer, HP: 10, MaxHP: 10, Pos: hexmap.Axial{Q: 0, R: 0}}
	grunt := &Actor{ID: "grunt", Kind: KindEnemy, HP: 10, MaxHP: 10, Pos: hexmap.Axial{Q: 1, R: 0}}
	archer := &Actor{ID: "archer", Kind: KindEnemy, HP: 0, MaxHP: 8, Pos: hexmap.Axial{Q: 2, R: 0}}

	for _, a := range []*Actor{player, grunt, archer} {
		if err := r.Add(a); err != nil {
			t.Fatalf("Add(%s): %v", a.ID, err)
		}
	}

	if err := r.Add(&Actor{ID: "grunt"}); err == nil {
		t.Error("expected an error adding a duplicate ID")
	}

	if r.Player() != player {
		t.Error("Player() did not return the player actor")
	}
	if got := r.AliveEnemyCount(); got != 1 {
		t.Errorf("AliveEnemyCount() = %d, want 1", got)
	}
	if alive := r.Alive(); len(alive) != 2 {
		t.Errorf("Alive() returned %d actors, want 2", len(alive))
	}

	// Dead actors do not occupy cells.
	if r.OccupiedBy(archer.Pos) != nil {
		t.Error("dead actor reported as occupying its cell")
	}
	if r.OccupiedBy(grunt.Pos) != grunt {
		t.Error("living enemy not found on its cell")
	}
}
