package combat

import (
	"fmt"

	"github.com/ajmoran/hexfray/internal/hexmap"
)

// AttackKind classifies how an attack was delivered.
type AttackKind int

const (
	// AttackMelee is an adjacent strike by an enemy.
	AttackMelee AttackKind = iota
	// AttackRanged is a distance shot with fall-off.
	AttackRanged
	// AttackAuto is the player's automatic strike on an adjacent enemy.
	AttackAuto
)

// String returns the attack kind name.
func (k AttackKind) String() string {
	switch k {
	case AttackMelee:
		return "melee"
	case AttackRanged:
		return "ranged"
	case AttackAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// Report records the outcome of a single resolved attack.
type Report struct {
	Attacker string
	Defender string
	Kind     AttackKind
	Roll     int
	Damage   int // damage actually applied after clamping
	Killed   bool
	Message  string
}

// Resolver applies attacks between combatants. One die roll per
// resolved attack, never more.
type Resolver struct {
	Dice          Roller
	RangedEnabled bool
	// RangedMax is the farthest distance a ranged attack reaches.
	RangedMax int
}

// NewResolver creates a resolver with the given die. Ranged attacks
// start disabled and reach at most rangedMax cells when enabled.
func NewResolver(dice Roller, rangedEnabled bool, rangedMax int) *Resolver {
	if rangedMax < 2 {
		rangedMax = 2
	}
	return &Resolver{
		Dice:          dice,
		RangedEnabled: rangedEnabled,
		RangedMax:     rangedMax,
	}
}

// ResolveMelee rolls once and applies the full roll as damage.
func (r *Resolver) ResolveMelee(att, def Combatant) Report {
	return r.strike(att, def, AttackMelee, 0)
}

// ResolveAuto is the player's automatic attack; mechanically a melee
// strike, reported separately so the log can tell them apart.
func (r *Resolver) ResolveAuto(att, def Combatant) Report {
	return r.strike(att, def, AttackAuto, 0)
}

// ResolveRanged rolls once and applies the roll minus a fall-off of
// one point per cell beyond adjacency, clamped at zero. It reports
// false when ranged attacks are disabled or the distance is outside
// (1, RangedMax].
func (r *Resolver) ResolveRanged(att, def Combatant, dist int) (Report, bool) {
	if !r.RangedEnabled || dist <= 1 || dist > r.RangedMax {
		return Report{}, false
	}
	return r.strike(att, def, AttackRanged, dist-1), true
}

func (r *Resolver) strike(att, def Combatant, kind AttackKind, falloff int) Report {
	roll := r.Dice.Roll()
	dmg := roll - falloff
	if dmg < 0 {
		dmg = 0
	}
	applied := def.TakeDamage(dmg)
	return Report{
		Attacker: att.GetName(),
		Defender: def.GetName(),
		Kind:     kind,
		Roll:     roll,
		Damage:   applied,
		Killed:   !def.IsAlive(),
		Message:  fmt.Sprintf("%s hits %s for %d", att.GetName(), def.GetName(), applied),
	}
}

// ResolveRound resolves every attack of one combat round against
// post-movement positions. The player strikes first: one automatic
// attack on the closest living enemy if it stands adjacent. Then each
// living enemy attacks in roster order, melee when adjacent, otherwise
// ranged when capable and in reach. An enemy killed by the player's
// strike gets no attack, and nobody targets the dead.
func (r *Resolver) ResolveRound(player Combatant, enemies []Combatant) []Report {
	var reports []Report

	if player.IsAlive() {
		if target := closestLiving(player, enemies); target != nil &&
			hexmap.Distance(player.Position(), target.Position()) == 1 {
			reports = append(reports, r.ResolveAuto(player, target))
		}
	}

	for _, e := range enemies {
		if !e.IsAlive() || !player.IsAlive() {
			continue
		}
		dist := hexmap.Distance(e.Position(), player.Position())
		switch {
		case dist == 1:
			reports = append(reports, r.ResolveMelee(e, player))
		case e.IsRanged():
			if rep, ok := r.ResolveRanged(e, player, dist); ok {
				reports = append(reports, rep)
			}
		}
	}

	return reports
}

func closestLiving(from Combatant, candidates []Combatant) Combatant {
	var best Combatant
	bestDist := 0
	for _, c := range candidates {
		if !c.IsAlive() {
			continue
		}
		d := hexmap.Distance(from.Position(), c.Position())
		if best == nil || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
