package game

import (
	"fmt"
	"math/rand"

	"github.com/ajmoran/hexfray/internal/behavior"
	"github.com/ajmoran/hexfray/internal/combat"
	"github.com/ajmoran/hexfray/internal/entity"
	"github.com/ajmoran/hexfray/internal/gateway"
	"github.com/ajmoran/hexfray/internal/hexmap"
	"github.com/ajmoran/hexfray/internal/pathfind"
)

// Battle is the deterministic core of a session: grid, actors, plan
// book and the round machine. It performs no I/O; the session wires
// the UI, telemetry and the validation gateway around it.
type Battle struct {
	Grid   *hexmap.Grid
	Roster *entity.Roster

	Phase Phase
	Mode  Mode
	Round int

	// Goal is the exploration objective; the player reaching it wins.
	Goal hexmap.Axial

	// Reports holds the attack outcomes of the last resolution.
	Reports []combat.Report

	Resolver *combat.Resolver

	plans   *PlanBook
	movers  []*Mover
	decider *behavior.Decider
	rng     *rand.Rand

	moveSpeed     float64
	combatBudget  int
	exploreBudget int
}

// BattleConfig carries the tunables the battle core needs.
type BattleConfig struct {
	MoveSpeed       float64
	CombatBudget    int
	ExploreBudget   int
	ChaseDistance   int
	RetreatFraction float64
	DiceSides       int
	RangedEnabled   bool
	RangedMax       int
	Seed            int64
}

// NewBattle assembles the core over a generated grid and a spawned
// roster. The battle opens in exploration mode on a planning phase.
func NewBattle(grid *hexmap.Grid, roster *entity.Roster, goal hexmap.Axial, cfg BattleConfig) *Battle {
	if cfg.MoveSpeed <= 0 {
		cfg.MoveSpeed = 4.0
	}
	if cfg.CombatBudget <= 0 {
		cfg.CombatBudget = 6
	}
	if cfg.ExploreBudget <= 0 {
		cfg.ExploreBudget = 99
	}
	if cfg.DiceSides <= 0 {
		cfg.DiceSides = 6
	}
	return &Battle{
		Grid:          grid,
		Roster:        roster,
		Phase:         PhasePlanning,
		Mode:          ModeExplore,
		Goal:          goal,
		Resolver:      combat.NewResolver(combat.NewDice(cfg.DiceSides, cfg.Seed+1), cfg.RangedEnabled, cfg.RangedMax),
		plans:         NewPlanBook(),
		decider:       behavior.NewDecider(cfg.ChaseDistance, cfg.RetreatFraction),
		rng:           rand.New(rand.NewSource(cfg.Seed)),
		moveSpeed:     cfg.MoveSpeed,
		combatBudget:  cfg.CombatBudget,
		exploreBudget: cfg.ExploreBudget,
	}
}

// Player returns the player actor.
func (b *Battle) Player() *entity.Actor {
	return b.Roster.Player()
}

// PlayerPlan returns the player's stored plan, nil if none.
func (b *Battle) PlayerPlan() *PathPlan {
	p := b.Player()
	if p == nil {
		return nil
	}
	return b.plans.Get(p.ID)
}

// PlayerPath returns the cells still ahead of the player, either in
// the stored plan or under the running mover. The renderer overlays it.
func (b *Battle) PlayerPath() []hexmap.Axial {
	if plan := b.PlayerPlan(); plan != nil && plan.Steps() > 0 {
		return plan.Path[1:]
	}
	p := b.Player()
	if p == nil {
		return nil
	}
	if m := b.moverFor(p.ID); m != nil {
		return m.Remaining()
	}
	return nil
}

// PlanPlayerPath lays the player's movement plan toward goal. In
// combat the plan waits in the book for the round tick; in exploration
// it starts walking immediately. It returns the stored plan and the
// grid snapshot taken under the same obstacles the search saw, so the
// caller can ship both to the validation authority.
func (b *Battle) PlanPlayerPath(goal hexmap.Axial) (*PathPlan, []hexmap.CellState, error) {
	player := b.Player()
	if player == nil || !player.IsAlive() {
		return nil, nil, fmt.Errorf("game: no living player to move")
	}
	if b.Phase.Terminal() {
		return nil, nil, fmt.Errorf("game: the battle is over")
	}
	if b.Mode == ModeCombat && b.Phase != PhasePlanning {
		return nil, nil, fmt.Errorf("game: plans are locked during %s", b.Phase)
	}

	budget := b.exploreBudget
	if b.Mode == ModeCombat {
		budget = b.combatBudget
	}

	var (
		path []hexmap.Axial
		snap []hexmap.CellState
	)
	pathfind.WithBlocked(b.Grid, b.livingCellsExcept(player), func() {
		path = pathfind.FindPath(b.Grid, player.Pos, goal, budget)
		snap = b.Grid.Snapshot()
	})
	if len(path) == 0 {
		return nil, nil, fmt.Errorf("game: no route to %v", goal)
	}

	plan := NewPathPlan(player.ID, path)
	b.plans.Set(plan)

	if b.Mode == ModeCombat {
		b.planEnemies()
	} else {
		b.commitPlans()
	}
	return plan, snap, nil
}

// planEnemies recomputes every living enemy's stance, goal and path.
// Each search sees all other living actors' cells as obstacles.
func (b *Battle) planEnemies() {
	for _, e := range b.Roster.AliveEnemies() {
		view := &enemyView{battle: b, self: e}
		stance := b.decider.Decide(e, view)
		goal, ok := b.decider.Goal(e, stance, view)
		if !ok || goal == e.Pos {
			b.plans.Delete(e.ID)
			continue
		}

		var path []hexmap.Axial
		pathfind.WithBlocked(b.Grid, b.livingCellsExcept(e), func() {
			path = pathfind.FindPath(b.Grid, e.Pos, goal, e.Move)
		})
		if len(path) < 2 {
			b.plans.Delete(e.ID)
			continue
		}
		b.plans.Set(NewPathPlan(e.ID, path))
	}
}

// Tick commits every stored plan simultaneously and opens execution.
// It reports false when there is nothing to commit right now: the
// battle is exploring, already executing, or over.
func (b *Battle) Tick() bool {
	if b.Mode != ModeCombat || b.Phase != PhasePlanning {
		return false
	}
	b.Round++
	b.commitPlans()
	b.Phase = PhaseExecuting
	return true
}

// commitPlans turns every stored plan into a mover, all at once, then
// empties the book. No actor's execution can observe another's stored
// plan before this moment. A fresh plan supersedes the actor's running
// mover, which is how an exploration walk gets redirected mid-path.
func (b *Battle) commitPlans() {
	for _, a := range b.Roster.Alive() {
		plan := b.plans.Get(a.ID)
		if plan == nil || plan.Steps() == 0 {
			continue
		}
		b.removeMover(a.ID)
		b.movers = append(b.movers, NewMover(a, plan, b.moveSpeed))
	}
	b.plans.Clear()
}

func (b *Battle) removeMover(actorID string) {
	kept := b.movers[:0]
	for _, m := range b.movers {
		if m.Actor.ID != actorID {
			kept = append(kept, m)
		}
	}
	b.movers = kept
}

// Advance steps the simulation by dt seconds. In combat it drives the
// executing phase and fires resolution once every mover has finished;
// in exploration it walks the player and checks the objective.
func (b *Battle) Advance(dt float64) {
	if b.Phase.Terminal() {
		return
	}

	for _, m := range b.movers {
		if !m.Done() {
			m.Advance(dt, b.canEnter(m.Actor))
		}
	}

	if b.Mode == ModeExplore {
		b.pruneDoneMovers()
		b.checkExploreOutcome()
		return
	}

	if b.Phase == PhaseExecuting && b.allMoversDone() {
		b.movers = b.movers[:0]
		b.resolveRound()
	}
}

// resolveRound applies every attack of the round against the
// positions movement just produced, then settles the next phase.
// Defeat outranks victory when both land in the same pass.
func (b *Battle) resolveRound() {
	b.Phase = PhaseResolving

	player := b.Player()
	if player == nil {
		b.Phase = PhaseDefeat
		return
	}

	living := b.Roster.AliveEnemies()
	enemies := make([]combat.Combatant, len(living))
	for i, e := range living {
		enemies[i] = e
	}
	b.Reports = b.Resolver.ResolveRound(player, enemies)

	switch {
	case !player.IsAlive():
		b.Phase = PhaseDefeat
	case b.Roster.AliveEnemyCount() == 0:
		b.Phase = PhaseVictory
	default:
		b.Phase = PhasePlanning
	}
}

// SwitchMode flips between exploration and combat. Stored plans and
// running movers do not survive the switch; combat opens on a fresh
// planning phase.
func (b *Battle) SwitchMode(m Mode) error {
	switch m {
	case ModeExplore, ModeCombat:
	default:
		return fmt.Errorf("game: unknown mode %d", m)
	}
	if m == b.Mode {
		return nil
	}
	b.Mode = m
	b.plans.Clear()
	b.movers = b.movers[:0]
	if !b.Phase.Terminal() {
		b.Phase = PhasePlanning
	}
	return nil
}

// ValidationOutcome says what a gateway verdict did to the local state.
type ValidationOutcome int

const (
	// OutcomeStale - the verdict arrived for a plan that is gone
	OutcomeStale ValidationOutcome = iota
	// OutcomeApproved - the authority agreed with the local plan
	OutcomeApproved
	// OutcomeAmended - the authority substituted its own path
	OutcomeAmended
	// OutcomeRejected - the authority refused the plan
	OutcomeRejected
	// OutcomeFailOpen - transport failed; the local plan stands
	OutcomeFailOpen
)

// String returns the outcome name.
func (o ValidationOutcome) String() string {
	switch o {
	case OutcomeStale:
		return "stale"
	case OutcomeApproved:
		return "approved"
	case OutcomeAmended:
		return "amended"
	case OutcomeRejected:
		return "rejected"
	case OutcomeFailOpen:
		return "fail_open"
	default:
		return "unknown"
	}
}

// ApplyValidation folds a gateway verdict into the battle. Verdicts
// whose plan ID matches nothing current are stale and change nothing.
// Transport errors keep the local plan. A rejection clears a pending
// plan, or halts the walking mover it arrived too late to prevent.
// An approval carrying a different path replaces a pending plan;
// a mover already walking keeps its course.
func (b *Battle) ApplyValidation(res gateway.Result) ValidationOutcome {
	player := b.Player()
	if player == nil {
		return OutcomeStale
	}

	if plan := b.plans.Get(player.ID); plan != nil && plan.ID == res.PlanID {
		switch {
		case res.Err != nil:
			return OutcomeFailOpen
		case !res.Approved:
			b.plans.Delete(player.ID)
			return OutcomeRejected
		case len(res.Path) > 0 && !equalPaths(plan.Path, res.Path):
			plan.Path = res.Path
			return OutcomeAmended
		default:
			return OutcomeApproved
		}
	}

	if m := b.moverFor(player.ID); m != nil && m.PlanID == res.PlanID {
		switch {
		case res.Err != nil:
			return OutcomeFailOpen
		case !res.Approved:
			m.Halt()
			return OutcomeRejected
		default:
			return OutcomeApproved
		}
	}

	return OutcomeStale
}

// ConsumeReports hands over the reports of the last resolution and
// clears them, so each round's outcomes surface exactly once.
func (b *Battle) ConsumeReports() []combat.Report {
	reports := b.Reports
	b.Reports = nil
	return reports
}

// Executing reports whether committed movement is still in flight.
func (b *Battle) Executing() bool {
	return len(b.movers) > 0 && !b.allMoversDone()
}

func (b *Battle) allMoversDone() bool {
	for _, m := range b.movers {
		if !m.Done() {
			return false
		}
	}
	return true
}

func (b *Battle) pruneDoneMovers() {
	kept := b.movers[:0]
	for _, m := range b.movers {
		if !m.Done() {
			kept = append(kept, m)
		}
	}
	b.movers = kept
}

func (b *Battle) moverFor(actorID string) *Mover {
	for _, m := range b.movers {
		if m.Actor.ID == actorID {
			return m
		}
	}
	return nil
}

func (b *Battle) checkExploreOutcome() {
	player := b.Player()
	switch {
	case player == nil || !player.IsAlive():
		b.Phase = PhaseDefeat
	case player.Pos == b.Goal:
		b.Phase = PhaseVictory
	}
}

// canEnter vetoes hops into impassable or occupied cells. The mover's
// own actor never blocks itself.
func (b *Battle) canEnter(a *entity.Actor) func(hexmap.Axial) bool {
	return func(c hexmap.Axial) bool {
		if _, ok := b.Grid.CostAt(c); !ok {
			return false
		}
		occ := b.Roster.OccupiedBy(c)
		return occ == nil || occ == a
	}
}

// livingCellsExcept returns the cells of every living actor other
// than the one searching, for use as scoped obstacles.
func (b *Battle) livingCellsExcept(except *entity.Actor) []hexmap.Axial {
	var cells []hexmap.Axial
	for _, a := range b.Roster.Alive() {
		if a != except {
			cells = append(cells, a.Pos)
		}
	}
	return cells
}

func equalPaths(a, b []hexmap.Axial) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// enemyView adapts the battle to the behavior package's World for one
// deciding enemy; its own cell never counts as occupied.
type enemyView struct {
	battle *Battle
	self   *entity.Actor
}

func (v *enemyView) PlayerPos() (hexmap.Axial, bool) {
	p := v.battle.Player()
	if p == nil || !p.IsAlive() {
		return hexmap.Axial{}, false
	}
	return p.Pos, true
}

func (v *enemyView) Occupied(c hexmap.Axial) bool {
	a := v.battle.Roster.OccupiedBy(c)
	return a != nil && a != v.self
}

func (v *enemyView) CostAt(c hexmap.Axial) (int, bool) {
	return v.battle.Grid.CostAt(c)
}

func (v *enemyView) RNG() *rand.Rand {
	return v.battle.rng
}

var _ behavior.World = (*enemyView)(nil)
