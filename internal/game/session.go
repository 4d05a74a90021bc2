package game

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ajmoran/hexfray/internal/combat"
	"github.com/ajmoran/hexfray/internal/config"
	"github.com/ajmoran/hexfray/internal/entity"
	"github.com/ajmoran/hexfray/internal/gamedata"
	"github.com/ajmoran/hexfray/internal/gateway"
	"github.com/ajmoran/hexfray/internal/hexmap"
	"github.com/ajmoran/hexfray/internal/telemetry"
	"github.com/ajmoran/hexfray/internal/ui"
)

const framesPerSecond = 30

// Session drives one battle end to end: terminal input, the frame and
// round tickers, the validation gateway, and rendering.
type Session struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	battle   *Battle
	client   *gateway.Client
	logger   *slog.Logger
	cfg      *config.Config

	cursor       hexmap.Axial
	running      bool
	message      string
	messageUntil time.Time
	bannerUntil  time.Time
	roundTicker  *time.Ticker

	// validations funnels every gateway verdict back onto the session
	// goroutine; nothing else touches battle state.
	validations chan gateway.Result
}

// NewSession builds the battlefield, spawns the roster from the
// embedded definitions and takes over the terminal. The screen is
// initialized last so setup errors leave the terminal untouched.
func NewSession(cfg *config.Config, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}

	seed := cfg.Map.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	grid, err := buildGrid(cfg.Map, seed)
	if err != nil {
		return nil, err
	}

	registry, err := gamedata.LoadActorRegistry()
	if err != nil {
		return nil, fmt.Errorf("load actors: %w", err)
	}

	roster := entity.NewRoster()
	for _, def := range registry.All() {
		actor, err := spawnActor(grid, roster, def)
		if err != nil {
			return nil, err
		}
		if err := roster.Add(actor); err != nil {
			return nil, err
		}
	}

	_, hi := grid.Bounds()
	goal, ok := openCellNear(grid, roster, hexmap.Axial{Q: hi, R: hi})
	if !ok {
		return nil, fmt.Errorf("game: no open cell for the objective")
	}

	battle := NewBattle(grid, roster, goal, BattleConfig{
		MoveSpeed:       cfg.MoveSpeed,
		CombatBudget:    cfg.CombatMoveLimit,
		ExploreBudget:   cfg.ExploreMoveLimit,
		ChaseDistance:   cfg.ChaseDistance,
		RetreatFraction: cfg.RetreatFraction,
		DiceSides:       cfg.DiceSides,
		RangedEnabled:   cfg.EnemyRangedAttackEnabled,
		RangedMax:       cfg.RangedMaxDistance,
		Seed:            seed,
	})

	logger.Info("battle ready",
		"map_size", grid.Size(),
		"seed", seed,
		"generator", cfg.Map.Generator,
		"actors", len(roster.All()),
		"goal", goal,
	)

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}

	return &Session{
		screen:      screen,
		renderer:    ui.NewRenderer(screen),
		battle:      battle,
		client:      gateway.NewClient(cfg.ServerURL),
		logger:      logger,
		cfg:         cfg,
		cursor:      battle.Player().Pos,
		running:     true,
		validations: make(chan gateway.Result, 8),
	}, nil
}

// Run executes the main loop until the player quits, the battle ends,
// or the context is canceled.
func (s *Session) Run(ctx context.Context) error {
	defer s.screen.Close()

	tracer := telemetry.Tracer("game")
	ctx, initSpan := tracer.Start(ctx, "game.init")
	initSpan.SetAttributes(
		attribute.Int("map.size", s.battle.Grid.Size()),
		attribute.Int("roster.actors", len(s.battle.Roster.All())),
	)
	initSpan.End()

	events := s.screen.Events()

	frame := time.NewTicker(time.Second / framesPerSecond)
	defer frame.Stop()
	s.roundTicker = time.NewTicker(s.tickInterval())
	defer s.roundTicker.Stop()

	last := time.Now()
	s.render(last)

	for s.running {
		select {
		case <-ctx.Done():
			s.running = false

		case ev, ok := <-events:
			if !ok {
				s.running = false
				break
			}
			s.handleEvent(ctx, ev)

		case now := <-frame.C:
			s.battle.Advance(now.Sub(last).Seconds())
			last = now
			if reports := s.battle.ConsumeReports(); len(reports) > 0 {
				s.showReports(now, reports)
			}
			s.checkEnd(now)
			s.render(now)

		case <-s.roundTicker.C:
			s.tick(ctx)

		case res := <-s.validations:
			s.applyValidation(res)
		}
	}

	return nil
}

// handleEvent processes a single terminal event.
func (s *Session) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		s.handleKeyEvent(ctx, ev)
	case *tcell.EventMouse:
		s.handleMouseEvent(ctx, ev)
	case *tcell.EventResize:
		s.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input. Arrows and hjkl steer the
// cursor, with u and n covering the two hex diagonals the four-way
// keys cannot reach.
func (s *Session) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		s.running = false

	case tcell.KeyUp:
		s.moveCursor(0, -1)
	case tcell.KeyDown:
		s.moveCursor(0, 1)
	case tcell.KeyLeft:
		s.moveCursor(-1, 0)
	case tcell.KeyRight:
		s.moveCursor(1, 0)

	case tcell.KeyEnter:
		s.plan(ctx, s.cursor)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			s.running = false
		case 'h':
			s.moveCursor(-1, 0)
		case 'l':
			s.moveCursor(1, 0)
		case 'k':
			s.moveCursor(0, -1)
		case 'j':
			s.moveCursor(0, 1)
		case 'u':
			s.moveCursor(1, -1)
		case 'n':
			s.moveCursor(-1, 1)
		case ' ':
			s.tick(ctx)
		case 'm', 'M':
			s.toggleMode()
		}
	}
}

// handleMouseEvent plans a path to the clicked cell.
func (s *Session) handleMouseEvent(ctx context.Context, ev *tcell.EventMouse) {
	if ev.Buttons()&tcell.Button1 == 0 {
		return
	}
	x, y := ev.Position()
	cell := s.renderer.CellAt(x, y)
	if !s.battle.Grid.Contains(cell) {
		return
	}
	s.cursor = cell
	s.plan(ctx, cell)
}

func (s *Session) moveCursor(dq, dr int) {
	next := s.cursor.Add(hexmap.Axial{Q: dq, R: dr})
	if s.battle.Grid.Contains(next) {
		s.cursor = next
	}
}

// plan routes the player toward goal and ships the plan to the
// validation authority in the background.
func (s *Session) plan(ctx context.Context, goal hexmap.Axial) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.plan")
	defer span.End()
	span.SetAttributes(
		attribute.Int("goal.q", goal.Q),
		attribute.Int("goal.r", goal.R),
		attribute.String("game.mode", s.battle.Mode.String()),
	)

	plan, cells, err := s.battle.PlanPlayerPath(goal)
	if err != nil {
		s.flash(err.Error())
		return
	}
	s.logger.Info("path planned", "plan", plan.ID, "steps", plan.Steps(), "goal", goal)

	results := s.client.Validate(ctx, gateway.Request{
		PlanID:   plan.ID,
		Start:    plan.Path[0],
		Goal:     goal,
		Mode:     s.battle.Mode.String(),
		GridSize: s.battle.Grid.Size(),
		Cells:    cells,
	})
	go func() {
		res, ok := <-results
		if !ok {
			return
		}
		select {
		case s.validations <- res:
		case <-ctx.Done():
		}
	}()
}

// tick commits the round. Both the round ticker and the space key land
// here; a manual commit pushes the next automatic one a full interval
// out.
func (s *Session) tick(ctx context.Context) {
	if !s.battle.Tick() {
		return
	}
	_, span := telemetry.Tracer("game").Start(ctx, "game.tick")
	span.SetAttributes(attribute.Int("round", s.battle.Round))
	span.End()

	s.roundTicker.Reset(s.tickInterval())
	s.flash(fmt.Sprintf("round %d", s.battle.Round))
	s.logger.Info("round committed", "round", s.battle.Round)
}

func (s *Session) toggleMode() {
	target := ModeCombat
	if s.battle.Mode == ModeCombat {
		target = ModeExplore
	}
	if err := s.battle.SwitchMode(target); err != nil {
		s.flash(err.Error())
		return
	}
	s.flash("mode: " + target.String())
	s.logger.Info("mode switched", "mode", target)
}

func (s *Session) applyValidation(res gateway.Result) {
	outcome := s.battle.ApplyValidation(res)
	s.logger.Info("validation applied", "plan", res.PlanID, "outcome", outcome)
	switch outcome {
	case OutcomeRejected:
		s.flash("authority rejected the path")
	case OutcomeAmended:
		s.flash("authority amended the path")
	case OutcomeFailOpen:
		s.flash("authority unreachable; keeping local path")
	}
}

// showReports logs the round's attacks and surfaces them on the
// message line.
func (s *Session) showReports(now time.Time, reports []combat.Report) {
	parts := make([]string, 0, len(reports))
	for _, r := range reports {
		s.logger.Info("attack resolved",
			"attacker", r.Attacker,
			"defender", r.Defender,
			"kind", r.Kind,
			"roll", r.Roll,
			"damage", r.Damage,
			"killed", r.Killed,
		)
		parts = append(parts, r.Message)
		if r.Killed {
			parts = append(parts, r.Defender+" falls")
		}
	}
	s.message = strings.Join(parts, " · ")
	s.messageUntil = now.Add(s.seconds(s.cfg.MessageSeconds))
}

// checkEnd holds the victory or defeat banner on screen for a moment,
// then stops the loop.
func (s *Session) checkEnd(now time.Time) {
	if !s.battle.Phase.Terminal() {
		return
	}
	if s.bannerUntil.IsZero() {
		s.bannerUntil = now.Add(s.seconds(s.cfg.WinBannerSeconds))
		s.logger.Info("battle over", "phase", s.battle.Phase, "round", s.battle.Round)
		return
	}
	if now.After(s.bannerUntil) {
		s.running = false
	}
}

func (s *Session) render(now time.Time) {
	msg := ""
	if now.Before(s.messageUntil) {
		msg = s.message
	}

	banner := ""
	switch s.battle.Phase {
	case PhaseVictory:
		banner = "VICTORY"
	case PhaseDefeat:
		banner = "DEFEAT"
	}

	var hp, maxHP int
	if p := s.battle.Player(); p != nil {
		hp, maxHP = p.HP, p.MaxHP
	}

	s.renderer.Render(ui.Frame{
		Grid:    s.battle.Grid,
		Actors:  s.battle.Roster.Alive(),
		Path:    s.battle.PlayerPath(),
		Cursor:  s.cursor,
		Goal:    s.battle.Goal,
		Round:   s.battle.Round,
		Mode:    s.battle.Mode.String(),
		Phase:   s.battle.Phase.String(),
		HP:      hp,
		MaxHP:   maxHP,
		Message: msg,
		Banner:  banner,
	})
}

func (s *Session) flash(msg string) {
	s.message = msg
	s.messageUntil = time.Now().Add(s.seconds(s.cfg.FlashSeconds))
}

func (s *Session) tickInterval() time.Duration {
	return s.seconds(s.cfg.TickTime)
}

func (s *Session) seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}

// buildGrid generates terrain per the map configuration.
func buildGrid(mc config.MapConfig, seed int64) (*hexmap.Grid, error) {
	switch mc.Generator {
	case "random", "":
		return hexmap.NewGrid(mc.Size, seed), nil
	case "noise":
		ncfg := hexmap.DefaultNoiseConfig()
		ncfg.Seed = seed
		return hexmap.GenerateNoise(mc.Size, ncfg), nil
	default:
		return nil, fmt.Errorf("game: unknown map generator %q", mc.Generator)
	}
}

// spawnActor realizes a definition at its spawn cell, or the nearest
// open cell when terrain or an earlier spawn took it.
func spawnActor(grid *hexmap.Grid, roster *entity.Roster, def gamedata.ActorDef) (*entity.Actor, error) {
	kind := entity.KindEnemy
	if def.Kind == "player" {
		kind = entity.KindPlayer
	}

	pos, ok := openCellNear(grid, roster, hexmap.Axial{Q: def.Q, R: def.R})
	if !ok {
		return nil, fmt.Errorf("game: no open cell to spawn %q", def.ID)
	}

	return &entity.Actor{
		ID:            def.ID,
		Name:          def.Name,
		Kind:          kind,
		Pos:           pos,
		HP:            def.HP,
		MaxHP:         def.HP,
		Move:          def.Move,
		ChaseDistance: def.ChaseDistance,
		Ranged:        def.Ranged,
		Glyph:         def.GlyphRune(),
		Color:         def.Color,
	}, nil
}

// openCellNear finds the passable unoccupied cell closest to want.
// Grid iteration order breaks distance ties, so placement is
// deterministic.
func openCellNear(grid *hexmap.Grid, roster *entity.Roster, want hexmap.Axial) (hexmap.Axial, bool) {
	var best hexmap.Axial
	bestDist := -1
	grid.Each(func(c *hexmap.Cell) {
		if _, ok := grid.CostAt(c.Coord); !ok {
			return
		}
		if roster.OccupiedBy(c.Coord) != nil {
			return
		}
		d := hexmap.Distance(want, c.Coord)
		if bestDist == -1 || d < bestDist {
			best, bestDist = c.Coord, d
		}
	})
	return best, bestDist >= 0
}
