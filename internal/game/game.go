// Package game runs a skirmish: it deploys both sides from the unit
// templates, plans every unit's turn and drives the battle to an outcome,
// optionally drawing each turn to the terminal.
package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/battlecore/internal/action"
	"github.com/samdwyer/battlecore/internal/battle"
	"github.com/samdwyer/battlecore/internal/battlelog"
	"github.com/samdwyer/battlecore/internal/config"
	"github.com/samdwyer/battlecore/internal/gamedata"
	"github.com/samdwyer/battlecore/internal/preview"
	"github.com/samdwyer/battlecore/internal/telemetry"
	"github.com/samdwyer/battlecore/internal/ui"
	"github.com/samdwyer/battlecore/internal/world"
)

// Game holds the entire skirmish state.
type Game struct {
	cfg      config.Config
	battle   *battle.Battle
	sim      *preview.Simulator
	planner  *AutoPlanner
	log      *battlelog.Log
	screen   *ui.Screen // nil when headless
	renderer *ui.Renderer
	running  bool
}

// New deploys the default lineup onto a fresh field. screen may be nil for
// a headless run. A zero seed draws one from the clock.
func New(cfg config.Config, log *battlelog.Log, screen *ui.Screen) (*Game, error) {
	skills, err := gamedata.LoadSkillRegistry()
	if err != nil {
		return nil, fmt.Errorf("load skills: %w", err)
	}
	items, err := gamedata.LoadItemRegistry()
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	units, err := gamedata.LoadUnitRegistry()
	if err != nil {
		return nil, fmt.Errorf("load units: %w", err)
	}

	field := world.NewField(cfg.Columns, cfg.Rows)
	b := battle.New(field, skills, log, battle.Options{RestStamina: cfg.RestStamina})
	dep, err := Deploy(b, units, DefaultLineup(), log)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Game{
		cfg:     cfg,
		battle:  b,
		sim:     preview.NewSimulator(b, b, log),
		planner: NewAutoPlanner(b, skills, items, dep.Inventory, rand.New(rand.NewSource(seed))),
		log:     log,
		screen:  screen,
		running: true,
	}
	if screen != nil {
		g.renderer = ui.NewRenderer(screen, cfg.Columns, cfg.Rows, log)
		for id, def := range dep.Templates {
			g.renderer.SetAppearance(id, ui.Appearance{Glyph: def.GlyphRune(), Color: def.TCellColor()})
		}
		g.sim.SetRenderer(g.renderer)
	}
	return g, nil
}

// Battle returns the battle being played.
func (g *Game) Battle() *battle.Battle { return g.battle }

// Run plays turns until a side wins, the turn limit is reached, the player
// quits or ctx is cancelled.
func (g *Game) Run(ctx context.Context) (battle.Outcome, error) {
	ctx, span := telemetry.Tracer("game").Start(ctx, "game.run")
	defer span.End()

	span.SetAttributes(
		attribute.Int("field.columns", g.cfg.Columns),
		attribute.Int("field.rows", g.cfg.Rows),
		attribute.Int("units", len(g.battle.Units())),
	)

	outcome := battle.OutcomeOngoing
	for turn := 0; turn < g.cfg.MaxTurns && g.running; turn++ {
		if err := ctx.Err(); err != nil {
			return outcome, err
		}

		outcome = g.PlayTurn(ctx)

		if g.screen != nil {
			g.showResolved()
			g.handleInput()
		}
		if outcome != battle.OutcomeOngoing {
			break
		}
	}

	if outcome == battle.OutcomeOngoing && g.running {
		g.log.Addf("The battle is called off after %d turns", g.battle.Turn())
	}
	span.SetAttributes(
		attribute.Int("turns", g.battle.Turn()),
		attribute.String("outcome", outcome.String()),
	)
	return outcome, nil
}

// PlayTurn plans every standing unit, previews each declaration's stamina
// cost and resolves the turn.
func (g *Game) PlayTurn(ctx context.Context) battle.Outcome {
	g.battle.BeginPlanning(ctx)
	if g.battle.Phase() != battle.PhasePlanning {
		return g.battle.Outcome()
	}

	if snap, ok := g.battle.LatestSnapshot(); ok {
		g.sim.ShowStateFromSnapshot(&snap)
	}

	q := action.NewQueue()
	for _, u := range g.battle.LiveUnits() {
		cost := 0
		for _, p := range g.planner.Plan(u, q) {
			cost += p.StaminaCost()
		}
		if cost > 0 {
			g.sim.ShowTemporaryStaminaPreview(u, cost)
		}
	}
	g.sim.ClearTemporaryPreviews()

	return g.battle.ResolveTurn(ctx, q)
}

// showResolved draws the state left by the last resolution.
func (g *Game) showResolved() {
	if snap, ok := g.battle.LatestSnapshot(); ok {
		g.sim.ShowStateFromSnapshot(&snap)
	}
	g.renderer.RenderMessage("[any key] next turn  [q] quit", 1)
	g.screen.Show()
}

// handleInput blocks until the player presses a key.
func (g *Game) handleInput() {
	for {
		switch ev := g.screen.PollEvent().(type) {
		case *tcell.EventKey:
			g.handleKeyEvent(ev)
			return
		case *tcell.EventResize:
			g.screen.Sync()
		case nil:
			// Screen finalized.
			g.running = false
			return
		}
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		}
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
