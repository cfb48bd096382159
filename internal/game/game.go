// Package game drives the engine from a terminal: input, ticks, autosave
// and rendering all run on one goroutine.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/profitpilgrim/internal/config"
	"github.com/samdwyer/profitpilgrim/internal/engine"
	"github.com/samdwyer/profitpilgrim/internal/save"
	"github.com/samdwyer/profitpilgrim/internal/telemetry"
	"github.com/samdwyer/profitpilgrim/internal/ui"
)

// SlotWriter persists encoded saves.
type SlotWriter interface {
	Put(ctx context.Context, slot save.Slot) (save.Slot, error)
}

// Game holds the running session.
type Game struct {
	cfg      config.Config
	engine   *engine.Engine
	store    SlotWriter
	screen   *ui.Screen
	renderer *ui.Renderer
	tracer   trace.Tracer
	metrics  *metrics
	log      *slog.Logger

	status  string
	running bool
}

// New creates a game on the real terminal.
func New(cfg config.Config, eng *engine.Engine, store SlotWriter) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	g, err := newGame(cfg, eng, store, screen)
	if err != nil {
		screen.Close()
		return nil, err
	}
	return g, nil
}

func newGame(cfg config.Config, eng *engine.Engine, store SlotWriter, screen *ui.Screen) (*Game, error) {
	m, err := newMetrics(telemetry.Meter("game"))
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	return &Game{
		cfg:      cfg,
		engine:   eng,
		store:    store,
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		tracer:   telemetry.Tracer("game"),
		metrics:  m,
		log:      slog.Default(),
		status:   "Press space to earn your first coins.",
		running:  true,
	}, nil
}

// Run executes the main loop until the player quits or ctx is cancelled.
// The game is saved on exit.
func (g *Game) Run(ctx context.Context) error {
	ctx, initSpan := g.tracer.Start(ctx, "game.init")
	initSpan.SetAttributes(
		attribute.String("stage", g.engine.CurrentStage().ID),
		attribute.String("currency", g.engine.Currency().String()),
		attribute.Int("businesses", g.engine.Catalog().Businesses.Count()),
	)
	initSpan.End()

	events := make(chan tcell.Event)
	done := make(chan struct{})
	go g.pollEvents(events, done)

	ticker := time.NewTicker(g.cfg.TickInterval)
	defer ticker.Stop()

	var autosave <-chan time.Time
	if g.cfg.AutosaveInterval > 0 {
		t := time.NewTicker(g.cfg.AutosaveInterval)
		defer t.Stop()
		autosave = t.C
	}

	for g.running {
		g.render()

		select {
		case <-ctx.Done():
			g.running = false
		case ev := <-events:
			g.handleInput(ctx, ev)
		case <-ticker.C:
			g.tick(ctx)
		case <-autosave:
			g.save(ctx)
		}
	}

	err := g.save(context.WithoutCancel(ctx))
	close(done)
	g.screen.Close()
	return err
}

// pollEvents forwards terminal events until the screen closes.
func (g *Game) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (g *Game) render() {
	snap := g.engine.Snapshot(g.engine.Now())
	g.renderer.Render(&snap, g.status)
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false
		return
	case tcell.KeyRune:
		if ev.Rune() == 'Q' {
			g.running = false
			return
		}
		if cmd, ok := parseKey(ev.Rune()); ok {
			g.execute(ctx, cmd)
		}
	}
}

// tick advances idle income, production and stage progression.
func (g *Game) tick(ctx context.Context) {
	now := g.engine.Now()
	idle := g.engine.TickIdle(now)
	produced := g.engine.TickProduction(now)
	g.metrics.recordEarned(ctx, "idle", idle)
	g.metrics.recordEarned(ctx, "production", produced)

	if st, ok := g.engine.CheckStageProgress(); ok {
		_, span := g.tracer.Start(ctx, "stage.advance")
		span.SetAttributes(
			attribute.String("stage", st.ID),
			attribute.String("currency", g.engine.Currency().String()),
		)
		span.End()
		g.status = fmt.Sprintf("New stage: %s! %s", st.Name, st.Description)
	}
}

// save writes the engine state to the configured slot.
func (g *Game) save(ctx context.Context) error {
	ctx, span := g.tracer.Start(ctx, "game.save")
	defer span.End()

	data, err := engine.EncodeSave(g.engine.Save())
	if err != nil {
		span.RecordError(err)
		return err
	}
	if _, err := g.store.Put(ctx, save.Slot{ID: g.cfg.SaveSlot, Name: g.cfg.SaveSlot, Data: data}); err != nil {
		span.RecordError(err)
		g.log.Error("autosave failed", "slot", g.cfg.SaveSlot, "error", err)
		g.status = "Save failed: " + err.Error()
		return err
	}
	span.SetAttributes(attribute.Int("save.bytes", len(data)))
	return nil
}
