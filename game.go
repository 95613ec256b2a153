package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/controller"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/simulation"
)

var defaultBackground = color.RGBA{R: 0x1d, G: 0x23, B: 0x30, A: 0xff}

// GameOptions are the command-line settings a game is built from.
type GameOptions struct {
	Level string
	Debug bool
	Watch bool
	// Keys overrides device polling; nil reads ebiten.
	Keys system.KeySource
}

type Game struct {
	log  *zap.Logger
	opts GameOptions

	world   *ecs.World
	events  *simulation.Scheduler
	systems *ecs.Scheduler
	physics *system.PhysicsSystem
	render  *system.RenderSystem

	bundle        prefabs.Bundle
	player        ecs.Entity
	levelEntities []ecs.Entity
	background    color.RGBA

	face    text.Face
	hud     *HUD
	watcher *prefabs.Watcher

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
}

func NewGame(opts GameOptions, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Level == "" {
		opts.Level = "level.yaml"
	}

	bundle, err := prefabs.LoadBundle(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	g := &Game{
		log:    log,
		opts:   opts,
		world:  ecs.NewWorld(),
		events: simulation.NewScheduler(nil, log.Named("events")),
		bundle: bundle,
		render: system.NewRenderSystem(opts.Debug),
	}
	g.physics = system.NewPhysicsSystem(system.PhysicsConfig{
		PixelsPerUnit: bundle.Model.PixelsPerUnit,
		Gravity:       bundle.Model.Gravity,
		TickRate:      bundle.Model.TickRate,
	})
	g.systems = ecs.NewScheduler(
		system.NewInputSystem(opts.Keys),
		system.NewClockSystem(g.events, bundle.Model.TickRate),
		system.NewPlayerControllerSystem(g.events, log.Named("player")),
		system.NewAnimationSystem(),
		g.physics,
		system.NewCombatSystem(g.events, log.Named("combat")),
		system.NewRespawnSystem(g.events, log.Named("respawn")),
		system.NewWhiteFlashSystem(),
	)

	if err := g.loadLevel(bundle.Level); err != nil {
		return nil, err
	}
	g.player, err = entity.NewPlayerAt(g.world, g.events.Timers(), bundle.Player, bundle.Model, bundle.Level.Spawn.X, bundle.Level.Spawn.Y)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	g.face, err = newFontFace(14)
	if err != nil {
		return nil, err
	}
	g.hud = NewHUD(g.events, g.face, opts.Debug)

	if opts.Watch {
		g.watcher, err = prefabs.NewWatcherWithOptions(prefabs.Dir, prefabs.WatchOptions{Log: log.Named("prefabs")})
		if err != nil {
			// hot reload is a convenience; play on without it
			log.Warn("prefab watcher disabled", zap.String("dir", prefabs.Dir), zap.Error(err))
		}
	}

	log.Info("game ready",
		zap.String("level", bundle.Level.Name),
		zap.Int("platforms", len(bundle.Level.Platforms)),
		zap.Int("dummies", len(bundle.Level.Dummies)),
	)
	return g, nil
}

func (g *Game) loadLevel(lvl prefabs.LevelSpec) error {
	created, err := entity.LoadLevelToWorld(g.world, lvl)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	for _, e := range g.levelEntities {
		g.world.DestroyEntity(e)
	}
	g.levelEntities = created
	g.background = lvl.Background.RGBA8(defaultBackground)
	return nil
}

// Close stops the prefab watcher.
func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.togglePause()
	}
	if g.paused {
		g.pauseMenu().Update()
		return nil
	}

	g.drainReloads()
	g.Step()
	return nil
}

// Step advances the simulation one fixed tick.
func (g *Game) Step() {
	g.systems.Update(g.world)
}

func (g *Game) togglePause() {
	g.paused = !g.paused
	g.log.Debug("pause toggled", zap.Bool("paused", g.paused))
}

// pauseMenu builds the menu on first use; it allocates ebiten images.
func (g *Game) pauseMenu() *ebitenui.UI {
	if g.pauseUI == nil {
		g.pauseUI = NewPauseUI(g.face, PauseActions{
			Resume: func() { g.paused = false },
			Reset: func() {
				g.ResetPlayer()
				g.paused = false
			},
			Quit: func() { g.quit = true },
		})
	}
	return g.pauseUI
}

// ResetPlayer puts the avatar back at the level spawn with an idle controller.
func (g *Game) ResetPlayer() {
	spawn := g.bundle.Level.Spawn
	if r, ok := ecs.GetPtr(g.world, g.player, component.RespawnComponent); ok {
		r.X, r.Y = spawn.X, spawn.Y
	}
	if t, ok := ecs.GetPtr(g.world, g.player, component.TransformComponent); ok {
		t.X, t.Y = spawn.X, spawn.Y
	}
	if body, ok := ecs.Get(g.world, g.player, component.PhysicsBodyComponent); ok && body.Body != nil {
		body.Body.SetPosition(cp.Vector{X: spawn.X, Y: spawn.Y})
		body.Body.SetVelocityVector(cp.Vector{})
	}
	if kin, ok := ecs.GetPtr(g.world, g.player, component.KinematicComponent); ok {
		*kin = component.Kinematic{}
	}
	_ = ecs.Add(g.world, g.player, component.PlayerStateInterruptComponent, component.PlayerStateInterrupt{Reset: true})
}

// drainReloads applies spec changes reported by the watcher without blocking
// the frame.
func (g *Game) drainReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if err := g.Reload(name); err != nil {
				g.log.Error("reload failed", zap.String("file", name), zap.Error(err))
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Error("prefab watcher", zap.Error(err))
		default:
			return
		}
	}
}

// Reload re-reads one spec file. Invalid specs leave the running game as it
// was.
func (g *Game) Reload(name string) error {
	switch name {
	case "player.yaml":
		p, err := prefabs.LoadPlayerSpec()
		if err != nil {
			return err
		}
		g.bundle.Player = p
		if err := entity.ApplyPlayerSpec(g.world, g.player, p, g.bundle.Model); err != nil {
			return err
		}
	case "model.yaml":
		m, err := prefabs.LoadModelSpec()
		if err != nil {
			return err
		}
		g.bundle.Model = m
		g.physics.SetGravity(m.Gravity)
		if err := entity.ApplyPlayerSpec(g.world, g.player, g.bundle.Player, m); err != nil {
			return err
		}
	case g.opts.Level:
		lvl, err := prefabs.LoadLevelSpec(name)
		if err != nil {
			return err
		}
		if err := g.loadLevel(lvl); err != nil {
			return err
		}
		g.bundle.Level = lvl
		g.ResetPlayer()
	default:
		return nil
	}
	g.log.Info("reloaded spec", zap.String("file", name))
	return nil
}

// Last returns the avatar controller's most recent tick output.
func (g *Game) Last() controller.TickOutput {
	state, _ := ecs.Get(g.world, g.player, component.PlayerStateComponent)
	return state.Last
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	g.render.Draw(g.world, screen)
	g.hud.Draw(screen, g.Last())
	if g.paused {
		g.pauseMenu().Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
