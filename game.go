package main

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/arpg/ecs"
	"github.com/milk9111/arpg/ecs/component"
	"github.com/milk9111/arpg/ecs/entity"
	"github.com/milk9111/arpg/ecs/system"
	"github.com/milk9111/arpg/prefabs"
)

type Config struct {
	Debug    bool
	Enemies  int
	Seed     int64
	TPS      int
	Watch    bool
	LootGoal int
}

type Game struct {
	cfg    Config
	frames int

	width, height float64
	background    color.Color
	arena         *prefabs.ArenaSpec

	rng       *rand.Rand
	watcher   *prefabs.Watcher
	world     *ecs.World
	scheduler *ecs.Scheduler
	input     *system.InputSystem
	aiScripts *system.AIScriptSystem
	render    *system.RenderSystem
	hud       *system.HUDSystem
}

func NewGame(cfg Config) (*Game, error) {
	if cfg.TPS <= 0 {
		cfg.TPS = ebiten.DefaultTPS
	}

	g := &Game{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		input:  system.NewInputSystem(),
		render: system.NewRenderSystem(),
		hud:    system.NewHUDSystem(),
	}

	if err := g.loadArena(); err != nil {
		return nil, err
	}

	if cfg.Watch {
		w, err := prefabs.Watch()
		if err != nil {
			log.Printf("prefabs: watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	if err := g.reset(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) loadArena() error {
	spec, err := prefabs.LoadArenaSpec()
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if g.cfg.Enemies > 0 {
		spec.Enemies = g.cfg.Enemies
	}
	if g.cfg.LootGoal > 0 {
		spec.LootGoal = g.cfg.LootGoal
	}
	if len(spec.EnemyKinds) == 0 {
		spec.EnemyKinds = prefabs.EnemyKinds()
	}
	if spec.SpawnMargin <= 0 {
		spec.SpawnMargin = entity.DefaultSpawnMargin
	}

	g.arena = spec
	g.width, g.height = spec.Width, spec.Height
	g.background = spec.Background.RGBAOr(color.RGBA{R: 48, G: 47, B: 61, A: 255})
	return nil
}

// reset builds a fresh world for a new run.
func (g *Game) reset() error {
	spec := g.arena
	world := ecs.NewWorld()

	if _, err := entity.NewArena(world, spec); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	start := cp.Vector{X: spec.PlayerStart.X, Y: spec.PlayerStart.Y}
	if start.X == 0 && start.Y == 0 {
		start = cp.Vector{X: spec.Width / 2, Y: spec.Height / 2}
	}
	if _, err := entity.NewPlayer(world, start); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if _, err := entity.SpawnRandomEnemies(world, g.rng, spec.Enemies, spec.EnemyKinds, spec.SpawnMargin); err != nil {
		return fmt.Errorf("game: %w", err)
	}

	feedback := system.DefaultHitFeedback
	if hf := spec.HitFeedback; hf.Duration > 0 {
		feedback = system.HitFeedbackStyle{Duration: hf.Duration, Zoom: hf.Zoom, Flash: hf.Flash}
	}

	g.aiScripts = system.NewAIScriptSystem()
	g.world = world
	g.scheduler = ecs.NewScheduler(
		system.NewPlayerControllerSystem(),
		system.NewMovementSystem(),
		system.NewProjectileSystem(component.TeamPlayer),
		g.aiScripts,
		system.NewAISystem(),
		system.NewProjectileSystem(component.TeamEnemy),
		system.NewPickupCollectSystem(),
		system.NewAnimationSystem(),
		system.NewCombatSystem(feedback),
		system.NewHitFeedbackSystem(),
		system.NewRopeSystem(g.cfg.Seed),
		system.NewCastEffectSystem(),
		system.NewTTLSystem(),
		system.NewProgressionSystem(g.rng, system.Waves{
			Kinds:  spec.EnemyKinds,
			Growth: spec.WaveGrowth,
			Margin: spec.SpawnMargin,
		}),
		system.NewLootBarSystem(),
	)
	return nil
}

func (g *Game) Update() error {
	g.frames++
	g.reloadChanged()

	g.input.Update(g.world)
	if g.restartRequested() {
		log.Printf("game: restarting run")
		return g.reset()
	}

	if stats := g.stats(); stats != nil && stats.PlayerDead {
		return nil
	}

	g.scheduler.Update(g.world, 1/float64(g.cfg.TPS))

	events := g.world.Events().Drain()
	if g.cfg.Debug {
		for _, ev := range events {
			log.Printf("event: %s entity=%s value=%.2f", ev.Type, ev.Entity, ev.Value)
		}
	}
	return nil
}

func (g *Game) restartRequested() bool {
	playerEnt, ok := ecs.First(g.world, component.PlayerTagComponent.Kind())
	if !ok {
		return false
	}
	input, ok := ecs.Get(g.world, playerEnt, component.InputComponent.Kind())
	return ok && input.RestartPressed
}

func (g *Game) stats() *component.RunStats {
	e, ok := ecs.First(g.world, component.RunStatsComponent.Kind())
	if !ok {
		return nil
	}
	stats, _ := ecs.Get(g.world, e, component.RunStatsComponent.Kind())
	return stats
}

// reloadChanged applies prefab edits picked up by the watcher. Specs are
// re-read by the next builder call; arena.yaml takes effect on restart.
func (g *Game) reloadChanged() {
	names, err := g.watcher.Poll()
	if err != nil {
		log.Printf("prefabs: watch error: %v", err)
	}
	for _, name := range names {
		if strings.HasPrefix(name, "scripts/") {
			g.aiScripts.Invalidate(g.world, name)
			log.Printf("prefabs: reloaded script %s", name)
			continue
		}
		prefabs.Invalidate(name)
		if name == "arena.yaml" {
			if err := g.loadArena(); err != nil {
				log.Printf("prefabs: reload %s: %v", name, err)
				continue
			}
		}
		log.Printf("prefabs: reloaded %s", name)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	g.render.Draw(g.world, screen)
	g.hud.Draw(g.world, screen)

	if g.cfg.Debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    Entities: %d", g.frames, ebiten.ActualFPS(), len(ecs.Entities(g.world))), 20, int(g.height)-24)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return g.width, g.height
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.width), int(g.height)
}

func (g *Game) Close() error {
	return g.watcher.Close()
}
