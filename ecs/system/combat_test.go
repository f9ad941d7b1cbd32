package system

import (
	"math/rand"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arpg/ecs"
	"github.com/milk9111/arpg/ecs/component"
	"github.com/milk9111/arpg/ecs/entity"
	"github.com/milk9111/arpg/prefabs"
)

func newArena(t *testing.T) (*ecs.World, *component.RunStats) {
	t.Helper()
	spec, err := prefabs.LoadArenaSpec()
	if err != nil {
		t.Fatalf("LoadArenaSpec: %v", err)
	}
	w := ecs.NewWorld()
	arena, err := entity.NewArena(w, spec)
	if err != nil {
		t.Fatalf("NewArena: %v", err)
	}
	stats, _ := ecs.Get(w, arena, component.RunStatsComponent.Kind())
	return w, stats
}

func addBolt(t *testing.T, w *ecs.World, team component.Team, pos cp.Vector, damage int) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.ProjectileComponent.Kind(), &component.Projectile{Skill: "test", Speed: 600, Target: pos}); err != nil {
		t.Fatalf("add projectile: %v", err)
	}
	if err := ecs.Add(w, e, component.HitboxComponent.Kind(), &component.Hitbox{Width: 14, Height: 14, Damage: damage}); err != nil {
		t.Fatalf("add hitbox: %v", err)
	}
	if err := ecs.Add(w, e, component.FactionComponent.Kind(), &component.Faction{Team: team}); err != nil {
		t.Fatalf("add faction: %v", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos}); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	return e
}

func eventTypes(events []ecs.Event) []ecs.EventType {
	out := make([]ecs.EventType, 0, len(events))
	for _, evt := range events {
		out = append(out, evt.Type)
	}
	return out
}

func TestApplyDamage(t *testing.T) {
	cases := []struct {
		name   string
		hp     int
		amount int
		want   int
	}{
		{"partial", 100, 15, 85},
		{"exact", 15, 15, 0},
		{"overkill_clamps", 10, 15, 0},
		{"negative_ignored", 50, -5, 50},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := &component.Health{Max: 100, Current: c.hp}
			ApplyDamage(h, c.amount)
			if h.Current != c.want {
				t.Fatalf("hp = %d, want %d", h.Current, c.want)
			}
		})
	}
}

func TestCombatDamagesEnemy(t *testing.T) {
	w, _ := newArena(t)
	enemy, err := entity.NewEnemy(w, "ranged", cp.Vector{X: 300, Y: 300})
	if err != nil {
		t.Fatalf("NewEnemy: %v", err)
	}
	bolt := addBolt(t, w, component.TeamPlayer, cp.Vector{X: 318, Y: 300}, 15)

	ecs.NewScheduler(NewCombatSystem(DefaultHitFeedback)).Update(w, 1.0/60)

	health, _ := ecs.Get(w, enemy, component.HealthComponent.Kind())
	if health.Current != 85 {
		t.Fatalf("enemy hp = %d, want 85", health.Current)
	}
	if ecs.IsAlive(w, bolt) {
		t.Fatalf("projectile should be consumed by the hit")
	}
	state, _ := ecs.Get(w, enemy, component.AIStateComponent.Kind())
	if !state.Aggro || state.AggroRemaining != 3 {
		t.Fatalf("hit enemy should aggro, got %+v", state)
	}
	if !ecs.Has(w, enemy, component.HitFeedbackComponent.Kind()) {
		t.Fatalf("hit enemy should get hit feedback")
	}
}

func TestCombatIgnoresFriendlyFire(t *testing.T) {
	w, _ := newArena(t)
	enemy, err := entity.NewEnemy(w, "ranged", cp.Vector{X: 300, Y: 300})
	if err != nil {
		t.Fatalf("NewEnemy: %v", err)
	}
	bolt := addBolt(t, w, component.TeamEnemy, cp.Vector{X: 300, Y: 300}, 15)
	miss := addBolt(t, w, component.TeamPlayer, cp.Vector{X: 400, Y: 300}, 15)

	ecs.NewScheduler(NewCombatSystem(DefaultHitFeedback)).Update(w, 1.0/60)

	health, _ := ecs.Get(w, enemy, component.HealthComponent.Kind())
	if health.Current != 100 {
		t.Fatalf("enemy hp = %d, want 100", health.Current)
	}
	if !ecs.IsAlive(w, bolt) || !ecs.IsAlive(w, miss) {
		t.Fatalf("projectiles that hit nothing should survive")
	}
}

func TestCombatHitsEveryOverlappedTargetOnce(t *testing.T) {
	w, _ := newArena(t)
	a, _ := entity.NewEnemy(w, "ranged", cp.Vector{X: 300, Y: 300})
	b, _ := entity.NewEnemy(w, "melee", cp.Vector{X: 320, Y: 300})
	addBolt(t, w, component.TeamPlayer, cp.Vector{X: 310, Y: 300}, 15)

	ecs.NewScheduler(NewCombatSystem(DefaultHitFeedback)).Update(w, 1.0/60)

	for _, e := range []ecs.Entity{a, b} {
		health, _ := ecs.Get(w, e, component.HealthComponent.Kind())
		if health.Current != 85 {
			t.Fatalf("enemy %v hp = %d, want 85", e, health.Current)
		}
	}
}

func TestCombatKillDropsGlobe(t *testing.T) {
	w, stats := newArena(t)
	enemy, err := entity.NewEnemy(w, "melee", cp.Vector{X: 300, Y: 300})
	if err != nil {
		t.Fatalf("NewEnemy: %v", err)
	}
	health, _ := ecs.Get(w, enemy, component.HealthComponent.Kind())
	health.Current = 10
	w.Events().Drain()

	addBolt(t, w, component.TeamPlayer, cp.Vector{X: 300, Y: 300}, 15)
	ecs.NewScheduler(NewCombatSystem(DefaultHitFeedback)).Update(w, 1.0/60)

	if ecs.IsAlive(w, enemy) {
		t.Fatalf("dead enemy should be destroyed")
	}
	if stats.Kills != 1 {
		t.Fatalf("kills = %d, want 1", stats.Kills)
	}

	globe, ok := ecs.First(w, component.PickupComponent.Kind())
	if !ok {
		t.Fatalf("expected a drop globe")
	}
	tr, _ := ecs.Get(w, globe, component.TransformComponent.Kind())
	if !closeTo(tr.Position, cp.Vector{X: 300, Y: 282}) {
		t.Fatalf("globe at %v, want (300, 282)", tr.Position)
	}
	pickup, _ := ecs.Get(w, globe, component.PickupComponent.Kind())
	if pickup.Storage != (cp.Vector{X: 140, Y: 29}) {
		t.Fatalf("globe storage = %v, want loot bar center", pickup.Storage)
	}

	types := eventTypes(w.Events().Drain())
	if len(types) != 1 || types[0] != ecs.EventEnemyKilled {
		t.Fatalf("events = %v", types)
	}
}

func TestCombatPlayerDeath(t *testing.T) {
	w, stats := newArena(t)
	player, err := entity.NewPlayer(w, cp.Vector{X: 500, Y: 400})
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	health, _ := ecs.Get(w, player, component.HealthComponent.Kind())
	health.Current = 10

	addBolt(t, w, component.TeamEnemy, cp.Vector{X: 500, Y: 400}, 15)
	sched := ecs.NewScheduler(NewCombatSystem(DefaultHitFeedback))
	sched.Update(w, 1.0/60)

	if health.Current != 0 || !stats.PlayerDead {
		t.Fatalf("player should be dead at 0 hp, hp=%d dead=%v", health.Current, stats.PlayerDead)
	}
	if !ecs.IsAlive(w, player) {
		t.Fatalf("player entity should stay alive for the game-over screen")
	}

	addBolt(t, w, component.TeamEnemy, cp.Vector{X: 500, Y: 400}, 15)
	sched.Update(w, 1.0/60)
	if health.Current != 0 {
		t.Fatalf("hp went below zero: %d", health.Current)
	}

	types := eventTypes(w.Events().Drain())
	want := []ecs.EventType{ecs.EventPlayerHit, ecs.EventPlayerDied, ecs.EventPlayerHit}
	if len(types) != len(want) {
		t.Fatalf("events = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("events = %v, want %v", types, want)
		}
	}
}

func TestPickupCollectFliesToStorage(t *testing.T) {
	w, stats := newArena(t)
	if _, err := entity.NewPlayer(w, cp.Vector{X: 500, Y: 400}); err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	near, err := entity.NewDropGlobe(w, cp.Vector{X: 500, Y: 450}, cp.Vector{})
	if err != nil {
		t.Fatalf("NewDropGlobe: %v", err)
	}
	far, err := entity.NewDropGlobe(w, cp.Vector{X: 900, Y: 900}, cp.Vector{})
	if err != nil {
		t.Fatalf("NewDropGlobe: %v", err)
	}
	w.Events().Drain()

	sched := ecs.NewScheduler(NewPickupCollectSystem())
	sched.Update(w, 0.1)

	pickup, _ := ecs.Get(w, near, component.PickupComponent.Kind())
	if pickup.Phase != component.PickupFlying || pickup.Storage != (cp.Vector{X: 140, Y: 29}) {
		t.Fatalf("touched globe should fly to the loot bar, got %+v", pickup)
	}
	anim, _ := ecs.Get(w, near, component.AnimationComponent.Kind())
	if anim.Playing {
		t.Fatalf("flying globe should stop its idle animation")
	}
	farPickup, _ := ecs.Get(w, far, component.PickupComponent.Kind())
	if farPickup.Phase != component.PickupIdle {
		t.Fatalf("untouched globe should stay idle")
	}

	for i := 0; i < 10 && ecs.IsAlive(w, near); i++ {
		sched.Update(w, 0.1)
	}
	if ecs.IsAlive(w, near) {
		t.Fatalf("globe never reached storage")
	}
	if stats.Loot != 1 {
		t.Fatalf("loot = %d, want 1", stats.Loot)
	}
	types := eventTypes(w.Events().Drain())
	if len(types) != 1 || types[0] != ecs.EventLootCollected {
		t.Fatalf("events = %v", types)
	}
}

func TestCircleOverlapsBox(t *testing.T) {
	box := cp.BB{L: 0, B: 0, R: 10, T: 10}
	cases := []struct {
		name string
		c    cp.Vector
		r    float64
		want bool
	}{
		{"inside", cp.Vector{X: 5, Y: 5}, 1, true},
		{"touching_side", cp.Vector{X: 13, Y: 5}, 3, true},
		{"past_side", cp.Vector{X: 14, Y: 5}, 3, false},
		{"corner_miss", cp.Vector{X: 13, Y: 13}, 4, false},
		{"corner_hit", cp.Vector{X: 13, Y: 13}, 5, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := circleOverlapsBox(c.c, c.r, box); got != c.want {
				t.Fatalf("circleOverlapsBox = %v, want %v", got, c.want)
			}
		})
	}
}

func TestProgressionPortalStartsNextWave(t *testing.T) {
	w, stats := newArena(t)
	player, err := entity.NewPlayer(w, cp.Vector{X: 500, Y: 400})
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	w.Events().Drain()

	sched := ecs.NewScheduler(NewProgressionSystem(rand.New(rand.NewSource(3)), Waves{
		Kinds:  []string{"ranged", "melee"},
		Growth: 2,
		Margin: entity.DefaultSpawnMargin,
	}))

	stats.Loot = 9
	sched.Update(w, 1.0/60)
	if stats.PortalOpen {
		t.Fatalf("portal opened below the loot goal")
	}

	stats.Loot = 10
	sched.Update(w, 1.0/60)
	portal, ok := ecs.First(w, component.PortalComponent.Kind())
	if !ok || !stats.PortalOpen {
		t.Fatalf("portal should open at the loot goal")
	}
	tr, _ := ecs.Get(w, portal, component.TransformComponent.Kind())
	if tr.Position != (cp.Vector{X: 800, Y: 500}) {
		t.Fatalf("portal at %v, want arena center", tr.Position)
	}

	sched.Update(w, 1.0/60)
	if !ecs.IsAlive(w, portal) || stats.Wave != 1 {
		t.Fatalf("portal should wait for the player")
	}

	pt, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	pt.Position = cp.Vector{X: 790, Y: 520}
	sched.Update(w, 1.0/60)

	if ecs.IsAlive(w, portal) || stats.PortalOpen {
		t.Fatalf("entering the portal should close it")
	}
	if stats.Wave != 2 || stats.Loot != 0 {
		t.Fatalf("wave=%d loot=%d, want wave 2 with loot reset", stats.Wave, stats.Loot)
	}
	if got := len(ecs.Query(w, component.AITagComponent.Kind())); got != 12 {
		t.Fatalf("wave 2 spawned %d enemies, want 12", got)
	}

	types := eventTypes(w.Events().Drain())
	if len(types) != 2 || types[0] != ecs.EventPortalOpened || types[1] != ecs.EventWaveStarted {
		t.Fatalf("events = %v", types)
	}
}

func TestWaveSize(t *testing.T) {
	cases := []struct {
		base, growth, wave, want int
	}{
		{10, 2, 1, 10},
		{10, 2, 2, 12},
		{10, 2, 5, 18},
		{10, 0, 7, 10},
		{10, 2, 0, 10},
		{3, -2, 4, 0},
	}
	for _, c := range cases {
		if got := WaveSize(c.base, c.growth, c.wave); got != c.want {
			t.Fatalf("WaveSize(%d, %d, %d) = %d, want %d", c.base, c.growth, c.wave, got, c.want)
		}
	}
}
