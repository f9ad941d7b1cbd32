package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arpg/ecs"
	"github.com/milk9111/arpg/ecs/component"
)

type fireCall struct {
	skill    string
	from, to cp.Vector
}

func newStubAISystem(calls *[]fireCall) *AISystem {
	return &AISystem{fire: func(_ *ecs.World, skill string, from, to cp.Vector) error {
		*calls = append(*calls, fireCall{skill: skill, from: from, to: to})
		return nil
	}}
}

func addPlayerAt(t *testing.T, w *ecs.World, pos cp.Vector) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		t.Fatalf("add player tag: %v", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos}); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	return e
}

func rangedAI() component.AI {
	return component.AI{
		Kind:               "ranged",
		AggroRange:         300,
		AggroTime:          3,
		AttackSpeed:        0.5,
		MoveSpeed:          250,
		BackoffSpeed:       100,
		MinDistance:        200,
		MaxDistance:        395,
		Skill:              "fireball",
		AttackRange:        400,
		SeparationRadius:   35,
		SeparationStrength: 0.7,
		EdgeMargin:         60,
		EdgeStrength:       1,
	}
}

func addEnemyAt(t *testing.T, w *ecs.World, ai component.AI, pos cp.Vector) (ecs.Entity, *component.AIState, *component.Transform) {
	t.Helper()
	e := ecs.CreateEntity(w)
	state := &component.AIState{SinceAttack: 1000, SpeedScale: 1, MinDistance: ai.MinDistance, MaxDistance: ai.MaxDistance}
	transform := &component.Transform{Position: pos}
	if err := ecs.Add(w, e, component.AITagComponent.Kind(), &component.AITag{}); err != nil {
		t.Fatalf("add ai tag: %v", err)
	}
	if err := ecs.Add(w, e, component.AIComponent.Kind(), &ai); err != nil {
		t.Fatalf("add ai: %v", err)
	}
	if err := ecs.Add(w, e, component.AIStateComponent.Kind(), state); err != nil {
		t.Fatalf("add ai state: %v", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), transform); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	return e, state, transform
}

func TestAIAggroAndAttack(t *testing.T) {
	w := ecs.NewWorld()
	addPlayerAt(t, w, cp.Vector{})
	_, state, _ := addEnemyAt(t, w, rangedAI(), cp.Vector{X: 250})

	var calls []fireCall
	sched := ecs.NewScheduler(newStubAISystem(&calls))

	sched.Update(w, 0.1)
	if !state.Aggro || math.Abs(state.AggroRemaining-2.9) > 1e-9 {
		t.Fatalf("expected aggro with 2.9s left, got %+v", state)
	}
	if len(calls) != 1 || calls[0].skill != "fireball" || calls[0].to != (cp.Vector{}) || calls[0].from != (cp.Vector{X: 250}) {
		t.Fatalf("expected one fireball at the player, got %+v", calls)
	}
	if state.SinceAttack != 0 {
		t.Fatalf("attack timer = %v, want 0", state.SinceAttack)
	}

	sched.Update(w, 0.1)
	if len(calls) != 1 {
		t.Fatalf("attacked during cooldown: %d calls", len(calls))
	}

	state.ForceAttack = true
	sched.Update(w, 0.1)
	if len(calls) != 2 || state.ForceAttack {
		t.Fatalf("forced attack should bypass cooldown once, calls=%d force=%v", len(calls), state.ForceAttack)
	}
}

func TestAIIgnoresDistantPlayer(t *testing.T) {
	w := ecs.NewWorld()
	addPlayerAt(t, w, cp.Vector{})
	_, state, transform := addEnemyAt(t, w, rangedAI(), cp.Vector{X: 301})

	var calls []fireCall
	ecs.NewScheduler(newStubAISystem(&calls)).Update(w, 0.1)

	if state.Aggro || len(calls) != 0 || transform.Position != (cp.Vector{X: 301}) {
		t.Fatalf("idle enemy acted: state %+v calls %d pos %v", state, len(calls), transform.Position)
	}
}

func TestAIAggroExpires(t *testing.T) {
	w := ecs.NewWorld()
	player := addPlayerAt(t, w, cp.Vector{})
	_, state, _ := addEnemyAt(t, w, rangedAI(), cp.Vector{X: 250})

	var calls []fireCall
	sched := ecs.NewScheduler(newStubAISystem(&calls))
	sched.Update(w, 0.5)

	pt, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	pt.Position = cp.Vector{X: 5000}

	for i := 0; i < 5; i++ {
		sched.Update(w, 0.5)
		if !state.Aggro {
			t.Fatalf("aggro dropped after %d frames out of range", i+1)
		}
	}
	sched.Update(w, 0.5)
	if state.Aggro {
		t.Fatalf("aggro should drop once the timer runs out, remaining %v", state.AggroRemaining)
	}
}

func TestAISteering(t *testing.T) {
	cases := []struct {
		name     string
		min, max float64
		start    cp.Vector
		want     cp.Vector
	}{
		{"backs_off_when_close", 200, 395, cp.Vector{X: 100}, cp.Vector{X: 110}},
		{"approaches_when_far", 200, 250, cp.Vector{X: 290}, cp.Vector{X: 265}},
		{"holds_inside_band", 200, 395, cp.Vector{X: 250}, cp.Vector{X: 250}},
		{"holds_on_top_of_player", 200, 395, cp.Vector{}, cp.Vector{}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			addPlayerAt(t, w, cp.Vector{})
			ai := rangedAI()
			ai.MinDistance, ai.MaxDistance = c.min, c.max
			ai.Skill = ""
			_, _, transform := addEnemyAt(t, w, ai, c.start)

			var calls []fireCall
			ecs.NewScheduler(newStubAISystem(&calls)).Update(w, 0.1)
			if !closeTo(transform.Position, c.want) {
				t.Fatalf("position = %v, want %v", transform.Position, c.want)
			}
		})
	}
}

func TestAISpeedScale(t *testing.T) {
	w := ecs.NewWorld()
	addPlayerAt(t, w, cp.Vector{})
	ai := rangedAI()
	ai.Skill = ""
	_, state, transform := addEnemyAt(t, w, ai, cp.Vector{X: 290})
	state.MinDistance, state.MaxDistance = 60, 140
	state.SpeedScale = 2
	state.ScriptOverrides = true

	var calls []fireCall
	ecs.NewScheduler(newStubAISystem(&calls)).Update(w, 0.1)
	if !closeTo(transform.Position, cp.Vector{X: 240}) {
		t.Fatalf("position = %v, want (240, 0)", transform.Position)
	}
}

func TestAIScriptOverridesSteering(t *testing.T) {
	cases := []struct {
		name      string
		overrides bool
		min, max  float64
		scale     float64
		want      cp.Vector
	}{
		{"zero_band_closes_in", true, 0, 0, 1, cp.Vector{X: 75}},
		{"zero_scale_parks", true, 0, 0, 0, cp.Vector{X: 100}},
		{"zero_scale_parks_while_backing_off", true, 200, 395, 0, cp.Vector{X: 100}},
		{"state_ignored_without_override", false, 0, 0, 0, cp.Vector{X: 110}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			addPlayerAt(t, w, cp.Vector{})
			ai := rangedAI()
			ai.Skill = ""
			_, state, transform := addEnemyAt(t, w, ai, cp.Vector{X: 100})
			state.MinDistance, state.MaxDistance = c.min, c.max
			state.SpeedScale = c.scale
			state.ScriptOverrides = c.overrides

			var calls []fireCall
			ecs.NewScheduler(newStubAISystem(&calls)).Update(w, 0.1)
			if !closeTo(transform.Position, c.want) {
				t.Fatalf("position = %v, want %v", transform.Position, c.want)
			}
		})
	}
}

func TestAIClampsToArena(t *testing.T) {
	w := ecs.NewWorld()
	arena := ecs.CreateEntity(w)
	if err := ecs.Add(w, arena, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: 1600, Height: 1000}); err != nil {
		t.Fatalf("add bounds: %v", err)
	}
	addPlayerAt(t, w, cp.Vector{X: 100, Y: 500})
	ai := rangedAI()
	ai.Skill = ""
	e, _, transform := addEnemyAt(t, w, ai, cp.Vector{X: 16, Y: 500})
	if err := ecs.Add(w, e, component.ShapeComponent.Kind(), &component.Shape{Kind: component.ShapeRect, Width: 30, Height: 40}); err != nil {
		t.Fatalf("add shape: %v", err)
	}

	var calls []fireCall
	ecs.NewScheduler(newStubAISystem(&calls)).Update(w, 0.1)
	if !closeTo(transform.Position, cp.Vector{X: 15, Y: 500}) {
		t.Fatalf("position = %v, want clamped to (15, 500)", transform.Position)
	}
}

func TestSeparation(t *testing.T) {
	ai := rangedAI()
	self := ecs.Entity(1)
	neighbours := []aiNeighbour{
		{entity: self, pos: cp.Vector{X: 500, Y: 500}},
		{entity: 2, pos: cp.Vector{X: 490, Y: 500}},
		{entity: 3, pos: cp.Vector{X: 900, Y: 500}},
	}
	got := separation(&ai, self, cp.Vector{X: 500, Y: 500}, neighbours, component.LevelBounds{Width: 1600, Height: 1000})
	if !closeTo(got, cp.Vector{X: 0.7}) {
		t.Fatalf("separation = %v, want (0.7, 0)", got)
	}

	alone := separation(&ai, self, cp.Vector{X: 500, Y: 500}, neighbours[:1], component.LevelBounds{Width: 1600, Height: 1000})
	if alone != (cp.Vector{}) {
		t.Fatalf("lone enemy separation = %v, want zero", alone)
	}
}

func TestEdgePush(t *testing.T) {
	bounds := component.LevelBounds{Width: 1600, Height: 1000}
	cases := []struct {
		name string
		pos  cp.Vector
		want cp.Vector
	}{
		{"center", cp.Vector{X: 800, Y: 500}, cp.Vector{}},
		{"left", cp.Vector{X: 20, Y: 500}, cp.Vector{X: 1.0 / 20}},
		{"bottom_right", cp.Vector{X: 1590, Y: 996}, cp.Vector{X: -1.0 / 10, Y: -1.0 / 4}},
		{"past_edge", cp.Vector{X: -5, Y: 500}, cp.Vector{X: 1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := edgePush(c.pos, bounds, 60); !closeTo(got, c.want) {
				t.Fatalf("edgePush(%v) = %v, want %v", c.pos, got, c.want)
			}
		})
	}
}
