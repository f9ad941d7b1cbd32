package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arpg/ecs"
	"github.com/milk9111/arpg/ecs/component"
)

func addScriptedEnemy(t *testing.T, w *ecs.World, path string, pos cp.Vector) (*component.AIScript, *component.AIState) {
	t.Helper()
	e, state, _ := addEnemyAt(t, w, rangedAI(), pos)
	script := &component.AIScript{Path: path}
	if err := ecs.Add(w, e, component.AIScriptComponent.Kind(), script); err != nil {
		t.Fatalf("add ai script: %v", err)
	}
	return script, state
}

func stubScripts(sources map[string]string) func(string) ([]byte, error) {
	return func(path string) ([]byte, error) {
		return []byte(sources[scriptName(path)]), nil
	}
}

func TestAIScriptAdjustsState(t *testing.T) {
	w := ecs.NewWorld()
	addPlayerAt(t, w, cp.Vector{})
	_, state := addScriptedEnemy(t, w, "band.tengo", cp.Vector{X: 100})
	state.Aggro = true

	sys := NewAIScriptSystem()
	sys.load = stubScripts(map[string]string{"band.tengo": `
update := func(engine, state) {
	state.frames = is_undefined(state.frames) ? 1 : state.frames + 1
	if engine.aggro() && engine.distance() > 99 {
		engine.set_band(10, 20 + state.frames)
		engine.set_speed_scale(1.5)
	}
	if state.frames == 2 {
		engine.attack_now()
	}
}
`})

	sched := ecs.NewScheduler(sys)
	sched.Update(w, 0.1)
	if state.MinDistance != 10 || state.MaxDistance != 21 || state.SpeedScale != 1.5 || !state.ScriptOverrides {
		t.Fatalf("unexpected state after first frame %+v", state)
	}
	if state.ForceAttack {
		t.Fatalf("attack_now fired early")
	}

	sched.Update(w, 0.1)
	if state.MaxDistance != 22 || !state.ForceAttack {
		t.Fatalf("script state did not persist across frames: %+v", state)
	}
}

func TestAIScriptRejectsBadArguments(t *testing.T) {
	w := ecs.NewWorld()
	addPlayerAt(t, w, cp.Vector{})
	_, state := addScriptedEnemy(t, w, "bad.tengo", cp.Vector{X: 100})

	sys := NewAIScriptSystem()
	sys.load = stubScripts(map[string]string{"bad.tengo": `
update := func(engine, state) {
	engine.set_band(50, 10)
	engine.set_speed_scale(-1)
}
`})
	ecs.NewScheduler(sys).Update(w, 0.1)

	if state.MinDistance != 200 || state.MaxDistance != 395 || state.SpeedScale != 1 {
		t.Fatalf("invalid arguments changed state: %+v", state)
	}
}

func TestAIScriptFailuresFallBack(t *testing.T) {
	cases := []struct {
		name   string
		source string
	}{
		{"no_update", `x := 1`},
		{"syntax_error", `update := func(engine, state) {`},
		{"runtime_error", `update := func(engine, state) { engine.missing() }`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			addPlayerAt(t, w, cp.Vector{})
			script, state := addScriptedEnemy(t, w, "broken.tengo", cp.Vector{X: 100})
			state.MinDistance, state.MaxDistance, state.SpeedScale = 1, 2, 3
			state.ForceAttack = true

			sys := NewAIScriptSystem()
			sys.load = stubScripts(map[string]string{"broken.tengo": c.source})
			ecs.NewScheduler(sys).Update(w, 0.1)

			if !script.Disabled {
				t.Fatalf("broken script should be disabled")
			}
			if state.MinDistance != 200 || state.MaxDistance != 395 || state.SpeedScale != 1 || state.ForceAttack {
				t.Fatalf("state should fall back to native tuning, got %+v", state)
			}

			sys.Invalidate(w, "scripts/broken.tengo")
			if script.Disabled {
				t.Fatalf("invalidate should re-enable the script")
			}
		})
	}
}

func TestSkirmisherScript(t *testing.T) {
	w := ecs.NewWorld()
	addPlayerAt(t, w, cp.Vector{})
	script, state := addScriptedEnemy(t, w, "skirmisher.tengo", cp.Vector{X: 100})
	state.Aggro = true

	sched := ecs.NewScheduler(NewAIScriptSystem())
	sched.Update(w, 0.1)
	if script.Disabled {
		t.Fatalf("skirmisher script failed to run")
	}
	if state.MinDistance != 250 || state.MaxDistance != 395 {
		t.Fatalf("kite band = [%v, %v], want [250, 395]", state.MinDistance, state.MaxDistance)
	}

	rushed := false
	for i := 0; i < 40 && !state.ForceAttack; i++ {
		sched.Update(w, 0.1)
		if state.MinDistance == 60 && state.MaxDistance == 140 && state.SpeedScale == 1.4 {
			rushed = true
		}
	}
	if !rushed || !state.ForceAttack {
		t.Fatalf("skirmisher should rush in and attack, rushed=%v force=%v", rushed, state.ForceAttack)
	}
	if script.Disabled {
		t.Fatalf("skirmisher script disabled mid-run")
	}
}

func TestScriptName(t *testing.T) {
	for _, path := range []string{"skirmisher.tengo", "scripts/skirmisher.tengo", "prefabs/scripts/skirmisher.tengo", " skirmisher.tengo "} {
		if got := scriptName(path); got != "skirmisher.tengo" {
			t.Fatalf("scriptName(%q) = %q", path, got)
		}
	}
}

func TestAIScriptZeroBandAndScaleDriveSteering(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   cp.Vector
	}{
		{"zero_band", `update := func(engine, state) { engine.set_band(0, 0) }`, cp.Vector{X: 75}},
		{"zero_scale", `update := func(engine, state) { engine.set_band(0, 0); engine.set_speed_scale(0) }`, cp.Vector{X: 100}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			addPlayerAt(t, w, cp.Vector{})
			script, state := addScriptedEnemy(t, w, "hold.tengo", cp.Vector{X: 100})
			e := ecs.Query(w, component.AIScriptComponent.Kind())[0]
			ai, _ := ecs.Get(w, e, component.AIComponent.Kind())
			ai.Skill = ""
			transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())

			scripts := NewAIScriptSystem()
			scripts.load = stubScripts(map[string]string{"hold.tengo": c.source})
			var calls []fireCall
			ecs.NewScheduler(scripts, newStubAISystem(&calls)).Update(w, 0.1)

			if script.Disabled || !state.ScriptOverrides {
				t.Fatalf("script should hold an override, disabled=%v state=%+v", script.Disabled, state)
			}
			if !closeTo(transform.Position, c.want) {
				t.Fatalf("position = %v, want %v", transform.Position, c.want)
			}
		})
	}
}
