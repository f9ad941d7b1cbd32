package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/arpg/ecs"
	"github.com/milk9111/arpg/ecs/component"
	"github.com/milk9111/arpg/prefabs"
)

const aiUpdateDispatchScript = `
if __phase == "update" {
	update(__engine, __state)
}
`

type aiScriptRuntime struct {
	scriptPath string
	compiled   *tengo.Compiled
	stateData  *tengo.Map
}

// AIScriptSystem runs each scripted enemy's update(engine, state) before the
// native AI. The script only adjusts AIState; a script that fails is disabled
// and the enemy falls back to its native tuning.
type AIScriptSystem struct {
	runtimes map[ecs.Entity]*aiScriptRuntime
	load     func(path string) ([]byte, error)
}

func NewAIScriptSystem() *AIScriptSystem {
	return &AIScriptSystem{
		runtimes: map[ecs.Entity]*aiScriptRuntime{},
		load:     prefabs.LoadScript,
	}
}

// Invalidate drops compiled runtimes for path so they are rebuilt from the
// current source on the next frame. Disabled scripts get another chance.
func (s *AIScriptSystem) Invalidate(w *ecs.World, path string) {
	if s == nil {
		return
	}
	name := scriptName(path)
	for e, rt := range s.runtimes {
		if rt == nil || scriptName(rt.scriptPath) == name {
			delete(s.runtimes, e)
		}
	}
	if w == nil {
		return
	}
	ecs.ForEach(w, component.AIScriptComponent.Kind(), func(_ ecs.Entity, script *component.AIScript) {
		if scriptName(script.Path) == name {
			script.Disabled = false
		}
	})
}

func (s *AIScriptSystem) Update(w *ecs.World) {
	if w == nil || s == nil {
		return
	}

	for e := range s.runtimes {
		if !ecs.IsAlive(w, e) {
			delete(s.runtimes, e)
		}
	}

	playerEnt, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	playerTransform, ok := ecs.Get(w, playerEnt, component.TransformComponent.Kind())
	if !ok {
		return
	}

	ecs.ForEach4(w,
		component.AIScriptComponent.Kind(),
		component.AIComponent.Kind(),
		component.AIStateComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, script *component.AIScript, ai *component.AI, state *component.AIState, transform *component.Transform) {
			if script.Disabled || strings.TrimSpace(script.Path) == "" {
				return
			}

			rt, err := s.runtime(e, script.Path)
			if err == nil {
				distance := transform.Position.Distance(playerTransform.Position)
				err = rt.run(buildAIScriptEngine(w.DeltaTime(), distance, state))
			}
			if err != nil {
				log.Printf("ai: entity=%s script %s error: %v", e, script.Path, err)
				script.Disabled = true
				delete(s.runtimes, e)
				resetScriptedState(ai, state)
			}
		})
}

func (s *AIScriptSystem) runtime(e ecs.Entity, path string) (*aiScriptRuntime, error) {
	if rt, ok := s.runtimes[e]; ok && rt != nil && rt.scriptPath == path {
		return rt, nil
	}

	load := s.load
	if load == nil {
		load = prefabs.LoadScript
	}
	src, err := load(path)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + aiUpdateDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}

	rt := &aiScriptRuntime{
		scriptPath: path,
		compiled:   compiled,
		stateData:  &tengo.Map{Value: map[string]tengo.Object{}},
	}

	// Run the top level once so a script without update() is caught here.
	if err := rt.runPhase("load", &tengo.ImmutableMap{Value: map[string]tengo.Object{}}); err != nil {
		return nil, err
	}
	if !compiled.IsDefined("update") {
		return nil, fmt.Errorf("script %s does not define update", path)
	}

	s.runtimes[e] = rt
	return rt, nil
}

func (rt *aiScriptRuntime) run(engine *tengo.ImmutableMap) error {
	return rt.runPhase("update", engine)
}

func (rt *aiScriptRuntime) runPhase(phase string, engine *tengo.ImmutableMap) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil script runtime")
	}
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func buildAIScriptEngine(dt, distance float64, state *component.AIState) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["distance"] = &tengo.UserFunction{Name: "distance", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: distance}, nil
	}}

	values["aggro"] = &tengo.UserFunction{Name: "aggro", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if state.Aggro {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["dt"] = &tengo.UserFunction{Name: "dt", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: dt}, nil
	}}

	values["set_band"] = &tengo.UserFunction{Name: "set_band", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		lo, ok1 := tengo.ToFloat64(args[0])
		hi, ok2 := tengo.ToFloat64(args[1])
		if !ok1 || !ok2 || lo < 0 || hi < lo {
			return tengo.FalseValue, nil
		}
		state.MinDistance = lo
		state.MaxDistance = hi
		state.ScriptOverrides = true
		return tengo.TrueValue, nil
	}}

	values["set_speed_scale"] = &tengo.UserFunction{Name: "set_speed_scale", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		scale, ok := tengo.ToFloat64(args[0])
		if !ok || scale < 0 {
			return tengo.FalseValue, nil
		}
		state.SpeedScale = scale
		state.ScriptOverrides = true
		return tengo.TrueValue, nil
	}}

	values["attack_now"] = &tengo.UserFunction{Name: "attack_now", Value: func(args ...tengo.Object) (tengo.Object, error) {
		state.ForceAttack = true
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func resetScriptedState(ai *component.AI, state *component.AIState) {
	state.MinDistance = ai.MinDistance
	state.MaxDistance = ai.MaxDistance
	state.SpeedScale = 1
	state.ForceAttack = false
	state.ScriptOverrides = false
}

func scriptName(path string) string {
	s := strings.TrimSpace(path)
	s = strings.TrimPrefix(s, "prefabs/")
	return strings.TrimPrefix(s, "scripts/")
}
