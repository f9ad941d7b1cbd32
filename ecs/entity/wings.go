package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arpg/ecs"
	"github.com/milk9111/arpg/ecs/component"
)

// Control points of the wing pose for a caster facing up. Outer wings grow
// the inner control points by wingGrowth and shift the tip sideways.
var (
	foldedWing = [5]cp.Vector{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 0, Y: 20}, {X: 0, Y: 30}, {X: 0, Y: 40}}
	innerWing  = [5]cp.Vector{{X: 0, Y: 0}, {X: 30, Y: 40}, {X: 100, Y: 16}, {X: 10, Y: -30}, {X: 10, Y: -100}}
)

const (
	wingGrowth   = 1.4
	wingTipShift = 20
	wingLayers   = 3
)

// WingCurves returns the open pose: right wings inner to outer followed by
// their mirrored left counterparts.
func WingCurves() [][5]cp.Vector {
	right := make([][5]cp.Vector, 0, wingLayers)
	curve := innerWing
	right = append(right, curve)
	for i := 1; i < wingLayers; i++ {
		var next [5]cp.Vector
		for k := 0; k < 4; k++ {
			next[k] = curve[k].Mult(wingGrowth)
		}
		next[4] = curve[4].Add(cp.Vector{X: wingTipShift})
		right = append(right, next)
		curve = next
	}

	curves := make([][5]cp.Vector, 0, 2*wingLayers)
	curves = append(curves, right...)
	for _, c := range right {
		var mirrored [5]cp.Vector
		for k, p := range c {
			mirrored[k] = cp.Vector{X: -p.X, Y: p.Y}
		}
		curves = append(curves, mirrored)
	}
	return curves
}

// NewWings spawns the cast effect around owner, opening toward aim (a
// direction relative to the owner).
func NewWings(w *ecs.World, owner ecs.Entity, aim cp.Vector, caster component.Caster) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	samples := caster.WingSamples
	if samples < 2 {
		samples = 16
	}

	if err := ecs.Add(w, entity, component.WingsComponent.Kind(), &component.Wings{
		Owner:    uint64(owner),
		Aim:      aim,
		Folded:   foldedWing,
		Open:     WingCurves(),
		OpenTime: caster.WingOpenTime,
		Samples:  samples,
		Color:    caster.WingColor,
	}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("wings: add wings: %w", err)
	}

	if err := ecs.Add(w, entity, component.TTLComponent.Kind(), &component.TTL{Seconds: caster.WingLifetime}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("wings: add ttl: %w", err)
	}

	if err := ecs.Add(w, entity, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: component.LayerEffects}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("wings: add render layer: %w", err)
	}

	return entity, nil
}
