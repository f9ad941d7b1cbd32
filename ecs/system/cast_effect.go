package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/arpg/ecs"
	"github.com/milk9111/arpg/ecs/component"
	"github.com/milk9111/arpg/vmath"
)

// wingForward is the direction the wing template faces.
var wingForward = cp.Vector{X: 0, Y: -1}

// CastEffectSystem opens cast wings over time. Their lifetime is bounded by
// the TTL attached when they are spawned.
type CastEffectSystem struct{}

func NewCastEffectSystem() *CastEffectSystem {
	return &CastEffectSystem{}
}

func (s *CastEffectSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach(w, component.WingsComponent.Kind(), func(e ecs.Entity, wings *component.Wings) {
		if !ecs.IsAlive(w, ecs.Entity(wings.Owner)) {
			ecs.DestroyEntity(w, e)
			return
		}
		wings.Elapsed += dt
	})
}

// WingOpenness is how far the wings have opened, in [0, 1].
func WingOpenness(wings *component.Wings) float64 {
	if wings.OpenTime <= 0 {
		return 1
	}
	return min(1, wings.Elapsed/wings.OpenTime)
}

// WingPolylines samples every wing curve in world space around origin.
func WingPolylines(wings *component.Wings, origin cp.Vector) [][]cp.Vector {
	if wings == nil || len(wings.Open) == 0 {
		return nil
	}

	samples := wings.Samples
	if samples < 2 {
		samples = 2
	}
	mult := WingOpenness(wings)
	rot := vmath.RotationTo(wingForward, wings.Aim)

	lines := make([][]cp.Vector, 0, len(wings.Open))
	for _, open := range wings.Open {
		var ctrl [5]cp.Vector
		for k := range ctrl {
			p := cp.Vector{
				X: wings.Folded[k].X + (open[k].X-wings.Folded[k].X)*mult,
				Y: wings.Folded[k].Y + (open[k].Y-wings.Folded[k].Y)*mult,
			}
			ctrl[k] = origin.Add(p.Rotate(rot))
		}

		line := make([]cp.Vector, samples)
		for i := range line {
			t := float64(i) / float64(samples-1)
			line[i] = vmath.QuarticBezier(ctrl[0], ctrl[1], ctrl[2], ctrl[3], ctrl[4], t)
		}
		lines = append(lines, line)
	}
	return lines
}
