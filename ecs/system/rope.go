package system

import (
	"github.com/aquilax/go-perlin"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/arpg/ecs"
	"github.com/milk9111/arpg/ecs/component"
	"github.com/milk9111/arpg/vmath"
)

const (
	windFrequency = 0.8
	windAlpha     = 2.0
	windBeta      = 2.0
	windOctaves   = 3
)

// RopeSystem steps every rope with verlet integration. Heads follow their
// owner; the player's facing sets how stiffly the upper segment hangs, casts
// drag the tails across the aim direction and perlin noise adds a light sway.
type RopeSystem struct {
	noise *perlin.Perlin
}

func NewRopeSystem(seed int64) *RopeSystem {
	return &RopeSystem{noise: perlin.NewPerlin(windAlpha, windBeta, windOctaves, seed)}
}

func (s *RopeSystem) Update(w *ecs.World) {
	if w == nil || s == nil {
		return
	}
	dt := w.DeltaTime()
	elapsed := w.Elapsed()

	ecs.ForEach(w, component.RopeComponent.Kind(), func(e ecs.Entity, rope *component.Rope) {
		owner := ecs.Entity(rope.Owner)
		transform, ok := ecs.Get(w, owner, component.TransformComponent.Kind())
		if !ok {
			ecs.DestroyEntity(w, e)
			return
		}

		if player, ok := ecs.Get(w, owner, component.PlayerComponent.Kind()); ok {
			rope.Rigidity = RigidityFor(player.Facing, rope.Slot, rope.SlotCount)
		}

		rope.Pulling = false
		if pull, ok := ecs.Get(w, owner, component.RopePullComponent.Kind()); ok && pull.Remaining > 0 {
			rope.Pull = PullTarget(transform.Position, *pull, rope.Slot, rope.SlotCount)
			rope.Pulling = true
		}

		var wind cp.Vector
		if rope.WindStrength != 0 && s.noise != nil {
			wind.X = s.noise.Noise1D(elapsed*windFrequency+rope.WindPhase) * rope.WindStrength
		}

		StepRope(rope, transform.Position.Add(rope.Offset), dt, wind)
	})

	ecs.ForEach(w, component.RopePullComponent.Kind(), func(e ecs.Entity, pull *component.RopePull) {
		pull.Remaining -= dt
		if pull.Remaining <= 0 {
			ecs.Remove(w, e, component.RopePullComponent.Kind())
		}
	})
}

// RigidityFor spreads the upper-segment gravity multiplier across a set of
// strings: 10 down to 5 facing left, reversed facing right, uniformly stiff
// facing up and limp facing down.
func RigidityFor(facing component.Facing, slot, count int) float64 {
	switch facing {
	case component.FacingUp:
		return 10
	case component.FacingDown:
		return 1
	}

	t := 0.0
	if count > 1 {
		t = float64(slot) / float64(count-1)
	}
	if facing == component.FacingRight {
		return 5 + 5*t
	}
	return 10 - 5*t
}

// PullTarget is where string slot of count is dragged during a cast: Reach
// along the aim from origin, offset sideways across Spread pixels.
func PullTarget(origin cp.Vector, pull component.RopePull, slot, count int) cp.Vector {
	dir := vmath.NormalizeOrZero(pull.Aim)
	side := dir.Perp()
	t := 0.5
	if count > 1 {
		t = float64(slot) / float64(count-1)
	}
	return origin.Add(dir.Mult(pull.Reach)).Add(side.Mult((t - 0.5) * pull.Spread))
}

// StepRope advances one rope by dt with its head pinned at anchor.
func StepRope(rope *component.Rope, anchor cp.Vector, dt float64, wind cp.Vector) {
	n := len(rope.Points)
	if n == 0 {
		return
	}
	if len(rope.Prev) != n {
		rope.Prev = make([]cp.Vector, n)
		copy(rope.Prev, rope.Points)
	}

	rope.Points[0] = anchor
	rope.Prev[0] = anchor

	dt2 := dt * dt
	for i := 1; i < n; i++ {
		rigidity := 1.0
		if i == 1 {
			rigidity = rope.Rigidity
		}
		acc := cp.Vector{Y: rope.Gravity * rigidity}.Add(wind)

		if i == n-1 && rope.Pulling {
			pull := rope.Pull.Sub(rope.Points[i]).Mult(rope.PullStrength)
			if rope.MaxPullAcc > 0 {
				pull = vmath.ClampLength(pull, rope.MaxPullAcc)
			}
			acc = pull
		}

		p := rope.Points[i]
		vel := p.Sub(rope.Prev[i]).Mult(rope.Damping)
		rope.Prev[i] = p
		rope.Points[i] = p.Add(vel).Add(acc.Mult(dt2))
	}

	iterations := rope.Iterations
	if iterations <= 0 {
		iterations = 1
	}
	for it := 0; it < iterations; it++ {
		for i := 1; i < n; i++ {
			wa := 1.0
			if i-1 == 0 {
				wa = 0
			}
			rope.Points[i-1], rope.Points[i] = solveDistance(rope.Points[i-1], rope.Points[i], rope.SegmentLength, wa, 1)
		}
		rope.Points[0] = anchor
	}
}

// solveDistance moves a and b along their separation so it equals rest,
// split by weight. A zero weight pins that end.
func solveDistance(a, b cp.Vector, rest, wa, wb float64) (cp.Vector, cp.Vector) {
	delta := b.Sub(a)
	dist := delta.Length()
	if dist == 0 {
		return a, b
	}
	total := wa + wb
	if total == 0 {
		return a, b
	}

	correction := delta.Mult((dist - rest) / dist)
	a = a.Add(correction.Mult(wa / total))
	b = b.Sub(correction.Mult(wb / total))
	return a, b
}
