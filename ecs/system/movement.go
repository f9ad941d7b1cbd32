package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arpg/ecs"
	"github.com/milk9111/arpg/ecs/component"
	"github.com/milk9111/arpg/vmath"
)

// MovementSystem moves the player toward its MoveTarget at MoveSpeed, or
// DashSpeed while dashing, snapping onto the target when it is within one
// step.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (s *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach3(w,
		component.PlayerComponent.Kind(),
		component.MoveTargetComponent.Kind(),
		component.TransformComponent.Kind(),
		func(_ ecs.Entity, player *component.Player, target *component.MoveTarget, transform *component.Transform) {
			if !target.Active {
				return
			}

			speed := player.MoveSpeed
			if target.Dashing {
				speed = player.DashSpeed
			}

			before := transform.Position
			next, arrived := vmath.MoveTowards(before, target.Target, speed*dt)
			transform.Position = next
			if arrived {
				target.Active = false
				target.Dashing = false
			}

			if moved := next.Sub(before); !vmath.IsZero(moved) {
				player.Facing = FacingFor(moved)
			}
		})
}

// FacingFor picks the dominant axis of a screen-space direction (y down).
func FacingFor(dir cp.Vector) component.Facing {
	if math.Abs(dir.X) >= math.Abs(dir.Y) {
		if dir.X < 0 {
			return component.FacingLeft
		}
		return component.FacingRight
	}
	if dir.Y < 0 {
		return component.FacingUp
	}
	return component.FacingDown
}
