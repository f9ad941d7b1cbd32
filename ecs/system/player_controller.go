package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arpg/ecs"
	"github.com/milk9111/arpg/ecs/component"
	"github.com/milk9111/arpg/ecs/entity"
	"github.com/milk9111/arpg/vmath"
)

// PlayerControllerSystem turns the player's Input into move targets, dashes
// and casts.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (s *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach4(w,
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.MoveTargetComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, player *component.Player, input *component.Input, target *component.MoveTarget, transform *component.Transform) {
			if input.MoveHeld {
				SetMoveTarget(target, input.Cursor)
			}
			if input.DashPressed {
				Dash(target, transform.Position, input.Cursor, player.DashDistance)
			}
			if input.CastPressed {
				cast(w, e, player, transform.Position, input.Cursor)
			}
		})
}

// SetMoveTarget points the entity at p unless it is mid-dash.
func SetMoveTarget(target *component.MoveTarget, p cp.Vector) {
	if target == nil || target.Dashing {
		return
	}
	target.Target = p
	target.Active = true
}

// Dash sets a target distance away from pos in the direction of aim. It is a
// no-op when aim coincides with pos.
func Dash(target *component.MoveTarget, pos, aim cp.Vector, distance float64) bool {
	if target == nil {
		return false
	}
	offset := aim.Sub(pos)
	if vmath.IsZero(offset) {
		return false
	}
	target.Target = pos.Add(offset.Normalize().Mult(distance))
	target.Active = true
	target.Dashing = true
	return true
}

func cast(w *ecs.World, e ecs.Entity, player *component.Player, pos, aim cp.Vector) {
	if _, err := entity.NewProjectile(w, player.Skill, component.TeamPlayer, pos, aim); err != nil {
		log.Printf("player: cast %s: %v", player.Skill, err)
		return
	}

	caster, ok := ecs.Get(w, e, component.CasterComponent.Kind())
	if !ok {
		return
	}

	dir := vmath.Direction(pos, aim, vmath.FallbackDirection)
	if caster.PullTime > 0 {
		if err := ecs.Add(w, e, component.RopePullComponent.Kind(), &component.RopePull{
			Aim:       dir,
			Reach:     caster.PullReach,
			Spread:    caster.PullSpread,
			Remaining: caster.PullTime,
		}); err != nil {
			log.Printf("player: rope pull: %v", err)
		}
	}
	if caster.WingLifetime > 0 {
		if _, err := entity.NewWings(w, e, aim.Sub(pos), *caster); err != nil {
			log.Printf("player: spawn wings: %v", err)
		}
	}
}
