package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arpg/ecs"
	"github.com/milk9111/arpg/ecs/component"
	"github.com/milk9111/arpg/prefabs"
	"github.com/milk9111/arpg/vmath"
)

// NewProjectile fires skill from start toward aim. The projectile appears
// Muzzle pixels out along the aim direction and flies MaxDistance from there.
func NewProjectile(w *ecs.World, skill string, team component.Team, start, aim cp.Vector) (ecs.Entity, error) {
	skillSpec, err := prefabs.LoadSkillSpec(skill)
	if err != nil {
		return 0, fmt.Errorf("projectile: load spec: %w", err)
	}

	dir := vmath.Direction(start, aim, vmath.FallbackDirection)
	pos := start.Add(dir.Mult(skillSpec.Muzzle))
	target := pos.Add(dir.Mult(skillSpec.MaxDistance))

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.ProjectileComponent.Kind(), &component.Projectile{
		Skill:     skillSpec.Name,
		Direction: dir,
		Target:    target,
		Speed:     skillSpec.Speed,
	}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("projectile: add projectile: %w", err)
	}

	if err := ecs.Add(w, entity, component.HitboxComponent.Kind(), &component.Hitbox{
		Width:  skillSpec.Shape.Width,
		Height: skillSpec.Shape.Height,
		Damage: skillSpec.Damage,
	}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("projectile: add hitbox: %w", err)
	}

	if err := ecs.Add(w, entity, component.FactionComponent.Kind(), &component.Faction{Team: team}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("projectile: add faction: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{Position: pos}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("projectile: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.ShapeComponent.Kind(), shapeFromSpec(skillSpec.Shape)); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("projectile: add shape: %w", err)
	}

	if err := ecs.Add(w, entity, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: skillSpec.RenderLayer.Index}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("projectile: add render layer: %w", err)
	}

	w.Events().Push(ecs.Event{Type: ecs.EventProjectileFired, Entity: entity, Data: skillSpec.Name})
	return entity, nil
}
