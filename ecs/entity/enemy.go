package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arpg/ecs"
	"github.com/milk9111/arpg/ecs/component"
	"github.com/milk9111/arpg/prefabs"
)

// initialSinceAttack lets a freshly spawned enemy attack on its first
// aggroed frame.
const initialSinceAttack = 1000

// NewEnemy builds an enemy of the given prefab kind centered at pos.
func NewEnemy(w *ecs.World, kind string, pos cp.Vector) (ecs.Entity, error) {
	enemySpec, err := prefabs.LoadEnemySpec(kind)
	if err != nil {
		return 0, fmt.Errorf("enemy: load spec: %w", err)
	}

	skillSpec, err := prefabs.LoadSkillSpec(enemySpec.Skill)
	if err != nil {
		return 0, fmt.Errorf("enemy: load skill %q: %w", enemySpec.Skill, err)
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.AITagComponent.Kind(), &component.AITag{}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("enemy: add enemy tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.AIComponent.Kind(), &component.AI{
		Kind:               enemySpec.Kind,
		AggroRange:         enemySpec.AggroRange,
		AggroTime:          enemySpec.AggroTime,
		AttackSpeed:        enemySpec.AttackSpeed,
		MoveSpeed:          enemySpec.MoveSpeed,
		BackoffSpeed:       enemySpec.BackoffSpeed,
		MinDistance:        enemySpec.MinDistance,
		MaxDistance:        enemySpec.MaxDistance,
		Skill:              skillSpec.Name,
		AttackRange:        skillSpec.TargetRange,
		SeparationRadius:   enemySpec.Separation.Range,
		SeparationStrength: enemySpec.Separation.Strength,
		EdgeMargin:         enemySpec.Edge.Range,
		EdgeStrength:       enemySpec.Edge.Strength,
	}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("enemy: add enemy component: %w", err)
	}

	if err := ecs.Add(w, entity, component.AIStateComponent.Kind(), &component.AIState{
		SinceAttack: initialSinceAttack,
		SpeedScale:  1,
		MinDistance: enemySpec.MinDistance,
		MaxDistance: enemySpec.MaxDistance,
	}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("enemy: add ai state: %w", err)
	}

	if enemySpec.AIScript != "" {
		if err := ecs.Add(w, entity, component.AIScriptComponent.Kind(), &component.AIScript{Path: enemySpec.AIScript}); err != nil {
			ecs.DestroyEntity(w, entity)
			return 0, fmt.Errorf("enemy: add ai script: %w", err)
		}
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{Position: pos}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("enemy: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.HealthComponent.Kind(), &component.Health{
		Max:     enemySpec.Health,
		Current: enemySpec.Health,
	}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("enemy: add health: %w", err)
	}

	if err := ecs.Add(w, entity, component.HealthBarComponent.Kind(), &component.HealthBar{
		Width:   enemySpec.HealthBar.Width,
		Height:  enemySpec.HealthBar.Height,
		OffsetY: enemySpec.HealthBar.OffsetY,
	}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("enemy: add health bar: %w", err)
	}

	if err := ecs.Add(w, entity, component.FactionComponent.Kind(), &component.Faction{Team: component.TeamEnemy}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("enemy: add faction: %w", err)
	}

	if err := ecs.Add(w, entity, component.HurtboxComponent.Kind(), hurtboxFromSpec(enemySpec.Hurtbox, enemySpec.Shape)); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("enemy: add hurtbox: %w", err)
	}

	if err := ecs.Add(w, entity, component.ShapeComponent.Kind(), shapeFromSpec(enemySpec.Shape)); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("enemy: add shape: %w", err)
	}

	if err := ecs.Add(w, entity, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: enemySpec.RenderLayer.Index}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("enemy: add render layer: %w", err)
	}

	return entity, nil
}
