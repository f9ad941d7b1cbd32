package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arpg/ecs"
	"github.com/milk9111/arpg/ecs/component"
	"github.com/milk9111/arpg/prefabs"
	"golang.org/x/image/colornames"
)

// NewPlayer builds the player at pos together with its strings.
func NewPlayer(w *ecs.World, pos cp.Vector) (ecs.Entity, error) {
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, fmt.Errorf("player: load spec: %w", err)
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed:    playerSpec.MoveSpeed,
		DashSpeed:    playerSpec.DashSpeed,
		DashDistance: playerSpec.DashDistance,
		Skill:        playerSpec.Skill,
		Facing:       component.FacingDown,
	}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("player: add player component: %w", err)
	}

	if err := ecs.Add(w, entity, component.MoveTargetComponent.Kind(), &component.MoveTarget{}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("player: add move target: %w", err)
	}

	if err := ecs.Add(w, entity, component.InputComponent.Kind(), &component.Input{}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("player: add input: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{Position: pos}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("player: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.HealthComponent.Kind(), &component.Health{
		Max:     playerSpec.Health,
		Current: playerSpec.Health,
	}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("player: add health: %w", err)
	}

	if err := ecs.Add(w, entity, component.FactionComponent.Kind(), &component.Faction{Team: component.TeamPlayer}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("player: add faction: %w", err)
	}

	if err := ecs.Add(w, entity, component.HurtboxComponent.Kind(), hurtboxFromSpec(playerSpec.Hurtbox, playerSpec.Shape)); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("player: add hurtbox: %w", err)
	}

	if err := ecs.Add(w, entity, component.ShapeComponent.Kind(), shapeFromSpec(playerSpec.Shape)); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("player: add shape: %w", err)
	}

	if err := ecs.Add(w, entity, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: playerSpec.RenderLayer.Index}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("player: add render layer: %w", err)
	}

	cast := playerSpec.Cast
	if err := ecs.Add(w, entity, component.CasterComponent.Kind(), &component.Caster{
		PullTime:     cast.PullTime,
		PullSpread:   cast.PullSpread,
		PullReach:    cast.PullReach,
		WingOpenTime: cast.WingOpenTime,
		WingLifetime: cast.WingLifetime,
		WingSamples:  cast.WingSamples,
		WingColor:    cast.WingColor.RGBAOr(colornames.Wheat),
	}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("player: add caster: %w", err)
	}

	if _, err := NewPlayerStrings(w, entity, pos, playerSpec.Strings); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, err
	}

	return entity, nil
}

// NewPlayerStrings hangs one rope per anchor straight down from the owner.
func NewPlayerStrings(w *ecs.World, owner ecs.Entity, pos cp.Vector, spec prefabs.RopeSpec) ([]ecs.Entity, error) {
	if spec.SegmentLength <= 0 {
		return nil, fmt.Errorf("player: rope segment length %v must be positive", spec.SegmentLength)
	}
	points := spec.Points
	if points <= 0 {
		points = 2
	}
	iterations := spec.Iterations
	if iterations <= 0 {
		iterations = 6
	}

	ropes := make([]ecs.Entity, 0, len(spec.Anchors))
	for i, anchor := range spec.Anchors {
		offset := cp.Vector{X: anchor.X, Y: anchor.Y}
		head := pos.Add(offset)

		// The head is pinned; the remaining points hang below it at rest.
		pts := make([]cp.Vector, points+1)
		for k := range pts {
			pts[k] = head.Add(cp.Vector{Y: float64(k) * spec.SegmentLength})
		}
		prev := make([]cp.Vector, len(pts))
		copy(prev, pts)

		rope := ecs.CreateEntity(w)
		if err := ecs.Add(w, rope, component.RopeComponent.Kind(), &component.Rope{
			Owner:         uint64(owner),
			Offset:        offset,
			Slot:          i,
			SlotCount:     len(spec.Anchors),
			Points:        pts,
			Prev:          prev,
			SegmentLength: spec.SegmentLength,
			Damping:       spec.Damping,
			Gravity:       spec.Gravity,
			Rigidity:      1,
			Iterations:    iterations,
			PullStrength:  spec.PullStrength,
			MaxPullAcc:    spec.MaxPullAcc,
			WindStrength:  spec.WindStrength,
			WindPhase:     float64(i) * 1.7,
			Width:         spec.Width,
			Color:         spec.Color.RGBAOr(colornames.Firebrick),
		}); err != nil {
			destroyAll(w, append(ropes, rope))
			return nil, fmt.Errorf("player: add rope %d: %w", i, err)
		}
		if err := ecs.Add(w, rope, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: component.LayerActors}); err != nil {
			destroyAll(w, append(ropes, rope))
			return nil, fmt.Errorf("player: add rope %d render layer: %w", i, err)
		}
		ropes = append(ropes, rope)
	}
	return ropes, nil
}

func destroyAll(w *ecs.World, entities []ecs.Entity) {
	for _, e := range entities {
		ecs.DestroyEntity(w, e)
	}
}
