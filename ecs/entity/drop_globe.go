package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arpg/ecs"
	"github.com/milk9111/arpg/ecs/component"
	"github.com/milk9111/arpg/prefabs"
)

// NewDropGlobe places a loot globe whose bottom edge sits on at, and which
// flies to storage once collected.
func NewDropGlobe(w *ecs.World, at, storage cp.Vector) (ecs.Entity, error) {
	pickupSpec, err := prefabs.LoadPickupSpec()
	if err != nil {
		return 0, fmt.Errorf("drop globe: load spec: %w", err)
	}

	entity := ecs.CreateEntity(w)

	center := cp.Vector{X: at.X, Y: at.Y - pickupSpec.Shape.Height/2}
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{Position: center}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("drop globe: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.PickupComponent.Kind(), &component.Pickup{
		Kind:    pickupSpec.Name,
		Radius:  pickupSpec.Radius,
		Speed:   pickupSpec.StorageSpeed,
		Value:   pickupSpec.Value,
		Storage: storage,
		Phase:   component.PickupIdle,
	}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("drop globe: add pickup: %w", err)
	}

	if err := ecs.Add(w, entity, component.AnimationComponent.Kind(), &component.Animation{
		FrameCount: pickupSpec.Animation.FrameCount,
		FPS:        pickupSpec.Animation.FPS,
		Playing:    true,
	}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("drop globe: add animation: %w", err)
	}

	if err := ecs.Add(w, entity, component.ShapeComponent.Kind(), shapeFromSpec(pickupSpec.Shape)); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("drop globe: add shape: %w", err)
	}

	if err := ecs.Add(w, entity, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: pickupSpec.RenderLayer.Index}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("drop globe: add render layer: %w", err)
	}

	return entity, nil
}
