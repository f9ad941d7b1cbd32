package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arpg/ecs"
	"github.com/milk9111/arpg/ecs/component"
	"github.com/milk9111/arpg/prefabs"
)

func NewPortal(w *ecs.World, center cp.Vector) (ecs.Entity, error) {
	portalSpec, err := prefabs.LoadPortalSpec()
	if err != nil {
		return 0, fmt.Errorf("portal: load spec: %w", err)
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.PortalTagComponent.Kind(), &component.PortalTag{}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("portal: add portal tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.PortalComponent.Kind(), &component.Portal{
		Width:  portalSpec.Shape.Width,
		Height: portalSpec.Shape.Height,
	}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("portal: add portal: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{Position: center}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("portal: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.AnimationComponent.Kind(), &component.Animation{
		FrameCount: portalSpec.Animation.FrameCount,
		FPS:        portalSpec.Animation.FPS,
		Playing:    true,
	}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("portal: add animation: %w", err)
	}

	if err := ecs.Add(w, entity, component.ShapeComponent.Kind(), shapeFromSpec(portalSpec.Shape)); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("portal: add shape: %w", err)
	}

	if err := ecs.Add(w, entity, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: portalSpec.RenderLayer.Index}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("portal: add render layer: %w", err)
	}

	return entity, nil
}
