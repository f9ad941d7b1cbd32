package entity

import (
	"fmt"

	"github.com/milk9111/arpg/ecs"
	"github.com/milk9111/arpg/ecs/component"
	"github.com/milk9111/arpg/prefabs"
)

// NewArena builds the singleton holding the arena bounds, the run tally and
// the loot bar.
func NewArena(w *ecs.World, spec *prefabs.ArenaSpec) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("arena: nil spec")
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  spec.Width,
		Height: spec.Height,
	}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("arena: add level bounds: %w", err)
	}

	if err := ecs.Add(w, entity, component.RunStatsComponent.Kind(), &component.RunStats{
		LootGoal:       spec.LootGoal,
		Wave:           1,
		EnemiesPerWave: spec.Enemies,
	}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("arena: add run stats: %w", err)
	}

	bar := spec.LootBar
	if err := ecs.Add(w, entity, component.LootBarComponent.Kind(), &component.LootBar{
		X:          bar.X,
		Y:          bar.Y,
		Width:      bar.Width,
		Height:     bar.Height,
		SmoothTime: float32(bar.SmoothTime),
	}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("arena: add loot bar: %w", err)
	}

	return entity, nil
}
