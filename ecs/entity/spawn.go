package entity

import (
	"fmt"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arpg/ecs"
	"github.com/milk9111/arpg/ecs/component"
)

// DefaultSpawnMargin keeps spawns inside the middle 90% of the arena.
const DefaultSpawnMargin = 0.05

// SpawnRandomEnemies creates n enemies with kinds picked uniformly from
// kinds, placed uniformly within [margin, 1-margin] of the arena per axis.
func SpawnRandomEnemies(w *ecs.World, rng *rand.Rand, n int, kinds []string, margin float64) ([]ecs.Entity, error) {
	if n <= 0 {
		return nil, nil
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("spawn: no enemy kinds")
	}
	if rng == nil {
		return nil, fmt.Errorf("spawn: nil rng")
	}
	if margin < 0 || margin >= 0.5 {
		margin = DefaultSpawnMargin
	}

	arena, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		return nil, fmt.Errorf("spawn: no level bounds")
	}
	bounds, _ := ecs.Get(w, arena, component.LevelBoundsComponent.Kind())

	spawned := make([]ecs.Entity, 0, n)
	for i := 0; i < n; i++ {
		kind := kinds[rng.Intn(len(kinds))]
		pos := cp.Vector{
			X: bounds.Width * (margin + rng.Float64()*(1-2*margin)),
			Y: bounds.Height * (margin + rng.Float64()*(1-2*margin)),
		}
		e, err := NewEnemy(w, kind, pos)
		if err != nil {
			return spawned, fmt.Errorf("spawn: %s: %w", kind, err)
		}
		spawned = append(spawned, e)
	}
	return spawned, nil
}
