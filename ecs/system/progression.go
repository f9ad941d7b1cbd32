package system

import (
	"log"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arpg/ecs"
	"github.com/milk9111/arpg/ecs/component"
	"github.com/milk9111/arpg/ecs/entity"
	"github.com/milk9111/arpg/vmath"
)

// Waves configures how each new wave is populated.
type Waves struct {
	Kinds  []string
	Growth int
	Margin float64
}

// ProgressionSystem opens a portal at the arena center once the loot goal is
// met, and starts the next wave when the player steps into it.
type ProgressionSystem struct {
	rng   *rand.Rand
	waves Waves
}

func NewProgressionSystem(rng *rand.Rand, waves Waves) *ProgressionSystem {
	return &ProgressionSystem{rng: rng, waves: waves}
}

func (s *ProgressionSystem) Update(w *ecs.World) {
	if w == nil || s == nil {
		return
	}

	arena, ok := ecs.First(w, component.RunStatsComponent.Kind())
	if !ok {
		return
	}
	stats, _ := ecs.Get(w, arena, component.RunStatsComponent.Kind())
	bounds, ok := ecs.Get(w, arena, component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}

	if !stats.PortalOpen {
		if stats.LootGoal > 0 && stats.Loot >= stats.LootGoal {
			s.openPortal(w, stats, bounds.Center())
		}
		return
	}

	playerEnt, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	playerBox, ok := hurtBounds(w, playerEnt)
	if !ok {
		return
	}

	ecs.ForEach3(w,
		component.PortalTagComponent.Kind(),
		component.PortalComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, _ *component.PortalTag, portal *component.Portal, transform *component.Transform) {
			if portal.Entered || !stats.PortalOpen {
				return
			}
			if !vmath.Overlaps(vmath.Box(transform.Position, portal.Width, portal.Height), playerBox) {
				return
			}
			portal.Entered = true
			ecs.DestroyEntity(w, e)
			s.nextWave(w, stats)
		})
}

func (s *ProgressionSystem) openPortal(w *ecs.World, stats *component.RunStats, center cp.Vector) {
	if _, err := entity.NewPortal(w, center); err != nil {
		log.Printf("progression: open portal: %v", err)
		return
	}
	stats.PortalOpen = true
	w.Events().Push(ecs.Event{Type: ecs.EventPortalOpened, Value: float64(stats.Wave)})
}

func (s *ProgressionSystem) nextWave(w *ecs.World, stats *component.RunStats) {
	stats.PortalOpen = false
	stats.Loot = 0
	stats.Wave++

	n := WaveSize(stats.EnemiesPerWave, s.waves.Growth, stats.Wave)
	if _, err := entity.SpawnRandomEnemies(w, s.rng, n, s.waves.Kinds, s.waves.Margin); err != nil {
		log.Printf("progression: spawn wave %d: %v", stats.Wave, err)
	}
	w.Events().Push(ecs.Event{Type: ecs.EventWaveStarted, Value: float64(stats.Wave)})
}

// WaveSize is the enemy count of wave (1-based): base plus growth per wave
// after the first.
func WaveSize(base, growth, wave int) int {
	if wave < 1 {
		wave = 1
	}
	n := base + (wave-1)*growth
	if n < 0 {
		return 0
	}
	return n
}
