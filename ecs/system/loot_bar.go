package system

import (
	"github.com/milk9111/arpg/ecs"
	"github.com/milk9111/arpg/ecs/component"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// LootBarSystem eases the displayed loot fill toward Loot/LootGoal.
type LootBarSystem struct{}

func NewLootBarSystem() *LootBarSystem {
	return &LootBarSystem{}
}

func (s *LootBarSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	stats := runStats(w)
	if stats == nil {
		return
	}

	target := 0.0
	if stats.LootGoal > 0 {
		target = min(1, float64(stats.Loot)/float64(stats.LootGoal))
	}
	dt := float32(w.DeltaTime())

	ecs.ForEach(w, component.LootBarComponent.Kind(), func(_ ecs.Entity, bar *component.LootBar) {
		if target != bar.Target || bar.Tween == nil {
			bar.Target = target
			if bar.SmoothTime <= 0 {
				bar.Displayed = target
				bar.Tween = nil
				return
			}
			bar.Tween = gween.New(float32(bar.Displayed), float32(target), bar.SmoothTime, ease.OutQuad)
		}

		current, done := bar.Tween.Update(dt)
		bar.Displayed = float64(current)
		if done {
			bar.Displayed = target
		}
	})
}
