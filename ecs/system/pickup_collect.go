package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arpg/ecs"
	"github.com/milk9111/arpg/ecs/component"
	"github.com/milk9111/arpg/vmath"
)

// PickupCollectSystem collects idle pickups the player touches and flies
// collected ones into the loot bar, granting their value on arrival.
type PickupCollectSystem struct{}

func NewPickupCollectSystem() *PickupCollectSystem {
	return &PickupCollectSystem{}
}

func (s *PickupCollectSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var playerBox cp.BB
	hasPlayer := false
	if playerEnt, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		playerBox, hasPlayer = hurtBounds(w, playerEnt)
	}

	stats := runStats(w)
	storage, hasStorage := lootStorage(w)
	dt := w.DeltaTime()

	ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pickup *component.Pickup, transform *component.Transform) {
		switch pickup.Phase {
		case component.PickupIdle:
			if !hasPlayer || !circleOverlapsBox(transform.Position, pickup.Radius, playerBox) {
				return
			}
			pickup.Phase = component.PickupFlying
			if hasStorage {
				pickup.Storage = storage
			}
			if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
				anim.Playing = false
			}
		case component.PickupFlying:
			next, arrived := vmath.MoveTowards(transform.Position, pickup.Storage, pickup.Speed*dt)
			transform.Position = next
			if !arrived {
				return
			}
			if stats != nil {
				stats.Loot += pickup.Value
			}
			w.Events().Push(ecs.Event{Type: ecs.EventLootCollected, Entity: e, Value: float64(pickup.Value)})
			ecs.DestroyEntity(w, e)
		}
	})
}

func circleOverlapsBox(c cp.Vector, r float64, bb cp.BB) bool {
	closest := cp.Vector{
		X: math.Max(bb.L, math.Min(c.X, bb.R)),
		Y: math.Max(bb.B, math.Min(c.Y, bb.T)),
	}
	return closest.DistanceSq(c) <= r*r
}

func runStats(w *ecs.World) *component.RunStats {
	e, ok := ecs.First(w, component.RunStatsComponent.Kind())
	if !ok {
		return nil
	}
	stats, _ := ecs.Get(w, e, component.RunStatsComponent.Kind())
	return stats
}

func lootStorage(w *ecs.World) (cp.Vector, bool) {
	e, ok := ecs.First(w, component.LootBarComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	bar, ok := ecs.Get(w, e, component.LootBarComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	return bar.Storage(), true
}

// hurtBounds returns e's hurtbox in world space.
func hurtBounds(w *ecs.World, e ecs.Entity) (cp.BB, bool) {
	transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return cp.BB{}, false
	}
	hb, ok := ecs.Get(w, e, component.HurtboxComponent.Kind())
	if !ok {
		return cp.BB{}, false
	}
	center := transform.Position.Add(cp.Vector{X: hb.OffsetX, Y: hb.OffsetY})
	return vmath.Box(center, hb.Width, hb.Height), true
}
