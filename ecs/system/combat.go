package system

import (
	"log"

	"github.com/milk9111/arpg/ecs"
	"github.com/milk9111/arpg/ecs/component"
	"github.com/milk9111/arpg/ecs/entity"
	"github.com/milk9111/arpg/vmath"
)

// CombatSystem resolves projectile hits after everything has moved. A
// projectile is consumed by the first frame it overlaps any opposing hurtbox,
// and every hurtbox it overlaps that frame takes its damage once.
type CombatSystem struct {
	feedback HitFeedbackStyle
	drop     func(w *ecs.World, e ecs.Entity) error
}

func NewCombatSystem(feedback HitFeedbackStyle) *CombatSystem {
	return &CombatSystem{feedback: feedback, drop: dropGlobe}
}

type combatTarget struct {
	entity ecs.Entity
	team   component.Team
}

func (s *CombatSystem) Update(w *ecs.World) {
	if w == nil || s == nil {
		return
	}

	var targets []combatTarget
	ecs.ForEach3(w,
		component.HurtboxComponent.Kind(),
		component.HealthComponent.Kind(),
		component.FactionComponent.Kind(),
		func(e ecs.Entity, _ *component.Hurtbox, _ *component.Health, faction *component.Faction) {
			targets = append(targets, combatTarget{entity: e, team: faction.Team})
		})

	// Player projectiles land before enemy ones.
	for _, team := range []component.Team{component.TeamPlayer, component.TeamEnemy} {
		ecs.ForEach4(w,
			component.ProjectileComponent.Kind(),
			component.HitboxComponent.Kind(),
			component.FactionComponent.Kind(),
			component.TransformComponent.Kind(),
			func(p ecs.Entity, _ *component.Projectile, hitbox *component.Hitbox, faction *component.Faction, transform *component.Transform) {
				if faction.Team != team {
					return
				}
				box := vmath.Box(transform.Position, hitbox.Width, hitbox.Height)

				hit := false
				for _, t := range targets {
					if t.team == team || !ecs.IsAlive(w, t.entity) {
						continue
					}
					tb, ok := hurtBounds(w, t.entity)
					if !ok || !vmath.Overlaps(box, tb) {
						continue
					}
					hit = true
					s.damage(w, t.entity, hitbox.Damage)
				}
				if hit {
					ecs.DestroyEntity(w, p)
				}
			})
	}
}

func (s *CombatSystem) damage(w *ecs.World, e ecs.Entity, amount int) {
	health, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok {
		return
	}
	ApplyDamage(health, amount)

	if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
		w.Events().Push(ecs.Event{Type: ecs.EventPlayerHit, Entity: e, Value: float64(amount)})
		if health.Current > 0 {
			return
		}
		if stats := runStats(w); stats != nil && !stats.PlayerDead {
			stats.PlayerDead = true
			w.Events().Push(ecs.Event{Type: ecs.EventPlayerDied, Entity: e})
		}
		return
	}

	if ai, ok := ecs.Get(w, e, component.AIComponent.Kind()); ok {
		if state, ok := ecs.Get(w, e, component.AIStateComponent.Kind()); ok {
			state.Aggro = true
			state.AggroRemaining = ai.AggroTime
		}
	}
	StartHitFeedback(w, e, s.feedback)

	if health.Current > 0 {
		return
	}

	if s.drop != nil {
		if err := s.drop(w, e); err != nil {
			log.Printf("combat: entity=%s drop: %v", e, err)
		}
	}
	if stats := runStats(w); stats != nil {
		stats.Kills++
	}
	w.Events().Push(ecs.Event{Type: ecs.EventEnemyKilled, Entity: e})
	ecs.DestroyEntity(w, e)
}

// ApplyDamage lowers hp by amount without going below zero.
func ApplyDamage(health *component.Health, amount int) {
	if health == nil || amount <= 0 {
		return
	}
	health.Current -= amount
	if health.Current < 0 {
		health.Current = 0
	}
}

func dropGlobe(w *ecs.World, e ecs.Entity) error {
	transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return nil
	}
	storage, _ := lootStorage(w)
	_, err := entity.NewDropGlobe(w, transform.Position, storage)
	return err
}
