package system

import (
	"github.com/milk9111/arpg/ecs"
	"github.com/milk9111/arpg/ecs/component"
	"github.com/milk9111/arpg/vmath"
)

// ProjectileSystem advances one team's projectiles. A projectile that reaches
// its target is marked expired and removed on its next update, so it still
// collides on the frame it arrives.
type ProjectileSystem struct {
	team component.Team
}

func NewProjectileSystem(team component.Team) *ProjectileSystem {
	return &ProjectileSystem{team: team}
}

func (s *ProjectileSystem) Update(w *ecs.World) {
	if w == nil || s == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach3(w,
		component.ProjectileComponent.Kind(),
		component.FactionComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, projectile *component.Projectile, faction *component.Faction, transform *component.Transform) {
			if faction.Team != s.team {
				return
			}
			if projectile.Expired {
				ecs.DestroyEntity(w, e)
				return
			}

			next, arrived := vmath.MoveTowards(transform.Position, projectile.Target, projectile.Speed*dt)
			transform.Position = next
			if arrived {
				projectile.Expired = true
			}
		})
}
