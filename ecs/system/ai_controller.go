package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arpg/ecs"
	"github.com/milk9111/arpg/ecs/component"
	"github.com/milk9111/arpg/ecs/entity"
	"github.com/milk9111/arpg/vmath"
)

// AISystem drives enemies: aggro bookkeeping, ranged attacks on cooldown and
// band-keeping steering with separation and edge avoidance.
type AISystem struct {
	fire func(w *ecs.World, skill string, from, to cp.Vector) error
}

func NewAISystem() *AISystem {
	return &AISystem{fire: fireEnemySkill}
}

type aiNeighbour struct {
	entity ecs.Entity
	pos    cp.Vector
}

func (s *AISystem) Update(w *ecs.World) {
	if w == nil || s == nil {
		return
	}

	playerEnt, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	playerTransform, ok := ecs.Get(w, playerEnt, component.TransformComponent.Kind())
	if !ok {
		return
	}
	playerPos := playerTransform.Position

	var bounds component.LevelBounds
	if arena, ok := ecs.First(w, component.LevelBoundsComponent.Kind()); ok {
		if b, ok := ecs.Get(w, arena, component.LevelBoundsComponent.Kind()); ok {
			bounds = *b
		}
	}

	// Separation reads positions as they were at the start of the frame so
	// the result does not depend on iteration order.
	var neighbours []aiNeighbour
	ecs.ForEach2(w, component.AITagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.AITag, t *component.Transform) {
		neighbours = append(neighbours, aiNeighbour{entity: e, pos: t.Position})
	})

	dt := w.DeltaTime()
	ecs.ForEach4(w,
		component.AITagComponent.Kind(),
		component.AIComponent.Kind(),
		component.AIStateComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, _ *component.AITag, ai *component.AI, state *component.AIState, transform *component.Transform) {
			updateAggro(ai, state, transform.Position.Distance(playerPos))
			if !state.Aggro {
				state.ForceAttack = false
				return
			}

			s.launchAttack(w, e, ai, state, transform.Position, playerPos, dt)

			step := steer(ai, state, e, transform.Position, playerPos, neighbours, bounds, dt)
			if !vmath.IsZero(step) {
				transform.Position = transform.Position.Add(step)
				if bounds.Width > 0 && bounds.Height > 0 {
					halfW, halfH := enemyHalfExtents(w, e)
					transform.Position = bounds.Clamp(transform.Position, halfW, halfH)
				}
			}

			state.AggroRemaining -= dt
		})
}

// updateAggro refreshes aggro while the player is in range and drops it once
// the timer has run out.
func updateAggro(ai *component.AI, state *component.AIState, distance float64) {
	if distance <= ai.AggroRange {
		state.Aggro = true
		state.AggroRemaining = ai.AggroTime
	}
	if state.AggroRemaining <= 0 {
		state.Aggro = false
	}
}

func (s *AISystem) launchAttack(w *ecs.World, e ecs.Entity, ai *component.AI, state *component.AIState, pos, playerPos cp.Vector, dt float64) {
	if ai.Skill == "" {
		return
	}

	force := state.ForceAttack
	state.ForceAttack = false

	state.SinceAttack += dt
	if state.SinceAttack < ai.Cooldown() && !force {
		return
	}

	if pos.Distance(playerPos) >= ai.AttackRange {
		return
	}

	state.SinceAttack = 0
	if s.fire == nil {
		return
	}
	if err := s.fire(w, ai.Skill, pos, playerPos); err != nil {
		log.Printf("ai: entity=%s attack %s: %v", e, ai.Skill, err)
	}
}

func fireEnemySkill(w *ecs.World, skill string, from, to cp.Vector) error {
	_, err := entity.NewProjectile(w, skill, component.TeamEnemy, from, to)
	return err
}

// steer returns this frame's displacement for an aggroed enemy.
func steer(ai *component.AI, state *component.AIState, self ecs.Entity, pos, playerPos cp.Vector, neighbours []aiNeighbour, bounds component.LevelBounds, dt float64) cp.Vector {
	diff := playerPos.Sub(pos)
	dist := diff.Length()
	if dist == 0 {
		return cp.Vector{}
	}
	toPlayer := diff.Mult(1 / dist)

	// Scripts own the band and speed scale while they hold an override,
	// including a zero scale that parks the enemy.
	minDist, maxDist, scale := ai.MinDistance, ai.MaxDistance, 1.0
	if state.ScriptOverrides {
		minDist, maxDist, scale = state.MinDistance, state.MaxDistance, state.SpeedScale
	}

	var desired cp.Vector
	speed := ai.MoveSpeed
	switch {
	case dist < minDist:
		desired = toPlayer.Neg()
		speed = ai.BackoffSpeed
	case dist > maxDist:
		desired = toPlayer
	}

	sep := separation(ai, self, pos, neighbours, bounds)
	total := desired.Add(sep)
	if total.LengthSq() == 0 {
		return cp.Vector{}
	}
	return total.Normalize().Mult(speed * scale * dt)
}

// separation combines the averaged inverse-square push away from close
// neighbours with a soft push away from arena edges.
func separation(ai *component.AI, self ecs.Entity, pos cp.Vector, neighbours []aiNeighbour, bounds component.LevelBounds) cp.Vector {
	r2 := ai.SeparationRadius * ai.SeparationRadius

	var sep cp.Vector
	count := 0
	for _, n := range neighbours {
		if n.entity == self {
			continue
		}
		offset := pos.Sub(n.pos)
		d2 := offset.LengthSq()
		if d2 > 0 && d2 < r2 {
			sep = sep.Add(offset.Mult(1 / d2))
			count++
		}
	}
	if count > 0 {
		sep = sep.Mult(1 / float64(count))
	}

	if bounds.Width > 0 && bounds.Height > 0 && ai.EdgeMargin > 0 {
		sep = sep.Add(vmath.NormalizeOrZero(edgePush(pos, bounds, ai.EdgeMargin)).Mult(ai.EdgeStrength))
	}

	if sep.LengthSq() == 0 {
		return cp.Vector{}
	}
	return sep.Normalize().Mult(ai.SeparationStrength)
}

func edgePush(pos cp.Vector, bounds component.LevelBounds, margin float64) cp.Vector {
	var edge cp.Vector
	if pos.X < margin {
		edge.X += 1 / max(pos.X, 1)
	}
	if pos.X > bounds.Width-margin {
		edge.X -= 1 / max(bounds.Width-pos.X, 1)
	}
	if pos.Y < margin {
		edge.Y += 1 / max(pos.Y, 1)
	}
	if pos.Y > bounds.Height-margin {
		edge.Y -= 1 / max(bounds.Height-pos.Y, 1)
	}
	return edge
}

func enemyHalfExtents(w *ecs.World, e ecs.Entity) (float64, float64) {
	if shape, ok := ecs.Get(w, e, component.ShapeComponent.Kind()); ok {
		return shape.Width / 2, shape.Height / 2
	}
	if hb, ok := ecs.Get(w, e, component.HurtboxComponent.Kind()); ok {
		return hb.Width / 2, hb.Height / 2
	}
	return 0, 0
}
