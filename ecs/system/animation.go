package system

import (
	"github.com/milk9111/arpg/ecs"
	"github.com/milk9111/arpg/ecs/component"
)

type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (s *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach(w, component.AnimationComponent.Kind(), func(_ ecs.Entity, anim *component.Animation) {
		if !anim.Playing || anim.FrameCount <= 0 || anim.FPS <= 0 {
			return
		}

		frameTime := 1 / anim.FPS
		anim.Timer += dt
		for anim.Timer >= frameTime {
			anim.Timer -= frameTime
			anim.Frame = (anim.Frame + 1) % anim.FrameCount
		}
	})
}
