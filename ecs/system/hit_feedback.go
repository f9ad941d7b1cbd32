package system

import (
	"log"

	"github.com/milk9111/arpg/ecs"
	"github.com/milk9111/arpg/ecs/component"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// HitFeedbackStyle tunes the pulse played on damaged enemies. Flash is the
// fraction of Duration during which the entity renders brightened.
type HitFeedbackStyle struct {
	Duration float64
	Zoom     float64
	Flash    float64
}

var DefaultHitFeedback = HitFeedbackStyle{Duration: 0.10, Zoom: 0.12, Flash: 0.6}

// StartHitFeedback (re)starts the pulse on e. The zoom follows
// 1 + Zoom*sin(pi*t): an OutSine leg up to the peak and an InSine leg back.
func StartHitFeedback(w *ecs.World, e ecs.Entity, style HitFeedbackStyle) {
	if style.Duration <= 0 {
		return
	}
	half := float32(style.Duration / 2)
	peak := float32(1 + style.Zoom)
	if err := ecs.Add(w, e, component.HitFeedbackComponent.Kind(), &component.HitFeedback{
		Duration:  style.Duration,
		Zoom:      1,
		Flash:     style.Flash > 0,
		FlashTill: style.Flash,
		Up:        gween.New(1, peak, half, ease.OutSine),
		Down:      gween.New(peak, 1, half, ease.InSine),
	}); err != nil {
		log.Printf("hit feedback: entity=%s: %v", e, err)
	}
}

type HitFeedbackSystem struct{}

func NewHitFeedbackSystem() *HitFeedbackSystem {
	return &HitFeedbackSystem{}
}

func (s *HitFeedbackSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach(w, component.HitFeedbackComponent.Kind(), func(e ecs.Entity, fx *component.HitFeedback) {
		fx.Elapsed += dt
		if fx.Elapsed >= fx.Duration {
			ecs.Remove(w, e, component.HitFeedbackComponent.Kind())
			return
		}

		half := fx.Duration / 2
		var zoom float32
		if fx.Elapsed <= half {
			zoom, _ = fx.Up.Set(float32(fx.Elapsed))
		} else {
			zoom, _ = fx.Down.Set(float32(fx.Elapsed - half))
		}
		fx.Zoom = float64(zoom)
		fx.Flash = fx.Progress() < fx.FlashTill
	})
}
