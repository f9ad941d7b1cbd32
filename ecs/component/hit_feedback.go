package component

import "github.com/tanema/gween"

// HitFeedback pulses an entity's scale and flashes it after a hit.
type HitFeedback struct {
	Duration  float64
	Elapsed   float64
	Zoom      float64
	Flash     bool
	FlashTill float64
	Up        *gween.Tween
	Down      *gween.Tween
}

// Progress returns Elapsed/Duration in [0, 1].
func (h HitFeedback) Progress() float64 {
	if h.Duration <= 0 {
		return 1
	}
	t := h.Elapsed / h.Duration
	if t > 1 {
		return 1
	}
	return t
}

var HitFeedbackComponent = NewComponent[HitFeedback]()
