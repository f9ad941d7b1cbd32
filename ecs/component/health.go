package component

type Health struct {
	Max     int
	Current int
}

// Percent returns Current/Max clamped to [0, 1].
func (h Health) Percent() float64 {
	if h.Max <= 0 {
		return 0
	}
	p := float64(h.Current) / float64(h.Max)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

var HealthComponent = NewComponent[Health]()

// HealthBar asks the HUD to draw an hp bar above the entity.
type HealthBar struct {
	Width   float64
	Height  float64
	OffsetY float64
}

var HealthBarComponent = NewComponent[HealthBar]()
