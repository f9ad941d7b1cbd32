package component

import (
	"github.com/jakecoffman/cp"
	"github.com/tanema/gween"
)

// LootBar is the on-screen storage meter pickups fly into.
type LootBar struct {
	X, Y          float64
	Width, Height float64
	Displayed     float64
	Target        float64
	SmoothTime    float32
	Tween         *gween.Tween
}

// Storage is the point flying pickups head to.
func (b LootBar) Storage() cp.Vector {
	return cp.Vector{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

var LootBarComponent = NewComponent[LootBar]()
