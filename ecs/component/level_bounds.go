package component

import "github.com/jakecoffman/cp"

// LevelBounds describes the arena rectangle, anchored at the origin.
type LevelBounds struct {
	Width  float64
	Height float64
}

func (b LevelBounds) Center() cp.Vector {
	return cp.Vector{X: b.Width / 2, Y: b.Height / 2}
}

// Clamp keeps a box of the given half extents inside the bounds.
func (b LevelBounds) Clamp(p cp.Vector, halfW, halfH float64) cp.Vector {
	p.X = clamp(p.X, halfW, b.Width-halfW)
	p.Y = clamp(p.Y, halfH, b.Height-halfH)
	return p
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
