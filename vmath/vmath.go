// Package vmath holds the small amount of 2D arithmetic the simulation needs
// on top of cp.Vector.
package vmath

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Epsilon is the length below which a vector is treated as zero.
const Epsilon = 1e-9

// FallbackDirection is used wherever a direction is needed but the two
// points coincide.
var FallbackDirection = cp.Vector{X: math.Sqrt2 / 2, Y: math.Sqrt2 / 2}

// IsZero reports whether v has (numerically) no length.
func IsZero(v cp.Vector) bool {
	return v.LengthSq() <= Epsilon*Epsilon
}

// Direction returns the unit vector from -> to, or fallback when the points
// coincide.
func Direction(from, to, fallback cp.Vector) cp.Vector {
	d := to.Sub(from)
	l := d.Length()
	if l <= Epsilon {
		return fallback
	}
	return d.Mult(1 / l)
}

// MoveTowards steps pos toward target by at most maxStep. When the remaining
// distance fits in the step it lands exactly on target and reports arrival.
func MoveTowards(pos, target cp.Vector, maxStep float64) (cp.Vector, bool) {
	diff := target.Sub(pos)
	dist := diff.Length()
	if dist <= maxStep {
		return target, true
	}
	return pos.Add(diff.Mult(maxStep / dist)), false
}

// ClampLength scales v down to max when it is longer.
func ClampLength(v cp.Vector, max float64) cp.Vector {
	if max <= 0 {
		return cp.Vector{}
	}
	l := v.Length()
	if l <= max {
		return v
	}
	return v.Mult(max / l)
}

// NormalizeOrZero returns v scaled to unit length, or the zero vector.
func NormalizeOrZero(v cp.Vector) cp.Vector {
	l := v.Length()
	if l <= Epsilon {
		return cp.Vector{}
	}
	return v.Mult(1 / l)
}

// Box returns the axis-aligned box of the given size centered on c.
func Box(c cp.Vector, w, h float64) cp.BB {
	return cp.NewBBForExtents(c, w/2, h/2)
}

// Overlaps reports whether two boxes share any area, touching edges included.
func Overlaps(a, b cp.BB) bool {
	return a.Intersects(b)
}

// RotationTo returns the unit rotor that turns from onto to. Apply it with
// v.Rotate(rotor).
func RotationTo(from, to cp.Vector) cp.Vector {
	f := NormalizeOrZero(from)
	t := NormalizeOrZero(to)
	if IsZero(f) || IsZero(t) {
		return cp.Vector{X: 1}
	}
	return t.Unrotate(f)
}

// QuarticBezier evaluates the degree-four Bézier curve defined by p0..p4 at
// t in [0, 1].
func QuarticBezier(p0, p1, p2, p3, p4 cp.Vector, t float64) cp.Vector {
	u := 1 - t
	b0 := u * u * u * u
	b1 := 4 * u * u * u * t
	b2 := 6 * u * u * t * t
	b3 := 4 * u * t * t * t
	b4 := t * t * t * t
	return p0.Mult(b0).Add(p1.Mult(b1)).Add(p2.Mult(b2)).Add(p3.Mult(b3)).Add(p4.Mult(b4))
}
