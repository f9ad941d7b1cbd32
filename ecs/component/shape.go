package component

import "image/color"

type ShapeKind int

const (
	ShapeRect ShapeKind = iota
	ShapeCircle
	ShapeGlobe
	ShapePortal
)

// Shape is the primitive a renderer draws centered on the entity transform.
type Shape struct {
	Kind    ShapeKind
	Width   float64
	Height  float64
	Fill    color.RGBA
	Outline color.RGBA
}

var ShapeComponent = NewComponent[Shape]()
