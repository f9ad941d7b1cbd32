package entity

import (
	"image/color"
	"strings"

	"github.com/milk9111/arpg/ecs/component"
	"github.com/milk9111/arpg/prefabs"
	"golang.org/x/image/colornames"
)

func shapeFromSpec(spec prefabs.ShapeSpec) *component.Shape {
	kind := component.ShapeRect
	switch strings.ToLower(strings.TrimSpace(spec.Kind)) {
	case "circle":
		kind = component.ShapeCircle
	case "globe":
		kind = component.ShapeGlobe
	case "portal":
		kind = component.ShapePortal
	}
	return &component.Shape{
		Kind:    kind,
		Width:   spec.Width,
		Height:  spec.Height,
		Fill:    spec.Fill.RGBAOr(colornames.White),
		Outline: spec.Outline.RGBAOr(color.RGBA{}),
	}
}

func hurtboxFromSpec(spec prefabs.HurtboxSpec, shape prefabs.ShapeSpec) *component.Hurtbox {
	hb := &component.Hurtbox{
		Width:   spec.Width,
		Height:  spec.Height,
		OffsetX: spec.OffsetX,
		OffsetY: spec.OffsetY,
	}
	if hb.Width <= 0 {
		hb.Width = shape.Width
	}
	if hb.Height <= 0 {
		hb.Height = shape.Height
	}
	return hb
}
