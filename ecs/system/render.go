package system

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/arpg/ecs"
	"github.com/milk9111/arpg/ecs/component"
)

// flashBoost is added to each RGB channel while a hit flash is showing.
const flashBoost = 40

// RenderSystem draws shapes, ropes and cast wings ordered by render layer.
type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

type drawItem struct {
	layer int
	draw  func(screen *ebiten.Image)
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	var items []drawItem
	layerOf := func(e ecs.Entity) int {
		if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			return layer.Index
		}
		return 0
	}

	ecs.ForEach2(w, component.ShapeComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, shape *component.Shape, transform *component.Transform) {
		zoom, flash := 1.0, false
		if fx, ok := ecs.Get(w, e, component.HitFeedbackComponent.Kind()); ok {
			zoom, flash = fx.Zoom, fx.Flash
		}
		frame, frames := 0, 1
		if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok && anim.FrameCount > 0 {
			frame, frames = anim.Frame, anim.FrameCount
		}
		s, pos := *shape, transform.Position
		items = append(items, drawItem{layer: layerOf(e), draw: func(screen *ebiten.Image) {
			drawShape(screen, s, pos, zoom, flash, frame, frames)
		}})
	})

	ecs.ForEach(w, component.RopeComponent.Kind(), func(e ecs.Entity, rope *component.Rope) {
		points := append([]cp.Vector(nil), rope.Points...)
		width, clr := float32(rope.Width), rope.Color
		items = append(items, drawItem{layer: layerOf(e), draw: func(screen *ebiten.Image) {
			drawPolyline(screen, points, width, clr)
		}})
	})

	ecs.ForEach(w, component.WingsComponent.Kind(), func(e ecs.Entity, wings *component.Wings) {
		owner, ok := ecs.Get(w, ecs.Entity(wings.Owner), component.TransformComponent.Kind())
		if !ok {
			return
		}
		lines := WingPolylines(wings, owner.Position)
		clr := wings.Color
		items = append(items, drawItem{layer: layerOf(e), draw: func(screen *ebiten.Image) {
			for _, line := range lines {
				drawPolyline(screen, line, 2, clr)
			}
		}})
	})

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].layer < items[j].layer
	})
	for _, item := range items {
		item.draw(screen)
	}
}

func drawShape(screen *ebiten.Image, shape component.Shape, pos cp.Vector, zoom float64, flash bool, frame, frames int) {
	fill, outline := shape.Fill, shape.Outline
	if flash {
		fill = Brighten(fill, flashBoost)
	}
	w := shape.Width * zoom
	h := shape.Height * zoom
	x := float32(pos.X)
	y := float32(pos.Y)

	switch shape.Kind {
	case component.ShapeCircle:
		r := float32(w / 2)
		vector.FillCircle(screen, x, y, r, fill, true)
		if outline.A > 0 {
			vector.StrokeCircle(screen, x, y, r, 1.5, outline, true)
		}
	case component.ShapeGlobe:
		// The orb bobs through one cycle per animation loop.
		phase := 2 * math.Pi * float64(frame) / float64(max(frames, 1))
		r := float32(w / 2)
		cy := y + float32(math.Sin(phase)*2)
		vector.FillCircle(screen, x, cy, r, fill, true)
		if outline.A > 0 {
			vector.StrokeCircle(screen, x, cy, r, 1, outline, true)
			vector.FillCircle(screen, x-r/3, cy-r/3, r/4, outline, true)
		}
	case component.ShapePortal:
		fillA := fill
		fillA.A = 120
		vector.FillRect(screen, x-float32(w/2), y-float32(h/2), float32(w), float32(h), fillA, false)
		t := float64(frame) / float64(max(frames, 1))
		ring := float32(w/2) * float32(0.35+0.6*t)
		if outline.A > 0 {
			vector.StrokeRect(screen, x-float32(w/2), y-float32(h/2), float32(w), float32(h), 2, outline, false)
			vector.StrokeCircle(screen, x, y, ring, 2, outline, true)
		}
	default:
		vector.FillRect(screen, x-float32(w/2), y-float32(h/2), float32(w), float32(h), fill, false)
		if outline.A > 0 {
			vector.StrokeRect(screen, x-float32(w/2), y-float32(h/2), float32(w), float32(h), 1, outline, false)
		}
	}
}

func drawPolyline(screen *ebiten.Image, points []cp.Vector, width float32, clr color.RGBA) {
	if width <= 0 {
		width = 1
	}
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, clr, true)
	}
}

// Brighten adds amount to each RGB channel, saturating at 255.
func Brighten(c color.RGBA, amount uint8) color.RGBA {
	add := func(v uint8) uint8 {
		if int(v)+int(amount) > math.MaxUint8 {
			return math.MaxUint8
		}
		return v + amount
	}
	return color.RGBA{R: add(c.R), G: add(c.G), B: add(c.B), A: c.A}
}
