package system

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/arpg/ecs"
	"github.com/milk9111/arpg/ecs/component"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

var (
	hpBarBackground = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	hpBarFill       = color.RGBA{R: 200, G: 50, B: 50, A: 255}
	hpBarBorder     = color.RGBA{R: 10, G: 10, B: 10, A: 255}
	lootBarFill     = color.RGBA{R: 80, G: 200, B: 255, A: 255}
)

// HUDSystem draws enemy hp bars, the loot bar and the run counters.
type HUDSystem struct {
	face ebtext.Face
}

func NewHUDSystem() *HUDSystem {
	return &HUDSystem{face: ebtext.NewGoXFace(basicfont.Face7x13)}
}

// BarRect is a bar in screen space; Fill is the width of its filled part.
type BarRect struct {
	X, Y, W, H float64
	Fill       float64
}

// HealthBarRect places a bar centered over a shape of height shapeH at pos,
// OffsetY pixels above its top edge.
func HealthBarRect(pos cp.Vector, shapeH float64, bar component.HealthBar, percent float64) BarRect {
	percent = max(0, min(1, percent))
	top := pos.Y - shapeH/2
	return BarRect{
		X:    pos.X - bar.Width/2,
		Y:    top - bar.OffsetY,
		W:    bar.Width,
		H:    bar.Height,
		Fill: bar.Width * percent,
	}
}

func (h *HUDSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if h == nil || w == nil || screen == nil {
		return
	}

	ecs.ForEach3(w,
		component.HealthBarComponent.Kind(),
		component.HealthComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, bar *component.HealthBar, health *component.Health, transform *component.Transform) {
			shapeH := 0.0
			if shape, ok := ecs.Get(w, e, component.ShapeComponent.Kind()); ok {
				shapeH = shape.Height
			}
			drawBar(screen, HealthBarRect(transform.Position, shapeH, *bar, health.Percent()), hpBarFill)
		})

	stats := runStats(w)
	if stats == nil {
		return
	}

	if barEnt, ok := ecs.First(w, component.LootBarComponent.Kind()); ok {
		if bar, ok := ecs.Get(w, barEnt, component.LootBarComponent.Kind()); ok {
			drawBar(screen, BarRect{X: bar.X, Y: bar.Y, W: bar.Width, H: bar.Height, Fill: bar.Width * bar.Displayed}, lootBarFill)
			h.label(screen, fmt.Sprintf("Loot %d/%d", stats.Loot, stats.LootGoal), bar.X+bar.Width+8, bar.Y+2)
		}
	}

	hp := ""
	if playerEnt, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		if health, ok := ecs.Get(w, playerEnt, component.HealthComponent.Kind()); ok {
			hp = fmt.Sprintf("  HP: %d/%d", health.Current, health.Max)
		}
	}
	h.label(screen, fmt.Sprintf("Kills: %d  Wave: %d%s", stats.Kills, stats.Wave, hp), 20, 44)

	if stats.PortalOpen {
		h.label(screen, "Portal open: enter it to start the next wave", 20, 62)
	}
	if stats.PlayerDead {
		sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
		h.label(screen, "You died. Press R to restart.", float64(sw)/2-100, float64(sh)/2)
	}
}

func (h *HUDSystem) label(screen *ebiten.Image, s string, x, y float64) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(colornames.White)
	ebtext.Draw(screen, s, h.face, op)
}

func drawBar(screen *ebiten.Image, r BarRect, fill color.RGBA) {
	x, y, w, h := float32(r.X), float32(r.Y), float32(r.W), float32(r.H)
	vector.FillRect(screen, x, y, w, h, hpBarBackground, false)
	if r.Fill > 0 {
		vector.FillRect(screen, x, y, float32(r.Fill), h, fill, false)
	}
	vector.StrokeRect(screen, x, y, w, h, 1, hpBarBorder, false)
}
