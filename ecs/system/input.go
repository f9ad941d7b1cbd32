package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/arpg/ecs"
	"github.com/milk9111/arpg/ecs/component"
)

// InputSystem maps mouse and keyboard state onto Input components:
// right mouse held moves, Q or left click casts, space dashes and R restarts.
type InputSystem struct {
	poll func() component.Input
}

func NewInputSystem() *InputSystem {
	return &InputSystem{poll: pollInput}
}

// NewInputSystemFrom reads input from poll instead of the ebiten devices.
func NewInputSystemFrom(poll func() component.Input) *InputSystem {
	return &InputSystem{poll: poll}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil || i == nil || i.poll == nil {
		return
	}

	state := i.poll()
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		*input = state
	})
}

func pollInput() component.Input {
	mx, my := ebiten.CursorPosition()
	return component.Input{
		Cursor:         cp.Vector{X: float64(mx), Y: float64(my)},
		MoveHeld:       ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		CastPressed:    inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		DashPressed:    inpututil.IsKeyJustPressed(ebiten.KeySpace),
		RestartPressed: inpututil.IsKeyJustPressed(ebiten.KeyR),
	}
}
