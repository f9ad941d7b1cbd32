package component

import "github.com/jakecoffman/cp"

// Input stores per-frame input state for an entity.
type Input struct {
	Cursor         cp.Vector
	MoveHeld       bool
	CastPressed    bool
	DashPressed    bool
	RestartPressed bool
}

var InputComponent = NewComponent[Input]()
