package component

import (
	"image/color"

	"github.com/jakecoffman/cp"
)

// Facing is the coarse direction the player is heading in.
type Facing int

const (
	FacingDown Facing = iota
	FacingUp
	FacingLeft
	FacingRight
)

func (f Facing) String() string {
	switch f {
	case FacingUp:
		return "up"
	case FacingLeft:
		return "left"
	case FacingRight:
		return "right"
	default:
		return "down"
	}
}

type Player struct {
	MoveSpeed    float64
	DashSpeed    float64
	DashDistance float64
	Skill        string
	Facing       Facing
}

var PlayerComponent = NewComponent[Player]()

// MoveTarget is the point an entity is currently travelling to. Dashing
// targets cannot be overridden until they are reached.
type MoveTarget struct {
	Target  cp.Vector
	Active  bool
	Dashing bool
}

var MoveTargetComponent = NewComponent[MoveTarget]()

// Caster holds the cosmetic response to a cast: string pull and wings.
type Caster struct {
	PullTime     float64
	PullSpread   float64
	PullReach    float64
	WingOpenTime float64
	WingLifetime float64
	WingSamples  int
	WingColor    color.RGBA
}

var CasterComponent = NewComponent[Caster]()
