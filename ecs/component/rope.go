package component

import (
	"image/color"

	"github.com/jakecoffman/cp"
)

// Rope is a verlet chain whose first point is pinned to Owner at Offset.
type Rope struct {
	Owner     uint64
	Offset    cp.Vector
	Slot      int
	SlotCount int

	Points []cp.Vector
	Prev   []cp.Vector

	SegmentLength float64
	Damping       float64
	Gravity       float64
	Rigidity      float64
	Iterations    int

	PullStrength float64
	MaxPullAcc   float64
	Pull         cp.Vector
	Pulling      bool

	WindStrength float64
	WindPhase    float64

	Width float64
	Color color.RGBA
}

var RopeComponent = NewComponent[Rope]()

// RopePull asks the rope system to pull an owner's rope tails toward points
// spread Spread pixels across the Aim direction, Reach pixels out from the
// owner, for Remaining seconds.
type RopePull struct {
	Aim       cp.Vector
	Reach     float64
	Spread    float64
	Remaining float64
}

var RopePullComponent = NewComponent[RopePull]()
