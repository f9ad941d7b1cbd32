package component

import "github.com/jakecoffman/cp"

type PickupPhase int

const (
	PickupIdle PickupPhase = iota
	PickupFlying
)

// Pickup is a collectible that flies to Storage once touched and grants
// Value loot on arrival.
type Pickup struct {
	Kind    string
	Radius  float64
	Speed   float64
	Value   int
	Storage cp.Vector
	Phase   PickupPhase
}

var PickupComponent = NewComponent[Pickup]()
