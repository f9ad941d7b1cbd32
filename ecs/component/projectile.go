package component

import "github.com/jakecoffman/cp"

// Projectile travels in a straight line until it reaches Target, then expires.
// An expired projectile still collides during the frame it arrives and is
// removed on its next update.
type Projectile struct {
	Skill     string
	Direction cp.Vector
	Target    cp.Vector
	Speed     float64
	Expired   bool
}

var ProjectileComponent = NewComponent[Projectile]()
