package component

// Hitbox represents an offensive AABB relative to the entity transform.
type Hitbox struct {
	Width  float64
	Height float64
	Damage int
}

var HitboxComponent = NewComponent[Hitbox]()
