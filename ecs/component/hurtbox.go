package component

// Hurtbox is the AABB that takes hits, relative to the entity transform.
type Hurtbox struct {
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64
}

var HurtboxComponent = NewComponent[Hurtbox]()
