package component

// RenderLayer is used to sort draw order deterministically.
type RenderLayer struct {
	Index int
}

const (
	LayerGround = iota
	LayerPickups
	LayerActors
	LayerProjectiles
	LayerEffects
)

var RenderLayerComponent = NewComponent[RenderLayer]()
