package component

import "github.com/jakecoffman/cp"

// Transform is the world-space center of an entity.
type Transform struct {
	Position cp.Vector
}

var TransformComponent = NewComponent[Transform]()
