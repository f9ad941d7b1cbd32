package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// AITag marks hostile, AI-driven entities.
type AITag struct{}

var AITagComponent = NewComponent[AITag]()

type PortalTag struct{}

var PortalTagComponent = NewComponent[PortalTag]()
