package component

// Portal moves the run to the next wave when the player touches it.
type Portal struct {
	Width   float64
	Height  float64
	Entered bool
}

var PortalComponent = NewComponent[Portal]()
