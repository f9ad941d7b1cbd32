package component

// Animation loops through FrameCount frames at FPS. There are no sprite
// sheets; renderers use Frame to vary the primitive shapes they draw.
type Animation struct {
	FrameCount int
	FPS        float64
	Frame      int
	Timer      float64
	Playing    bool
}

var AnimationComponent = NewComponent[Animation]()
