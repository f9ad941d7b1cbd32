package component

import (
	"image/color"

	"github.com/jakecoffman/cp"
)

// Wings is the cast effect: quartic Bézier curves that open from a folded
// pose toward Open over OpenTime, rotated toward Aim.
type Wings struct {
	Owner    uint64
	Aim      cp.Vector
	Folded   [5]cp.Vector
	Open     [][5]cp.Vector
	OpenTime float64
	Elapsed  float64
	Samples  int
	Color    color.RGBA
}

var WingsComponent = NewComponent[Wings]()
