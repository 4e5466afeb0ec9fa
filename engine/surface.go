package engine

import (
	"image"

	"github.com/lixenwraith/julia-view/raster"
	"github.com/lixenwraith/julia-view/viewport"
)

// Surface is the display collaborator the frame driver renders into.
// Size may change between any two calls; the driver reads it once per frame.
type Surface interface {
	// Size returns the current drawable size in pixels
	Size() raster.Size

	// Publish blits a buffer generated for size with its top-left at origin
	Publish(buf []byte, size raster.Size, origin image.Point) error

	// Wheel delivers pointer-wheel events; a closed channel means no more input
	Wheel() <-chan viewport.WheelEvent
}
