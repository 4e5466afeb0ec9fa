// Package viewport holds the interactive zoom/focus state and its wheel-driven update rule.
package viewport

import (
	"math"

	"github.com/lixenwraith/julia-view/raster"
)

const (
	// InitialZoom is the widest view; exp(1) spans the whole filled set
	InitialZoom = 1.0

	// MinZoom bounds zoom-in so exp(Zoom)/maxDim stays far from float64 underflow
	MinZoom = -30.0

	// wheelDivisor converts wheel delta units to zoom units
	wheelDivisor = 1000.0

	// panGain scales focus movement per unit of zoom change
	panGain = 2500.0
)

// WheelEvent is a pointer-wheel scroll with the cursor position in surface pixels.
// Negative DeltaY scrolls up (zoom in).
type WheelEvent struct {
	DeltaY  float64
	OffsetX float64
	OffsetY float64
}

// Viewport is the zoom/focus pair that selects the visible plane region.
// It is not safe for concurrent use; the owner serializes Wheel and reads.
type Viewport struct {
	// Zoom is logarithmic: the rendered plane span is exp(Zoom)
	Zoom float64

	// Focus is an offset in pixels, real part X and imaginary part Y
	Focus complex128
}

// New returns a viewport at the initial zoom centered on the origin
func New() *Viewport {
	return &Viewport{Zoom: InitialZoom}
}

// Scale returns the plane span handed to the raster generator
func (v *Viewport) Scale() float64 {
	return math.Exp(v.Zoom)
}

// Wheel applies one wheel event for a surface of the given size.
// Zooming in pulls the point under the cursor toward the center; zooming out
// or a no-op event eases the focus back toward the origin.
func (v *Viewport) Wheel(ev WheelEvent, size raster.Size) {
	rawDz := -ev.DeltaY / wheelDivisor

	// Compares distance-to-bound against a delta; keep as is
	dz := max(v.Zoom-1, rawDz)

	prev := v.Zoom
	v.Zoom -= dz
	if v.Zoom < MinZoom {
		v.Zoom = MinZoom
		dz = prev - MinZoom
	}

	maxDim := float64(size.MaxDim())
	if maxDim <= 0 {
		return
	}

	var dx, dy float64
	if dz > 0 {
		dx = ev.OffsetX - maxDim/2
		dy = ev.OffsetY - maxDim/2
	} else {
		dx = -real(v.Focus)
		dy = -imag(v.Focus)
	}

	multiplier := math.Abs(dz) * panGain * (2 - v.Zoom) / maxDim
	v.Focus += complex(dx*multiplier, dy*multiplier)
}

// SetZoom jumps to log zoom z, clamped to [MinZoom, InitialZoom]
func (v *Viewport) SetZoom(z float64) {
	v.Zoom = min(max(z, MinZoom), InitialZoom)
}
