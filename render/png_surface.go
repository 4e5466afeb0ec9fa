package render

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/lixenwraith/julia-view/raster"
	"github.com/lixenwraith/julia-view/viewport"
)

// PNGSurface is a fixed-size headless surface that encodes each published frame as PNG
type PNGSurface struct {
	w    io.Writer
	size raster.Size
}

// NewPNGSurface creates a surface of the given size writing frames to w
func NewPNGSurface(w io.Writer, size raster.Size) *PNGSurface {
	return &PNGSurface{w: w, size: size}
}

// Size returns the fixed output size
func (s *PNGSurface) Size() raster.Size {
	return s.size
}

// Publish encodes buf to the writer; origin offsets the image bounds
func (s *PNGSurface) Publish(buf []byte, size raster.Size, origin image.Point) error {
	if size.Area() == 0 {
		return fmt.Errorf("cannot encode empty %dx%d frame", size.Width, size.Height)
	}

	img := raster.ToImage(buf, size)
	img.Rect = img.Rect.Add(origin)

	if err := png.Encode(s.w, img); err != nil {
		return fmt.Errorf("png.Encode: %w", err)
	}
	return nil
}

// Wheel returns nil; a headless surface never produces input
func (s *PNGSurface) Wheel() <-chan viewport.WheelEvent {
	return nil
}
