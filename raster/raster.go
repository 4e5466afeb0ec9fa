// Package raster maps a viewport onto the complex plane and produces grayscale RGBA pixel buffers.
package raster

import (
	"image"
	"math"

	"github.com/lixenwraith/julia-view/fractal"
)

// BytesPerPixel is the channel count of a pixel buffer (R, G, B, A)
const BytesPerPixel = 4

// Size is an output resolution in pixels
type Size struct {
	Width  int
	Height int
}

// MaxDim returns the larger of width and height
func (s Size) MaxDim() int {
	return max(s.Width, s.Height)
}

// Area returns the pixel count, zero for degenerate sizes
func (s Size) Area() int {
	if s.Width <= 0 || s.Height <= 0 {
		return 0
	}
	return s.Width * s.Height
}

// BufferLen returns the byte length of a pixel buffer for this size
func (s Size) BufferLen() int {
	return s.Area() * BytesPerPixel
}

// Intensity converts an escape count to a gray level.
// Bounded orbits are white; escaping orbits scale linearly with their count.
func Intensity(count, maxIterations int) uint8 {
	if !fractal.Escaped(count, maxIterations) {
		return 255
	}
	return uint8(math.RoundToEven(float64(count) / float64(maxIterations) * 255))
}

// Render evaluates every pixel of size and returns a row-major RGBA buffer.
// zoom is the plane span covered by the larger output dimension; focus is an
// offset in pixels applied before scaling.
func Render(size Size, c complex128, maxIterations int, zoom float64, focus complex128) []byte {
	buf := make([]byte, size.BufferLen())
	if len(buf) == 0 {
		return buf
	}

	m := newPlaneMap(size, zoom, focus)

	i := 0
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			v := Intensity(fractal.Escape(m.point(x, y), c, maxIterations), maxIterations)
			buf[i] = v
			buf[i+1] = v
			buf[i+2] = v
			buf[i+3] = 255
			i += BytesPerPixel
		}
	}

	return buf
}

// planeMap maps pixel coordinates of a frame to plane coordinates
type planeMap struct {
	scale        float64
	halfW, halfH float64
	fx, fy       float64
}

func newPlaneMap(size Size, zoom float64, focus complex128) planeMap {
	return planeMap{
		scale: zoom / float64(size.MaxDim()),
		halfW: float64(size.Width) / 2,
		halfH: float64(size.Height) / 2,
		fx:    real(focus),
		fy:    imag(focus),
	}
}

func (m planeMap) point(x, y int) complex128 {
	return complex(
		(float64(x)-m.halfW+m.fx)*m.scale,
		(float64(y)-m.halfH+m.fy)*m.scale,
	)
}

// ToImage wraps a pixel buffer as an image without copying.
// buf must have been produced for size.
func ToImage(buf []byte, size Size) *image.RGBA {
	if size.Area() == 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	return &image.RGBA{
		Pix:    buf,
		Stride: size.Width * BytesPerPixel,
		Rect:   image.Rect(0, 0, size.Width, size.Height),
	}
}
