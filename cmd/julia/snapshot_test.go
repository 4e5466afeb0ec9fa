package main

import (
	"bytes"
	"image/png"
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/julia-view/engine"
	"github.com/lixenwraith/julia-view/fractal"
	"github.com/lixenwraith/julia-view/raster"
	"github.com/lixenwraith/julia-view/viewport"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		want    raster.Size
		wantErr bool
	}{
		{"640x480", raster.Size{Width: 640, Height: 480}, false},
		{"32X16", raster.Size{Width: 32, Height: 16}, false},
		{"640", raster.Size{}, true},
		{"ax10", raster.Size{}, true},
		{"10xb", raster.Size{}, true},
		{"0x10", raster.Size{}, true},
		{"99999x10", raster.Size{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSize(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q, got %v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSize(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestWriteSnapshot(t *testing.T) {
	cfg := engine.FrameConfig{
		Constant:      fractal.DefaultConstant,
		MaxIterations: 60,
		Interval:      16 * time.Millisecond,
	}
	size := raster.Size{Width: 12, Height: 9}

	var out bytes.Buffer
	if err := writeSnapshot(&out, size, 0.5, 0, cfg); err != nil {
		t.Fatalf("writeSnapshot: %v", err)
	}

	img, err := png.Decode(&out)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if img.Bounds().Dx() != 12 || img.Bounds().Dy() != 9 {
		t.Fatalf("Expected 12x9 image, got %v", img.Bounds())
	}

	want := raster.Render(size, cfg.Constant, cfg.MaxIterations, math.Exp(0.5), 0)
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			if got, exp := uint8(r>>8), want[(y*size.Width+x)*4]; got != exp {
				t.Errorf("Pixel (%d,%d): expected %d, got %d", x, y, exp, got)
			}
		}
	}
}

func TestWriteSnapshotClampsZoom(t *testing.T) {
	cfg := engine.FrameConfig{
		Constant:      fractal.DefaultConstant,
		MaxIterations: 60,
		Interval:      16 * time.Millisecond,
	}
	size := raster.Size{Width: 16, Height: 16}

	tests := []struct {
		name  string
		zoom  float64
		scale float64
	}{
		{"deeper than min", -800, math.Exp(viewport.MinZoom)},
		{"wider than initial", 5, math.Exp(viewport.InitialZoom)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := writeSnapshot(&out, size, tt.zoom, 0, cfg); err != nil {
				t.Fatalf("writeSnapshot: %v", err)
			}
			img, err := png.Decode(&out)
			if err != nil {
				t.Fatalf("png.Decode: %v", err)
			}

			want := raster.Render(size, cfg.Constant, cfg.MaxIterations, tt.scale, 0)
			for y := 0; y < size.Height; y++ {
				for x := 0; x < size.Width; x++ {
					r, _, _, _ := img.At(x, y).RGBA()
					if got, exp := uint8(r>>8), want[(y*size.Width+x)*4]; got != exp {
						t.Fatalf("Pixel (%d,%d): expected %d, got %d", x, y, exp, got)
					}
				}
			}
		})
	}
}
