package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/julia-view/constants"
	"github.com/lixenwraith/julia-view/engine"
	"github.com/lixenwraith/julia-view/raster"
	"github.com/lixenwraith/julia-view/render"
	"github.com/lixenwraith/julia-view/viewport"
)

// parseSize reads a WxH dimension string
func parseSize(s string) (raster.Size, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return raster.Size{}, fmt.Errorf("size %q: expected WxH", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return raster.Size{}, fmt.Errorf("size %q width: %w", s, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return raster.Size{}, fmt.Errorf("size %q height: %w", s, err)
	}
	if w <= 0 || h <= 0 || w > constants.MaxFrameDim || h > constants.MaxFrameDim {
		return raster.Size{}, fmt.Errorf("size %q: dimensions must be in 1..%d", s, constants.MaxFrameDim)
	}
	return raster.Size{Width: w, Height: h}, nil
}

// writeSnapshot renders a single frame at the given log zoom and focus as PNG.
// zoom is clamped to the range the interactive viewer can reach.
// It runs the regular driver against a headless surface: one baseline tick, one frame tick.
func writeSnapshot(w io.Writer, size raster.Size, zoom float64, focus complex128, cfg engine.FrameConfig) error {
	view := viewport.New()
	view.SetZoom(zoom)
	view.Focus = focus

	driver := engine.NewFrameDriver(render.NewPNGSurface(w, size), view, cfg)

	now := time.Now()
	if err := driver.Tick(now); err != nil {
		return err
	}
	if err := driver.Tick(now.Add(cfg.Interval)); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}
