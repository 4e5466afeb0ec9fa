package engine

import (
	"fmt"
	"image"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/julia-view/constants"
	"github.com/lixenwraith/julia-view/core"
	"github.com/lixenwraith/julia-view/fractal"
	"github.com/lixenwraith/julia-view/raster"
	"github.com/lixenwraith/julia-view/viewport"
)

// FrameConfig holds the per-run render parameters
type FrameConfig struct {
	Constant      complex128
	MaxIterations int
	Interval      time.Duration
}

// DefaultFrameConfig returns the reference Julia parameters at ~60 FPS
func DefaultFrameConfig() FrameConfig {
	return FrameConfig{
		Constant:      fractal.DefaultConstant,
		MaxIterations: constants.DefaultMaxIterations,
		Interval:      constants.FrameUpdateInterval,
	}
}

// FrameStats describes one published frame
type FrameStats struct {
	Frame      uint64
	Size       raster.Size
	Elapsed    time.Duration // Since the baseline tick
	RenderTime time.Duration
}

// Option configures a FrameDriver
type Option func(*FrameDriver)

// WithTicks replaces the internal ticker with an external tick source
func WithTicks(ticks <-chan time.Time) Option {
	return func(d *FrameDriver) {
		d.ticks = ticks
	}
}

// WithTimeProvider sets the clock used to measure render time
func WithTimeProvider(tp TimeProvider) Option {
	return func(d *FrameDriver) {
		d.clock = tp
	}
}

// WithFrameHook registers a callback invoked on the driver goroutine after every publish
func WithFrameHook(fn func(FrameStats)) Option {
	return func(d *FrameDriver) {
		d.onFrame = fn
	}
}

// FrameDriver renders the viewport into a surface on every tick until stopped.
// Wheel events and render passes run on the same goroutine, so the viewport is
// never read mid-update.
type FrameDriver struct {
	surface Surface
	view    *viewport.Viewport
	cfg     FrameConfig
	clock   TimeProvider
	ticks   <-chan time.Time
	onFrame func(FrameStats)

	mu          sync.Mutex
	baseline    time.Time
	hasBaseline bool
	err         error

	frames atomic.Uint64

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	running  atomic.Bool
}

// NewFrameDriver creates a stopped driver over surface and view
func NewFrameDriver(surface Surface, view *viewport.Viewport, cfg FrameConfig, opts ...Option) *FrameDriver {
	d := &FrameDriver{
		surface:  surface,
		view:     view,
		cfg:      cfg,
		clock:    NewMonotonicTimeProvider(),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start launches the frame loop; subsequent calls are no-ops
func (d *FrameDriver) Start() {
	if d.running.CompareAndSwap(false, true) {
		core.Go(d.loop)
	}
}

// Stop cancels the frame loop and waits for it to exit. Safe to call multiple times.
func (d *FrameDriver) Stop() {
	d.stopOnce.Do(func() {
		close(d.stopChan)
	})
	if d.running.Load() {
		<-d.done
	}
}

// Done is closed when a started loop exits
func (d *FrameDriver) Done() <-chan struct{} {
	return d.done
}

// Err returns the publish error that terminated the loop, if any
func (d *FrameDriver) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Frames returns the number of frames published
func (d *FrameDriver) Frames() uint64 {
	return d.frames.Load()
}

// Baseline returns the first tick's timestamp once recorded
func (d *FrameDriver) Baseline() (time.Time, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.baseline, d.hasBaseline
}

func (d *FrameDriver) loop() {
	defer close(d.done)

	ticks := d.ticks
	if ticks == nil {
		ticker := time.NewTicker(d.cfg.Interval)
		defer ticker.Stop()
		ticks = ticker.C
	}
	wheel := d.surface.Wheel()

	for {
		select {
		case <-d.stopChan:
			return

		case ev, ok := <-wheel:
			if !ok {
				// Input source gone, keep rendering
				wheel = nil
				continue
			}
			d.HandleWheel(ev)

		case ts := <-ticks:
			if err := d.Tick(ts); err != nil {
				d.mu.Lock()
				d.err = err
				d.mu.Unlock()
				log.Printf("frame driver stopped: %v", err)
				return
			}
		}
	}
}

// HandleWheel applies a wheel event against the surface's current size.
// Must be called from the goroutine that drives Tick.
func (d *FrameDriver) HandleWheel(ev viewport.WheelEvent) {
	d.view.Wheel(ev, d.surface.Size())
}

// Tick performs one frame. The first tick only records the baseline timestamp.
func (d *FrameDriver) Tick(ts time.Time) error {
	d.mu.Lock()
	if !d.hasBaseline {
		d.baseline = ts
		d.hasBaseline = true
		d.mu.Unlock()
		return nil
	}
	baseline := d.baseline
	d.mu.Unlock()

	size := d.surface.Size()
	start := d.clock.Now()
	buf := raster.Render(size, d.cfg.Constant, d.cfg.MaxIterations, d.view.Scale(), d.view.Focus)
	renderTime := d.clock.Now().Sub(start)

	if err := d.surface.Publish(buf, size, image.Point{}); err != nil {
		return fmt.Errorf("publish %dx%d: %w", size.Width, size.Height, err)
	}

	frame := d.frames.Add(1)
	if d.onFrame != nil {
		d.onFrame(FrameStats{
			Frame:      frame,
			Size:       size,
			Elapsed:    ts.Sub(baseline),
			RenderTime: renderTime,
		})
	}
	return nil
}
