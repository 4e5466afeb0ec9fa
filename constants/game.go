package constants

import "time"

// Frame Loop Timing Constants
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// StatsLogInterval is how many frames pass between debug stat lines
	StatsLogInterval = 300
)

// Render Constants
const (
	// DefaultMaxIterations is the escape-time budget per pixel
	DefaultMaxIterations = 100

	// DefaultWheelStep is the wheel delta reported per terminal wheel notch,
	// matching a typical browser line-mode scroll
	DefaultWheelStep = 100.0
)

// Network Constants
const (
	// DefaultListenAddr is where the web viewer listens
	DefaultListenAddr = ":8080"

	// MaxFrameDim caps a single dimension a browser may request
	MaxFrameDim = 4096
)
