package network

import (
	"time"

	"github.com/lixenwraith/julia-view/constants"
)

// Config holds web viewer server configuration
type Config struct {
	// Address to bind
	Address string

	// OriginPatterns lists hosts allowed to open a websocket besides the page's own
	OriginPatterns []string

	// Connection limits
	MaxSessions int
	MaxFrameDim int

	// Timing
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	ShutdownTimeout   time.Duration

	// Per-session wheel event backlog
	WheelQueueSize int
}

// DefaultConfig returns production-safe defaults
func DefaultConfig() *Config {
	return &Config{
		Address:           constants.DefaultListenAddr,
		MaxSessions:       16,
		MaxFrameDim:       constants.MaxFrameDim,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		WheelQueueSize:    64,
	}
}
