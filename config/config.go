// Package config resolves runtime settings from defaults, environment and flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/lixenwraith/julia-view/constants"
	"github.com/lixenwraith/julia-view/engine"
	"github.com/lixenwraith/julia-view/fractal"
)

// Environment variable names
const (
	EnvMaxIterations = "JULIA_VIEW_MAX_ITER"
	EnvConstantRe    = "JULIA_VIEW_C_RE"
	EnvConstantIm    = "JULIA_VIEW_C_IM"
	EnvFPS           = "JULIA_VIEW_FPS"
	EnvWheelStep     = "JULIA_VIEW_WHEEL_STEP"
	EnvAddr          = "JULIA_VIEW_ADDR"
)

// Config holds viewer settings shared by the terminal and web front ends
type Config struct {
	MaxIterations int
	ConstantRe    float64
	ConstantIm    float64
	FPS           int

	// WheelStep is the DeltaY magnitude of one terminal wheel notch
	WheelStep float64

	// Addr is the web viewer listen address
	Addr string

	Debug bool
}

// DefaultConfig returns the reference settings
func DefaultConfig() *Config {
	return &Config{
		MaxIterations: constants.DefaultMaxIterations,
		ConstantRe:    real(fractal.DefaultConstant),
		ConstantIm:    imag(fractal.DefaultConstant),
		FPS:           int(time.Second / constants.FrameUpdateInterval),
		WheelStep:     constants.DefaultWheelStep,
		Addr:          constants.DefaultListenAddr,
	}
}

// LoadConfig returns defaults overridden by environment variables.
// Unparseable values are ignored.
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if v := os.Getenv(EnvMaxIterations); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxIterations = n
		}
	}
	if v := os.Getenv(EnvConstantRe); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.ConstantRe = f
		}
	}
	if v := os.Getenv(EnvConstantIm); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.ConstantIm = f
		}
	}
	if v := os.Getenv(EnvFPS); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.FPS = n
		}
	}
	if v := os.Getenv(EnvWheelStep); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.WheelStep = f
		}
	}
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Addr = v
	}

	return cfg
}

// RegisterFlags binds flags to cfg so command-line values override env
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.MaxIterations, "iter", c.MaxIterations, "Escape-time iteration budget")
	fs.Float64Var(&c.ConstantRe, "c-re", c.ConstantRe, "Julia constant, real part")
	fs.Float64Var(&c.ConstantIm, "c-im", c.ConstantIm, "Julia constant, imaginary part")
	fs.IntVar(&c.FPS, "fps", c.FPS, "Target frames per second")
	fs.Float64Var(&c.WheelStep, "wheel-step", c.WheelStep, "Wheel delta per notch")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "Enable debug logging")
}

// Validate rejects settings the frame loop cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.MaxIterations <= 0 {
		errs = append(errs, fmt.Errorf("iteration budget must be positive, got %d", c.MaxIterations))
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps must be positive, got %d", c.FPS))
	}
	if c.WheelStep <= 0 {
		errs = append(errs, fmt.Errorf("wheel step must be positive, got %g", c.WheelStep))
	}
	return errors.Join(errs...)
}

// Constant returns the configured Julia parameter
func (c *Config) Constant() complex128 {
	return complex(c.ConstantRe, c.ConstantIm)
}

// FrameInterval converts FPS to a tick interval
func (c *Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return constants.FrameUpdateInterval
	}
	return time.Second / time.Duration(c.FPS)
}

// FrameConfig returns the driver parameters for this config
func (c *Config) FrameConfig() engine.FrameConfig {
	return engine.FrameConfig{
		Constant:      c.Constant(),
		MaxIterations: c.MaxIterations,
		Interval:      c.FrameInterval(),
	}
}
