package config

import (
	"flag"
	"testing"
	"time"

	"github.com/lixenwraith/julia-view/fractal"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxIterations != 100 {
		t.Errorf("Expected 100 iterations, got %d", cfg.MaxIterations)
	}
	if cfg.Constant() != fractal.DefaultConstant {
		t.Errorf("Expected constant %v, got %v", fractal.DefaultConstant, cfg.Constant())
	}
	if cfg.FPS != 62 {
		t.Errorf("Expected 62 fps from the 16ms interval, got %d", cfg.FPS)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv(EnvMaxIterations, "250")
	t.Setenv(EnvConstantRe, "0.285")
	t.Setenv(EnvConstantIm, "0.01")
	t.Setenv(EnvFPS, "30")
	t.Setenv(EnvWheelStep, "53")
	t.Setenv(EnvAddr, "127.0.0.1:9000")

	cfg := LoadConfig()

	if cfg.MaxIterations != 250 {
		t.Errorf("Expected 250 iterations, got %d", cfg.MaxIterations)
	}
	if cfg.Constant() != complex(0.285, 0.01) {
		t.Errorf("Expected constant (0.285,0.01), got %v", cfg.Constant())
	}
	if cfg.FPS != 30 {
		t.Errorf("Expected 30 fps, got %d", cfg.FPS)
	}
	if cfg.WheelStep != 53 {
		t.Errorf("Expected wheel step 53, got %v", cfg.WheelStep)
	}
	if cfg.Addr != "127.0.0.1:9000" {
		t.Errorf("Expected addr override, got %q", cfg.Addr)
	}
}

func TestLoadConfigIgnoresGarbage(t *testing.T) {
	t.Setenv(EnvMaxIterations, "lots")
	t.Setenv(EnvConstantRe, "")
	t.Setenv(EnvFPS, "1.5")

	cfg := LoadConfig()
	def := DefaultConfig()

	if cfg.MaxIterations != def.MaxIterations || cfg.FPS != def.FPS || cfg.ConstantRe != def.ConstantRe {
		t.Errorf("Expected defaults for unparseable env, got %+v", cfg)
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv(EnvMaxIterations, "250")

	cfg := LoadConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlags(fs)

	if err := fs.Parse([]string{"-iter", "40", "-c-im", "-0.2", "-debug"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.MaxIterations != 40 {
		t.Errorf("Expected flag to override env iterations, got %d", cfg.MaxIterations)
	}
	if cfg.ConstantIm != -0.2 {
		t.Errorf("Expected imaginary part -0.2, got %v", cfg.ConstantIm)
	}
	if !cfg.Debug {
		t.Error("Expected debug enabled")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero iterations", func(c *Config) { c.MaxIterations = 0 }},
		{"negative fps", func(c *Config) { c.FPS = -1 }},
		{"zero wheel step", func(c *Config) { c.WheelStep = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestFrameConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FPS = 50
	cfg.MaxIterations = 64

	fc := cfg.FrameConfig()
	if fc.Interval != 20*time.Millisecond {
		t.Errorf("Expected 20ms interval, got %v", fc.Interval)
	}
	if fc.MaxIterations != 64 || fc.Constant != cfg.Constant() {
		t.Errorf("Expected frame config to mirror settings, got %+v", fc)
	}
}
