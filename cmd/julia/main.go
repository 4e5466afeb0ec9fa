package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/julia-view/config"
	"github.com/lixenwraith/julia-view/constants"
	"github.com/lixenwraith/julia-view/core"
	"github.com/lixenwraith/julia-view/engine"
	"github.com/lixenwraith/julia-view/render"
	"github.com/lixenwraith/julia-view/viewport"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "julia: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	defer func() {
		core.HandleCrash(recover())
	}()

	cfg := config.LoadConfig()
	fs := flag.NewFlagSet("julia", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	snapshotPath := fs.String("snapshot", "", "Write one frame as PNG to this path and exit")
	snapshotSize := fs.String("size", "800x600", "Snapshot size, WxH")
	snapshotZoom := fs.Float64("zoom", viewport.InitialZoom, "Snapshot log zoom")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if *snapshotPath != "" {
		return runSnapshot(*snapshotPath, *snapshotSize, *snapshotZoom, cfg)
	}

	logFile := setupLogging(cfg.Debug)
	if logFile != nil {
		defer logFile.Close()
	}

	return runTerminal(cfg)
}

func runSnapshot(path, sizeSpec string, zoom float64, cfg *config.Config) error {
	size, err := parseSize(sizeSpec)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)

	if err := writeSnapshot(w, size, zoom, 0, cfg.FrameConfig()); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func runTerminal(cfg *config.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	core.RegisterCrashTerminal(screen)
	defer func() {
		core.RegisterCrashTerminal(nil)
		screen.Fini()
	}()

	surface := render.NewTcellSurface(screen, cfg.WheelStep)
	core.Go(surface.PollEvents)

	var opts []engine.Option
	if cfg.Debug {
		opts = append(opts, engine.WithFrameHook(logFrameStats))
	}

	driver := engine.NewFrameDriver(surface, viewport.New(), cfg.FrameConfig(), opts...)
	driver.Start()
	log.Printf("viewer started: c=%v iter=%d fps=%d", cfg.Constant(), cfg.MaxIterations, cfg.FPS)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-surface.Quit():
	case sig := <-sigCh:
		log.Printf("received %v", sig)
	case <-driver.Done():
	}

	driver.Stop()
	surface.Close()
	log.Printf("viewer stopped after %d frames", driver.Frames())
	return driver.Err()
}

// logFrameStats writes a periodic timing line to the debug log
func logFrameStats(s engine.FrameStats) {
	if s.Frame%constants.StatsLogInterval != 0 {
		return
	}
	log.Printf("frame %d %dx%d elapsed=%v render=%v", s.Frame, s.Size.Width, s.Size.Height, s.Elapsed, s.RenderTime)
}
