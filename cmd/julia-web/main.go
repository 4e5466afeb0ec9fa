package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lixenwraith/julia-view/config"
	"github.com/lixenwraith/julia-view/constants"
	"github.com/lixenwraith/julia-view/core"
	"github.com/lixenwraith/julia-view/engine"
	"github.com/lixenwraith/julia-view/network"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Printf("julia-web: %v", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	defer func() {
		core.HandleCrash(recover())
	}()

	cfg := config.LoadConfig()
	fs := flag.NewFlagSet("julia-web", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	maxSessions := fs.Int("max-sessions", network.DefaultConfig().MaxSessions, "Concurrent browser limit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if *maxSessions <= 0 {
		return fmt.Errorf("max sessions must be positive, got %d", *maxSessions)
	}

	netCfg := network.DefaultConfig()
	netCfg.Address = cfg.Addr
	netCfg.MaxSessions = *maxSessions

	var opts []engine.Option
	if cfg.Debug {
		opts = append(opts, engine.WithFrameHook(func(s engine.FrameStats) {
			if s.Frame%constants.StatsLogInterval == 0 {
				log.Printf("frame %d %dx%d render=%v", s.Frame, s.Size.Width, s.Size.Height, s.RenderTime)
			}
		}))
	}

	srv := network.NewServer(netCfg, cfg.FrameConfig(), opts...)
	if err := srv.Start(); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	log.Printf("received %v, shutting down %d sessions", sig, srv.SessionCount())

	return srv.Stop()
}
