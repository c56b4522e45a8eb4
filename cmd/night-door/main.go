package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/lixenwraith/night-door/audio"
	"github.com/lixenwraith/night-door/config"
	"github.com/lixenwraith/night-door/core"
	"github.com/lixenwraith/night-door/engine"
	"github.com/lixenwraith/night-door/network"
	"github.com/lixenwraith/night-door/render"
	"github.com/lixenwraith/night-door/sensor"
	"github.com/lixenwraith/night-door/service"
	"github.com/lixenwraith/night-door/status"
)

var version = "dev"

func main() {
	// Panic Recovery: restore the terminal even if the main goroutine crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	var opts options
	fs := newFlagSet(&opts)
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	if opts.listPorts {
		for _, p := range sensor.AvailablePorts() {
			fmt.Println(p)
		}
		return
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	opts.apply(fs, &cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config:\n%v\n", err)
		os.Exit(1)
	}

	if !cfg.Headless && !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "stdout is not a terminal, running headless")
		cfg.Headless = true
	}

	session := uuid.NewString()
	logger := newLogger(cfg.Log.Level)
	if cfg.Headless {
		logger.SetOutput(os.Stderr)
		if cfg.Log.Debug {
			logger.SetLevel(logrus.DebugLevel)
		}
	} else if logFile := setupLogging(logger, cfg.Log.Debug); logFile != nil {
		defer logFile.Close()
	}
	log := logger.WithFields(logrus.Fields{"session": session, "version": version})

	if err := core.InitReporting(cfg.Sentry.DSN, cfg.Sentry.Environment, version); err != nil {
		log.WithError(err).Warn("crash reporting disabled")
	}
	defer core.FlushReporting()

	if err := run(cfg, session, log); err != nil {
		log.WithError(err).Error("exiting on error")
		fmt.Fprintf(os.Stderr, "night-door: %v\n", err)
		core.FlushReporting()
		os.Exit(1)
	}
	log.Info("bye")
}

func run(cfg config.Config, session string, log logrus.FieldLogger) error {
	reg := status.NewRegistry()
	reg.Strings.Get("session").Store(session)

	seed := resolveSeed(cfg.Engine.Seed)
	log.WithField("seed", seed).Info("starting")

	game, err := buildGame(cfg, seed, reg, log)
	if err != nil {
		return err
	}

	// Services
	bridge := sensor.NewBridge(sensor.SerialOpener{}, reg, log)
	audioSvc := audio.NewService(reg, log)
	netSvc := network.NewService(reg, game.Queue(), log)

	netCfg := network.DefaultConfig()
	netCfg.Listen = cfg.Network.Listen
	netCfg.AllowCommands = cfg.Network.AllowCommands
	netCfg.Session = session

	hub := service.NewHub(log)
	if err := errors.Join(
		hub.Register(bridge, cfg.SensorConfig()),
		hub.Register(audioSvc, audio.Config{
			Mute:       cfg.Audio.Mute,
			Volume:     cfg.Audio.Volume,
			SampleRate: cfg.Audio.SampleRate,
		}),
		hub.Register(netSvc, netCfg),
	); err != nil {
		return err
	}
	if err := hub.InitAll(); err != nil {
		return err
	}
	if err := hub.StartAll(); err != nil {
		return err
	}
	defer hub.StopAll()

	if err := game.AttachSensor(bridge); err != nil {
		return err
	}
	sounds := audioSvc.Manager()
	game.Router().Register(audio.NewSink(sounds, log))
	if h := netSvc.Hub(); h != nil {
		game.Router().SubscribeAll(h)
	}

	if err := game.Start(); err != nil {
		return err
	}

	scheduler, updateDone := engine.NewClockScheduler(game, engine.NewMonotonicTimeProvider(), cfg.Engine.TickInterval.D(), reg)
	scheduler.Start()
	defer scheduler.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals()...)
	defer signal.Stop(sigCh)

	if cfg.Headless {
		return runHeadless(game, updateDone, sigCh, log)
	}
	return runTerminal(cfg, game, sounds, updateDone, sigCh, log)
}

// runHeadless waits for a shutdown signal, logging game over transitions
func runHeadless(game *engine.Game, updateDone <-chan struct{}, sigCh <-chan os.Signal, log logrus.FieldLogger) error {
	over := false
	for {
		select {
		case sig := <-sigCh:
			log.WithField("signal", sig.String()).Info("shutdown signal")
			return nil
		case <-updateDone:
			if game.GameOver() != over {
				over = !over
				snap := game.Snapshot()
				log.WithFields(logrus.Fields{
					"game_over": over,
					"room":      snap.Room.ID,
					"elapsed":   snap.Elapsed.Round(time.Millisecond),
				}).Info("session state")
			}
		}
	}
}

func runTerminal(cfg config.Config, game *engine.Game, sounds *audio.SoundManager, updateDone <-chan struct{}, sigCh <-chan os.Signal, log logrus.FieldLogger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()
	core.SetCrashTerminal(screen)
	defer core.SetCrashTerminal(nil)
	screen.HideCursor()

	renderer := render.NewTerminalRenderer(screen, cfg.Door.OpenBuffer)
	input := render.NewInputHandler(game.Queue(), sounds, cfg.Door.OpenBuffer, log)

	eventChan := make(chan tcell.Event, 256)
	quit := make(chan struct{})
	defer close(quit)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			// Nil after Fini
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-quit:
				return
			}
		}
	})

	frameTicker := time.NewTicker(cfg.Engine.FrameInterval.D())
	defer frameTicker.Stop()

	dirty := true
	for {
		select {
		case ev := <-eventChan:
			if resize, ok := ev.(*tcell.EventResize); ok {
				w, h := resize.Size()
				renderer.UpdateDimensions(w, h)
				dirty = true
			}
			if !input.HandleEvent(ev) {
				log.Info("quit requested")
				return nil
			}

		case <-updateDone:
			dirty = true

		case <-frameTicker.C:
			if !dirty {
				continue
			}
			renderer.RenderFrame(game.Snapshot(), sounds.IsMuted())
			dirty = false

		case sig := <-sigCh:
			log.WithField("signal", sig.String()).Info("shutdown signal")
			return nil
		}
	}
}
