package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/termcalc/audio"
	"github.com/lixenwraith/termcalc/calc"
	"github.com/lixenwraith/termcalc/clipboard"
	"github.com/lixenwraith/termcalc/config"
	"github.com/lixenwraith/termcalc/input"
	"github.com/lixenwraith/termcalc/remote"
	"github.com/lixenwraith/termcalc/service"
	"github.com/lixenwraith/termcalc/ui"
	"golang.org/x/sync/errgroup"
)

var (
	configFlag    = flag.String("config", "", "Path to a TOML config file")
	keymapFlag    = flag.String("keymap", "", "Path to a TOML keymap override (overrides config)")
	listenFlag    = flag.String("listen", "", "Serve the websocket keypad on this address, e.g. 127.0.0.1:8765")
	clipboardFlag = flag.String("clipboard", "", "Clipboard backend: auto, command, osc52, memory, none")
	debugFlag     = flag.Bool("debug", false, "Write logs to logs/termcalc.log")
	muteFlag      = flag.Bool("mute", false, "Start with sound off")
)

func main() {
	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "termcalc: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	if *keymapFlag != "" {
		cfg.Keymap = *keymapFlag
	}
	if *listenFlag != "" {
		cfg.Remote.Listen = *listenFlag
	}
	if *clipboardFlag != "" {
		cfg.Clipboard.Backend = *clipboardFlag
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	keys, err := cfg.KeyTable()
	if err != nil {
		return err
	}

	// OSC 52 sequences go straight to the terminal
	cb, err := cfg.OpenClipboard(os.Stdout)
	if err != nil {
		return err
	}
	sink := clipboard.Async(cb)
	defer sink.Close()

	remoteCfg := remote.DefaultConfig()
	remoteCfg.Address = cfg.Remote.Listen
	remoteCfg.Path = cfg.Remote.Path

	hub := service.NewHub()
	audioSvc := audio.NewService(&cfg.Audio)
	remoteSvc := remote.NewService()
	for _, svc := range []service.Service{audioSvc, remoteSvc} {
		if err := hub.Register(svc); err != nil {
			return err
		}
	}
	if err := hub.InitAll(map[string][]any{
		audioSvc.Name():  {*muteFlag},
		remoteSvc.Name(): {remoteCfg, keys},
	}); err != nil {
		return err
	}
	if err := hub.StartAll(); err != nil {
		return err
	}
	defer hub.StopAll()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()

	defer restoreOnPanic(screen)

	router := input.NewRouter(calc.NewBuffer(),
		input.WithKeyTable(keys),
		input.WithSink(sink),
		input.WithSource(cb),
	)
	handler := ui.NewInputHandler(router, audioSvc.Player())
	app := ui.NewApp(screen, handler, ui.NewView(screen, cfg.Display))
	app.Remote = remoteSvc.Addr()
	app.NoAudio = audioSvc.IsDisabled()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	uiCtx, quit := context.WithCancel(gctx)
	g.Go(func() error {
		defer restoreOnPanic(screen)
		// Quitting the UI ends the remote server too
		defer quit()
		return app.Run(uiCtx)
	})
	g.Go(func() error {
		return remoteSvc.Run(uiCtx)
	})
	return g.Wait()
}

// restoreOnPanic resets the terminal so the crash report stays readable
// Must be deferred directly in every goroutine that touches the screen
func restoreOnPanic(screen tcell.Screen) {
	if r := recover(); r != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "\n\x1b[31mTERMCALC CRASHED: %v\x1b[0m\n", r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
		os.Exit(1)
	}
}
