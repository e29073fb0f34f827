package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/hdldisplay/internal/app"
	"github.com/rook-computer/hdldisplay/internal/app/screens"
	"github.com/rook-computer/hdldisplay/internal/buttons"
	"github.com/rook-computer/hdldisplay/internal/hdl"
	"github.com/rook-computer/hdldisplay/internal/render"
	"github.com/rook-computer/hdldisplay/internal/state"
	"github.com/rook-computer/hdldisplay/internal/system"
	"github.com/rook-computer/hdldisplay/internal/web"
)

func main() {
	fmt.Println("hdldisplay starting")

	cfg, err := app.ConfigFromEnv(os.Getenv)
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}
	serverDefaults, err := web.DefaultServerConfigFromEnv(":8080")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	// Flags
	debug := flag.Bool("debug", false, "enable debug logging to ./hdldisplay-debug.log")
	stdioLog := flag.String("stdio-log", cfg.StdioLog, "redirect stdout+stderr (including panics) to this file; also configurable via "+app.EnvStdioLog)
	fbDev := flag.String("fb", cfg.FBDev, "framebuffer device; also configurable via "+app.EnvFBDev)
	listenAddr := flag.String("listen", serverDefaults.ListenAddr, "http listen address, empty disables the API; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", serverDefaults.DevMode, "enable dev CORS; also configurable via "+web.EnvDevMode)
	noConsole := flag.Bool("no-console", false, "leave the console mode and keyboard alone")
	flag.Parse()

	// Best-effort: redirect all stdout/stderr output (including panic stack traces)
	// to a file so crashes are diagnosable even when the console is left in graphics mode.
	if *stdioLog != "" {
		if err := system.RedirectStdIO(*stdioLog); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile("./hdldisplay-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	layout, err := cfg.LoadLayout()
	if err != nil {
		fmt.Println("layout error:", err)
		os.Exit(2)
	}
	glyphs, err := cfg.LoadGlyphs()
	if err != nil {
		fmt.Println("font error:", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := state.NewStore()
	driver := hdl.NewDriver(screens.NewInterpreter(logger), &app.Firmware{Store: store, PairURL: cfg.PairURL}, glyphs)
	driver.Logger = logger

	presenter := render.NewFBPresenter(*fbDev)
	presenter.Logger = logger

	a := app.New(store, driver, presenter, nil)
	a.Logger = logger
	a.FPS = cfg.FPS
	a.Width, a.Height, a.Layout = cfg.Width, cfg.Height, layout

	if *listenAddr != "" {
		server := web.NewHTTPServer(web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode})
		server.Logger = logger
		server.Handler = web.NewDefaultMux("", a)
		a.Web = server
	}

	if !*noConsole {
		a.Console = func() func() { return system.EnterGraphics(logger) }
		a.Buttons = buttons.NewKeyButtons(logger)
	}

	if err := a.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("app error:", err)
		os.Exit(1)
	}
}
