package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rook-computer/hdldisplay/internal/app"
	"github.com/rook-computer/hdldisplay/internal/app/screens"
	"github.com/rook-computer/hdldisplay/internal/hdl"
	"github.com/rook-computer/hdldisplay/internal/render"
	"github.com/rook-computer/hdldisplay/internal/state"
	"github.com/rook-computer/hdldisplay/internal/web"
)

func main() {
	defaults, err := web.DefaultServerConfigFromEnv(":8081")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}
	cfgDefaults, err := app.ConfigFromEnv(os.Getenv)
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	listenAddr := flag.String("listen", defaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode; also configurable via "+web.EnvDevMode)
	staticDir := flag.String("static-dir", "", "serve static UI from this directory (optional); when empty, the embedded preview page is served")
	scenario := flag.String("scenario", "full", "simulator battery scenario: full | low | charging")
	width := flag.Uint("width", uint(cfgDefaults.Width), "display width in pixels")
	height := flag.Uint("height", uint(cfgDefaults.Height), "display height in pixels")
	layoutPath := flag.String("layout", cfgDefaults.LayoutPath, "compiled layout file; empty builds the status page")
	fontPath := flag.String("font", cfgDefaults.FontPath, "TrueType font or raw glyph table")
	fixedClock := flag.Bool("fixed-clock", false, "leave TIME/DATE to POST /api/v1/state")
	debug := flag.Bool("debug", false, "log to stderr")
	flag.Parse()

	cfg := cfgDefaults
	cfg.LayoutPath = *layoutPath
	cfg.FontPath = *fontPath
	if *width > 0xFFFF || *height > 0xFFFF {
		fmt.Println("width and height must fit in 16 bits")
		os.Exit(2)
	}
	cfg.Width, cfg.Height = uint16(*width), uint16(*height)

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		logger = app.NewFileLogger(os.Stderr)
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

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := state.NewStore()
	control := NewSimControl(store, *scenario)
	if err := control.ApplyScenario(control.startupScenario); err != nil {
		fmt.Println("scenario init error:", err)
		os.Exit(2)
	}

	interp := screens.NewInterpreter(logger)
	driver := hdl.NewDriver(control.Wrap(interp), &app.Firmware{Store: store, PairURL: cfg.PairURL}, glyphs)
	driver.Logger = logger

	a := app.New(store, driver, render.NoopPresenter{}, nil)
	a.Logger = logger
	a.FPS = cfg.FPS
	a.FixedClock = *fixedClock
	a.Width, a.Height, a.Layout = cfg.Width, cfg.Height, layout

	server := web.NewHTTPServer(web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode})
	server.Logger = logger
	mux := web.NewDefaultMux(*staticDir, a)
	registerSimEndpoints(mux, control)
	server.Handler = mux
	a.Web = server

	fmt.Println("hdldisplay simulator listening on", *listenAddr)
	fmt.Println("Scenario:", control.Scenario())
	fmt.Println("Pages:", strings.Join(screens.Pages(), ", "))
	fmt.Println("API: http://" + trimLeadingColon(*listenAddr) + "/api/v1/")

	if err := a.Start(processCtx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("simulator error:", err)
		os.Exit(1)
	}
}

func trimLeadingColon(addr string) string {
	// Best-effort for display; don't attempt full URL parsing here.
	if len(addr) > 0 && addr[0] == ':' {
		return "127.0.0.1" + addr
	}
	if addr == "" {
		return "127.0.0.1:8081"
	}
	return addr
}
