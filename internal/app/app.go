package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rook-computer/hdldisplay/internal/binding"
	"github.com/rook-computer/hdldisplay/internal/buttons"
	"github.com/rook-computer/hdldisplay/internal/hdl"
	"github.com/rook-computer/hdldisplay/internal/render"
	"github.com/rook-computer/hdldisplay/internal/state"
	"github.com/rook-computer/hdldisplay/internal/web"
)

// Clock and date formats written into the TIME and DATE bindings.
const (
	TimeFormat = "15:04"
	DateFormat = "02/01"
)

// App is the render task. Every driver call runs inside Store.Do so the
// interpreter never sees the record mid-write.
type App struct {
	Store      *state.Store
	Driver     *hdl.Driver
	Present    render.Presenter
	Web        web.Server
	Buttons    buttons.Buttons
	Logger     Logger
	FPS        int
	Now        func() time.Time
	Width      uint16
	Height     uint16
	Layout     []byte
	Console    func() (restore func())
	FixedClock bool

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(store *state.Store, driver *hdl.Driver, presenter render.Presenter, webServer web.Server) *App {
	if presenter == nil {
		presenter = render.NoopPresenter{}
	}
	return &App{
		Store:   store,
		Driver:  driver,
		Present: presenter,
		Web:     webServer,
		Logger:  NoopLogger{},
		FPS:     2,
		Now:     time.Now,
		exitCh:  make(chan error, 1),
	}
}

var _ web.Display = (*App)(nil)

// Exit requests the app to stop running.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Start builds the configured layout, starts the attached subsystems and runs
// the render loop until ctx ends or Exit is called.
func (app *App) Start(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	app.exitOnce.Store(false)

	if err := app.Present.Start(ctx); err != nil {
		app.Logger.Errorf("app", "presenter start error: %v", err)
		return err
	}
	defer app.Present.Stop()

	if app.Console != nil {
		if restore := app.Console(); restore != nil {
			defer restore()
		}
	}

	if len(app.Layout) > 0 {
		if status, err := app.Build(app.Width, app.Height, app.Layout); err != nil {
			app.Logger.Errorf("app", "initial build failed (status %d): %v", status, err)
			return err
		}
	}

	if app.Web != nil {
		if err := app.Web.Start(ctx); err != nil {
			app.Logger.Errorf("web", "start error: %v", err)
			return err
		}
		defer app.Web.Stop()
	}

	var events <-chan buttons.Event
	if app.Buttons != nil {
		if err := app.Buttons.Start(ctx); err != nil {
			app.Logger.Errorf("buttons", "start error: %v", err)
		} else {
			defer app.Buttons.Stop()
			events = app.Buttons.Events()
		}
	}

	loopCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		app.RunLoop(loopCtx)
	}()

	var err error
wait:
	for {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break wait
		case err = <-app.exitCh:
			break wait
		case ev := <-events:
			app.handleButton(ev)
		}
	}
	cancel()
	wg.Wait()
	app.Store.Do(func(*state.Record) { app.Driver.Close() })
	return err
}

func (app *App) handleButton(ev buttons.Event) {
	app.Logger.Infof("buttons", "event %s", ev)
	switch ev {
	case buttons.Exit:
		app.Exit(nil)
	case buttons.CycleView:
		app.CycleView()
		app.Tick()
	}
}

// RunLoop ticks the display at FPS until ctx ends.
func (app *App) RunLoop(ctx context.Context) {
	fps := app.FPS
	if fps < 1 {
		fps = 1
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	for {
		app.Tick()
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Tick refreshes the clock bindings and repaints. With FixedClock the clock
// is left to PatchState. Ticks before the first successful build only
// refresh the clock.
func (app *App) Tick() {
	now := app.now()
	app.Store.Do(func(rec *state.Record) {
		if !app.FixedClock {
			rec.Time.Set(now.Format(TimeFormat))
			rec.Date.Set(now.Format(DateFormat))
		}
		if app.Driver.State() != hdl.Built {
			return
		}
		app.updateLocked()
	})
}

func (app *App) Build(width, height uint16, layout []byte) (uint8, error) {
	var err error
	app.Store.Do(func(*state.Record) {
		err = app.Driver.Build(width, height, layout)
	})
	status := hdl.StatusCode(err)
	if err != nil {
		app.Logger.Errorf("app", "build %dx%d status %d: %v", width, height, status, err)
		return status, err
	}
	app.Logger.Infof("app", "build %dx%d ok", width, height)
	return status, nil
}

func (app *App) Update() (uint8, error) {
	var (
		status uint8
		err    error
	)
	app.Store.Do(func(*state.Record) {
		status, err = app.updateLocked()
	})
	return status, err
}

func (app *App) updateLocked() (uint8, error) {
	status, err := app.Driver.Update()
	if err != nil {
		return status, err
	}
	if status != 0 {
		app.Logger.Errorf("app", "update status %d", status)
	}
	if err := app.Present.Present(app.Driver.Surface().Image()); err != nil {
		app.Logger.Errorf("render", "present: %v", err)
	}
	return status, nil
}

func (app *App) Screen() web.Frame {
	var frame web.Frame
	app.Store.Do(func(*state.Record) {
		s := app.Driver.Surface()
		frame = web.Frame{
			Width:  s.Width(),
			Height: s.Height(),
			Built:  app.Driver.State() == hdl.Built,
			Buffer: append([]byte(nil), s.Bytes()...),
		}
	})
	return frame
}

func (app *App) Bindings() []web.BindingInfo {
	var out []web.BindingInfo
	app.Store.Do(func(*state.Record) {
		iface := app.Driver.Interface()
		if iface == nil {
			return
		}
		for _, b := range iface.Bindings.All() {
			out = append(out, web.BindingInfo{Name: b.Name, ID: b.ID, Type: b.Type.String(), Value: b.Value()})
		}
	})
	return out
}

func (app *App) PatchState(patch web.StatePatch) error {
	if patch.View != nil && *patch.View != state.ViewMain && *patch.View != state.ViewSleep {
		return fmt.Errorf("%w: view %d", web.ErrBadPatch, *patch.View)
	}
	if patch.BattPercent != nil && (*patch.BattPercent < 0 || *patch.BattPercent > 100) {
		return fmt.Errorf("%w: battPercent %d", web.ErrBadPatch, *patch.BattPercent)
	}
	for _, s := range []*string{patch.Time, patch.Date} {
		if s != nil && len(*s) >= binding.StringSize {
			return fmt.Errorf("%w: %q longer than %d bytes", web.ErrBadPatch, *s, binding.StringSize-1)
		}
	}
	app.Store.Do(func(rec *state.Record) {
		if patch.View != nil {
			rec.View = *patch.View
		}
		if patch.BattPercent != nil {
			rec.BattPercent = int8(*patch.BattPercent)
			rec.BattSprite = state.SpriteFor(*patch.BattPercent)
		}
		if patch.Charging != nil {
			rec.Charging = *patch.Charging
		}
		if patch.Time != nil {
			rec.Time.Set(*patch.Time)
		}
		if patch.Date != nil {
			rec.Date.Set(*patch.Date)
		}
	})
	return nil
}

// CycleView steps VIEW to the next view.
func (app *App) CycleView() {
	app.Store.Do(func(rec *state.Record) {
		if rec.View == state.ViewMain {
			rec.View = state.ViewSleep
		} else {
			rec.View = state.ViewMain
		}
	})
}

func (app *App) now() time.Time {
	if app.Now == nil {
		return time.Now()
	}
	return app.Now()
}
