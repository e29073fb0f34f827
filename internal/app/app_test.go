package app

import (
	"context"
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/rook-computer/hdldisplay/internal/app/screens"
	"github.com/rook-computer/hdldisplay/internal/buttons"
	"github.com/rook-computer/hdldisplay/internal/hdl"
	"github.com/rook-computer/hdldisplay/internal/state"
	"github.com/rook-computer/hdldisplay/internal/web"
)

type recordingPresenter struct {
	mu      sync.Mutex
	started bool
	stopped bool
	frames  int
}

func (p *recordingPresenter) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.started = true
	return nil
}

func (p *recordingPresenter) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped = true
	return nil
}

func (p *recordingPresenter) Present(frame image.Image) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frames++
	return nil
}

func (p *recordingPresenter) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frames
}

var fixedNow = time.Date(2026, 3, 7, 9, 5, 0, 0, time.UTC)

func newTestApp(t *testing.T) (*App, *recordingPresenter) {
	t.Helper()
	store := state.NewStore()
	firmware := &Firmware{Store: store, PairURL: "hdl://pair/test"}
	driver := hdl.NewDriver(screens.NewInterpreter(nil), firmware, nil)
	presenter := &recordingPresenter{}
	a := New(store, driver, presenter, nil)
	a.Now = func() time.Time { return fixedNow }
	return a, presenter
}

func TestBuildAndTick(t *testing.T) {
	a, presenter := newTestApp(t)
	status, err := a.Build(80, 128, []byte("status"))
	if err != nil || status != hdl.StatusOK {
		t.Fatalf("Build = %d, %v", status, err)
	}
	a.Tick()
	rec := a.Store.Snapshot()
	if rec.Time.String() != "09:05" || rec.Date.String() != "07/03" {
		t.Errorf("clock = %q %q", rec.Time.String(), rec.Date.String())
	}
	if presenter.count() != 1 {
		t.Errorf("presented %d frames, want 1", presenter.count())
	}
	frame := a.Screen()
	if !frame.Built || frame.Width != 80 || frame.Height != 128 || len(frame.Buffer) != 1280 {
		t.Errorf("frame = %dx%d built=%v len=%d", frame.Width, frame.Height, frame.Built, len(frame.Buffer))
	}
}

func TestTickBeforeBuild(t *testing.T) {
	a, presenter := newTestApp(t)
	a.Tick()
	if presenter.count() != 0 {
		t.Errorf("presented %d frames before build", presenter.count())
	}
	if _, err := a.Update(); !errors.Is(err, hdl.ErrNotBuilt) {
		t.Errorf("Update = %v, want ErrNotBuilt", err)
	}
}

func TestFixedClock(t *testing.T) {
	a, _ := newTestApp(t)
	a.FixedClock = true
	if _, err := a.Build(80, 32, []byte("status")); err != nil {
		t.Fatal(err)
	}
	a.Tick()
	if got := a.Store.Snapshot().Time.String(); got != "--:--" {
		t.Errorf("Time = %q, want seeded placeholder", got)
	}
}

func TestBuildStatusCodes(t *testing.T) {
	a, _ := newTestApp(t)
	tests := []struct {
		width, height uint16
		layout        []byte
		want          uint8
	}{
		{80, 32, []byte("status"), hdl.StatusOK},
		{80, 32, make([]byte, 4097), hdl.StatusPayloadTooLarge},
		{80, 129, []byte("status"), hdl.StatusBufferTooSmall},
		{80, 32, []byte("nope"), hdl.StatusBuildFailed},
	}
	for _, tt := range tests {
		status, _ := a.Build(tt.width, tt.height, tt.layout)
		if status != tt.want {
			t.Errorf("Build(%d,%d,%d bytes) = %d, want %d", tt.width, tt.height, len(tt.layout), status, tt.want)
		}
	}
}

func TestBindingsReport(t *testing.T) {
	a, _ := newTestApp(t)
	if got := a.Bindings(); len(got) != 0 {
		t.Errorf("bindings before build = %v", got)
	}
	if _, err := a.Build(80, 128, []byte("status")); err != nil {
		t.Fatal(err)
	}
	got := a.Bindings()
	if len(got) != 6 {
		t.Fatalf("len = %d, want 6", len(got))
	}
	if got[0].Name != "VIEW" || got[4].Name != "TIME" || got[4].Value != "--:--" {
		t.Errorf("bindings = %+v", got)
	}
}

func TestPatchState(t *testing.T) {
	a, _ := newTestApp(t)
	pct, chrg, view, tm := 20, true, state.ViewSleep, "23:59"
	if err := a.PatchState(web.StatePatch{BattPercent: &pct, Charging: &chrg, View: &view, Time: &tm}); err != nil {
		t.Fatal(err)
	}
	rec := a.Store.Snapshot()
	if rec.BattPercent != 20 || rec.BattSprite != 1 || !rec.Charging || rec.View != state.ViewSleep || rec.Time.String() != "23:59" {
		t.Errorf("record = %+v", rec)
	}

	bad := []web.StatePatch{
		{BattPercent: ptr(101)},
		{BattPercent: ptr(-1)},
		{View: ptr(int8(7))},
		{Date: ptr("0123456789abcdef")},
	}
	for _, p := range bad {
		if err := a.PatchState(p); !errors.Is(err, web.ErrBadPatch) {
			t.Errorf("PatchState(%+v) = %v, want ErrBadPatch", p, err)
		}
	}
}

func ptr[T any](v T) *T { return &v }

func TestCycleView(t *testing.T) {
	a, _ := newTestApp(t)
	a.CycleView()
	if a.Store.Snapshot().View != state.ViewSleep {
		t.Error("first cycle did not select sleep")
	}
	a.CycleView()
	if a.Store.Snapshot().View != state.ViewMain {
		t.Error("second cycle did not return to main")
	}
}

func TestStartRunsUntilExit(t *testing.T) {
	a, presenter := newTestApp(t)
	a.FPS = 50
	a.Width, a.Height, a.Layout = 80, 32, []byte("status")

	done := make(chan error, 1)
	go func() { done <- a.Start(context.Background()) }()

	deadline := time.After(2 * time.Second)
	for presenter.count() < 2 {
		select {
		case <-deadline:
			t.Fatal("no frames presented")
		case <-time.After(10 * time.Millisecond):
		}
	}
	a.Exit(nil)
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after Exit")
	}
	presenter.mu.Lock()
	defer presenter.mu.Unlock()
	if !presenter.started || !presenter.stopped {
		t.Errorf("presenter started=%v stopped=%v", presenter.started, presenter.stopped)
	}
}

func TestStartFailsOnBadLayout(t *testing.T) {
	a, _ := newTestApp(t)
	a.Width, a.Height, a.Layout = 80, 32, []byte("missing-page")
	if err := a.Start(context.Background()); !errors.Is(err, hdl.ErrLayoutParseFailed) {
		t.Errorf("Start = %v, want ErrLayoutParseFailed", err)
	}
}

type chanButtons struct {
	ch      chan buttons.Event
	stopped bool
}

func (b *chanButtons) Start(ctx context.Context) error { return nil }
func (b *chanButtons) Events() <-chan buttons.Event    { return b.ch }

func (b *chanButtons) Stop() error {
	b.stopped = true
	return nil
}

func TestButtonEvents(t *testing.T) {
	a, _ := newTestApp(t)
	a.FPS = 1
	a.Width, a.Height, a.Layout = 80, 32, []byte("status")
	btn := &chanButtons{ch: make(chan buttons.Event)}
	a.Buttons = btn

	consoleRestored := false
	a.Console = func() func() { return func() { consoleRestored = true } }

	done := make(chan error, 1)
	go func() { done <- a.Start(context.Background()) }()

	btn.ch <- buttons.CycleView
	btn.ch <- buttons.Exit
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Exit button did not stop the app")
	}
	if a.Store.Snapshot().View != state.ViewSleep {
		t.Error("CycleView button did not change VIEW")
	}
	if !btn.stopped || !consoleRestored {
		t.Errorf("buttons stopped=%v console restored=%v", btn.stopped, consoleRestored)
	}
}
