package main

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rook-computer/hdldisplay/internal/app"
	"github.com/rook-computer/hdldisplay/internal/app/screens"
	"github.com/rook-computer/hdldisplay/internal/hdl"
	"github.com/rook-computer/hdldisplay/internal/render"
	"github.com/rook-computer/hdldisplay/internal/state"
	"github.com/rook-computer/hdldisplay/internal/web"
)

func newSim(t *testing.T) (*http.ServeMux, *SimControl, *app.App) {
	t.Helper()
	store := state.NewStore()
	control := NewSimControl(store, "")
	if err := control.Reset(); err != nil {
		t.Fatal(err)
	}
	driver := hdl.NewDriver(control.Wrap(screens.NewInterpreter(nil)), &app.Firmware{Store: store, PairURL: "hdl://sim"}, nil)
	a := app.New(store, driver, render.NoopPresenter{}, nil)
	mux := web.NewDefaultMux("", a)
	registerSimEndpoints(mux, control)
	return mux, control, a
}

func post(mux *http.ServeMux, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, target, bytes.NewBufferString(body)))
	return rec
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name     string
		percent  int8
		charging bool
	}{
		{"full", 100, false},
		{"low", 4, false},
		{"charging", 30, true},
	}
	for _, tt := range tests {
		mux, control, a := newSim(t)
		if rec := post(mux, "/sim/scenario/"+tt.name, ""); rec.Code != http.StatusOK {
			t.Fatalf("%s: code %d", tt.name, rec.Code)
		}
		rec := a.Store.Snapshot()
		if rec.BattPercent != tt.percent || rec.Charging != tt.charging || control.Scenario() != tt.name {
			t.Errorf("%s: record %+v scenario %s", tt.name, rec, control.Scenario())
		}
	}
	mux, _, _ := newSim(t)
	if rec := post(mux, "/sim/scenario/flooded", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown scenario = %d, want 400", rec.Code)
	}
}

func TestLowScenarioSwitchesToSleep(t *testing.T) {
	mux, _, a := newSim(t)
	post(mux, "/sim/scenario/low", "")
	if rec := post(mux, "/api/v1/build?width=80&height=128", "status"); rec.Code != http.StatusOK {
		t.Fatalf("build = %d: %s", rec.Code, rec.Body.String())
	}
	if rec := post(mux, "/api/v1/update", ""); rec.Code != http.StatusOK {
		t.Fatalf("update = %d", rec.Code)
	}
	if a.Store.Snapshot().View != state.ViewSleep {
		t.Error("low battery did not switch VIEW to sleep")
	}
}

func TestBuildFault(t *testing.T) {
	mux, control, a := newSim(t)
	if rec := post(mux, "/sim/faults", `{"buildFail":true}`); rec.Code != http.StatusOK {
		t.Fatalf("faults = %d", rec.Code)
	}
	status, err := a.Build(80, 32, []byte("status"))
	if status != hdl.StatusBuildFailed || !errors.Is(err, errSimBuild) {
		t.Errorf("Build = %d, %v", status, err)
	}

	if err := control.Reset(); err != nil {
		t.Fatal(err)
	}
	if status, err := a.Build(80, 32, []byte("status")); status != hdl.StatusOK || err != nil {
		t.Errorf("Build after reset = %d, %v", status, err)
	}
}

func TestUpdateStatusFault(t *testing.T) {
	mux, _, a := newSim(t)
	if _, err := a.Build(80, 32, []byte("status")); err != nil {
		t.Fatal(err)
	}
	post(mux, "/sim/faults", `{"updateStatus":9}`)
	status, err := a.Update()
	if err != nil || status != 9 {
		t.Errorf("Update = %d, %v, want 9", status, err)
	}
}

func TestFaultsEndpoint(t *testing.T) {
	mux, _, _ := newSim(t)
	if rec := post(mux, "/sim/faults", "{"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad json = %d", rec.Code)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/sim/faults", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("DELETE = %d", rec.Code)
	}
}
