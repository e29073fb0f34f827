package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rook-computer/hdldisplay/internal/hdl"
	"github.com/rook-computer/hdldisplay/internal/state"
)

var errSimBuild = errors.New("simulated interpreter build failure")

type SimFaults struct {
	BuildFail    bool  `json:"buildFail"`
	UpdateStatus uint8 `json:"updateStatus"`
}

type scenario struct {
	percent  int
	charging bool
}

var scenarios = map[string]scenario{
	"full":     {percent: 100},
	"low":      {percent: 4},
	"charging": {percent: 30, charging: true},
}

type SimControl struct {
	store           *state.Store
	startupScenario string
	currentScenario atomic.Value // string

	faults struct {
		mu sync.RWMutex
		v  SimFaults
	}
}

func NewSimControl(store *state.Store, startupScenario string) *SimControl {
	c := &SimControl{store: store, startupScenario: strings.TrimSpace(startupScenario)}
	if c.startupScenario == "" {
		c.startupScenario = "full"
	}
	c.currentScenario.Store(c.startupScenario)
	return c
}

// ApplyScenario seeds the battery fields and returns to the main view.
func (c *SimControl) ApplyScenario(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		name = c.startupScenario
	}
	sc, ok := scenarios[name]
	if !ok {
		return fmt.Errorf("unknown scenario %q", name)
	}
	c.store.SetBattery(sc.percent, sc.charging)
	c.store.SetView(state.ViewMain)
	c.currentScenario.Store(name)
	return nil
}

func (c *SimControl) Scenario() string {
	name, _ := c.currentScenario.Load().(string)
	return name
}

func (c *SimControl) Reset() error {
	c.SetFaults(SimFaults{})
	return c.ApplyScenario(c.startupScenario)
}

func (c *SimControl) Faults() SimFaults {
	c.faults.mu.RLock()
	defer c.faults.mu.RUnlock()
	return c.faults.v
}

func (c *SimControl) SetFaults(v SimFaults) {
	c.faults.mu.Lock()
	c.faults.v = v
	c.faults.mu.Unlock()
}

// Wrap returns an interpreter that consults the current faults before
// delegating to next.
func (c *SimControl) Wrap(next hdl.Interpreter) hdl.Interpreter {
	return &faultyInterpreter{next: next, control: c}
}

type faultyInterpreter struct {
	next    hdl.Interpreter
	control *SimControl
}

func (f *faultyInterpreter) Build(iface *hdl.Interface, layout []byte) error {
	if f.control.Faults().BuildFail {
		return errSimBuild
	}
	return f.next.Build(iface, layout)
}

func (f *faultyInterpreter) Update(iface *hdl.Interface) uint8 {
	status := f.next.Update(iface)
	if forced := f.control.Faults().UpdateStatus; forced != 0 {
		return forced
	}
	return status
}

func (f *faultyInterpreter) Free(iface *hdl.Interface) {
	f.next.Free(iface)
}

func registerSimEndpoints(mux *http.ServeMux, control *SimControl) {
	mux.HandleFunc("/sim/reset", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		if err := control.Reset(); err != nil {
			writeSimError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true, "scenario": control.Scenario()})
	})

	mux.HandleFunc("/sim/scenario/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		name := strings.TrimPrefix(r.URL.Path, "/sim/scenario/")
		name = strings.Trim(name, "/")
		if err := control.ApplyScenario(name); err != nil {
			writeSimError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true, "scenario": control.Scenario()})
	})

	mux.HandleFunc("/sim/faults", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeSimJSON(w, http.StatusOK, control.Faults())
			return
		case http.MethodPost:
			var patch struct {
				BuildFail    *bool  `json:"buildFail"`
				UpdateStatus *uint8 `json:"updateStatus"`
			}
			if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
				writeSimError(w, http.StatusBadRequest, "invalid json")
				return
			}
			current := control.Faults()
			if patch.BuildFail != nil {
				current.BuildFail = *patch.BuildFail
			}
			if patch.UpdateStatus != nil {
				current.UpdateStatus = *patch.UpdateStatus
			}
			control.SetFaults(current)
			writeSimJSON(w, http.StatusOK, current)
			return
		default:
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
	})
}

func writeSimJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSimError(w http.ResponseWriter, status int, message string) {
	writeSimJSON(w, status, map[string]any{"error": message})
}
