package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/rook-computer/hdldisplay/internal/hdl"
	"github.com/rook-computer/hdldisplay/internal/render"
)

const maxPNGScale = 16

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type statusResponse struct {
	Status uint8  `json:"status"`
	Error  string `json:"error,omitempty"`
}

func apiV1Router(display Display) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/build", func(w http.ResponseWriter, r *http.Request) { handleBuild(w, r, display) })
	mux.HandleFunc("/update", func(w http.ResponseWriter, r *http.Request) { handleUpdate(w, r, display) })
	mux.HandleFunc("/screen", func(w http.ResponseWriter, r *http.Request) { handleScreen(w, r, display) })
	mux.HandleFunc("/screen.png", func(w http.ResponseWriter, r *http.Request) { handleScreenPNG(w, r, display) })
	mux.HandleFunc("/bindings", func(w http.ResponseWriter, r *http.Request) { handleBindings(w, r, display) })
	mux.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) { handleState(w, r, display) })
	mux.HandleFunc("/layout.c", handleLayoutC)
	return mux
}

// handleBuild: POST /build?width=&height= with the compiled layout as body.
// The host status byte is returned whether or not the build succeeded.
func handleBuild(w http.ResponseWriter, r *http.Request, display Display) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	width, err := parseDimension(r, "width")
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	height, err := parseDimension(r, "height")
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	// Read one byte past the limit so oversize payloads reach the driver
	// and are reported with their own status.
	layout, err := io.ReadAll(io.LimitReader(r.Body, hdl.MaxLayoutSize+1))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	status, err := display.Build(width, height, layout)
	resp := statusResponse{Status: status}
	code := http.StatusOK
	if err != nil {
		resp.Error = err.Error()
		code = http.StatusUnprocessableEntity
	}
	writeJSON(w, code, resp)
}

func handleUpdate(w http.ResponseWriter, r *http.Request, display Display) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	status, err := display.Update()
	if errors.Is(err, hdl.ErrNotBuilt) {
		writeAPIError(w, http.StatusConflict, "not_built", err.Error())
		return
	}
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "update_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: status})
}

// handleScreen returns the packed buffer with its geometry in headers.
func handleScreen(w http.ResponseWriter, r *http.Request, display Display) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	frame := display.Screen()
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(frame.Buffer)))
	w.Header().Set("X-Display-Width", strconv.Itoa(frame.Width))
	w.Header().Set("X-Display-Height", strconv.Itoa(frame.Height))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(frame.Buffer)
}

func handleScreenPNG(w http.ResponseWriter, r *http.Request, display Display) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	scale := 4
	if raw := r.URL.Query().Get("scale"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPNGScale {
			writeAPIError(w, http.StatusBadRequest, "bad_request", fmt.Sprintf("scale must be 1..%d", maxPNGScale))
			return
		}
		scale = n
	}
	frame := display.Screen()
	if frame.Width == 0 || frame.Height == 0 {
		writeAPIError(w, http.StatusConflict, "not_built", "no layout built")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := render.EncodePNG(w, render.Unpack(frame.Buffer, frame.Width, frame.Height), scale); err != nil {
		writeAPIError(w, http.StatusInternalServerError, "encode_failed", err.Error())
	}
}

// handleLayoutC: POST /layout.c?name= converts a compiled layout into C
// source that firmware can embed.
func handleLayoutC(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	layout, err := io.ReadAll(io.LimitReader(r.Body, hdl.MaxLayoutSize+1))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if len(layout) > hdl.MaxLayoutSize {
		writeAPIError(w, http.StatusRequestEntityTooLarge, "payload_too_large", hdl.ErrPayloadTooLarge.Error())
		return
	}
	name := hdl.CName(r.URL.Query().Get("name"))
	w.Header().Set("Content-Type", "text/x-c; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".c"))
	if err := hdl.WriteCArray(w, name, layout); err != nil {
		writeAPIError(w, http.StatusInternalServerError, "export_failed", err.Error())
	}
}

func handleBindings(w http.ResponseWriter, r *http.Request, display Display) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	bindings := display.Bindings()
	if bindings == nil {
		bindings = []BindingInfo{}
	}
	writeJSON(w, http.StatusOK, bindings)
}

func handleState(w http.ResponseWriter, r *http.Request, display Display) {
	if r.Method != http.MethodPost && r.Method != http.MethodPatch {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	var patch StatePatch
	dec := json.NewDecoder(io.LimitReader(r.Body, 4096))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		writeAPIError(w, http.StatusBadRequest, "bad_request", "invalid json: "+err.Error())
		return
	}
	if err := display.PatchState(patch); err != nil {
		if errors.Is(err, ErrBadPatch) {
			writeAPIError(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		writeAPIError(w, http.StatusInternalServerError, "state_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func parseDimension(r *http.Request, name string) (uint16, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing %s", name)
	}
	n, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%s must be 0..65535 (got %q)", name, raw)
	}
	return uint16(n), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
