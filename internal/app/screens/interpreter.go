// Package screens is the in-process layout interpreter used by the device and
// the simulator. A layout blob names one page plus optional parameters:
//
//	status;low=10
//
// Bindings are resolved by id when the layout is built and read on every
// update.
package screens

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rook-computer/hdldisplay/internal/binding"
	"github.com/rook-computer/hdldisplay/internal/hdl"
	"github.com/rook-computer/hdldisplay/internal/state"
)

// Update status codes.
const (
	UpdateOK        uint8 = 0
	UpdateNoSession uint8 = 1
)

const defaultLowBattery = 10

var (
	ErrEmptyLayout    = errors.New("screens: empty layout")
	ErrUnknownPage    = errors.New("screens: unknown page")
	ErrBadParameter   = errors.New("screens: bad layout parameter")
	ErrMissingBinding = errors.New("screens: required binding not registered")
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Interpreter implements hdl.Interpreter for the built-in pages.
type Interpreter struct {
	Logger Logger

	mu       sync.Mutex
	sessions map[*hdl.Interface]*session
}

var _ hdl.Interpreter = (*Interpreter)(nil)

func NewInterpreter(logger Logger) *Interpreter {
	return &Interpreter{Logger: logger, sessions: map[*hdl.Interface]*session{}}
}

// session is what Build attaches to one interface.
type session struct {
	iface *hdl.Interface
	page  Page
	low   int

	// lowSleep is set while the sleep view was chosen for a low battery.
	lowSleep bool

	view     binding.Binding
	percent  binding.Binding
	sprite   binding.Binding
	charging binding.Binding
	clock    binding.Binding
	date     binding.Binding
}

func (interp *Interpreter) Build(iface *hdl.Interface, layout []byte) error {
	name, params, err := parseLayout(layout)
	if err != nil {
		return err
	}
	page, ok := pages[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPage, name)
	}

	s := &session{iface: iface, page: page, low: defaultLowBattery}
	if v, ok := params["low"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 100 {
			return fmt.Errorf("%w: low=%q", ErrBadParameter, v)
		}
		s.low = n
	}

	required := []struct {
		id  uint16
		dst *binding.Binding
	}{
		{state.BindView, &s.view},
		{state.BindBattPercent, &s.percent},
		{state.BindBattSprite, &s.sprite},
		{state.BindCharging, &s.charging},
		{state.BindTime, &s.clock},
		{state.BindDate, &s.date},
	}
	for _, r := range required {
		b, ok := iface.Bindings.Lookup(r.id)
		if !ok {
			return fmt.Errorf("%w: id %d", ErrMissingBinding, r.id)
		}
		*r.dst = b
	}
	if err := page.Check(iface); err != nil {
		return fmt.Errorf("page %s: %w", name, err)
	}

	interp.mu.Lock()
	if interp.sessions == nil {
		interp.sessions = map[*hdl.Interface]*session{}
	}
	interp.sessions[iface] = s
	interp.mu.Unlock()

	if interp.Logger != nil {
		interp.Logger.Infof("screens", "page %s on %dx%d low=%d", name, iface.Width, iface.Height, s.low)
	}
	return nil
}

// Update repaints the page. A battery under the low mark without a charger
// switches the VIEW binding to the sleep view. Once a charger is connected or
// the level recovers, that view goes back to main. A sleep view set by anyone
// else is left alone.
func (interp *Interpreter) Update(iface *hdl.Interface) uint8 {
	interp.mu.Lock()
	s, ok := interp.sessions[iface]
	interp.mu.Unlock()
	if !ok {
		return UpdateNoSession
	}

	low := s.percent.Int() < s.low && !s.charging.Bool()
	switch {
	case low:
		s.view.SetInt(int(state.ViewSleep))
		s.lowSleep = true
	case s.lowSleep:
		if int8(s.view.Int()) == state.ViewSleep {
			s.view.SetInt(int(state.ViewMain))
		}
		s.lowSleep = false
	}

	c := iface.Canvas
	c.Clear(0, 0, iface.Width, iface.Height)
	if int8(s.view.Int()) == state.ViewSleep {
		sleepPage{}.Draw(c, s)
	} else {
		s.page.Draw(c, s)
	}
	c.Render()
	return UpdateOK
}

func (interp *Interpreter) Free(iface *hdl.Interface) {
	interp.mu.Lock()
	delete(interp.sessions, iface)
	interp.mu.Unlock()
}

// Sessions reports how many interfaces currently hold a parsed layout.
func (interp *Interpreter) Sessions() int {
	interp.mu.Lock()
	defer interp.mu.Unlock()
	return len(interp.sessions)
}

func parseLayout(layout []byte) (string, map[string]string, error) {
	text := strings.TrimSpace(string(layout))
	if text == "" {
		return "", nil, ErrEmptyLayout
	}
	parts := strings.Split(text, ";")
	name := strings.ToLower(strings.TrimSpace(parts[0]))
	params := map[string]string{}
	for _, p := range parts[1:] {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		k, v, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return "", nil, fmt.Errorf("%w: %q", ErrBadParameter, p)
		}
		params[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return name, params, nil
}
