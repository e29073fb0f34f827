package buttons

import (
	"context"
	"sync"

	"github.com/rook-computer/hdldisplay/internal/system"
)

type Event string

const (
	CycleView Event = "cycle-view"
	Exit      Event = "exit"
)

type Buttons interface {
	Start(ctx context.Context) error
	Stop() error
	Events() <-chan Event
}

type NoopButtons struct{ ch chan Event }

func NewNoopButtons() *NoopButtons { return &NoopButtons{ch: make(chan Event)} }

func (n *NoopButtons) Start(ctx context.Context) error { return nil }
func (n *NoopButtons) Stop() error                     { return nil }
func (n *NoopButtons) Events() <-chan Event            { return n.ch }

type logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// DefaultKeymap: F2 steps the view, F4 leaves.
var DefaultKeymap = map[uint16]Event{
	system.KeyF2: CycleView,
	system.KeyF4: Exit,
}

// KeyButtons turns evdev key presses into Events. Presses arriving while
// the previous event is unread are dropped.
type KeyButtons struct {
	Keymap map[uint16]Event
	Logger logger

	ch     chan Event
	cancel context.CancelFunc
	once   sync.Once
}

func NewKeyButtons(l logger) *KeyButtons {
	return &KeyButtons{Keymap: DefaultKeymap, Logger: l, ch: make(chan Event, 1)}
}

func (k *KeyButtons) Start(ctx context.Context) error {
	watchCtx, cancel := context.WithCancel(ctx)
	k.cancel = cancel
	handlers := system.KeyHandlers{}
	for code, ev := range k.Keymap {
		handlers[code] = func() { k.emit(ev) }
	}
	system.WatchKeys(watchCtx, k.Logger, handlers)
	return nil
}

func (k *KeyButtons) Stop() error {
	k.once.Do(func() {
		if k.cancel != nil {
			k.cancel()
		}
	})
	return nil
}

func (k *KeyButtons) Events() <-chan Event { return k.ch }

func (k *KeyButtons) emit(ev Event) {
	select {
	case k.ch <- ev:
	default:
	}
}
