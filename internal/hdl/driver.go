package hdl

import (
	"fmt"

	"github.com/rook-computer/hdldisplay/internal/binding"
	"github.com/rook-computer/hdldisplay/internal/glyph"
	"github.com/rook-computer/hdldisplay/internal/render"
)

// State is the lifecycle position of a Driver.
type State int

const (
	Uninitialized State = iota
	InterfaceCreated
	Built
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case InterfaceCreated:
		return "interface-created"
	case Built:
		return "built"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Logger is the optional sink for lifecycle events.
type Logger interface {
	Infof(component, format string, args ...any)
	Errorf(component, format string, args ...any)
}

// Driver owns the surface, the interface record and the binding registry.
// It is not safe for concurrent use; callers serialise Build and Update.
type Driver struct {
	Logger Logger

	interp  Interpreter
	setup   Setup
	surface *render.Surface
	iface   *Interface
	state   State
}

// NewDriver wires interp and setup to a fresh surface. A nil setup builds
// with an empty binding table and no assets.
func NewDriver(interp Interpreter, setup Setup, glyphs *glyph.Table) *Driver {
	return &Driver{
		interp:  interp,
		setup:   setup,
		surface: render.NewSurface(glyphs),
	}
}

// Build validates the request, tears down any prior interface, wires a new
// one and hands the layout to the interpreter. Precondition failures leave
// the previous interface untouched.
func (d *Driver) Build(width, height uint16, layout []byte) error {
	if len(layout) > MaxLayoutSize {
		return d.reject(fmt.Errorf("%w: %d bytes (max %d)", ErrPayloadTooLarge, len(layout), MaxLayoutSize))
	}
	w, h := int(width), int(height)
	if w == 0 || h == 0 || render.BufferLen(w, h) > MaxBufferSize {
		return d.reject(fmt.Errorf("%w: %dx%d needs %d bytes (max %d)", ErrBufferTooSmall, w, h, render.BufferLen(w, h), MaxBufferSize))
	}

	d.teardown()

	if err := d.surface.Reset(w, h); err != nil {
		return fmt.Errorf("%w: %w", ErrBufferTooSmall, err)
	}
	iface := &Interface{
		Width:      w,
		Height:     h,
		Colors:     ColorsMono,
		Features:   FeatText | FeatLineHV | FeatBitmap,
		Canvas:     d.surface,
		TextWidth:  TextWidth,
		TextHeight: TextHeight,
		Bindings:   binding.NewRegistry(),
		Assets:     NewAssetSet(),
	}
	d.iface = iface
	d.state = InterfaceCreated

	if d.setup != nil {
		d.setup.Seed()
		if err := d.setup.Bindings(iface.Bindings); err != nil {
			return d.fail(fmt.Errorf("%w: bindings: %w", ErrLayoutParseFailed, err))
		}
		if err := d.setup.Assets(iface.Assets); err != nil {
			return d.fail(fmt.Errorf("%w: assets: %w", ErrLayoutParseFailed, err))
		}
	}

	if err := d.interp.Build(iface, layout); err != nil {
		return d.fail(fmt.Errorf("%w: %w", ErrLayoutParseFailed, err))
	}
	d.state = Built
	if d.Logger != nil {
		d.Logger.Infof("hdl", "built %dx%d layout=%dB bindings=%d assets=%d", w, h, len(layout), iface.Bindings.Len(), iface.Assets.Len())
	}
	return nil
}

// Update repaints the surface and returns the interpreter status unchanged.
func (d *Driver) Update() (uint8, error) {
	if d.state != Built {
		return 0, ErrNotBuilt
	}
	return d.interp.Update(d.iface), nil
}

// ScreenBuffer returns the whole fixed-capacity packed buffer.
func (d *Driver) ScreenBuffer() []byte {
	return d.surface.Raw()
}

func (d *Driver) Surface() *render.Surface { return d.surface }

// Interface returns the live interface, or nil before the first build.
func (d *Driver) Interface() *Interface { return d.iface }

func (d *Driver) State() State { return d.state }

// Close releases the live interface.
func (d *Driver) Close() {
	d.teardown()
}

func (d *Driver) teardown() {
	if d.iface == nil {
		return
	}
	d.interp.Free(d.iface)
	d.iface.Bindings.Reset()
	d.iface = nil
	d.state = Uninitialized
}

func (d *Driver) reject(err error) error {
	if d.Logger != nil {
		d.Logger.Errorf("hdl", "build rejected: %v", err)
	}
	return err
}

func (d *Driver) fail(err error) error {
	if d.Logger != nil {
		d.Logger.Errorf("hdl", "build failed: %v", err)
	}
	return err
}
