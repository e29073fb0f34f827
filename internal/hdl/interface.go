package hdl

import (
	"github.com/rook-computer/hdldisplay/internal/binding"
	"github.com/rook-computer/hdldisplay/internal/render"
)

// Limits imposed on every build.
const (
	MaxLayoutSize = 4096
	MaxBufferSize = render.MaxBufferSize
)

// Glyph cell metrics advertised to the interpreter.
const (
	TextWidth  = 4
	TextHeight = 6
)

// ColorMode is the colour depth of the display.
type ColorMode uint8

const ColorsMono ColorMode = 1

// Feature flags advertised to the interpreter.
type Feature uint8

const (
	FeatText Feature = 1 << iota
	FeatLineHV
	FeatBitmap
)

func (f Feature) Has(flag Feature) bool { return f&flag == flag }

// Interface is the wiring record handed to the interpreter. One live
// instance exists per Driver; it is replaced on every build.
type Interface struct {
	Width      int
	Height     int
	Colors     ColorMode
	Features   Feature
	Canvas     render.Canvas
	TextWidth  int
	TextHeight int
	Bindings   *binding.Registry
	Assets     *AssetSet
}

// Interpreter parses a compiled layout and repaints it on demand.
type Interpreter interface {
	// Build parses layout against iface. A non-nil error fails the build.
	Build(iface *Interface, layout []byte) error
	// Update repaints from the current binding values. The status is
	// passed to the host unchanged.
	Update(iface *Interface) uint8
	// Free releases everything Build attached to iface.
	Free(iface *Interface)
}

// Setup is the firmware side of a build: state seeding, the binding table
// and the fixed asset set.
type Setup interface {
	Seed()
	Bindings(reg *binding.Registry) error
	Assets(set *AssetSet) error
}
