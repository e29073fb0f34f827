package glyph

import (
	"fmt"
	"image"

	"github.com/golang/freetype/truetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// inkThreshold is the minimum sampled coverage that sets a glyph bit.
const inkThreshold = 0x60

// FromFace rasterises the printable ASCII range of face into a table. Each
// character is drawn into a cell of one advance by one line height and then
// resampled to 5x8. A nil face uses basicfont.Face7x13.
func FromFace(face font.Face) *Table {
	if face == nil {
		face = basicfont.Face7x13
	}
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := metrics.Height.Ceil()
	if height < ascent+metrics.Descent.Ceil() {
		height = ascent + metrics.Descent.Ceil()
	}
	width := Cols
	if adv, ok := face.GlyphAdvance('M'); ok && adv.Ceil() > 0 {
		width = adv.Ceil()
	}
	if height <= 0 {
		height = Rows
	}

	cell := image.NewAlpha(image.Rect(0, 0, width, height))
	small := image.NewAlpha(image.Rect(0, 0, Cols, Rows))
	drawer := &font.Drawer{Dst: cell, Src: image.Opaque, Face: face}

	t := new(Table)
	for c := 0x21; c < 0x7f; c++ {
		xdraw.Draw(cell, cell.Bounds(), image.Transparent, image.Point{}, xdraw.Src)
		drawer.Dot = fixed.P(0, ascent)
		drawer.DrawString(string(rune(c)))

		xdraw.ApproxBiLinear.Scale(small, small.Bounds(), cell, cell.Bounds(), xdraw.Src, nil)
		var rows [Rows]byte
		for row := 0; row < Rows; row++ {
			for col := 0; col < Cols; col++ {
				if small.AlphaAt(col, row).A >= inkThreshold {
					rows[row] |= 0x80 >> uint(col)
				}
			}
		}
		t.Set(byte(c), rows)
	}
	return t
}

// FromTrueType parses a TrueType font and rasterises it at the given point
// size (72 DPI, so points equal pixels).
func FromTrueType(data []byte, size float64) (*Table, error) {
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("glyph: parse truetype: %w", err)
	}
	if size <= 0 {
		size = Rows
	}
	face := truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	defer face.Close()
	return FromFace(face), nil
}
