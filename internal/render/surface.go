package render

import (
	"errors"
	"fmt"

	"github.com/rook-computer/hdldisplay/internal/glyph"
)

var ErrCapacity = errors.New("render: surface exceeds buffer capacity")

// Surface is a packed 1 bpp framebuffer. Pixel (x,y) lives at byte
// y*(width/8)+x/8, bit 7-x%8. A set bit is unlit; drawing clears it.
//
// The backing array has a fixed capacity and is never reallocated; Reset only
// changes the logical size.
type Surface struct {
	buf    [MaxBufferSize]byte
	width  int
	height int
	glyphs *glyph.Table
}

// NewSurface returns an empty 0x0 surface. A nil table uses glyph.Default.
func NewSurface(glyphs *glyph.Table) *Surface {
	if glyphs == nil {
		glyphs = glyph.Default
	}
	s := &Surface{glyphs: glyphs}
	s.fill()
	return s
}

// BufferLen is the number of bytes a width x height surface occupies.
func BufferLen(width, height int) int {
	return (width*height + 7) / 8
}

// Reset sets the logical size and clears every pixel.
func (s *Surface) Reset(width, height int) error {
	if width < 0 || height < 0 || BufferLen(width, height) > MaxBufferSize {
		return fmt.Errorf("%w: %dx%d needs %d bytes (max %d)", ErrCapacity, width, height, BufferLen(width, height), MaxBufferSize)
	}
	s.width = width
	s.height = height
	s.fill()
	return nil
}

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return s.height }

// Glyphs returns the table used by Text.
func (s *Surface) Glyphs() *glyph.Table { return s.glyphs }

// Bytes returns the live packed buffer for the current size.
func (s *Surface) Bytes() []byte {
	return s.buf[:BufferLen(s.width, s.height)]
}

// Raw returns the whole fixed-capacity buffer.
func (s *Surface) Raw() []byte {
	return s.buf[:]
}

// Lit reports whether (x,y) is drawn. Out-of-range pixels are never lit.
func (s *Surface) Lit(x, y int) bool {
	if !s.inside(x, y) {
		return false
	}
	return s.buf[s.index(x)+y*(s.width/8)]&s.mask(x) == 0
}

// Clear blanks the whole surface. The region is ignored.
func (s *Surface) Clear(x, y, w, h int) {
	s.fill()
}

// Pixel lights (x,y); out-of-range coordinates are dropped.
func (s *Surface) Pixel(x, y int) {
	if !s.inside(x, y) {
		return
	}
	s.buf[y*(s.width/8)+s.index(x)] &^= s.mask(x)
}

// HLine lights length pixels rightwards from (x,y), clamped to the row.
func (s *Surface) HLine(x, y, length int) {
	if y < 0 || y >= s.height || x >= s.width {
		return
	}
	if x < 0 {
		length += x
		x = 0
	}
	if x+length > s.width {
		length = s.width - x
	}
	for i := x; i < x+length; i++ {
		s.buf[y*(s.width/8)+s.index(i)] &^= s.mask(i)
	}
}

// VLine lights length pixels downwards from (x,y), clamped to the column.
func (s *Surface) VLine(x, y, length int) {
	if x < 0 || x >= s.width || y >= s.height {
		return
	}
	if y < 0 {
		length += y
		y = 0
	}
	if y+length > s.height {
		length = s.height - y
	}
	for i := y; i < y+length; i++ {
		s.buf[i*(s.width/8)+s.index(x)] &^= s.mask(x)
	}
}

// Render and RenderPart are no-ops: the host transmits Bytes directly.
func (s *Surface) Render()                    {}
func (s *Surface) RenderPart(x, y, w, h int) {}

// Text draws text with the surface's glyph table.
func (s *Surface) Text(x, y int, text string, size int) {
	DrawText(s, s.glyphs, x, y, text, size)
}

// Arc samples a circle from startAngle up to endAngle in whole degrees.
func (s *Surface) Arc(xc, yc, radius, startAngle, endAngle int) {
	DrawArc(s, xc, yc, radius, startAngle, endAngle)
}

// Image exposes the surface to the image and draw packages.
func (s *Surface) Image() *Mono {
	return &Mono{s: s}
}

func (s *Surface) erase(x, y int) {
	if !s.inside(x, y) {
		return
	}
	s.buf[y*(s.width/8)+s.index(x)] |= s.mask(x)
}

func (s *Surface) inside(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

func (s *Surface) index(x int) int { return x / 8 }

func (s *Surface) mask(x int) byte { return 1 << (7 - uint(x%8)) }

func (s *Surface) fill() {
	for i := range s.buf {
		s.buf[i] = 0xFF
	}
}
