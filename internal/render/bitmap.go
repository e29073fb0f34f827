package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

var ErrBitmapSize = errors.New("render: bitmap data does not match size")

// Bitmap is a packed monochrome asset. Rows are padded to whole bytes, bits
// run MSB first, and a set bit is ink. This is the inverse polarity of Surface.
type Bitmap struct {
	Width  int
	Height int
	Data   []byte
}

func NewBitmap(width, height int) *Bitmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Bitmap{Width: width, Height: height, Data: make([]byte, (width+7)/8*height)}
}

// ParseBitmap wraps already packed data.
func ParseBitmap(width, height int, data []byte) (*Bitmap, error) {
	if width < 0 || height < 0 || len(data) != (width+7)/8*height {
		return nil, fmt.Errorf("%w: %dx%d with %d bytes", ErrBitmapSize, width, height, len(data))
	}
	return &Bitmap{Width: width, Height: height, Data: data}, nil
}

func (b *Bitmap) stride() int { return (b.Width + 7) / 8 }

// Set inks or clears (x,y). Out-of-range writes are ignored.
func (b *Bitmap) Set(x, y int, ink bool) {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return
	}
	i := y*b.stride() + x/8
	m := byte(0x80) >> uint(x%8)
	if ink {
		b.Data[i] |= m
	} else {
		b.Data[i] &^= m
	}
}

func (b *Bitmap) Ink(x, y int) bool {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return false
	}
	return b.Data[y*b.stride()+x/8]&(0x80>>uint(x%8)) != 0
}

// DrawBitmap blits the inked pixels of b with its top-left at (x,y).
func DrawBitmap(p Pixeler, x, y int, b *Bitmap) {
	if b == nil {
		return
	}
	for by := 0; by < b.Height; by++ {
		for bx := 0; bx < b.Width; bx++ {
			if b.Ink(bx, by) {
				p.Pixel(x+bx, y+by)
			}
		}
	}
}

// FromImage thresholds img into a width x height bitmap, scaling with nearest
// neighbour sampling when the sizes differ. Dark, mostly opaque pixels are ink.
// A non-positive size keeps the image's own dimension.
func FromImage(img image.Image, width, height int) *Bitmap {
	img = flatten(img)
	src := img.Bounds()
	if width <= 0 {
		width = src.Dx()
	}
	if height <= 0 {
		height = src.Dy()
	}
	gray := image.NewGray(image.Rect(0, 0, width, height))
	xdraw.Draw(gray, gray.Bounds(), image.White, image.Point{}, xdraw.Src)
	xdraw.NearestNeighbor.Scale(gray, gray.Bounds(), img, src, xdraw.Over, nil)

	out := NewBitmap(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if gray.GrayAt(x, y).Y < 0x80 {
				out.Set(x, y, true)
			}
		}
	}
	return out
}

// Image renders the bitmap as black ink on white.
func (b *Bitmap) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if b.Ink(x, y) {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 0xFF})
			}
		}
	}
	return img
}
