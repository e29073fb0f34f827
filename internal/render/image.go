package render

import (
	"image"
	"image/color"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"
)

// Mono is a draw.Image view of a Surface. Lit pixels read as black.
type Mono struct {
	s *Surface
}

func (m *Mono) ColorModel() color.Model { return color.GrayModel }

func (m *Mono) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.s.width, m.s.height)
}

func (m *Mono) At(x, y int) color.Color {
	if m.s.Lit(x, y) {
		return color.Gray{Y: 0}
	}
	return color.Gray{Y: 0xFF}
}

func (m *Mono) RGBA64At(x, y int) color.RGBA64 {
	if m.s.Lit(x, y) {
		return color.RGBA64{A: 0xFFFF}
	}
	return color.RGBA64{R: 0xFFFF, G: 0xFFFF, B: 0xFFFF, A: 0xFFFF}
}

// Set lights the pixel for dark opaque colours and blanks it otherwise.
func (m *Mono) Set(x, y int, c color.Color) {
	_, _, _, a := c.RGBA()
	if a >= 0x8000 && color.GrayModel.Convert(c).(color.Gray).Y < 0x80 {
		m.s.Pixel(x, y)
		return
	}
	m.s.erase(x, y)
}

// EncodePNG writes frame scaled up by an integer factor.
func EncodePNG(w io.Writer, frame image.Image, scale int) error {
	if scale < 1 {
		scale = 1
	}
	src := flatten(frame)
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return png.Encode(w, dst)
}

// flatten copies img into an *image.RGBA unless it already implements
// image.RGBA64Image. The scalers only sample sources of that kind.
func flatten(img image.Image) image.Image {
	if _, ok := img.(image.RGBA64Image); ok {
		return img
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(out, out.Bounds(), img, b.Min, xdraw.Src)
	return out
}

// Unpack expands a packed buffer copied out of a Surface into a grayscale
// image. Bytes missing from a short buffer read as unlit.
func Unpack(buf []byte, width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*(width/8) + x/8
			if i < len(buf) && buf[i]&(0x80>>uint(x%8)) == 0 {
				continue
			}
			img.SetGray(x, y, color.Gray{Y: 0xFF})
		}
	}
	return img
}
