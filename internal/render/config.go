package render

import "image/color"

// Panel limits. The packed buffer is sized for the largest supported panel.
const (
	MaxWidth      = 80
	MaxHeight     = 128
	MaxBufferSize = MaxWidth * MaxHeight / 8
)

// Presentation colours used when the mono surface is shown on a colour device.
var (
	Foreground = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xFF} // lit pixels
	Background = color.RGBA{R: 0xF0, G: 0xF0, B: 0xE8, A: 0xFF} // unlit pixels
)
