package render

import (
	"context"
	"image"
)

// Pixeler is the single primitive every higher-level shape draws through.
type Pixeler interface {
	Pixel(x, y int)
}

// Canvas is the drawing capability handed to a layout interpreter.
type Canvas interface {
	Pixeler
	Clear(x, y, w, h int)
	HLine(x, y, length int)
	VLine(x, y, length int)
	Render()
	RenderPart(x, y, w, h int)
	Text(x, y int, text string, size int)
	Arc(xc, yc, radius, startAngle, endAngle int)
}

var _ Canvas = (*Surface)(nil)

// Presenter moves a finished frame to a physical or virtual display.
type Presenter interface {
	Start(ctx context.Context) error
	Stop() error
	Present(frame image.Image) error
}

type NoopPresenter struct{}

func (NoopPresenter) Start(ctx context.Context) error { return nil }
func (NoopPresenter) Stop() error                     { return nil }
func (NoopPresenter) Present(frame image.Image) error { return nil }
