package render

import (
	"context"
	"image"
	"image/color"
	"sync/atomic"

	fb "github.com/gonutz/framebuffer"
)

// FBPresenter shows frames on a Linux framebuffer device, scaled by the
// largest whole factor that fits and centred.
type FBPresenter struct {
	Path   string
	Logger interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}

	fbDev   *fb.Device
	running atomic.Bool
}

func NewFBPresenter(path string) *FBPresenter {
	if path == "" {
		path = "/dev/fb0"
	}
	return &FBPresenter{Path: path}
}

func (p *FBPresenter) Start(ctx context.Context) error {
	dev, err := fb.Open(p.Path)
	if err != nil {
		return err
	}
	p.fbDev = dev
	if p.Logger != nil {
		bounds := dev.Bounds()
		p.Logger.Infof("fb", "framebuffer %s open, bounds=%dx%d", p.Path, bounds.Dx(), bounds.Dy())
	}
	p.running.Store(true)
	return nil
}

func (p *FBPresenter) Stop() error {
	p.running.Store(false)
	if p.fbDev != nil {
		p.fbDev.Close()
		p.fbDev = nil
	}
	return nil
}

func (p *FBPresenter) Present(frame image.Image) error {
	if !p.running.Load() || p.fbDev == nil || frame == nil {
		return nil
	}
	blitToFB(p.fbDev, frame)
	return nil
}

func blitToFB(dev *fb.Device, frame image.Image) {
	bounds := dev.Bounds()
	src := frame.Bounds()
	if src.Empty() {
		return
	}
	scale := bounds.Dx() / src.Dx()
	if s := bounds.Dy() / src.Dy(); s < scale {
		scale = s
	}
	if scale < 1 {
		scale = 1
	}
	offX := (bounds.Dx() - src.Dx()*scale) / 2
	offY := (bounds.Dy() - src.Dy()*scale) / 2

	for y := 0; y < bounds.Dy(); y++ {
		sy := (y - offY) / scale
		for x := 0; x < bounds.Dx(); x++ {
			sx := (x - offX) / scale
			c := Background
			if x >= offX && y >= offY && sx < src.Dx() && sy < src.Dy() && isInk(frame.At(src.Min.X+sx, src.Min.Y+sy)) {
				c = Foreground
			}
			dev.Set(bounds.Min.X+x, bounds.Min.Y+y, c)
		}
	}
}

func isInk(c color.Color) bool {
	return color.GrayModel.Convert(c).(color.Gray).Y < 0x80
}
