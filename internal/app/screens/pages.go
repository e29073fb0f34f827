package screens

import (
	"errors"
	"fmt"
	"image"
	"strconv"

	"github.com/rook-computer/hdldisplay/internal/hdl"
	"github.com/rook-computer/hdldisplay/internal/render"
	"github.com/rook-computer/hdldisplay/internal/render/layout"
)

// Page draws one layout from the resolved bindings.
type Page interface {
	// Check rejects interfaces the page cannot draw on.
	Check(iface *hdl.Interface) error
	Draw(c render.Canvas, s *session)
}

var pages = map[string]Page{
	"status":  statusPage{},
	"sleep":   sleepPage{},
	"pairing": pairingPage{},
}

// Pages lists the page names a layout may select.
func Pages() []string {
	return []string{"status", "sleep", "pairing"}
}

var errMissingFeature = errors.New("display lacks a required feature")

const headerHeight = render.CellHeight + 4

// statusPage: battery header, large clock, date and a charging marker.
type statusPage struct{}

func (statusPage) Check(iface *hdl.Interface) error {
	if !iface.Features.Has(hdl.FeatText | hdl.FeatLineHV) {
		return errMissingFeature
	}
	return nil
}

func (statusPage) Draw(c render.Canvas, s *session) {
	bounds := layout.Bounds(s.iface.Width, s.iface.Height)
	header, body := layout.SplitHorizontal(bounds, headerHeight)
	drawHeader(c, s, header)

	var footer image.Rectangle
	if s.charging.Bool() {
		body, footer = layout.SplitBottom(body, headerHeight)
	}

	clock := s.clock.String()
	date := s.date.String()
	size := 2
	if w, h := render.MeasureText(clock, size); w > body.Dx() || h+render.CellHeight > body.Dy() {
		size = 1
	}
	cw, ch := render.MeasureText(clock, size)
	dw, dh := render.MeasureText(date, 1)
	block := layout.Center(body, max(cw, dw), ch+1+dh)
	clockBox := layout.Center(image.Rect(block.Min.X, block.Min.Y, block.Max.X, block.Min.Y+ch), cw, ch)
	c.Text(clockBox.Min.X, clockBox.Min.Y, clock, size)
	dateBox := layout.Center(image.Rect(block.Min.X, block.Max.Y-dh, block.Max.X, block.Max.Y), dw, dh)
	c.Text(dateBox.Min.X, dateBox.Min.Y, date, 1)

	if !footer.Empty() {
		drawCharging(c, footer)
	}
}

func drawHeader(c render.Canvas, s *session, header image.Rectangle) {
	inner := layout.Inset(header, 1)
	pct := strconv.Itoa(s.percent.Int()) + "%"
	pw, ph := render.MeasureText(pct, 1)
	at := layout.AlignLeft(inner, pw, ph)
	c.Text(at.Min.X, at.Min.Y, pct, 1)

	sprite := s.sprite.Int()
	if sprite < 0 {
		sprite = 0
	}
	if sprite >= BatteryLevels {
		sprite = BatteryLevels - 1
	}
	if icon, ok := s.iface.Assets.Bitmap(AssetBattery + uint16(sprite)); ok {
		box := layout.AlignRight(inner, icon.Width, icon.Height)
		render.DrawBitmap(c, box.Min.X, box.Min.Y, icon)
	}
	c.HLine(0, header.Max.Y-1, header.Dx())
}

func drawCharging(c render.Canvas, footer image.Rectangle) {
	c.HLine(footer.Min.X, footer.Min.Y, footer.Dx())
	r := (footer.Dy() - 3) / 2
	if r < 1 {
		r = 1
	}
	label := "CHRG"
	lw, lh := render.MeasureText(label, 1)
	row := layout.Center(footer, 2*r+2+lw, max(2*r+1, lh))
	cx, cy := row.Min.X+r, row.Min.Y+row.Dy()/2
	c.Arc(cx, cy, r, 0, 360)
	c.VLine(cx, cy-r+1, 2*r-1)
	c.Text(row.Min.X+2*r+2, cy-lh/2, label, 1)
}

// sleepPage: a crescent over a small clock. Update also draws it whenever
// VIEW selects the sleep view.
type sleepPage struct{}

func (sleepPage) Check(iface *hdl.Interface) error {
	if !iface.Features.Has(hdl.FeatText) {
		return errMissingFeature
	}
	return nil
}

func (sleepPage) Draw(c render.Canvas, s *session) {
	bounds := layout.Bounds(s.iface.Width, s.iface.Height)
	clock := s.clock.String()
	tw, th := render.MeasureText(clock, 1)
	r := min(bounds.Dx(), bounds.Dy()) / 6
	block := layout.Center(bounds, max(tw, 2*r+1), 2*r+1+2+th)
	cx, cy := block.Min.X+block.Dx()/2, block.Min.Y+r
	c.Arc(cx, cy, r, 90, 270)
	c.Arc(cx-r/2, cy, r, 90, 270)
	text := layout.Center(image.Rect(block.Min.X, block.Max.Y-th, block.Max.X, block.Max.Y), tw, th)
	c.Text(text.Min.X, text.Min.Y, clock, 1)
}

// pairingPage: the preloaded pairing code under a caption.
type pairingPage struct{}

func (pairingPage) Check(iface *hdl.Interface) error {
	if !iface.Features.Has(hdl.FeatBitmap | hdl.FeatText) {
		return errMissingFeature
	}
	if _, ok := iface.Assets.Bitmap(AssetPairing); !ok {
		return fmt.Errorf("asset 0x%04x not preloaded", AssetPairing)
	}
	return nil
}

func (pairingPage) Draw(c render.Canvas, s *session) {
	bounds := layout.Bounds(s.iface.Width, s.iface.Height)
	header, body := layout.SplitHorizontal(bounds, headerHeight)
	caption := "PAIR"
	cw, ch := render.MeasureText(caption, 1)
	at := layout.Center(header, cw, ch)
	c.Text(at.Min.X, at.Min.Y, caption, 1)
	c.HLine(0, header.Max.Y-1, header.Dx())

	code, _ := s.iface.Assets.Bitmap(AssetPairing)
	box := layout.Center(layout.FitSquare(body), code.Width, code.Height)
	render.DrawBitmap(c, box.Min.X, box.Min.Y, code)
}
