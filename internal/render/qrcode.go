package render

import (
	"errors"
	"fmt"

	"github.com/skip2/go-qrcode"
)

var ErrEmptyPayload = errors.New("render: empty qr payload")

// QRBitmap encodes payload as a borderless QR code, one pixel per module.
// Short payloads fit a 21x21 version 1 symbol, small enough for an 80 px panel.
func QRBitmap(payload string) (*Bitmap, error) {
	if payload == "" {
		return nil, ErrEmptyPayload
	}
	qr, err := qrcode.New(payload, qrcode.Low)
	if err != nil {
		return nil, fmt.Errorf("render: qr encode: %w", err)
	}
	qr.DisableBorder = true

	modules := qr.Bitmap()
	out := NewBitmap(len(modules), len(modules))
	for y, row := range modules {
		for x, dark := range row {
			out.Set(x, y, dark)
		}
	}
	return out, nil
}
