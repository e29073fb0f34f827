package app

import (
	"fmt"

	"github.com/rook-computer/hdldisplay/internal/app/screens"
	"github.com/rook-computer/hdldisplay/internal/binding"
	"github.com/rook-computer/hdldisplay/internal/hdl"
	"github.com/rook-computer/hdldisplay/internal/render"
	"github.com/rook-computer/hdldisplay/internal/state"
)

// Firmware supplies the device's binding table and assets to each build.
// Build runs inside Store.Do, so Seed writes the record directly.
type Firmware struct {
	Store   *state.Store
	PairURL string
}

var _ hdl.Setup = (*Firmware)(nil)

func (f *Firmware) Seed() {
	f.Store.Record().Seed()
}

func (f *Firmware) Bindings(reg *binding.Registry) error {
	return f.Store.Record().Register(reg)
}

func (f *Firmware) Assets(set *hdl.AssetSet) error {
	for i, icon := range screens.BatteryIcons() {
		if err := set.Preload(screens.AssetBattery+uint16(i), icon); err != nil {
			return err
		}
	}
	if f.PairURL == "" {
		return nil
	}
	code, err := render.QRBitmap(f.PairURL)
	if err != nil {
		return fmt.Errorf("pairing code: %w", err)
	}
	return set.Preload(screens.AssetPairing, code)
}
